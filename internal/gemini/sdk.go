package gemini

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"google.golang.org/genai"

	"mindcheck-service/internal/chat"
	"mindcheck-service/internal/domain"
)

// SDKGenerator talks to Gemini through the official genai client.
type SDKGenerator struct {
	client *genai.Client
	model  string
}

// NewSDKGenerator creates a genai client for the Gemini API backend.
func NewSDKGenerator(ctx context.Context, cfg Config) (*SDKGenerator, error) {
	cfg = cfg.withDefaults()
	cc := &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
		HTTPOptions: genai.HTTPOptions{
			BaseURL: cfg.BaseURL + "/",
		},
	}
	if cfg.Timeout > 0 {
		cc.HTTPClient = &http.Client{Timeout: cfg.Timeout}
	}
	client, err := genai.NewClient(ctx, cc)
	if err != nil {
		return nil, fmt.Errorf("create Gemini client: %w", err)
	}
	return &SDKGenerator{client: client, model: cfg.Model}, nil
}

func (g *SDKGenerator) Generate(ctx context.Context, req chat.Request) (string, error) {
	contents := make([]*genai.Content, len(req.Turns))
	for i, t := range req.Turns {
		contents[i] = &genai.Content{
			Role:  string(t.Role),
			Parts: []*genai.Part{{Text: t.Text}},
		}
	}
	config := &genai.GenerateContentConfig{}
	for _, s := range req.Safety {
		config.SafetySettings = append(config.SafetySettings, &genai.SafetySetting{
			Category:  genai.HarmCategory(s.Category),
			Threshold: genai.HarmBlockThreshold(s.Threshold),
		})
	}

	resp, err := g.client.Models.GenerateContent(ctx, g.model, contents, config)
	if err != nil {
		return "", mapSDKError(err)
	}
	if resp.PromptFeedback != nil && resp.PromptFeedback.BlockReason != "" {
		return "", &domain.SafetyBlockedError{Reason: string(resp.PromptFeedback.BlockReason)}
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", &domain.EmptyResponseError{}
	}
	text := resp.Candidates[0].Content.Parts[0].Text
	if strings.TrimSpace(text) == "" {
		return "", &domain.EmptyResponseError{}
	}
	return text, nil
}

func mapSDKError(err error) error {
	var (
		ptr *genai.APIError
		val genai.APIError
	)
	switch {
	case errors.As(err, &ptr):
		return apiTransportError(ptr.Code, ptr.Message, err)
	case errors.As(err, &val):
		return apiTransportError(val.Code, val.Message, err)
	}
	return &domain.TransportError{Err: err}
}

func apiTransportError(code int, msg string, err error) error {
	if msg == "" {
		msg = http.StatusText(code)
	}
	return &domain.TransportError{Status: code, Message: msg, Err: err}
}
