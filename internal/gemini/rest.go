package gemini

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/imroc/req/v3"

	"mindcheck-service/internal/chat"
	"mindcheck-service/internal/domain"
)

type restPart struct {
	Text string `json:"text"`
}

type restContent struct {
	Role  string     `json:"role,omitempty"`
	Parts []restPart `json:"parts"`
}

type restSafety struct {
	Category  string `json:"category"`
	Threshold string `json:"threshold"`
}

type restRequest struct {
	Contents       []restContent `json:"contents"`
	SafetySettings []restSafety  `json:"safetySettings"`
}

type restResponse struct {
	Candidates []struct {
		Content *restContent `json:"content"`
	} `json:"candidates"`
	PromptFeedback *struct {
		BlockReason string `json:"blockReason"`
	} `json:"promptFeedback"`
	Error *struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// RESTGenerator posts the transcript straight to the generateContent endpoint.
type RESTGenerator struct {
	client *req.Client
	apiKey string
	model  string
}

// NewRESTGenerator builds a REST backend. The key travels as a query parameter.
func NewRESTGenerator(cfg Config) *RESTGenerator {
	cfg = cfg.withDefaults()
	c := req.C().
		SetBaseURL(cfg.BaseURL).
		SetJsonMarshal(json.Marshal).
		SetJsonUnmarshal(json.Unmarshal)
	if cfg.Timeout > 0 {
		c.SetTimeout(cfg.Timeout)
	}
	return &RESTGenerator{client: c, apiKey: cfg.APIKey, model: cfg.Model}
}

func (g *RESTGenerator) Generate(ctx context.Context, in chat.Request) (string, error) {
	body := restRequest{
		Contents:       make([]restContent, len(in.Turns)),
		SafetySettings: make([]restSafety, len(in.Safety)),
	}
	for i, t := range in.Turns {
		body.Contents[i] = restContent{Role: string(t.Role), Parts: []restPart{{Text: t.Text}}}
	}
	for i, s := range in.Safety {
		body.SafetySettings[i] = restSafety{Category: s.Category, Threshold: s.Threshold}
	}

	resp, err := g.client.R().
		SetContext(ctx).
		SetQueryParam("key", g.apiKey).
		SetBodyJsonMarshal(&body).
		Post("/v1beta/models/" + g.model + ":generateContent")
	if err != nil {
		return "", &domain.TransportError{Err: err}
	}
	raw, err := resp.ToBytes()
	if err != nil {
		return "", &domain.TransportError{Err: err}
	}

	var out restResponse
	decodeErr := json.Unmarshal(raw, &out)

	if !resp.IsSuccessState() {
		msg := http.StatusText(resp.GetStatusCode())
		if decodeErr == nil && out.Error != nil && out.Error.Message != "" {
			msg = out.Error.Message
		}
		return "", &domain.TransportError{Status: resp.GetStatusCode(), Message: msg}
	}
	if decodeErr != nil {
		return "", &domain.TransportError{Err: decodeErr}
	}
	switch {
	case out.Error != nil:
		return "", &domain.TransportError{Message: out.Error.Message}
	case out.PromptFeedback != nil && out.PromptFeedback.BlockReason != "":
		return "", &domain.SafetyBlockedError{Reason: out.PromptFeedback.BlockReason}
	}
	if len(out.Candidates) == 0 || out.Candidates[0].Content == nil || len(out.Candidates[0].Content.Parts) == 0 {
		return "", &domain.EmptyResponseError{}
	}
	text := out.Candidates[0].Content.Parts[0].Text
	if strings.TrimSpace(text) == "" {
		return "", &domain.EmptyResponseError{}
	}
	return text, nil
}
