// Package gemini holds the generation backends used by chat sessions.
package gemini

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"mindcheck-service/internal/chat"
)

const (
	// DefaultModel is the model used when none is configured.
	DefaultModel = "gemini-1.5-flash"
	// DefaultBaseURL is the public generative-language endpoint.
	DefaultBaseURL = "https://generativelanguage.googleapis.com"

	ProviderSDK  = "sdk"
	ProviderREST = "rest"
)

// Config selects and configures a backend.
type Config struct {
	Provider string
	APIKey   string
	Model    string
	BaseURL  string
	Timeout  time.Duration
}

func (c Config) withDefaults() Config {
	if c.Provider == "" {
		c.Provider = ProviderSDK
	}
	if c.Model == "" {
		c.Model = DefaultModel
	}
	if c.BaseURL == "" {
		c.BaseURL = DefaultBaseURL
	}
	c.BaseURL = strings.TrimRight(c.BaseURL, "/")
	return c
}

// New builds the configured backend wrapped in request logging.
func New(ctx context.Context, cfg Config, logger *zap.Logger) (chat.Generator, error) {
	cfg = cfg.withDefaults()
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("gemini API key is required")
	}

	var (
		g   chat.Generator
		err error
	)
	switch cfg.Provider {
	case ProviderSDK:
		g, err = NewSDKGenerator(ctx, cfg)
	case ProviderREST:
		g = NewRESTGenerator(cfg)
	default:
		return nil, fmt.Errorf("unknown gemini provider %q", cfg.Provider)
	}
	if err != nil {
		return nil, err
	}
	return NewLoggingGenerator(g, cfg.Provider, cfg.Model, logger), nil
}
