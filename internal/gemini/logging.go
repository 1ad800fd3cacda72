package gemini

import (
	"context"
	"time"

	"go.uber.org/zap"

	"mindcheck-service/internal/chat"
)

// LoggingGenerator records latency and outcome of every generation call.
type LoggingGenerator struct {
	next     chat.Generator
	provider string
	model    string
	logger   *zap.Logger
}

func NewLoggingGenerator(next chat.Generator, provider, model string, logger *zap.Logger) *LoggingGenerator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LoggingGenerator{next: next, provider: provider, model: model, logger: logger.Named("gemini")}
}

func (g *LoggingGenerator) Generate(ctx context.Context, req chat.Request) (string, error) {
	start := time.Now()
	text, err := g.next.Generate(ctx, req)
	fields := []zap.Field{
		zap.String("provider", g.provider),
		zap.String("model", g.model),
		zap.Int("turns", len(req.Turns)),
		zap.Duration("latency", time.Since(start)),
		zap.String("outcome", chat.Kind(err)),
	}
	if err != nil {
		g.logger.Warn("generation failed", append(fields, zap.Error(err))...)
		return "", err
	}
	g.logger.Debug("generation succeeded", append(fields, zap.Int("chars", len(text)))...)
	return text, nil
}
