package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/harshydav08/sitechat"
)

// Ensure LoggingEmbedder implements sitechat.Embedder.
var _ sitechat.Embedder = (*LoggingEmbedder)(nil)

// LoggingEmbedder wraps an Embedder with logging.
type LoggingEmbedder struct {
	next   sitechat.Embedder
	logger *slog.Logger
}

// NewLoggingEmbedder creates a new LoggingEmbedder.
func NewLoggingEmbedder(next sitechat.Embedder, logger *slog.Logger) *LoggingEmbedder {
	return &LoggingEmbedder{next: next, logger: logger}
}

// Embed delegates to the wrapped embedder and logs batch size and
// vector dimensions.
func (e *LoggingEmbedder) Embed(ctx context.Context, texts []string) (vectors [][]float32, err error) {
	defer func(begin time.Time) {
		var dims int
		if len(vectors) > 0 {
			dims = len(vectors[0])
		}
		e.logger.Info("embed",
			"model", e.next.Model(),
			"count", len(texts),
			"dimensions", dims,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return e.next.Embed(ctx, texts)
}

// Model delegates to the wrapped embedder.
func (e *LoggingEmbedder) Model() string {
	return e.next.Model()
}

// Ensure LoggingGenerator implements sitechat.Generator.
var _ sitechat.Generator = (*LoggingGenerator)(nil)

// LoggingGenerator wraps a Generator with logging.
type LoggingGenerator struct {
	next   sitechat.Generator
	logger *slog.Logger
}

// NewLoggingGenerator creates a new LoggingGenerator.
func NewLoggingGenerator(next sitechat.Generator, logger *slog.Logger) *LoggingGenerator {
	return &LoggingGenerator{next: next, logger: logger}
}

// Generate delegates to the wrapped generator and logs prompt and
// output sizes.
func (g *LoggingGenerator) Generate(ctx context.Context, prompt string, opts sitechat.GenerateOptions) (out string, err error) {
	defer func(begin time.Time) {
		g.logger.Info("generate",
			"model", g.next.Model(),
			"prompt_bytes", len(prompt),
			"bytes", len(out),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return g.next.Generate(ctx, prompt, opts)
}

// Model delegates to the wrapped generator.
func (g *LoggingGenerator) Model() string {
	return g.next.Model()
}
