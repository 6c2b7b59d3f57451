package mock

import (
	"context"

	"github.com/harshydav08/sitechat"
)

var _ sitechat.Embedder = (*Embedder)(nil)

// Embedder is a mock implementation of sitechat.Embedder.
type Embedder struct {
	EmbedFn func(ctx context.Context, texts []string) ([][]float32, error)
	ModelFn func() string
}

func (e *Embedder) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	return e.EmbedFn(ctx, texts)
}

func (e *Embedder) Model() string {
	if e.ModelFn == nil {
		return "mock-embedder"
	}
	return e.ModelFn()
}

var _ sitechat.Generator = (*Generator)(nil)

// Generator is a mock implementation of sitechat.Generator.
type Generator struct {
	GenerateFn func(ctx context.Context, prompt string, opts sitechat.GenerateOptions) (string, error)
	ModelFn    func() string
}

func (g *Generator) Generate(ctx context.Context, prompt string, opts sitechat.GenerateOptions) (string, error) {
	return g.GenerateFn(ctx, prompt, opts)
}

func (g *Generator) Model() string {
	if g.ModelFn == nil {
		return "mock-generator"
	}
	return g.ModelFn()
}
