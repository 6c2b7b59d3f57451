package sitechat

import "context"

// GenerateOptions tunes a single generation call.
type GenerateOptions struct {
	Temperature float64
	MaxTokens   int
}

// Generator is the natural-language generation backend.
type Generator interface {
	// Generate returns the backend's completion for prompt.
	Generate(ctx context.Context, prompt string, opts GenerateOptions) (string, error)

	// Model names the generation model.
	Model() string
}
