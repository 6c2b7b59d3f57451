// Package gemini implements generation, embedding and token counting on
// the Google Gemini API.
package gemini

import (
	"context"

	"github.com/harshydav08/sitechat"
	"google.golang.org/genai"
)

// DefaultModel is the default generation model.
const DefaultModel = "gemini-2.5-flash"

// Ensure Generator implements sitechat.Generator at compile time.
var _ sitechat.Generator = (*Generator)(nil)

// Generator implements sitechat.Generator using Google Gemini.
type Generator struct {
	client *genai.Client
	model  string
}

// NewGenerator creates a new Generator. An empty model selects DefaultModel.
func NewGenerator(client *genai.Client, model string) *Generator {
	if model == "" {
		model = DefaultModel
	}
	return &Generator{client: client, model: model}
}

// Model returns the generation model name.
func (g *Generator) Model() string {
	return g.model
}

// Generate sends prompt as a single user turn and returns the response text.
func (g *Generator) Generate(ctx context.Context, prompt string, opts sitechat.GenerateOptions) (string, error) {
	if prompt == "" {
		return "", sitechat.Errorf(sitechat.EINVALID, "prompt required")
	}

	result, err := g.client.Models.GenerateContent(ctx, g.model,
		[]*genai.Content{genai.NewContentFromText(prompt, "user")},
		BuildConfig(opts),
	)
	if err != nil {
		return "", err
	}
	if result == nil {
		return "", sitechat.Errorf(sitechat.EINTERNAL, "gemini returned nil result")
	}

	return result.Text(), nil
}

// BuildConfig returns the GenerateContentConfig for opts. Zero values are
// left unset so the model defaults apply.
func BuildConfig(opts sitechat.GenerateOptions) *genai.GenerateContentConfig {
	config := &genai.GenerateContentConfig{}
	if opts.Temperature > 0 {
		temp := float32(opts.Temperature)
		config.Temperature = &temp
	}
	if opts.MaxTokens > 0 {
		config.MaxOutputTokens = int32(opts.MaxTokens)
	}
	return config
}
