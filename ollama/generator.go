package ollama

import (
	"context"

	"github.com/harshydav08/sitechat"
)

// DefaultModel is the default generation model.
const DefaultModel = "llama3.2"

// Ensure Generator implements sitechat.Generator at compile time.
var _ sitechat.Generator = (*Generator)(nil)

// Generator calls POST /api/generate without streaming.
type Generator struct {
	client *Client
	model  string
}

// NewGenerator creates a Generator. An empty model selects DefaultModel.
func NewGenerator(client *Client, model string) *Generator {
	if model == "" {
		model = DefaultModel
	}
	return &Generator{client: client, model: model}
}

// Model returns the generation model name.
func (g *Generator) Model() string {
	return g.model
}

type generateRequest struct {
	Model   string   `json:"model"`
	Prompt  string   `json:"prompt"`
	Stream  bool     `json:"stream"`
	Options *options `json:"options,omitempty"`
}

type options struct {
	NumPredict  int     `json:"num_predict,omitempty"`
	Temperature float64 `json:"temperature,omitempty"`
}

type generateResponse struct {
	Response string `json:"response"`
	Done     bool   `json:"done"`
}

// Generate returns the completion for prompt.
func (g *Generator) Generate(ctx context.Context, prompt string, opts sitechat.GenerateOptions) (string, error) {
	if prompt == "" {
		return "", sitechat.Errorf(sitechat.EINVALID, "prompt required")
	}

	req := generateRequest{Model: g.model, Prompt: prompt}
	if opts.MaxTokens > 0 || opts.Temperature > 0 {
		req.Options = &options{NumPredict: opts.MaxTokens, Temperature: opts.Temperature}
	}

	var resp generateResponse
	if err := g.client.post(ctx, "/api/generate", req, &resp); err != nil {
		return "", err
	}
	return resp.Response, nil
}
