package ollama

import (
	"context"

	"github.com/harshydav08/sitechat"
)

// DefaultEmbeddingModel is all-MiniLM-L6-v2 as packaged by Ollama.
const DefaultEmbeddingModel = "all-minilm"

// Ensure Embedder implements sitechat.Embedder at compile time.
var _ sitechat.Embedder = (*Embedder)(nil)

// Embedder calls POST /api/embed with the whole batch as input.
type Embedder struct {
	client *Client
	model  string
}

// NewEmbedder creates an Embedder. An empty model selects
// DefaultEmbeddingModel.
func NewEmbedder(client *Client, model string) *Embedder {
	if model == "" {
		model = DefaultEmbeddingModel
	}
	return &Embedder{client: client, model: model}
}

// Model returns the embedding model name.
func (e *Embedder) Model() string {
	return e.model
}

type embedRequest struct {
	Model string   `json:"model"`
	Input []string `json:"input"`
}

type embedResponse struct {
	Embeddings [][]float32 `json:"embeddings"`
}

// Embed returns one vector per text, in input order.
func (e *Embedder) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return nil, sitechat.Errorf(sitechat.EINVALID, "no texts to embed")
	}

	var resp embedResponse
	if err := e.client.post(ctx, "/api/embed", embedRequest{Model: e.model, Input: texts}, &resp); err != nil {
		return nil, err
	}
	if len(resp.Embeddings) != len(texts) {
		return nil, sitechat.Errorf(sitechat.EINTERNAL, "ollama returned %d embeddings for %d texts", len(resp.Embeddings), len(texts))
	}
	return resp.Embeddings, nil
}
