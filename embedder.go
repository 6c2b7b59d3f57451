package sitechat

import "context"

// Embedder turns text into fixed-dimension vectors.
type Embedder interface {
	// Embed returns one vector per input text, in order. Identical input
	// yields identical vectors. An empty input list is rejected with EINVALID.
	Embed(ctx context.Context, texts []string) ([][]float32, error)

	// Model names the embedding model.
	Model() string
}
