package gemini

import (
	"context"
	"fmt"

	"github.com/harshydav08/sitechat"
	"golang.org/x/sync/errgroup"
	"google.golang.org/genai"
)

// Embedding defaults.
const (
	DefaultEmbeddingModel = "gemini-embedding-001"
	DefaultBatchSize      = 32
	DefaultConcurrency    = 4
)

// Ensure Embedder implements sitechat.Embedder at compile time.
var _ sitechat.Embedder = (*Embedder)(nil)

// Embedder implements sitechat.Embedder using the Gemini embedding API.
// Inputs are split into sub-batches that are embedded concurrently.
type Embedder struct {
	client      *genai.Client
	model       string
	batchSize   int
	concurrency int
}

// EmbedderOption configures an Embedder.
type EmbedderOption func(*Embedder)

// WithBatchSize sets the number of texts sent per request.
func WithBatchSize(n int) EmbedderOption {
	return func(e *Embedder) {
		if n > 0 {
			e.batchSize = n
		}
	}
}

// WithConcurrency sets how many requests may be in flight at once.
func WithConcurrency(n int) EmbedderOption {
	return func(e *Embedder) {
		if n > 0 {
			e.concurrency = n
		}
	}
}

// NewEmbedder creates a new Embedder. An empty model selects
// DefaultEmbeddingModel.
func NewEmbedder(client *genai.Client, model string, opts ...EmbedderOption) *Embedder {
	if model == "" {
		model = DefaultEmbeddingModel
	}
	e := &Embedder{
		client:      client,
		model:       model,
		batchSize:   DefaultBatchSize,
		concurrency: DefaultConcurrency,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Model returns the embedding model name.
func (e *Embedder) Model() string {
	return e.model
}

// Embed returns one vector per text, in input order.
func (e *Embedder) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return nil, sitechat.Errorf(sitechat.EINVALID, "no texts to embed")
	}

	vectors := make([][]float32, len(texts))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.concurrency)

	for start := 0; start < len(texts); start += e.batchSize {
		end := min(start+e.batchSize, len(texts))
		g.Go(func() error {
			return e.embedBatch(gctx, texts[start:end], vectors[start:end])
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return vectors, nil
}

// embedBatch embeds texts and writes the vectors into out.
func (e *Embedder) embedBatch(ctx context.Context, texts []string, out [][]float32) error {
	contents := make([]*genai.Content, len(texts))
	for i, text := range texts {
		contents[i] = genai.NewContentFromText(text, "user")
	}

	result, err := e.client.Models.EmbedContent(ctx, e.model, contents, nil)
	if err != nil {
		return fmt.Errorf("embedding batch: %w", err)
	}
	if result == nil || len(result.Embeddings) != len(texts) {
		return sitechat.Errorf(sitechat.EINTERNAL, "gemini returned %d embeddings for %d texts", embeddingCount(result), len(texts))
	}

	for i, emb := range result.Embeddings {
		if emb == nil || len(emb.Values) == 0 {
			return sitechat.Errorf(sitechat.EINTERNAL, "gemini returned an empty embedding")
		}
		out[i] = emb.Values
	}
	return nil
}

func embeddingCount(result *genai.EmbedContentResponse) int {
	if result == nil {
		return 0
	}
	return len(result.Embeddings)
}
