// Package rag answers questions from indexed website content. It holds the
// retrieval and synthesis steps and the Service that orchestrates indexing
// and asking.
package rag

import (
	"context"
	"fmt"
	"strings"

	"github.com/harshydav08/sitechat"
)

// Retrieval defaults.
const (
	DefaultTopK                = 5
	DefaultSimilarityThreshold = 0.7
	DefaultHistoryMessages     = 2
)

// Ensure Retriever implements sitechat.Retriever at compile time.
var _ sitechat.Retriever = (*Retriever)(nil)

// Retriever embeds a question and returns the stored chunks nearest to it
// whose similarity reaches the threshold.
type Retriever struct {
	embedder        sitechat.Embedder
	store           sitechat.VectorStore
	topK            int
	threshold       float64
	historyMessages int
}

// RetrieverOption configures a Retriever.
type RetrieverOption func(*Retriever)

// WithTopK sets how many neighbors are requested from the store.
// Values below 1 are ignored.
func WithTopK(k int) RetrieverOption {
	return func(r *Retriever) {
		if k > 0 {
			r.topK = k
		}
	}
}

// WithSimilarityThreshold sets the minimum similarity of returned evidence.
// The value is clamped to [0, 1].
func WithSimilarityThreshold(t float64) RetrieverOption {
	return func(r *Retriever) {
		r.threshold = clamp(t)
	}
}

// WithHistoryMessages sets how many trailing history messages are folded
// into the query text. Zero disables history fusion.
func WithHistoryMessages(n int) RetrieverOption {
	return func(r *Retriever) {
		if n >= 0 {
			r.historyMessages = n
		}
	}
}

// NewRetriever creates a Retriever over embedder and store.
func NewRetriever(embedder sitechat.Embedder, store sitechat.VectorStore, opts ...RetrieverOption) *Retriever {
	r := &Retriever{
		embedder:        embedder,
		store:           store,
		topK:            DefaultTopK,
		threshold:       DefaultSimilarityThreshold,
		historyMessages: DefaultHistoryMessages,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Retrieve returns evidence for question, most similar first. History only
// changes the text that gets embedded, never the evidence itself.
func (r *Retriever) Retrieve(ctx context.Context, question string, history []*sitechat.Message) ([]*sitechat.Evidence, error) {
	if strings.TrimSpace(question) == "" {
		return nil, sitechat.Errorf(sitechat.EINVALID, "question required")
	}

	query := BuildQuery(question, history, r.historyMessages)
	vectors, err := r.embedder.Embed(ctx, []string{query})
	if err != nil {
		return nil, fmt.Errorf("embed query: %w", err)
	}
	if len(vectors) != 1 {
		return nil, sitechat.Errorf(sitechat.EINTERNAL, "embedder returned %d vectors for 1 query", len(vectors))
	}

	matches, err := r.store.Query(ctx, vectors[0], r.topK, nil)
	if err != nil {
		return nil, fmt.Errorf("query store: %w", err)
	}

	evidence := make([]*sitechat.Evidence, 0, len(matches))
	for _, m := range matches {
		sim := Similarity(m.Distance)
		if sim < r.threshold {
			continue
		}
		evidence = append(evidence, &sitechat.Evidence{
			ID:         m.ID,
			Content:    m.Content,
			Metadata:   m.Metadata,
			Similarity: sim,
		})
	}
	return evidence, nil
}

// BuildQuery prefixes question with the content of the last n history
// messages, space separated. Blank history leaves the question unchanged.
func BuildQuery(question string, history []*sitechat.Message, n int) string {
	if n <= 0 || len(history) == 0 {
		return question
	}
	if len(history) > n {
		history = history[len(history)-n:]
	}

	parts := make([]string, 0, len(history))
	for _, m := range history {
		parts = append(parts, m.Content)
	}
	prefix := strings.Join(parts, " ")
	if strings.TrimSpace(prefix) == "" {
		return question
	}
	return prefix + " " + question
}

// Similarity converts a cosine distance to a similarity in [0, 1].
func Similarity(distance float64) float64 {
	return clamp(1 - distance)
}

func clamp(v float64) float64 {
	return min(max(v, 0), 1)
}
