package mock

import (
	"context"

	"github.com/harshydav08/sitechat"
)

var _ sitechat.Retriever = (*Retriever)(nil)

// Retriever is a mock implementation of sitechat.Retriever.
type Retriever struct {
	RetrieveFn func(ctx context.Context, question string, history []*sitechat.Message) ([]*sitechat.Evidence, error)
}

func (r *Retriever) Retrieve(ctx context.Context, question string, history []*sitechat.Message) ([]*sitechat.Evidence, error) {
	return r.RetrieveFn(ctx, question, history)
}

var _ sitechat.Synthesizer = (*Synthesizer)(nil)

// Synthesizer is a mock implementation of sitechat.Synthesizer.
type Synthesizer struct {
	SynthesizeFn func(ctx context.Context, question string, evidence []*sitechat.Evidence, history []*sitechat.Message) *sitechat.Answer
}

func (s *Synthesizer) Synthesize(ctx context.Context, question string, evidence []*sitechat.Evidence, history []*sitechat.Message) *sitechat.Answer {
	return s.SynthesizeFn(ctx, question, evidence, history)
}

var _ sitechat.Asker = (*Asker)(nil)

// Asker is a mock implementation of sitechat.Asker.
type Asker struct {
	AskFn func(ctx context.Context, sessionID, question string) *sitechat.Answer
}

func (a *Asker) Ask(ctx context.Context, sessionID, question string) *sitechat.Answer {
	return a.AskFn(ctx, sessionID, question)
}

var _ sitechat.Indexer = (*Indexer)(nil)

// Indexer is a mock implementation of sitechat.Indexer.
type Indexer struct {
	IndexFn func(ctx context.Context, url string) *sitechat.IndexResult
}

func (i *Indexer) Index(ctx context.Context, url string) *sitechat.IndexResult {
	return i.IndexFn(ctx, url)
}
