package sitechat

import "context"

// NotFoundAnswer is returned when the indexed site holds no usable evidence.
const NotFoundAnswer = "The answer is not available on the provided website."

// Apologies returned in place of an answer when a backend fails.
const (
	ProcessingErrorAnswer = "I apologize, but I encountered an error while processing your question."
	GenerationErrorAnswer = "I apologize, but I encountered an error while generating the response."
)

// Evidence is a retrieved chunk and its similarity to one query.
type Evidence struct {
	ID         string   `json:"id"`
	Content    string   `json:"content"`
	Metadata   Metadata `json:"metadata"`
	Similarity float64  `json:"similarity"`
}

// Answer is the outcome of asking a question. A failed answer carries the
// apology text in Text and the cause in Error.
type Answer struct {
	Text       string   `json:"answer"`
	Sources    []string `json:"sources"`
	Confidence float64  `json:"confidence"`
	ChunksUsed int      `json:"chunksUsed"`
	Code       string   `json:"code,omitempty"`
	Error      string   `json:"error,omitempty"`
}

// Failed reports whether the answer represents a backend failure.
func (a *Answer) Failed() bool {
	return a.Error != ""
}

// Retriever converts a question into ranked, filtered evidence.
type Retriever interface {
	// Retrieve returns evidence at or above the similarity threshold,
	// most similar first. An empty result is not an error.
	Retrieve(ctx context.Context, question string, history []*Message) ([]*Evidence, error)
}

// Synthesizer produces a grounded answer from evidence.
type Synthesizer interface {
	// Synthesize never fails; backend errors become an apologetic Answer.
	Synthesize(ctx context.Context, question string, evidence []*Evidence, history []*Message) *Answer
}

// Asker answers questions about the indexed site.
type Asker interface {
	// Ask answers question, reading and extending the conversation in
	// sessionID when that session exists. An empty sessionID asks without
	// memory.
	Ask(ctx context.Context, sessionID, question string) *Answer
}
