package gemini

import (
	"context"
	"fmt"

	"github.com/harshydav08/sitechat"
	"google.golang.org/genai"
	"google.golang.org/genai/tokenizer"
)

// DefaultTokenizerModel selects the local tokenizer used for chunk token
// statistics. Gemini 2.x models share its vocabulary.
const DefaultTokenizerModel = "gemini-2.0-flash"

var _ sitechat.TokenCounter = (*TokenCounter)(nil)

// TokenCounter counts chunk tokens offline with the Gemini tokenizer. No
// API key or network access is needed once the vocabulary is cached.
type TokenCounter struct {
	tok   *tokenizer.LocalTokenizer
	model string
}

// NewTokenCounter loads the tokenizer for model, or DefaultTokenizerModel
// when model is empty.
func NewTokenCounter(model string) (*TokenCounter, error) {
	if model == "" {
		model = DefaultTokenizerModel
	}
	tok, err := tokenizer.NewLocalTokenizer(model)
	if err != nil {
		return nil, sitechat.Errorf(sitechat.EINVALID, "no local tokenizer for %q: %v", model, err)
	}
	return &TokenCounter{tok: tok, model: model}, nil
}

// Model returns the tokenizer model name.
func (tc *TokenCounter) Model() string {
	return tc.model
}

// CountTokens returns the number of tokens text encodes to.
func (tc *TokenCounter) CountTokens(ctx context.Context, text string) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	if text == "" {
		return 0, nil
	}

	contents := []*genai.Content{genai.NewContentFromText(text, genai.RoleUser)}
	result, err := tc.tok.CountTokens(contents, nil)
	if err != nil {
		return 0, fmt.Errorf("count tokens: %w", err)
	}
	return int(result.TotalTokens), nil
}
