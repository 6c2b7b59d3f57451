package mock

import (
	"context"

	"github.com/harshydav08/sitechat"
)

var _ sitechat.TokenCounter = (*TokenCounter)(nil)

// TokenCounter is a mock implementation of sitechat.TokenCounter.
type TokenCounter struct {
	CountTokensFn func(ctx context.Context, text string) (int, error)
}

func (tc *TokenCounter) CountTokens(ctx context.Context, text string) (int, error) {
	return tc.CountTokensFn(ctx, text)
}
