package mock

import (
	"context"

	"github.com/harshydav08/sitechat"
)

var _ sitechat.Fetcher = (*Fetcher)(nil)

// Fetcher is a mock implementation of sitechat.Fetcher.
type Fetcher struct {
	FetchFn func(ctx context.Context, url string) (string, error)
	CloseFn func() error
}

func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	return f.FetchFn(ctx, url)
}

func (f *Fetcher) Close() error {
	if f.CloseFn == nil {
		return nil
	}
	return f.CloseFn()
}

var _ sitechat.URLValidator = (*URLValidator)(nil)

// URLValidator is a mock implementation of sitechat.URLValidator.
type URLValidator struct {
	ValidateFn func(ctx context.Context, rawURL string) sitechat.Validation
}

func (v *URLValidator) Validate(ctx context.Context, rawURL string) sitechat.Validation {
	return v.ValidateFn(ctx, rawURL)
}
