package http

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/harshydav08/sitechat"
)

// Ensure Fetcher implements sitechat.Fetcher at compile time.
var _ sitechat.Fetcher = (*Fetcher)(nil)

// Fetcher retrieves HTML content with plain GET requests.
// Unlike rod.Fetcher, this does not execute JavaScript.
type Fetcher struct {
	client *http.Client
	opts   options
}

// NewFetcher creates a new HTTP-based Fetcher. Redirects are followed.
func NewFetcher(opts ...Option) *Fetcher {
	o := newOptions(DefaultFetchTimeout, opts)
	return &Fetcher{
		client: &http.Client{Timeout: o.timeout},
		opts:   o,
	}
}

// Fetch retrieves the body of the page at url. Any non-2xx final status
// is an error.
func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", err
	}
	f.opts.setHeaders(req)

	resp, err := f.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("HTTP %d for %s", resp.StatusCode, url)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return "", err
	}

	return string(body), nil
}

// Close releases resources. For the HTTP fetcher this is a no-op.
func (f *Fetcher) Close() error {
	return nil
}
