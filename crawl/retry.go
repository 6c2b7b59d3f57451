package crawl

import (
	"context"
	"time"
)

// FetchFunc is the signature for a fetch function.
type FetchFunc func(ctx context.Context, url string) (string, error)

// RetryFunc is called before each retry with the attempt about to be made
// (2 for the first retry) and the error that triggered it.
type RetryFunc func(url string, attempt int, err error)

// FetchWithRetry calls fetch once, then once more after each of delays
// while it keeps failing. An empty delays slice means a single attempt.
// The onRetry callback, if provided, is called before each retry.
func FetchWithRetry(ctx context.Context, url string, fetch FetchFunc, onRetry RetryFunc, delays []time.Duration) (string, error) {
	var lastErr error
	for attempt := 0; attempt <= len(delays); attempt++ {
		if attempt > 0 {
			if onRetry != nil {
				onRetry(url, attempt+1, lastErr)
			}
			select {
			case <-ctx.Done():
				return "", ctx.Err()
			case <-time.After(delays[attempt-1]):
			}
		}

		if err := ctx.Err(); err != nil {
			return "", err
		}

		html, err := fetch(ctx, url)
		if err == nil {
			return html, nil
		}
		lastErr = err
	}
	return "", lastErr
}
