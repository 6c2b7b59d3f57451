package crawl_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/harshydav08/sitechat/crawl"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// noDelays allows three immediate retries.
var noDelays = []time.Duration{0, 0, 0}

func TestFetchWithRetry(t *testing.T) {
	t.Parallel()

	t.Run("succeeds on first attempt", func(t *testing.T) {
		t.Parallel()

		var attempts int
		fetch := func(_ context.Context, _ string) (string, error) {
			attempts++
			return "<html>content</html>", nil
		}

		html, err := crawl.FetchWithRetry(context.Background(), "https://example.com", fetch, nil, noDelays)

		require.NoError(t, err)
		assert.Equal(t, "<html>content</html>", html)
		assert.Equal(t, 1, attempts)
	})

	t.Run("retries on failure and succeeds", func(t *testing.T) {
		t.Parallel()

		var attempts int
		fetch := func(_ context.Context, _ string) (string, error) {
			attempts++
			if attempts < 3 {
				return "", errors.New("transient error")
			}
			return "<html>success</html>", nil
		}

		var retried []int
		onRetry := func(_ string, attempt int, _ error) {
			retried = append(retried, attempt)
		}

		html, err := crawl.FetchWithRetry(context.Background(), "https://example.com", fetch, onRetry, noDelays)

		require.NoError(t, err)
		assert.Equal(t, "<html>success</html>", html)
		assert.Equal(t, 3, attempts)
		assert.Equal(t, []int{2, 3}, retried)
	})

	t.Run("returns last error after all attempts", func(t *testing.T) {
		t.Parallel()

		var attempts int
		fetch := func(_ context.Context, _ string) (string, error) {
			attempts++
			return "", errors.New("persistent error")
		}

		_, err := crawl.FetchWithRetry(context.Background(), "https://example.com", fetch, nil, noDelays)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "persistent error")
		assert.Equal(t, 4, attempts)
	})

	t.Run("makes a single attempt without delays", func(t *testing.T) {
		t.Parallel()

		var attempts int
		fetch := func(_ context.Context, _ string) (string, error) {
			attempts++
			return "", errors.New("boom")
		}

		_, err := crawl.FetchWithRetry(context.Background(), "https://example.com", fetch, nil, nil)

		require.Error(t, err)
		assert.Equal(t, 1, attempts)
	})

	t.Run("respects context cancellation", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())

		var attempts int
		fetch := func(_ context.Context, _ string) (string, error) {
			attempts++
			cancel()
			return "", errors.New("transient error")
		}

		_, err := crawl.FetchWithRetry(ctx, "https://example.com", fetch, nil, []time.Duration{time.Second})

		require.ErrorIs(t, err, context.Canceled)
		assert.Equal(t, 1, attempts)
	})
}
