package gemini_test

import (
	"context"
	"strings"
	"testing"

	"github.com/harshydav08/sitechat"
	"github.com/harshydav08/sitechat/gemini"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenCounter_CountTokens(t *testing.T) {
	t.Parallel()

	tc, err := gemini.NewTokenCounter("")
	require.NoError(t, err)
	assert.Equal(t, gemini.DefaultTokenizerModel, tc.Model())

	t.Run("chunk text has tokens", func(t *testing.T) {
		t.Parallel()

		count, err := tc.CountTokens(context.Background(), "The bakery opens at seven every morning.")

		require.NoError(t, err)
		assert.Positive(t, count)
	})

	t.Run("empty chunk has none", func(t *testing.T) {
		t.Parallel()

		count, err := tc.CountTokens(context.Background(), "")

		require.NoError(t, err)
		assert.Zero(t, count)
	})

	t.Run("count grows with text", func(t *testing.T) {
		t.Parallel()

		one, err := tc.CountTokens(context.Background(), "bread")
		require.NoError(t, err)
		many, err := tc.CountTokens(context.Background(), strings.Repeat("fresh bread every day ", 20))
		require.NoError(t, err)

		assert.Greater(t, many, one)
	})

	t.Run("canceled context", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := tc.CountTokens(ctx, "bread")

		assert.ErrorIs(t, err, context.Canceled)
	})
}

func TestNewTokenCounter_UnknownModel(t *testing.T) {
	t.Parallel()

	_, err := gemini.NewTokenCounter("no-such-model")

	require.Error(t, err)
	assert.Equal(t, sitechat.EINVALID, sitechat.ErrorCode(err))
}
