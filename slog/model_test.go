package slog_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/harshydav08/sitechat"
	"github.com/harshydav08/sitechat/mock"
	sitechatslog "github.com/harshydav08/sitechat/slog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoggingEmbedder_Embed(t *testing.T) {
	t.Parallel()

	t.Run("logs count and dimensions", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		inner := &mock.Embedder{
			EmbedFn: func(_ context.Context, texts []string) ([][]float32, error) {
				out := make([][]float32, len(texts))
				for i := range out {
					out[i] = []float32{0.1, 0.2, 0.3}
				}
				return out, nil
			},
			ModelFn: func() string { return "all-minilm" },
		}

		embedder := sitechatslog.NewLoggingEmbedder(inner, logger)
		vectors, err := embedder.Embed(context.Background(), []string{"a", "b"})

		require.NoError(t, err)
		assert.Len(t, vectors, 2)
		assert.Equal(t, "all-minilm", embedder.Model())
		output := buf.String()
		assert.Contains(t, output, "msg=embed")
		assert.Contains(t, output, "model=all-minilm")
		assert.Contains(t, output, "count=2")
		assert.Contains(t, output, "dimensions=3")
	})

	t.Run("logs error on failure", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		inner := &mock.Embedder{
			EmbedFn: func(context.Context, []string) ([][]float32, error) {
				return nil, errors.New("model not found")
			},
		}

		_, err := sitechatslog.NewLoggingEmbedder(inner, logger).Embed(context.Background(), []string{"a"})

		require.Error(t, err)
		output := buf.String()
		assert.Contains(t, output, "dimensions=0")
		assert.Contains(t, output, "err=\"model not found\"")
	})
}

func TestLoggingGenerator_Generate(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))
	var gotOpts sitechat.GenerateOptions
	inner := &mock.Generator{
		GenerateFn: func(_ context.Context, _ string, opts sitechat.GenerateOptions) (string, error) {
			gotOpts = opts
			return "hello", nil
		},
	}

	gen := sitechatslog.NewLoggingGenerator(inner, logger)
	out, err := gen.Generate(context.Background(), "prompt", sitechat.GenerateOptions{MaxTokens: 10})

	require.NoError(t, err)
	assert.Equal(t, "hello", out)
	assert.Equal(t, 10, gotOpts.MaxTokens)
	assert.Equal(t, "mock-generator", gen.Model())
	output := buf.String()
	assert.Contains(t, output, "msg=generate")
	assert.Contains(t, output, "model=mock-generator")
	assert.Contains(t, output, "prompt_bytes=6")
	assert.Contains(t, output, "bytes=5")
}
