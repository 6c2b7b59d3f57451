package sitechat_test

import (
	"testing"

	"github.com/harshydav08/sitechat"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig_IsValid(t *testing.T) {
	t.Parallel()

	cfg := sitechat.DefaultConfig()

	require.NoError(t, cfg.Validate())
	assert.Equal(t, 1000, cfg.Chunker.Size)
	assert.Equal(t, 200, cfg.Chunker.Overlap)
	assert.Equal(t, 5, cfg.Retrieval.TopK)
	assert.InDelta(t, 0.7, cfg.Retrieval.SimilarityThreshold, 1e-9)
	assert.Equal(t, 50, cfg.Crawler.MaxPages)
	assert.Equal(t, sitechat.DefaultCollection, cfg.Store.Collection)
}

func TestConfig_Validate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		mutate func(*sitechat.Config)
		want   string
	}{
		{"zero max pages", func(c *sitechat.Config) { c.Crawler.MaxPages = 0 }, "max_pages"},
		{"negative delay", func(c *sitechat.Config) { c.Crawler.Delay = -1 }, "delay"},
		{"overlap equals size", func(c *sitechat.Config) { c.Chunker.Overlap = c.Chunker.Size }, "overlap"},
		{"threshold above one", func(c *sitechat.Config) { c.Retrieval.SimilarityThreshold = 1.5 }, "similarity_threshold"},
		{"unknown fetcher", func(c *sitechat.Config) { c.Crawler.Fetcher = "curl" }, "fetcher"},
		{"unknown extractor", func(c *sitechat.Config) { c.Crawler.Extractor = "regex" }, "extractor"},
		{"extractive embeddings", func(c *sitechat.Config) { c.Embedding.Provider = sitechat.ProviderExtractive }, "embedding provider"},
		{"missing collection", func(c *sitechat.Config) { c.Store.Collection = "" }, "collection"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := sitechat.DefaultConfig()
			tt.mutate(cfg)

			err := cfg.Validate()

			require.Error(t, err)
			assert.Equal(t, sitechat.EINVALID, sitechat.ErrorCode(err))
			assert.Contains(t, sitechat.ErrorMessage(err), tt.want)
		})
	}
}
