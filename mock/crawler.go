package mock

import (
	"context"

	"github.com/harshydav08/sitechat"
)

var _ sitechat.Crawler = (*Crawler)(nil)

// Crawler is a mock implementation of sitechat.Crawler.
type Crawler struct {
	CrawlFn func(ctx context.Context, startURL string, progress sitechat.ProgressFunc) ([]*sitechat.CrawledPage, error)
}

func (c *Crawler) Crawl(ctx context.Context, startURL string, progress sitechat.ProgressFunc) ([]*sitechat.CrawledPage, error) {
	return c.CrawlFn(ctx, startURL, progress)
}

var _ sitechat.Chunker = (*Chunker)(nil)

// Chunker is a mock implementation of sitechat.Chunker.
type Chunker struct {
	CleanFn func(text string) string
	ChunkFn func(text string, meta sitechat.PageMetadata) []*sitechat.TextChunk
}

func (c *Chunker) Clean(text string) string {
	return c.CleanFn(text)
}

func (c *Chunker) Chunk(text string, meta sitechat.PageMetadata) []*sitechat.TextChunk {
	return c.ChunkFn(text, meta)
}
