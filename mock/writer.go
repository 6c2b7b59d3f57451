package mock

import (
	"context"

	"github.com/harshydav08/sitechat"
)

var _ sitechat.PageWriter = (*PageWriter)(nil)

// PageWriter is a mock implementation of sitechat.PageWriter.
type PageWriter struct {
	WritePagesFn func(ctx context.Context, pages []*sitechat.CrawledPage) error
}

func (w *PageWriter) WritePages(ctx context.Context, pages []*sitechat.CrawledPage) error {
	return w.WritePagesFn(ctx, pages)
}
