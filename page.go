package sitechat

import "context"

// CrawledPage is the cleaned text of one successfully fetched page.
// It lives for the duration of a crawl and is discarded after chunking.
type CrawledPage struct {
	URL       string `json:"url"`
	Title     string `json:"title"`
	Content   string `json:"content"`
	WordCount int    `json:"wordCount"`
}

// ProgressType indicates the type of crawl progress event.
type ProgressType int

// Crawl progress event types.
const (
	ProgressStarted ProgressType = iota
	ProgressCompleted
	ProgressSkipped
	ProgressFailed
	ProgressFinished
)

// ProgressEvent reports progress during a crawl.
type ProgressEvent struct {
	Type  ProgressType
	URL   string
	Pages int // pages collected so far
	Error error
}

// ProgressFunc is a callback for reporting crawl progress.
type ProgressFunc func(event ProgressEvent)

// Crawler collects the pages of a site starting from a validated URL.
type Crawler interface {
	// Crawl walks same-domain links breadth-first from startURL.
	// Individual page failures are skipped, never returned. An empty
	// result means nothing could be extracted.
	Crawl(ctx context.Context, startURL string, progress ProgressFunc) ([]*CrawledPage, error)
}

// PageWriter persists crawled pages for inspection.
type PageWriter interface {
	WritePages(ctx context.Context, pages []*CrawledPage) error
}
