// Package crawl walks a website breadth-first and collects the readable
// text of each same-domain page.
package crawl

import (
	"context"
	"log/slog"
	"net/url"
	"time"

	"github.com/harshydav08/sitechat"
)

// Compile-time interface verification.
var _ sitechat.Crawler = (*Crawler)(nil)

// Crawl defaults used when the corresponding Crawler field is zero.
const (
	DefaultMaxPages = 50
	DefaultMaxLinks = 10
)

// Frontier sizing for deduplication.
const (
	frontierExpectedURLs      = 10000
	frontierFalsePositiveRate = 0.01
)

// Crawler fetches pages sequentially, starting from one URL and following
// same-domain content links in first-in first-out order.
type Crawler struct {
	Fetcher   sitechat.Fetcher
	Extractor sitechat.Extractor
	Links     sitechat.LinkSelector

	// RateLimiter paces fetches. Optional.
	RateLimiter sitechat.DomainLimiter

	// Sitemaps seeds the frontier with sitemap URLs after the start URL.
	// Optional.
	Sitemaps sitechat.SitemapService

	// Logger receives per-page failures. Defaults to discarding output.
	Logger *slog.Logger

	MaxPages    int
	MaxLinks    int
	RetryDelays []time.Duration
}

// Crawl collects up to MaxPages pages reachable from startURL. Pages that
// fail to fetch or extract are logged and skipped. Pages with no text, or
// with text identical to an earlier page, are skipped too.
//
// The returned error is non-nil only when startURL is unusable or ctx is
// canceled; in the latter case the pages collected so far are returned.
func (c *Crawler) Crawl(ctx context.Context, startURL string, progress sitechat.ProgressFunc) ([]*sitechat.CrawledPage, error) {
	start, err := url.Parse(startURL)
	if err != nil || start.Host == "" {
		return nil, sitechat.Errorf(sitechat.EINVALID, "invalid start URL %q", startURL)
	}

	logger := c.logger()
	maxPages := c.MaxPages
	if maxPages <= 0 {
		maxPages = DefaultMaxPages
	}

	frontier := NewFrontier(frontierExpectedURLs, frontierFalsePositiveRate)
	frontier.Push(startURL)
	if c.Sitemaps != nil {
		c.seedFromSitemap(ctx, frontier, startURL)
	}

	notify(progress, sitechat.ProgressEvent{Type: sitechat.ProgressStarted, URL: startURL})

	var pages []*sitechat.CrawledPage
	hashes := make(map[string]struct{})
	finish := func(err error) ([]*sitechat.CrawledPage, error) {
		notify(progress, sitechat.ProgressEvent{Type: sitechat.ProgressFinished, Pages: len(pages), Error: err})
		return pages, err
	}

	for len(pages) < maxPages {
		if err := ctx.Err(); err != nil {
			return finish(err)
		}

		pageURL, ok := frontier.Pop()
		if !ok {
			break
		}
		if !frontier.Visit(pageURL) {
			continue
		}

		page, html, err := c.crawlPage(ctx, pageURL)
		if err != nil {
			if ctx.Err() != nil {
				return finish(ctx.Err())
			}
			logger.Warn("page failed", "url", pageURL, "err", err)
			notify(progress, sitechat.ProgressEvent{Type: sitechat.ProgressFailed, URL: pageURL, Pages: len(pages), Error: err})
			continue
		}
		if page == nil {
			logger.Debug("page empty", "url", pageURL)
			notify(progress, sitechat.ProgressEvent{Type: sitechat.ProgressSkipped, URL: pageURL, Pages: len(pages)})
			continue
		}

		hash := ComputeHash(page.Content)
		if _, dup := hashes[hash]; dup {
			logger.Debug("page duplicate", "url", pageURL)
			notify(progress, sitechat.ProgressEvent{Type: sitechat.ProgressSkipped, URL: pageURL, Pages: len(pages)})
			continue
		}
		hashes[hash] = struct{}{}

		pages = append(pages, page)
		notify(progress, sitechat.ProgressEvent{Type: sitechat.ProgressCompleted, URL: pageURL, Pages: len(pages)})

		if len(pages) < maxPages {
			c.enqueueLinks(frontier, html, pageURL, startURL)
		}
	}

	return finish(nil)
}

// crawlPage fetches and extracts one page. A nil page with a nil error
// means the page had no usable text.
func (c *Crawler) crawlPage(ctx context.Context, pageURL string) (*sitechat.CrawledPage, string, error) {
	u, err := url.Parse(pageURL)
	if err != nil {
		return nil, "", err
	}

	if c.RateLimiter != nil {
		if err := c.RateLimiter.Wait(ctx, u.Host); err != nil {
			return nil, "", err
		}
	}

	onRetry := func(url string, attempt int, err error) {
		c.logger().Info("retrying fetch", "url", url, "attempt", attempt, "err", err)
	}
	html, err := FetchWithRetry(ctx, pageURL, c.Fetcher.Fetch, onRetry, c.RetryDelays)
	if err != nil {
		return nil, "", err
	}

	extracted, err := c.Extractor.Extract(html, pageURL)
	if err != nil {
		return nil, "", err
	}

	content := CleanText(extracted.Text)
	if content == "" {
		return nil, html, nil
	}

	return &sitechat.CrawledPage{
		URL:       pageURL,
		Title:     extracted.Title,
		Content:   content,
		WordCount: sitechat.CountWords(content),
	}, html, nil
}

// enqueueLinks pushes up to MaxLinks discovered links from a page.
func (c *Crawler) enqueueLinks(frontier *Frontier, html, pageURL, startURL string) {
	if c.Links == nil {
		return
	}

	links, err := c.Links.ExtractLinks(html, pageURL)
	if err != nil {
		c.logger().Warn("link discovery failed", "url", pageURL, "err", err)
		return
	}

	maxLinks := c.MaxLinks
	if maxLinks <= 0 {
		maxLinks = DefaultMaxLinks
	}

	var candidates []string
	for _, link := range links {
		if sitechat.SameDomain(link.URL, startURL) {
			candidates = append(candidates, link.URL)
		}
	}
	if len(candidates) > maxLinks {
		candidates = candidates[:maxLinks]
	}

	for _, u := range candidates {
		frontier.Push(u)
	}
}

func (c *Crawler) seedFromSitemap(ctx context.Context, frontier *Frontier, startURL string) {
	urls, err := c.Sitemaps.DiscoverURLs(ctx, startURL)
	if err != nil {
		c.logger().Warn("sitemap discovery failed", "url", startURL, "err", err)
		return
	}
	for _, u := range urls {
		if sitechat.SameDomain(u, startURL) {
			frontier.Push(u)
		}
	}
}

func (c *Crawler) logger() *slog.Logger {
	if c.Logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return c.Logger
}

func notify(progress sitechat.ProgressFunc, event sitechat.ProgressEvent) {
	if progress != nil {
		progress(event)
	}
}
