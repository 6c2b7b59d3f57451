package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/harshydav08/sitechat"
)

// Ensure LoggingFetcher implements sitechat.Fetcher.
var _ sitechat.Fetcher = (*LoggingFetcher)(nil)

// LoggingFetcher wraps a Fetcher with debug logging.
type LoggingFetcher struct {
	next   sitechat.Fetcher
	logger *slog.Logger
}

// NewLoggingFetcher creates a new LoggingFetcher.
func NewLoggingFetcher(next sitechat.Fetcher, logger *slog.Logger) *LoggingFetcher {
	return &LoggingFetcher{next: next, logger: logger}
}

// Fetch logs the URL being fetched and delegates to the wrapped fetcher.
func (f *LoggingFetcher) Fetch(ctx context.Context, url string) (html string, err error) {
	defer func(begin time.Time) {
		f.logger.Info("fetch",
			"url", url,
			"bytes", len(html),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return f.next.Fetch(ctx, url)
}

// Close delegates to the wrapped fetcher.
func (f *LoggingFetcher) Close() error {
	return f.next.Close()
}

// Ensure LoggingLinkSelector implements sitechat.LinkSelector.
var _ sitechat.LinkSelector = (*LoggingLinkSelector)(nil)

// LoggingLinkSelector logs how many links each page yields.
type LoggingLinkSelector struct {
	next   sitechat.LinkSelector
	logger *slog.Logger
}

// NewLoggingLinkSelector creates a new LoggingLinkSelector.
func NewLoggingLinkSelector(next sitechat.LinkSelector, logger *slog.Logger) *LoggingLinkSelector {
	return &LoggingLinkSelector{next: next, logger: logger}
}

// ExtractLinks delegates to the wrapped selector.
func (s *LoggingLinkSelector) ExtractLinks(html string, baseURL string) (links []sitechat.DiscoveredLink, err error) {
	defer func() {
		s.logger.Debug("extract links",
			"url", baseURL,
			"count", len(links),
			"err", err,
		)
	}()
	return s.next.ExtractLinks(html, baseURL)
}
