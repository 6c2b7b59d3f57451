package sitechat

import (
	"context"
	"net/url"
	"strings"
)

// DiscoveredLink is a same-domain URL found on a crawled page.
type DiscoveredLink struct {
	URL  string
	Text string
}

// LinkSelector discovers crawlable links in a page.
type LinkSelector interface {
	// ExtractLinks parses HTML and returns same-domain content links.
	// The baseURL is used to resolve relative URLs.
	ExtractLinks(html string, baseURL string) ([]DiscoveredLink, error)
}

// URLFrontier is the queue of not-yet-visited URLs during a crawl.
type URLFrontier interface {
	// Push appends a URL to the queue.
	// Returns false if the URL has already been queued or visited.
	Push(url string) bool

	// Pop removes and returns the oldest queued URL.
	// Returns false if the frontier is empty.
	Pop() (string, bool)

	// Visit marks a URL visited. Returns false if it already was.
	Visit(url string) bool

	// Len returns the number of URLs in the queue.
	Len() int

	// Seen returns true if the URL has been visited or queued.
	Seen(url string) bool
}

// DomainLimiter paces requests per domain.
type DomainLimiter interface {
	// Wait blocks until a request to the domain is allowed.
	// Returns an error if the context is canceled.
	Wait(ctx context.Context, domain string) error
}

// SitemapService discovers URLs from website sitemaps.
type SitemapService interface {
	// DiscoverURLs finds all URLs from a site's sitemap.
	// It first checks robots.txt for sitemap directives, then falls back
	// to /sitemap.xml. Sitemap indexes are resolved recursively.
	DiscoverURLs(ctx context.Context, baseURL string) ([]string, error)
}

// SameDomain reports whether two URLs share a host, compared
// case-insensitively. Malformed input yields false.
func SameDomain(a, b string) bool {
	ua, err := url.Parse(a)
	if err != nil {
		return false
	}
	ub, err := url.Parse(b)
	if err != nil {
		return false
	}
	if ua.Host == "" || ub.Host == "" {
		return false
	}
	return strings.EqualFold(ua.Host, ub.Host)
}
