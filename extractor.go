package sitechat

import (
	"net/url"
	"strings"
)

// ExtractResult holds the readable content of an HTML page.
type ExtractResult struct {
	// Title is the page title.
	Title string

	// Text is the main content as plain text. Paragraph-level blocks are
	// separated by blank lines; boilerplate has been removed.
	Text string
}

// Extractor extracts main content from HTML pages, removing boilerplate.
type Extractor interface {
	// Extract processes raw HTML fetched from pageURL.
	// The URL is used for title fallback.
	Extract(html string, pageURL string) (*ExtractResult, error)
}

// Converter converts an HTML fragment into readable text.
type Converter interface {
	Convert(html string) (string, error)
}

// TitleFromURL derives a fallback page title: the last path segment of
// pageURL, or pageURL itself when that segment is empty.
func TitleFromURL(pageURL string) string {
	u, err := url.Parse(pageURL)
	if err != nil {
		return pageURL
	}
	if i := strings.LastIndex(u.Path, "/"); i >= 0 && i < len(u.Path)-1 {
		return u.Path[i+1:]
	}
	if u.Path != "" && !strings.Contains(u.Path, "/") {
		return u.Path
	}
	return pageURL
}
