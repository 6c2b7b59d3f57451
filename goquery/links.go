package goquery

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/harshydav08/sitechat"
)

var _ sitechat.LinkSelector = (*LinkSelector)(nil)

// skipPatterns mark links that do not lead to crawlable content. They are
// matched as substrings of the lowercased href and of the link text.
var skipPatterns = []string{
	".pdf", ".doc", ".docx", ".xls", ".xlsx", ".ppt", ".pptx",
	".jpg", ".jpeg", ".png", ".gif", ".svg", ".ico",
	".zip", ".rar", ".tar", ".gz",
	"/search", "/login", "/register", "/contact", "/about/contact",
	"#", "javascript:", "mailto:", "tel:",
	"download", "subscribe", "newsletter",
}

// LinkSelector discovers same-host content links from every anchor on a
// page.
type LinkSelector struct{}

// NewLinkSelector creates a new LinkSelector.
func NewLinkSelector() *LinkSelector {
	return &LinkSelector{}
}

// ExtractLinks returns the page's same-host content links in document
// order. Links are resolved against baseURL, deduplicated, and never point
// back at baseURL itself.
func (s *LinkSelector) ExtractLinks(html string, baseURL string) ([]sitechat.DiscoveredLink, error) {
	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, sitechat.Errorf(sitechat.EINVALID, "invalid base URL: %v", err)
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, sitechat.Errorf(sitechat.EINVALID, "failed to parse HTML: %v", err)
	}

	seen := make(map[string]bool)
	var links []sitechat.DiscoveredLink
	doc.Find("a[href]").Each(func(_ int, sel *goquery.Selection) {
		href := strings.TrimSpace(sel.AttrOr("href", ""))
		if href == "" {
			return
		}
		text := strings.Join(strings.Fields(sel.Text()), " ")
		if !isContentLink(href, text) {
			return
		}

		resolved := resolveURL(base, href)
		if resolved == "" || seen[resolved] || !isSameHost(base, resolved) {
			return
		}
		seen[resolved] = true
		links = append(links, sitechat.DiscoveredLink{URL: resolved, Text: text})
	})

	return links, nil
}

// isContentLink reports whether neither the href nor the anchor text
// matches a skip pattern.
func isContentLink(href, text string) bool {
	href = strings.ToLower(href)
	text = strings.ToLower(text)
	for _, p := range skipPatterns {
		if strings.Contains(href, p) || strings.Contains(text, p) {
			return false
		}
	}
	return true
}

// resolveURL resolves a relative URL against a base URL.
// Returns empty string if the href cannot be parsed, is not http(s), or
// resolves to the base URL itself.
func resolveURL(base *url.URL, href string) string {
	ref, err := url.Parse(href)
	if err != nil {
		return ""
	}
	resolved := base.ResolveReference(ref)
	if resolved.Scheme != "http" && resolved.Scheme != "https" {
		return ""
	}
	resolved.Fragment = ""

	result := resolved.String()
	self := *base
	self.Fragment = ""
	if result == self.String() {
		return ""
	}
	return result
}

// isSameHost checks if the resolved URL has the same host as the base URL,
// ignoring case. Subdomains are considered different hosts.
func isSameHost(base *url.URL, resolved string) bool {
	u, err := url.Parse(resolved)
	if err != nil {
		return false
	}
	return strings.EqualFold(u.Host, base.Host)
}
