// Package goquery implements boilerplate-stripping content extraction and
// link discovery over goquery documents.
package goquery

import (
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
	"github.com/harshydav08/sitechat"
	"golang.org/x/net/html"
)

var _ sitechat.Extractor = (*Extractor)(nil)

// Extraction thresholds, in characters.
const (
	minElementText   = 10
	minBlockText     = 10
	minFallbackBlock = 500
)

// Boilerplate rule table. Tag names match exactly; class and id tokens
// match as lowercase substrings of the attribute value.
var (
	noiseTags = "script, style, link, meta"

	unwantedTags = []string{
		"header", "footer", "nav", "aside", "advertisement", "ad", "sidebar",
		"menu", "breadcrumb", "social", "share", "comment", "related",
		"widget", "banner", "popup", "modal", "overlay",
	}

	unwantedClasses = []string{
		"header", "footer", "nav", "navigation", "sidebar", "aside", "menu",
		"breadcrumb", "breadcrumbs", "social", "share", "sharing", "comment",
		"comments", "related", "widget", "advertisement", "ad", "ads",
		"banner", "popup", "modal", "overlay", "promo", "promotion",
	}

	unwantedIDs = []string{
		"header", "footer", "nav", "navigation", "sidebar", "menu",
		"breadcrumb", "social", "share", "comments", "related", "widget",
		"advertisement", "ad", "banner", "popup", "modal",
	}

	// keptEmptyTags survive the minimal-content sweep.
	keptEmptyTags = map[string]bool{"img": true, "br": true, "hr": true}

	mainSelectors = []string{
		"main",
		`[role="main"]`,
		".main-content",
		".content",
		".post-content",
		".entry-content",
		".article-content",
		"article",
		".container .content",
		"#main-content",
		"#content",
	}

	blockSelector     = "p, h1, h2, h3, h4, h5, h6, li, div"
	containerSelector = "div, section, article"
)

// Extractor pulls the main text out of a page with a fixed rule table:
// noise and boilerplate elements are removed, the main content area is
// located, and its block-level text is collected.
type Extractor struct{}

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract returns the page title and the main text as blank-line separated
// blocks.
func (e *Extractor) Extract(rawHTML string, pageURL string) (*sitechat.ExtractResult, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(rawHTML))
	if err != nil {
		return nil, sitechat.Errorf(sitechat.EINVALID, "failed to parse HTML: %v", err)
	}

	title := extractTitle(doc, pageURL)

	removeBoilerplate(doc)

	root := findMainContent(doc)
	return &sitechat.ExtractResult{
		Title: title,
		Text:  collectText(root),
	}, nil
}

// extractTitle prefers <title>, then the first <h1>, then the last URL
// path segment, then the URL itself.
func extractTitle(doc *goquery.Document, pageURL string) string {
	if title := strings.TrimSpace(doc.Find("title").First().Text()); title != "" {
		return title
	}
	if h1 := strings.TrimSpace(doc.Find("h1").First().Text()); h1 != "" {
		return h1
	}
	return sitechat.TitleFromURL(pageURL)
}

func removeBoilerplate(doc *goquery.Document) {
	doc.Find(noiseTags).Remove()
	for _, n := range doc.Nodes {
		removeComments(n)
	}

	for _, tag := range unwantedTags {
		doc.Find(tag).Remove()
	}

	doc.Find("[class]").Each(func(_ int, sel *goquery.Selection) {
		class := strings.ToLower(strings.Join(strings.Fields(sel.AttrOr("class", "")), " "))
		if containsAny(class, unwantedClasses) {
			sel.Remove()
		}
	})

	doc.Find("[id]").Each(func(_ int, sel *goquery.Selection) {
		if containsAny(strings.ToLower(sel.AttrOr("id", "")), unwantedIDs) {
			sel.Remove()
		}
	})

	// Parents are visited before their children, so a parent keeps its
	// place even if all its children are removed afterwards.
	doc.Find("*").Each(func(_ int, sel *goquery.Selection) {
		if keptEmptyTags[goquery.NodeName(sel)] || sel.Children().Length() > 0 {
			return
		}
		if utf8.RuneCountInString(strippedText(sel, "")) < minElementText {
			sel.Remove()
		}
	})
}

func removeComments(n *html.Node) {
	for c := n.FirstChild; c != nil; {
		next := c.NextSibling
		if c.Type == html.CommentNode {
			n.RemoveChild(c)
		} else {
			removeComments(c)
		}
		c = next
	}
}

// findMainContent returns the first match of the content selectors, else
// the largest container holding over minFallbackBlock characters, else
// <body>, else the whole document.
func findMainContent(doc *goquery.Document) *goquery.Selection {
	for _, selector := range mainSelectors {
		if sel := doc.Find(selector).First(); sel.Length() > 0 {
			return sel
		}
	}

	var largest *goquery.Selection
	var largestLen int
	doc.Find(containerSelector).Each(func(_ int, sel *goquery.Selection) {
		if n := utf8.RuneCountInString(strippedText(sel, "")); largest == nil || n > largestLen {
			largest, largestLen = sel, n
		}
	})
	if largest != nil && largestLen > minFallbackBlock {
		return largest
	}

	if body := doc.Find("body").First(); body.Length() > 0 {
		return body
	}
	return doc.Selection
}

// collectText joins the text of each substantial block element under root
// with blank lines. Identical blocks, such as a div wrapping a single
// paragraph, appear once. Without any qualifying block the whole root text
// is returned.
func collectText(root *goquery.Selection) string {
	var blocks []string
	seen := make(map[string]bool)
	root.Find(blockSelector).Each(func(_ int, sel *goquery.Selection) {
		text := strippedText(sel, " ")
		if utf8.RuneCountInString(text) <= minBlockText || seen[text] {
			return
		}
		seen[text] = true
		blocks = append(blocks, text)
	})

	if len(blocks) == 0 {
		return strippedText(root, " ")
	}
	return strings.Join(blocks, "\n\n")
}

// strippedText concatenates the trimmed, non-empty text nodes under sel
// using sep.
func strippedText(sel *goquery.Selection, sep string) string {
	var parts []string
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			if t := strings.TrimSpace(n.Data); t != "" {
				parts = append(parts, t)
			}
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	for _, n := range sel.Nodes {
		walk(n)
	}
	return strings.Join(parts, sep)
}

func containsAny(s string, tokens []string) bool {
	for _, t := range tokens {
		if strings.Contains(s, t) {
			return true
		}
	}
	return false
}
