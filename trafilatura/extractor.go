// Package trafilatura extracts main page content with go-trafilatura.
package trafilatura

import (
	"bytes"
	"strings"

	"github.com/harshydav08/sitechat"
	"github.com/markusmobius/go-trafilatura"
	"golang.org/x/net/html"
)

// Ensure Extractor implements sitechat.Extractor at compile time.
var _ sitechat.Extractor = (*Extractor)(nil)

// Extractor wraps go-trafilatura to isolate the main content of a page.
// The content node is rendered back to HTML and handed to a Converter
// for plain text.
type Extractor struct {
	conv sitechat.Converter
}

// NewExtractor creates a new Extractor.
func NewExtractor(conv sitechat.Converter) *Extractor {
	return &Extractor{conv: conv}
}

// Extract processes raw HTML and returns the page title and main text.
func (e *Extractor) Extract(rawHTML string, pageURL string) (*sitechat.ExtractResult, error) {
	if strings.TrimSpace(rawHTML) == "" {
		return nil, sitechat.Errorf(sitechat.EINVALID, "empty HTML input")
	}

	opts := trafilatura.Options{
		EnableFallback: true,
	}

	result, err := trafilatura.Extract(strings.NewReader(rawHTML), opts)
	if err != nil {
		return nil, err
	}

	title := strings.TrimSpace(result.Metadata.Title)
	if title == "" {
		title = sitechat.TitleFromURL(pageURL)
	}

	var text string
	if result.ContentNode != nil {
		contentHTML, err := renderNode(result.ContentNode)
		if err != nil {
			return nil, err
		}
		text, err = e.conv.Convert(contentHTML)
		if err != nil {
			return nil, err
		}
	}

	return &sitechat.ExtractResult{
		Title: title,
		Text:  text,
	}, nil
}

func renderNode(n *html.Node) (string, error) {
	var buf bytes.Buffer
	if err := html.Render(&buf, n); err != nil {
		return "", err
	}
	return buf.String(), nil
}
