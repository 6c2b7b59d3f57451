// Package readability extracts main page content with go-readability.
package readability

import (
	"strings"

	"github.com/go-shiori/go-readability"
	"github.com/harshydav08/sitechat"
)

// Ensure Extractor implements sitechat.Extractor at compile time.
var _ sitechat.Extractor = (*Extractor)(nil)

// Extractor wraps go-readability to extract main content from HTML.
type Extractor struct {
	conv sitechat.Converter
}

// NewExtractor creates a new Extractor that renders article HTML to text
// with conv.
func NewExtractor(conv sitechat.Converter) *Extractor {
	return &Extractor{conv: conv}
}

// Extract processes raw HTML and returns the article title and text.
func (e *Extractor) Extract(rawHTML string, pageURL string) (*sitechat.ExtractResult, error) {
	if strings.TrimSpace(rawHTML) == "" {
		return nil, sitechat.Errorf(sitechat.EINVALID, "empty HTML input")
	}

	article, err := readability.FromReader(strings.NewReader(rawHTML), nil)
	if err != nil {
		return nil, err
	}

	title := strings.TrimSpace(article.Title)
	if title == "" {
		title = sitechat.TitleFromURL(pageURL)
	}

	var text string
	if strings.TrimSpace(article.Content) != "" {
		text, err = e.conv.Convert(article.Content)
		if err != nil {
			return nil, err
		}
	}

	return &sitechat.ExtractResult{
		Title: title,
		Text:  text,
	}, nil
}
