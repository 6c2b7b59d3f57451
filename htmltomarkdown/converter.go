// Package htmltomarkdown turns extracted HTML fragments into paragraph
// text by way of Markdown.
package htmltomarkdown

import (
	"regexp"
	"strings"

	"github.com/JohannesKaufmann/html-to-markdown/v2/converter"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/base"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/commonmark"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/table"
	"github.com/harshydav08/sitechat"
)

// Ensure Converter implements sitechat.Converter at compile time.
var _ sitechat.Converter = (*Converter)(nil)

var (
	mdImage      = regexp.MustCompile(`!\[([^\]]*)\]\([^)]*\)`)
	mdLink       = regexp.MustCompile(`\[([^\]]*)\]\([^)]*\)`)
	mdHeading    = regexp.MustCompile(`(?m)^#{1,6}[ \t]+`)
	mdQuote      = regexp.MustCompile(`(?m)^>[ \t]?`)
	mdBullet     = regexp.MustCompile(`(?m)^[ \t]*[-*+][ \t]+`)
	mdFence      = regexp.MustCompile("(?m)^```.*$")
	mdTableRule  = regexp.MustCompile(`(?m)^\|?[ \t]*:?-{3,}:?[ \t]*(\|[ \t]*:?-{3,}:?[ \t]*)*\|?[ \t]*$`)
	mdEmphasis   = regexp.MustCompile(`\*\*|__|~~`)
	mdBlankLines = regexp.MustCompile(`\n{3,}`)
)

// Converter renders HTML as Markdown with html-to-markdown, then strips
// the Markdown syntax so that only readable text remains. Block structure
// survives as blank-line separated paragraphs.
type Converter struct {
	conv *converter.Converter
}

// NewConverter creates a new Converter.
func NewConverter() *Converter {
	conv := converter.NewConverter(
		converter.WithPlugins(
			base.NewBasePlugin(),
			commonmark.NewCommonmarkPlugin(),
			table.NewTablePlugin(),
		),
	)
	return &Converter{conv: conv}
}

// Markdown converts HTML into Markdown.
func (c *Converter) Markdown(html string) (string, error) {
	if strings.TrimSpace(html) == "" {
		return "", sitechat.Errorf(sitechat.EINVALID, "empty HTML input")
	}
	return c.conv.ConvertString(html)
}

// Convert converts HTML into plain paragraph text.
func (c *Converter) Convert(html string) (string, error) {
	md, err := c.Markdown(html)
	if err != nil {
		return "", err
	}
	return StripMarkdown(md), nil
}

// StripMarkdown removes Markdown markup, keeping link and image text.
func StripMarkdown(md string) string {
	text := mdImage.ReplaceAllString(md, "$1")
	text = mdLink.ReplaceAllString(text, "$1")
	text = mdFence.ReplaceAllString(text, "")
	text = mdTableRule.ReplaceAllString(text, "")
	text = mdHeading.ReplaceAllString(text, "")
	text = mdQuote.ReplaceAllString(text, "")
	text = mdBullet.ReplaceAllString(text, "")
	text = mdEmphasis.ReplaceAllString(text, "")
	text = strings.ReplaceAll(text, "`", "")

	lines := strings.Split(text, "\n")
	for i, line := range lines {
		line = strings.TrimSpace(line)
		if strings.HasPrefix(line, "|") {
			line = strings.TrimSpace(strings.Join(strings.Fields(strings.ReplaceAll(line, "|", " ")), " "))
		}
		lines[i] = line
	}
	text = strings.Join(lines, "\n")
	text = mdBlankLines.ReplaceAllString(text, "\n\n")
	return strings.TrimSpace(text)
}
