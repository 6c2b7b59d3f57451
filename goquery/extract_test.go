package goquery_test

import (
	"strings"
	"testing"

	"github.com/harshydav08/sitechat"
	"github.com/harshydav08/sitechat/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const boilerplatePage = `<!DOCTYPE html>
<html>
<head>
<title>Test Page</title>
<script>var tracking = "script text must go";</script>
<style>body { color: red; }</style>
</head>
<body>
<header><p>Site header navigation text</p></header>
<nav><a href="/a">Home link in the nav</a></nav>
<div class="sidebar-widget">Sidebar content that is long enough</div>
<div id="Footer-Area">Footer area content from the id rule</div>
<main>
<h1>Main heading of the page</h1>
<p>This is the first paragraph of real content.</p>
<!-- a comment that should vanish -->
<p>Short</p>
<p>This is the second paragraph of real content.</p>
</main>
<footer>Copyright footer text here</footer>
</body>
</html>`

func TestExtractor_Extract(t *testing.T) {
	t.Parallel()

	t.Run("implements sitechat.Extractor", func(t *testing.T) {
		t.Parallel()
		var _ sitechat.Extractor = goquery.NewExtractor()
	})

	t.Run("keeps main content blocks separated by blank lines", func(t *testing.T) {
		t.Parallel()

		result, err := goquery.NewExtractor().Extract(boilerplatePage, "https://example.com/page")

		require.NoError(t, err)
		assert.Equal(t, "Test Page", result.Title)
		assert.Equal(t,
			"Main heading of the page\n\nThis is the first paragraph of real content.\n\nThis is the second paragraph of real content.",
			result.Text)
	})

	t.Run("never returns boilerplate text", func(t *testing.T) {
		t.Parallel()

		result, err := goquery.NewExtractor().Extract(boilerplatePage, "https://example.com/page")

		require.NoError(t, err)
		for _, banned := range []string{
			"script text", "color: red", "Site header", "Home link", "Sidebar content",
			"Footer area", "Copyright footer", "comment that should vanish", "Short",
		} {
			assert.NotContains(t, result.Text, banned)
		}
	})

	t.Run("removes elements by class and id substrings case-insensitively", func(t *testing.T) {
		t.Parallel()

		html := `<html><body><article>
<p>Article paragraph that should stay in place.</p>
<div class="box Promo-Box">Buy now, this great offer ends today</div>
<section id="related-posts"><p>Another story you could read next</p></section>
</article></body></html>`

		result, err := goquery.NewExtractor().Extract(html, "https://example.com/a")

		require.NoError(t, err)
		assert.Equal(t, "Article paragraph that should stay in place.", result.Text)
	})

	t.Run("falls back to the largest container over 500 characters", func(t *testing.T) {
		t.Parallel()

		long := strings.Repeat("Long body sentence for the fallback. ", 20)
		html := `<html><body>
<div class="intro"><p>Small intro block with some words</p></div>
<section class="story"><p>` + long + `</p></section>
</body></html>`

		result, err := goquery.NewExtractor().Extract(html, "https://example.com/a")

		require.NoError(t, err)
		assert.Equal(t, strings.TrimSpace(long), result.Text)
		assert.NotContains(t, result.Text, "Small intro")
	})

	t.Run("falls back to body when no container is large enough", func(t *testing.T) {
		t.Parallel()

		html := `<html><body>
<div class="intro"><p>Small intro block with some words</p></div>
<p>Loose paragraph under the body element.</p>
</body></html>`

		result, err := goquery.NewExtractor().Extract(html, "https://example.com/a")

		require.NoError(t, err)
		assert.Equal(t, "Small intro block with some words\n\nLoose paragraph under the body element.", result.Text)
	})

	t.Run("uses the whole root text when no block qualifies", func(t *testing.T) {
		t.Parallel()

		html := `<html><body><span>Inline text only here</span> <span>and here too</span></body></html>`

		result, err := goquery.NewExtractor().Extract(html, "https://example.com/a")

		require.NoError(t, err)
		assert.Equal(t, "Inline text only here and here too", result.Text)
	})

	t.Run("collapses a wrapper div with identical text", func(t *testing.T) {
		t.Parallel()

		html := `<html><body><main><div><p>Only paragraph inside a div wrapper.</p></div></main></body></html>`

		result, err := goquery.NewExtractor().Extract(html, "https://example.com/a")

		require.NoError(t, err)
		assert.Equal(t, "Only paragraph inside a div wrapper.", result.Text)
	})

	t.Run("returns empty text for a page of boilerplate", func(t *testing.T) {
		t.Parallel()

		html := `<html><body><nav>Navigation only page</nav><footer>Footer only</footer></body></html>`

		result, err := goquery.NewExtractor().Extract(html, "https://example.com/a")

		require.NoError(t, err)
		assert.Empty(t, result.Text)
	})
}

func TestExtractor_Extract_title(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		html    string
		pageURL string
		want    string
	}{
		{
			name:    "title element",
			html:    `<html><head><title>  Page Title  </title></head><body><h1>Heading</h1></body></html>`,
			pageURL: "https://example.com/x",
			want:    "Page Title",
		},
		{
			name:    "first h1 when title missing",
			html:    `<html><body><h1>First Heading</h1><h1>Second</h1></body></html>`,
			pageURL: "https://example.com/x",
			want:    "First Heading",
		},
		{
			name:    "first h1 when title empty",
			html:    `<html><head><title> </title></head><body><h1>Heading</h1></body></html>`,
			pageURL: "https://example.com/x",
			want:    "Heading",
		},
		{
			name:    "last path segment",
			html:    `<html><body><p>No headings here at all.</p></body></html>`,
			pageURL: "https://example.com/docs/page.html",
			want:    "page.html",
		},
		{
			name:    "URL when path ends with slash",
			html:    `<html><body><p>No headings here at all.</p></body></html>`,
			pageURL: "https://example.com/docs/",
			want:    "https://example.com/docs/",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			result, err := goquery.NewExtractor().Extract(tt.html, tt.pageURL)

			require.NoError(t, err)
			assert.Equal(t, tt.want, result.Title)
		})
	}
}
