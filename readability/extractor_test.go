package readability_test

import (
	"testing"

	"github.com/harshydav08/sitechat"
	"github.com/harshydav08/sitechat/mock"
	"github.com/harshydav08/sitechat/readability"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const pageURL = "https://example.com/guide/setup"

// newExtractor returns an Extractor whose converter hands back the
// article HTML unchanged, so tests can inspect the extracted structure.
func newExtractor() *readability.Extractor {
	return readability.NewExtractor(&mock.Converter{
		ConvertFn: func(html string) (string, error) {
			return html, nil
		},
	})
}

func TestExtractor_RejectsEmptyInput(t *testing.T) {
	t.Parallel()

	_, err := newExtractor().Extract("", pageURL)

	require.Error(t, err)
	assert.Equal(t, sitechat.EINVALID, sitechat.ErrorCode(err))
}

func TestExtractor_ExtractsTitle(t *testing.T) {
	t.Parallel()

	html := `<!DOCTYPE html>
<html>
<head><title>Page Title</title></head>
<body><article><p>Content</p></article></body>
</html>`

	result, err := newExtractor().Extract(html, pageURL)

	require.NoError(t, err)
	assert.Equal(t, "Page Title", result.Title)
}

func TestExtractor_FallsBackToURLTitle(t *testing.T) {
	t.Parallel()

	html := `<html><body><article><p>This is the main article content that should be preserved in the output.</p></article></body></html>`

	result, err := newExtractor().Extract(html, pageURL)

	require.NoError(t, err)
	assert.Equal(t, "setup", result.Title)
}

func TestExtractor_RemovesNavigation(t *testing.T) {
	t.Parallel()

	html := `<!DOCTYPE html>
<html>
<head><title>Test</title></head>
<body>
<nav><a href="/home">Home Nav Link</a><a href="/about">About Nav Link</a></nav>
<article><p>This is the main article content that should be preserved in the output.</p></article>
</body>
</html>`

	result, err := newExtractor().Extract(html, pageURL)

	require.NoError(t, err)
	assert.NotContains(t, result.Text, "Home Nav Link")
	assert.NotContains(t, result.Text, "About Nav Link")
}

func TestExtractor_RemovesFooter(t *testing.T) {
	t.Parallel()

	html := `<!DOCTYPE html>
<html>
<head><title>Test</title></head>
<body>
<article><p>This is the main article content that should be preserved in the output.</p></article>
<footer><p>Footer copyright text 2024</p></footer>
</body>
</html>`

	result, err := newExtractor().Extract(html, pageURL)

	require.NoError(t, err)
	assert.NotContains(t, result.Text, "Footer copyright text")
}

func TestExtractor_RemovesSidebar(t *testing.T) {
	t.Parallel()

	html := `<!DOCTYPE html>
<html>
<head><title>Test</title></head>
<body>
<aside class="sidebar"><p>Sidebar navigation content</p></aside>
<article><p>This is the main article content that should be preserved in the output.</p></article>
</body>
</html>`

	result, err := newExtractor().Extract(html, pageURL)

	require.NoError(t, err)
	assert.NotContains(t, result.Text, "Sidebar navigation content")
}

func TestExtractor_KeepsMainArticleContent(t *testing.T) {
	t.Parallel()

	html := `<!DOCTYPE html>
<html>
<head><title>Test</title></head>
<body>
<nav><a href="/home">Home</a></nav>
<article><p>This is the important article paragraph text that must be kept.</p></article>
<footer><p>Footer</p></footer>
</body>
</html>`

	result, err := newExtractor().Extract(html, pageURL)

	require.NoError(t, err)
	assert.Contains(t, result.Text, "important article paragraph text")
}

func TestExtractor_PreservesHeadings(t *testing.T) {
	t.Parallel()

	html := `<!DOCTYPE html>
<html>
<head><title>Test</title></head>
<body>
<article>
<h1>Main Heading</h1>
<p>Some intro text here.</p>
<h2>Subheading Level Two</h2>
<p>More content under the subheading.</p>
</article>
</body>
</html>`

	result, err := newExtractor().Extract(html, pageURL)

	require.NoError(t, err)
	assert.Contains(t, result.Text, "Main Heading")
	assert.Contains(t, result.Text, "Subheading Level Two")
}

func TestExtractor_PreservesListsAndTables(t *testing.T) {
	t.Parallel()

	html := `<!DOCTYPE html>
<html>
<head><title>Test</title></head>
<body>
<article>
<p>Here is a list of opening hours for the store:</p>
<ul>
<li>Weekdays nine to five</li>
<li>Saturday ten to two</li>
</ul>
<table>
<tr><th>Name</th><th>Value</th></tr>
<tr><td>Foo</td><td>123</td></tr>
</table>
</article>
</body>
</html>`

	result, err := newExtractor().Extract(html, pageURL)

	require.NoError(t, err)
	assert.Contains(t, result.Text, "<ul")
	assert.Contains(t, result.Text, "Saturday ten to two")
	assert.Contains(t, result.Text, "<table")
}

func TestExtractor_PreservesCodeBlocksInWrapperDivs(t *testing.T) {
	t.Parallel()

	html := `<!DOCTYPE html>
<html>
<head><title>Test</title></head>
<body>
<article>
<p>Install the CLI:</p>
<div class="expressive-code">
<figure>
<pre><code>npm install -g @acme/cli</code></pre>
</figure>
</div>
<p>Now you can use acme commands.</p>
</article>
</body>
</html>`

	result, err := newExtractor().Extract(html, pageURL)

	require.NoError(t, err)
	assert.Contains(t, result.Text, "npm install -g @acme/cli")
}

func TestExtractor_ConvertsArticleHTML(t *testing.T) {
	t.Parallel()

	html := `<!DOCTYPE html>
<html>
<head><title>Test</title></head>
<body>
<article><p>This is the main article content that should be preserved in the output.</p></article>
</body>
</html>`

	var calls int
	ext := readability.NewExtractor(&mock.Converter{
		ConvertFn: func(string) (string, error) {
			calls++
			return "plain text", nil
		},
	})

	result, err := ext.Extract(html, pageURL)

	require.NoError(t, err)
	assert.Equal(t, 1, calls)
	assert.Equal(t, "plain text", result.Text)
}
