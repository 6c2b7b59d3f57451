// Package fs dumps crawled pages to disk as text files with YAML
// frontmatter, one file per page.
package fs

import (
	"context"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/harshydav08/sitechat"
)

// URLToPath converts a page URL to a relative file path.
// Example: https://example.com/about/team → about/team.txt
func URLToPath(rawURL string) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", err
	}
	if strings.Contains(u.Path, "..") {
		return "", sitechat.Errorf(sitechat.EINVALID, "path traversal in %q", u.Path)
	}

	path := u.Path
	if path == "" || path == "/" {
		return "index.txt", nil
	}

	path = strings.TrimPrefix(path, "/")
	if strings.HasSuffix(path, "/") {
		return path + "index.txt", nil
	}
	return path + ".txt", nil
}

// FormatPage renders a page with YAML frontmatter.
func FormatPage(page *sitechat.CrawledPage, crawled time.Time) string {
	var b strings.Builder
	b.WriteString("---\n")
	b.WriteString("source: ")
	b.WriteString(page.URL)
	b.WriteString("\ntitle: ")
	b.WriteString(strconv.Quote(page.Title))
	b.WriteString("\nwords: ")
	b.WriteString(strconv.Itoa(page.WordCount))
	b.WriteString("\ncrawled: ")
	b.WriteString(crawled.Format("2006-01-02"))
	b.WriteString("\n---\n\n")
	b.WriteString(page.Content)
	return b.String()
}

// Ensure Writer implements sitechat.PageWriter at compile time.
var _ sitechat.PageWriter = (*Writer)(nil)

// Writer writes the pages of one crawl under baseDir/<host>. A previous
// dump of the same host is replaced only once every page is written.
type Writer struct {
	baseDir string

	// Now stamps the crawled date. Defaults to time.Now.
	Now func() time.Time
}

// NewWriter creates a new Writer rooted at baseDir.
func NewWriter(baseDir string) *Writer {
	return &Writer{baseDir: baseDir, Now: time.Now}
}

// WritePages writes pages and commits them. On any failure the partial
// output is removed and the previous dump is left untouched.
func (w *Writer) WritePages(ctx context.Context, pages []*sitechat.CrawledPage) error {
	if len(pages) == 0 {
		return nil
	}
	u, err := url.Parse(pages[0].URL)
	if err != nil || u.Host == "" {
		return sitechat.Errorf(sitechat.EINVALID, "invalid page URL %q", pages[0].URL)
	}

	store := NewFileStore(w.baseDir, u.Host)
	store.Now = w.Now
	for _, p := range pages {
		if err := ctx.Err(); err != nil {
			_ = store.Abort()
			return err
		}
		if err := store.Save(ctx, p); err != nil {
			_ = store.Abort()
			return err
		}
	}
	return store.Commit()
}
