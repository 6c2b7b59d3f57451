package main

import (
	"fmt"

	"github.com/harshydav08/sitechat"
	"github.com/harshydav08/sitechat/crawl"
)

const progressURLWidth = 70

// Run executes the index command.
func (c *IndexCmd) Run(deps *Dependencies) error {
	progress := func(event sitechat.ProgressEvent) {
		switch event.Type {
		case sitechat.ProgressStarted:
			fmt.Fprintf(deps.Stdout, "Crawling %s\n", event.URL)
		case sitechat.ProgressCompleted:
			fmt.Fprintf(deps.Stdout, "  [%d] %s\n", event.Pages, crawl.TruncateURL(event.URL, progressURLWidth))
		case sitechat.ProgressFailed:
			fmt.Fprintf(deps.Stderr, "  skip %s: %v\n", crawl.TruncateURL(event.URL, progressURLWidth), event.Error)
		}
	}

	res := deps.Service.IndexWithProgress(deps.Ctx, c.URL, progress)
	if !res.Success {
		fmt.Fprintf(deps.Stderr, "error: %s failed: %s\n", res.Stage, res.Error)
		if res.Stats.PagesCrawled > 0 {
			fmt.Fprintf(deps.Stderr, "  pages crawled before failure: %d\n", res.Stats.PagesCrawled)
		}
		return sitechat.Errorf(res.Code, "%s", res.Error)
	}

	s := res.Stats
	fmt.Fprintln(deps.Stdout, res.Message)
	fmt.Fprintf(deps.Stdout, "  URL:              %s\n", s.URL)
	fmt.Fprintf(deps.Stdout, "  Pages crawled:    %d\n", s.PagesCrawled)
	fmt.Fprintf(deps.Stdout, "  Chunks created:   %d\n", s.ChunksCreated)
	fmt.Fprintf(deps.Stdout, "  Total words:      %d\n", s.TotalWords)
	fmt.Fprintf(deps.Stdout, "  Avg chunk words:  %d\n", s.AverageChunkSize)
	fmt.Fprintf(deps.Stdout, "  Chunks in store:  %d\n", s.TotalChunksInDB)
	fmt.Fprintf(deps.Stdout, "  Embedding model:  %s\n", s.EmbeddingModel)
	if s.TotalTokens > 0 {
		fmt.Fprintf(deps.Stdout, "  Tokens:           %s\n", crawl.FormatCount(s.TotalTokens, "tokens"))
	}
	return nil
}
