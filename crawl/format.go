package crawl

import (
	"fmt"

	"github.com/cespare/xxhash/v2"
)

// ComputeHash returns the hex xxhash of content.
func ComputeHash(content string) string {
	return fmt.Sprintf("%x", xxhash.Sum64String(content))
}

// TruncateURL shortens a URL for display, keeping the end which is more informative.
func TruncateURL(url string, maxLen int) string {
	if maxLen <= 0 {
		return ""
	}
	if maxLen < 4 {
		return url[:min(len(url), maxLen)]
	}
	if len(url) <= maxLen {
		return url
	}
	return "..." + url[len(url)-maxLen+3:]
}

// FormatCount formats a count with a unit in human-readable form,
// abbreviating thousands: "~12 tokens", "~3k tokens".
func FormatCount(n int, unit string) string {
	if n < 1000 {
		return fmt.Sprintf("~%d %s", n, unit)
	}
	return fmt.Sprintf("~%dk %s", (n+500)/1000, unit)
}
