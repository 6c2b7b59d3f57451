package sitechat

import "context"

// Validation is the outcome of validating a candidate URL.
// When Valid is false, Reason says why and URL is empty.
type Validation struct {
	Valid  bool   `json:"valid"`
	URL    string `json:"url,omitempty"`
	Reason string `json:"reason,omitempty"`
}

// URLValidator normalizes a URL and checks that it serves HTML.
type URLValidator interface {
	// Validate never fails: every problem, including network errors,
	// is reported as an invalid Validation.
	Validate(ctx context.Context, rawURL string) Validation
}
