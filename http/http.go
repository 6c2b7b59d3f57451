// Package http implements the URL validator, page fetcher and sitemap
// discovery over net/http for static sites that don't require
// JavaScript rendering.
package http

import (
	"net/http"
	"time"

	"github.com/harshydav08/sitechat"
)

// DefaultFetchTimeout is the default timeout for page fetches.
const DefaultFetchTimeout = 30 * time.Second

// DefaultValidateTimeout is the default timeout for URL validation.
const DefaultValidateTimeout = 10 * time.Second

// maxBodyBytes bounds how much of a response body is read.
const maxBodyBytes = 10 << 20

type options struct {
	timeout   time.Duration
	userAgent string
}

// Option configures a Fetcher, Validator or SitemapService.
type Option func(*options)

// WithTimeout sets the per-request timeout.
func WithTimeout(d time.Duration) Option {
	return func(o *options) {
		o.timeout = d
	}
}

// WithUserAgent sets the User-Agent header sent with every request.
// Defaults to sitechat.DefaultUserAgent.
func WithUserAgent(ua string) Option {
	return func(o *options) {
		o.userAgent = ua
	}
}

func newOptions(timeout time.Duration, opts []Option) options {
	o := options{
		timeout:   timeout,
		userAgent: sitechat.DefaultUserAgent,
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

func (o options) setHeaders(req *http.Request) {
	if o.userAgent != "" {
		req.Header.Set("User-Agent", o.userAgent)
	}
}
