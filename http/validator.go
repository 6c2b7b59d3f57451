package http

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"strings"
	"unicode"

	"github.com/harshydav08/sitechat"
)

var _ sitechat.URLValidator = (*Validator)(nil)

// Validator normalizes candidate URLs and confirms with a HEAD request
// that they serve HTML.
type Validator struct {
	client *http.Client
	opts   options
}

// NewValidator creates a Validator. Redirects are followed.
func NewValidator(opts ...Option) *Validator {
	o := newOptions(DefaultValidateTimeout, opts)
	return &Validator{
		client: &http.Client{Timeout: o.timeout},
		opts:   o,
	}
}

// Validate trims rawURL, prefixes https:// when no scheme is given, checks
// its syntax and then probes it. The normalized URL is the prefixed input,
// not the location reached after redirects.
func (v *Validator) Validate(ctx context.Context, rawURL string) sitechat.Validation {
	raw := strings.TrimSpace(rawURL)
	if raw == "" {
		return invalid("URL cannot be empty")
	}

	lower := strings.ToLower(raw)
	if !strings.HasPrefix(lower, "http://") && !strings.HasPrefix(lower, "https://") {
		raw = "https://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil || strings.ContainsAny(raw, " \t\n") {
		return invalid("Invalid URL format")
	}
	if u.Hostname() == "" {
		return invalid("Invalid URL: missing domain")
	}
	if !validHostname(u.Hostname()) {
		return invalid("Invalid URL format")
	}

	if reason := v.probe(ctx, raw); reason != "" {
		return invalid(reason)
	}
	return sitechat.Validation{Valid: true, URL: raw}
}

// probe returns an empty string when url answers HEAD with HTML.
func (v *Validator) probe(ctx context.Context, url string) string {
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, url, nil)
	if err != nil {
		return "Invalid URL format"
	}
	v.opts.setHeaders(req)

	resp, err := v.client.Do(req)
	if err != nil {
		return unreachableReason(err)
	}
	resp.Body.Close()

	if resp.StatusCode >= 400 {
		return fmt.Sprintf("URL not reachable: HTTP %d", resp.StatusCode)
	}

	contentType := strings.ToLower(resp.Header.Get("Content-Type"))
	if !strings.Contains(contentType, "text/html") && !strings.Contains(contentType, "application/xhtml") {
		return "URL does not point to an HTML page"
	}
	return ""
}

func unreachableReason(err error) string {
	var netErr net.Error
	if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &netErr) && netErr.Timeout()) {
		return "URL is not reachable: connection timeout"
	}

	var opErr *net.OpError
	var dnsErr *net.DNSError
	if errors.As(err, &opErr) || errors.As(err, &dnsErr) {
		return "URL is not reachable: connection failed"
	}

	msg := err.Error()
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		msg = urlErr.Err.Error()
	}
	return "URL is not reachable: " + msg
}

// validHostname accepts IP addresses, localhost and dotted DNS names.
func validHostname(host string) bool {
	if net.ParseIP(host) != nil || strings.EqualFold(host, "localhost") {
		return true
	}

	labels := strings.Split(host, ".")
	if len(labels) < 2 {
		return false
	}
	for _, label := range labels {
		if label == "" || len(label) > 63 {
			return false
		}
		if strings.HasPrefix(label, "-") || strings.HasSuffix(label, "-") {
			return false
		}
		for _, r := range label {
			if r != '-' && !unicode.IsLetter(r) && !unicode.IsDigit(r) {
				return false
			}
		}
	}
	return true
}

func invalid(reason string) sitechat.Validation {
	return sitechat.Validation{Reason: reason}
}
