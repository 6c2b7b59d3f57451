package slog_test

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/harshydav08/sitechat"
	"github.com/harshydav08/sitechat/mock"
	sitechatslog "github.com/harshydav08/sitechat/slog"
	"github.com/stretchr/testify/assert"
)

func TestLoggingValidator_Validate(t *testing.T) {
	t.Parallel()

	t.Run("logs the normalized URL", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		inner := &mock.URLValidator{
			ValidateFn: func(context.Context, string) sitechat.Validation {
				return sitechat.Validation{Valid: true, URL: "https://example.com"}
			},
		}

		got := sitechatslog.NewLoggingValidator(inner, logger).Validate(context.Background(), "example.com")

		assert.True(t, got.Valid)
		output := buf.String()
		assert.Contains(t, output, "validate")
		assert.Contains(t, output, "url=example.com")
		assert.Contains(t, output, "valid=true")
		assert.Contains(t, output, "normalized=https://example.com")
		assert.Contains(t, output, "duration=")
	})

	t.Run("logs the rejection reason", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		inner := &mock.URLValidator{
			ValidateFn: func(context.Context, string) sitechat.Validation {
				return sitechat.Validation{Reason: "URL not reachable: HTTP 404"}
			},
		}

		got := sitechatslog.NewLoggingValidator(inner, logger).Validate(context.Background(), "https://example.com/missing")

		assert.False(t, got.Valid)
		output := buf.String()
		assert.Contains(t, output, "valid=false")
		assert.Contains(t, output, "reason=\"URL not reachable: HTTP 404\"")
	})
}
