package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/harshydav08/sitechat"
)

// Ensure LoggingValidator implements sitechat.URLValidator.
var _ sitechat.URLValidator = (*LoggingValidator)(nil)

// LoggingValidator wraps a URLValidator with logging.
type LoggingValidator struct {
	next   sitechat.URLValidator
	logger *slog.Logger
}

// NewLoggingValidator creates a new LoggingValidator.
func NewLoggingValidator(next sitechat.URLValidator, logger *slog.Logger) *LoggingValidator {
	return &LoggingValidator{next: next, logger: logger}
}

// Validate delegates to the wrapped validator and logs the verdict.
func (v *LoggingValidator) Validate(ctx context.Context, rawURL string) (res sitechat.Validation) {
	defer func(begin time.Time) {
		v.logger.Info("validate",
			"url", rawURL,
			"valid", res.Valid,
			"normalized", res.URL,
			"reason", res.Reason,
			"duration", time.Since(begin),
		)
	}(time.Now())
	return v.next.Validate(ctx, rawURL)
}
