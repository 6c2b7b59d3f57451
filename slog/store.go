package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/harshydav08/sitechat"
)

// Ensure LoggingVectorStore implements sitechat.VectorStore.
var _ sitechat.VectorStore = (*LoggingVectorStore)(nil)

// LoggingVectorStore wraps a VectorStore with logging. Reads of counts and
// stats are not logged.
type LoggingVectorStore struct {
	next   sitechat.VectorStore
	logger *slog.Logger
}

// NewLoggingVectorStore creates a new LoggingVectorStore.
func NewLoggingVectorStore(next sitechat.VectorStore, logger *slog.Logger) *LoggingVectorStore {
	return &LoggingVectorStore{next: next, logger: logger}
}

func (s *LoggingVectorStore) Upsert(ctx context.Context, records []*sitechat.VectorRecord) (err error) {
	defer func(begin time.Time) {
		s.logger.Info("store upsert",
			"count", len(records),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.Upsert(ctx, records)
}

func (s *LoggingVectorStore) Query(ctx context.Context, embedding []float32, k int, filter sitechat.Metadata) (matches []*sitechat.VectorMatch, err error) {
	defer func(begin time.Time) {
		attrs := []any{"k", k, "count", len(matches)}
		if len(matches) > 0 {
			attrs = append(attrs, "best_distance", matches[0].Distance)
		}
		attrs = append(attrs, "duration", time.Since(begin), "err", err)
		s.logger.Info("store query", attrs...)
	}(time.Now())
	return s.next.Query(ctx, embedding, k, filter)
}

func (s *LoggingVectorStore) DeleteWhere(ctx context.Context, filter sitechat.Metadata) (n int, err error) {
	defer func(begin time.Time) {
		s.logger.Info("store delete",
			"filter", filter,
			"count", n,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.DeleteWhere(ctx, filter)
}

func (s *LoggingVectorStore) ExistsWhere(ctx context.Context, filter sitechat.Metadata) (bool, error) {
	return s.next.ExistsWhere(ctx, filter)
}

func (s *LoggingVectorStore) Count(ctx context.Context) (int, error) {
	return s.next.Count(ctx)
}

func (s *LoggingVectorStore) Clear(ctx context.Context) (err error) {
	defer func(begin time.Time) {
		s.logger.Info("store clear",
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.Clear(ctx)
}

func (s *LoggingVectorStore) Stats(ctx context.Context) (*sitechat.CollectionStats, error) {
	return s.next.Stats(ctx)
}
