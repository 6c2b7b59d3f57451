package mock

import (
	"context"

	"github.com/harshydav08/sitechat"
)

var _ sitechat.VectorStore = (*VectorStore)(nil)

// VectorStore is a mock implementation of sitechat.VectorStore.
type VectorStore struct {
	UpsertFn      func(ctx context.Context, records []*sitechat.VectorRecord) error
	QueryFn       func(ctx context.Context, embedding []float32, k int, filter sitechat.Metadata) ([]*sitechat.VectorMatch, error)
	DeleteWhereFn func(ctx context.Context, filter sitechat.Metadata) (int, error)
	ExistsWhereFn func(ctx context.Context, filter sitechat.Metadata) (bool, error)
	CountFn       func(ctx context.Context) (int, error)
	ClearFn       func(ctx context.Context) error
	StatsFn       func(ctx context.Context) (*sitechat.CollectionStats, error)
}

func (s *VectorStore) Upsert(ctx context.Context, records []*sitechat.VectorRecord) error {
	return s.UpsertFn(ctx, records)
}

func (s *VectorStore) Query(ctx context.Context, embedding []float32, k int, filter sitechat.Metadata) ([]*sitechat.VectorMatch, error) {
	return s.QueryFn(ctx, embedding, k, filter)
}

func (s *VectorStore) DeleteWhere(ctx context.Context, filter sitechat.Metadata) (int, error) {
	return s.DeleteWhereFn(ctx, filter)
}

func (s *VectorStore) ExistsWhere(ctx context.Context, filter sitechat.Metadata) (bool, error) {
	return s.ExistsWhereFn(ctx, filter)
}

func (s *VectorStore) Count(ctx context.Context) (int, error) {
	return s.CountFn(ctx)
}

func (s *VectorStore) Clear(ctx context.Context) error {
	return s.ClearFn(ctx)
}

func (s *VectorStore) Stats(ctx context.Context) (*sitechat.CollectionStats, error) {
	return s.StatsFn(ctx)
}
