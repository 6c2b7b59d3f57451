// Package memory provides in-process implementations of the vector store
// and the conversation memory.
package memory

import (
	"cmp"
	"context"
	"maps"
	"slices"
	"strings"
	"sync"

	"github.com/harshydav08/sitechat"
)

// Compile-time interface verification.
var _ sitechat.VectorStore = (*VectorStore)(nil)

// VectorStore is a brute-force cosine VectorStore held in memory.
// Contents are lost when the process exits.
type VectorStore struct {
	mu      sync.RWMutex
	name    string
	records map[string]*sitechat.VectorRecord
}

// NewVectorStore returns an empty store with the given collection name.
func NewVectorStore(name string) *VectorStore {
	if name == "" {
		name = sitechat.DefaultCollection
	}
	return &VectorStore{name: name, records: make(map[string]*sitechat.VectorRecord)}
}

// Upsert inserts or replaces records by ID.
func (s *VectorStore) Upsert(_ context.Context, records []*sitechat.VectorRecord) error {
	for _, r := range records {
		if r.ID == "" {
			return sitechat.Errorf(sitechat.EINVALID, "record ID required")
		}
		if len(r.Embedding) == 0 {
			return sitechat.Errorf(sitechat.EINVALID, "record %s has no embedding", r.ID)
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, r := range records {
		s.records[r.ID] = &sitechat.VectorRecord{
			ID:        r.ID,
			Content:   r.Content,
			Metadata:  r.Metadata.Scalar(),
			Embedding: slices.Clone(r.Embedding),
		}
	}
	return nil
}

// Query returns up to k records nearest to embedding, closest first.
func (s *VectorStore) Query(_ context.Context, embedding []float32, k int, filter sitechat.Metadata) ([]*sitechat.VectorMatch, error) {
	if len(embedding) == 0 {
		return nil, sitechat.Errorf(sitechat.EINVALID, "query embedding required")
	}
	if k <= 0 {
		return []*sitechat.VectorMatch{}, nil
	}

	s.mu.RLock()
	matches := []*sitechat.VectorMatch{}
	for _, r := range s.records {
		if !r.Metadata.Matches(filter) {
			continue
		}
		matches = append(matches, &sitechat.VectorMatch{
			ID:       r.ID,
			Content:  r.Content,
			Metadata: maps.Clone(r.Metadata),
			Distance: sitechat.CosineDistance(embedding, r.Embedding),
		})
	}
	s.mu.RUnlock()

	slices.SortFunc(matches, func(a, b *sitechat.VectorMatch) int {
		if c := cmp.Compare(a.Distance, b.Distance); c != 0 {
			return c
		}
		return strings.Compare(a.ID, b.ID)
	})
	if len(matches) > k {
		matches = matches[:k]
	}
	return matches, nil
}

// DeleteWhere removes records whose metadata matches filter.
func (s *VectorStore) DeleteWhere(_ context.Context, filter sitechat.Metadata) (int, error) {
	if len(filter) == 0 {
		return 0, sitechat.Errorf(sitechat.EINVALID, "delete filter required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	var n int
	for id, r := range s.records {
		if r.Metadata.Matches(filter) {
			delete(s.records, id)
			n++
		}
	}
	return n, nil
}

// ExistsWhere reports whether any record matches filter.
func (s *VectorStore) ExistsWhere(_ context.Context, filter sitechat.Metadata) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, r := range s.records {
		if r.Metadata.Matches(filter) {
			return true, nil
		}
	}
	return false, nil
}

// Count returns the number of records.
func (s *VectorStore) Count(_ context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.records), nil
}

// Clear removes every record.
func (s *VectorStore) Clear(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	clear(s.records)
	return nil
}

// Stats describes the store.
func (s *VectorStore) Stats(ctx context.Context) (*sitechat.CollectionStats, error) {
	n, _ := s.Count(ctx)
	return &sitechat.CollectionStats{Name: s.name, TotalChunks: n, Location: "memory"}, nil
}
