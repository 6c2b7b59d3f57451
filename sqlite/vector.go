package sqlite

import (
	"cmp"
	"context"
	"encoding/json"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/harshydav08/sitechat"
)

// Compile-time interface verification.
var _ sitechat.VectorStore = (*VectorStore)(nil)

// VectorStore implements sitechat.VectorStore on a SQLite table. Records
// are scoped to a collection. Queries scan the matching rows and rank
// them by exact cosine distance.
type VectorStore struct {
	db         *DB
	collection string
}

// NewVectorStore creates a VectorStore over the named collection.
func NewVectorStore(db *DB, collection string) *VectorStore {
	if collection == "" {
		collection = sitechat.DefaultCollection
	}
	return &VectorStore{db: db, collection: collection}
}

// Upsert inserts or replaces records by ID in a single transaction.
func (s *VectorStore) Upsert(ctx context.Context, records []*sitechat.VectorRecord) error {
	for _, r := range records {
		if r.ID == "" {
			return sitechat.Errorf(sitechat.EINVALID, "record ID required")
		}
		if len(r.Embedding) == 0 {
			return sitechat.Errorf(sitechat.EINVALID, "record %s has no embedding", r.ID)
		}
	}

	tx, err := s.db.BeginTx(ctx)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO chunks (collection, id, content, metadata, embedding, dimensions, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(collection, id) DO UPDATE SET
			content = excluded.content,
			metadata = excluded.metadata,
			embedding = excluded.embedding,
			dimensions = excluded.dimensions
	`)
	if err != nil {
		return fmt.Errorf("preparing statement: %w", err)
	}
	defer stmt.Close()

	now := time.Now().UTC().Format(time.RFC3339)
	for _, r := range records {
		meta, err := json.Marshal(r.Metadata.Scalar())
		if err != nil {
			return fmt.Errorf("marshalling metadata for %s: %w", r.ID, err)
		}
		if _, err := stmt.ExecContext(ctx, s.collection, r.ID, r.Content, string(meta),
			encodeEmbedding(r.Embedding), len(r.Embedding), now); err != nil {
			return fmt.Errorf("saving record %s: %w", r.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}
	return nil
}

// Query returns up to k records nearest to embedding, closest first.
// Ties are broken by ID.
func (s *VectorStore) Query(ctx context.Context, embedding []float32, k int, filter sitechat.Metadata) ([]*sitechat.VectorMatch, error) {
	if len(embedding) == 0 {
		return nil, sitechat.Errorf(sitechat.EINVALID, "query embedding required")
	}
	if k <= 0 {
		return []*sitechat.VectorMatch{}, nil
	}

	var query strings.Builder
	args := []any{s.collection}
	query.WriteString("SELECT id, content, metadata, embedding FROM chunks WHERE collection = ?")
	if err := appendFilter(&query, &args, filter); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("querying chunks: %w", err)
	}
	defer rows.Close()

	matches := []*sitechat.VectorMatch{}
	for rows.Next() {
		var (
			m        sitechat.VectorMatch
			metaJSON string
			blob     []byte
		)
		if err := rows.Scan(&m.ID, &m.Content, &metaJSON, &blob); err != nil {
			return nil, fmt.Errorf("scanning chunk: %w", err)
		}
		if err := json.Unmarshal([]byte(metaJSON), &m.Metadata); err != nil {
			return nil, fmt.Errorf("decoding metadata for %s: %w", m.ID, err)
		}
		m.Distance = sitechat.CosineDistance(embedding, decodeEmbedding(blob))
		matches = append(matches, &m)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	slices.SortStableFunc(matches, func(a, b *sitechat.VectorMatch) int {
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
func (s *VectorStore) DeleteWhere(ctx context.Context, filter sitechat.Metadata) (int, error) {
	if len(filter) == 0 {
		return 0, sitechat.Errorf(sitechat.EINVALID, "delete filter required")
	}

	var query strings.Builder
	args := []any{s.collection}
	query.WriteString("DELETE FROM chunks WHERE collection = ?")
	if err := appendFilter(&query, &args, filter); err != nil {
		return 0, err
	}

	result, err := s.db.ExecContext(ctx, query.String(), args...)
	if err != nil {
		return 0, fmt.Errorf("deleting chunks: %w", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return 0, err
	}
	return int(n), nil
}

// ExistsWhere reports whether any record matches filter.
func (s *VectorStore) ExistsWhere(ctx context.Context, filter sitechat.Metadata) (bool, error) {
	var query strings.Builder
	args := []any{s.collection}
	query.WriteString("SELECT EXISTS (SELECT 1 FROM chunks WHERE collection = ?")
	if err := appendFilter(&query, &args, filter); err != nil {
		return false, err
	}
	query.WriteString(")")

	var exists bool
	if err := s.db.QueryRowContext(ctx, query.String(), args...).Scan(&exists); err != nil {
		return false, fmt.Errorf("checking chunks: %w", err)
	}
	return exists, nil
}

// Count returns the number of records in the collection.
func (s *VectorStore) Count(ctx context.Context) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM chunks WHERE collection = ?", s.collection).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("counting chunks: %w", err)
	}
	return n, nil
}

// Clear removes every record in the collection.
func (s *VectorStore) Clear(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, "DELETE FROM chunks WHERE collection = ?", s.collection); err != nil {
		return fmt.Errorf("clearing collection: %w", err)
	}
	return nil
}

// Stats describes the collection.
func (s *VectorStore) Stats(ctx context.Context) (*sitechat.CollectionStats, error) {
	n, err := s.Count(ctx)
	if err != nil {
		return nil, err
	}
	return &sitechat.CollectionStats{
		Name:        s.collection,
		TotalChunks: n,
		Location:    s.db.Path(),
	}, nil
}
