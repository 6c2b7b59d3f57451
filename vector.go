package sitechat

import (
	"context"
	"fmt"
	"math"
	"strconv"
)

// Metadata is a flat map of scalar values attached to stored chunks.
type Metadata map[string]any

// Scalar returns a copy of m in which every value is a string, int64,
// float64 or bool. Other values are stringified.
func (m Metadata) Scalar() Metadata {
	out := make(Metadata, len(m))
	for k, v := range m {
		switch v := v.(type) {
		case nil:
			out[k] = ""
		case string, bool, int64, float64:
			out[k] = v
		case int:
			out[k] = int64(v)
		case int32:
			out[k] = int64(v)
		case float32:
			out[k] = float64(v)
		default:
			out[k] = fmt.Sprint(v)
		}
	}
	return out
}

// String returns the value at key as a string, or "" if absent.
func (m Metadata) String(key string) string {
	switch v := m[key].(type) {
	case nil:
		return ""
	case string:
		return v
	default:
		return fmt.Sprint(v)
	}
}

// Int returns the value at key as an int, or 0 if absent or not numeric.
func (m Metadata) Int(key string) int {
	switch v := m[key].(type) {
	case int:
		return v
	case int64:
		return int(v)
	case float64:
		return int(v)
	case string:
		n, _ := strconv.Atoi(v)
		return n
	default:
		return 0
	}
}

// Matches reports whether every key in filter has an equal value in m.
// Values are compared after scalar normalization.
func (m Metadata) Matches(filter Metadata) bool {
	if len(filter) == 0 {
		return true
	}
	sm := m.Scalar()
	for k, want := range filter.Scalar() {
		got, ok := sm[k]
		if !ok || widen(got) != widen(want) {
			return false
		}
	}
	return true
}

// widen widens integers so that values decoded from JSON compare
// equal to the ints they were stored as.
func widen(v any) any {
	if n, ok := v.(int64); ok {
		return float64(n)
	}
	return v
}

// VectorRecord is a chunk with its embedding, ready for storage.
type VectorRecord struct {
	ID        string
	Content   string
	Metadata  Metadata
	Embedding []float32
}

// VectorMatch is a stored chunk returned from a nearest-neighbor query.
// Distance is cosine distance in [0, 2].
type VectorMatch struct {
	ID       string
	Content  string
	Metadata Metadata
	Distance float64
}

// CollectionStats describes a vector store collection.
type CollectionStats struct {
	Name        string `json:"collectionName"`
	TotalChunks int    `json:"totalChunks"`
	Location    string `json:"persistLocation"`
}

// VectorStore stores embedded chunks and answers nearest-neighbor queries.
// Implementations guarantee atomicity of each call.
type VectorStore interface {
	// Upsert inserts or replaces records by ID.
	Upsert(ctx context.Context, records []*VectorRecord) error

	// Query returns up to k records nearest to the embedding, closest first,
	// restricted to records whose metadata matches filter.
	Query(ctx context.Context, embedding []float32, k int, filter Metadata) ([]*VectorMatch, error)

	// DeleteWhere removes records whose metadata matches filter and returns
	// the number removed. An empty filter is rejected with EINVALID.
	DeleteWhere(ctx context.Context, filter Metadata) (int, error)

	// ExistsWhere reports whether any record matches filter.
	ExistsWhere(ctx context.Context, filter Metadata) (bool, error)

	// Count returns the number of records in the collection.
	Count(ctx context.Context) (int, error)

	// Clear removes every record in the collection.
	Clear(ctx context.Context) error

	// Stats describes the collection.
	Stats(ctx context.Context) (*CollectionStats, error)
}

// CosineDistance returns 1 - cos(a, b). Vectors of different length or
// zero magnitude are at distance 1.
func CosineDistance(a, b []float32) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 1
	}
	var dot, na, nb float64
	for i := range a {
		x, y := float64(a[i]), float64(b[i])
		dot += x * y
		na += x * x
		nb += y * y
	}
	if na == 0 || nb == 0 {
		return 1
	}
	return 1 - dot/(math.Sqrt(na)*math.Sqrt(nb))
}
