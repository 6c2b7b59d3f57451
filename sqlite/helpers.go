package sqlite

import (
	"encoding/binary"
	"math"
	"slices"
	"strings"

	"github.com/harshydav08/sitechat"
)

// encodeEmbedding packs a vector as little-endian float32 values.
func encodeEmbedding(v []float32) []byte {
	buf := make([]byte, len(v)*4)
	for i, f := range v {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(f))
	}
	return buf
}

// decodeEmbedding reverses encodeEmbedding.
func decodeEmbedding(data []byte) []float32 {
	v := make([]float32, len(data)/4)
	for i := range v {
		v[i] = math.Float32frombits(binary.LittleEndian.Uint32(data[i*4:]))
	}
	return v
}

// appendFilter appends one json_extract equality clause per filter key.
// Keys are emitted in sorted order so the statement text is stable.
func appendFilter(query *strings.Builder, args *[]any, filter sitechat.Metadata) error {
	keys := make([]string, 0, len(filter))
	for k := range filter {
		if k == "" || strings.ContainsAny(k, `"\`) {
			return sitechat.Errorf(sitechat.EINVALID, "invalid metadata key %q", k)
		}
		keys = append(keys, k)
	}
	slices.Sort(keys)

	scalar := filter.Scalar()
	for _, k := range keys {
		query.WriteString(" AND json_extract(metadata, ?) = ?")
		*args = append(*args, `$."`+k+`"`, sqlValue(scalar[k]))
	}
	return nil
}

// sqlValue maps a scalar metadata value to what json_extract yields for it.
func sqlValue(v any) any {
	if b, ok := v.(bool); ok {
		if b {
			return int64(1)
		}
		return int64(0)
	}
	return v
}
