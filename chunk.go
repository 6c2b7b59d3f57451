package sitechat

import "strings"

// PageMetadata is the provenance a page hands to the chunker.
type PageMetadata struct {
	SourceURL         string
	PageTitle         string
	OriginalWordCount int
}

// ChunkMetadata contains provenance and size information about a chunk.
type ChunkMetadata struct {
	SourceURL         string `json:"sourceUrl"`
	PageTitle         string `json:"pageTitle"`
	OriginalWordCount int    `json:"originalWordCount"`
	ChunkIndex        int    `json:"chunkIndex"`
	ChunkLength       int    `json:"chunkLength"`
	ChunkWordCount    int    `json:"chunkWordCount"`
}

// Metadata keys used when chunks are stored in a VectorStore.
const (
	MetaSourceURL         = "source_url"
	MetaSiteURL           = "site_url"
	MetaPageTitle         = "page_title"
	MetaOriginalWordCount = "original_word_count"
	MetaChunkIndex        = "chunk_index"
	MetaChunkLength       = "chunk_length"
	MetaChunkWordCount    = "chunk_word_count"
)

// Map flattens the metadata into scalar key/value pairs for storage.
func (m ChunkMetadata) Map() Metadata {
	return Metadata{
		MetaSourceURL:         m.SourceURL,
		MetaPageTitle:         m.PageTitle,
		MetaOriginalWordCount: m.OriginalWordCount,
		MetaChunkIndex:        m.ChunkIndex,
		MetaChunkLength:       m.ChunkLength,
		MetaChunkWordCount:    m.ChunkWordCount,
	}
}

// TextChunk is a bounded slice of cleaned page text, the unit of storage
// and retrieval. Chunks are immutable once created.
type TextChunk struct {
	ID        string        `json:"id"`
	Content   string        `json:"content"`
	Metadata  ChunkMetadata `json:"metadata"`
	WordCount int           `json:"wordCount"`
}

// Chunker turns cleaned page text into overlapping chunks.
type Chunker interface {
	// Clean normalizes raw page text and drops noise sentences.
	Clean(text string) string

	// Chunk splits cleaned text into overlapping chunks. Chunk IDs are
	// deterministic per (source URL, chunk index).
	Chunk(text string, meta PageMetadata) []*TextChunk
}

// ChunkSummary aggregates a set of chunks.
type ChunkSummary struct {
	TotalChunks        int      `json:"totalChunks"`
	TotalWords         int      `json:"totalWords"`
	AverageChunkSize   int      `json:"averageChunkSize"`
	AverageChunkLength int      `json:"averageChunkLength"`
	Sources            []string `json:"sources"`
}

// SummarizeChunks computes word and length totals. Averages use integer
// division; sources are listed in first-seen order.
func SummarizeChunks(chunks []*TextChunk) ChunkSummary {
	if len(chunks) == 0 {
		return ChunkSummary{Sources: []string{}}
	}

	var s ChunkSummary
	var totalLength int
	seen := make(map[string]bool)
	for _, c := range chunks {
		s.TotalWords += c.WordCount
		totalLength += c.Metadata.ChunkLength
		src := c.Metadata.SourceURL
		if src == "" {
			src = "Unknown"
		}
		if !seen[src] {
			seen[src] = true
			s.Sources = append(s.Sources, src)
		}
	}
	s.TotalChunks = len(chunks)
	s.AverageChunkSize = s.TotalWords / len(chunks)
	s.AverageChunkLength = totalLength / len(chunks)
	return s
}

// CountWords counts whitespace-separated words.
func CountWords(text string) int {
	return len(strings.Fields(text))
}
