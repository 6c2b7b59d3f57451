package sitechat

import "context"

// IndexStage names a step of the indexing pipeline.
type IndexStage string

// Indexing stages, in execution order.
const (
	StageValidate IndexStage = "validate"
	StageCrawl    IndexStage = "crawl"
	StageChunk    IndexStage = "chunk"
	StageEmbed    IndexStage = "embed"
	StageStore    IndexStage = "store"
)

// IndexStats describes an indexing run. Failed runs report the stats
// gathered before the failing stage.
type IndexStats struct {
	URL              string `json:"url"`
	PagesCrawled     int    `json:"pagesCrawled"`
	ChunksCreated    int    `json:"chunksCreated"`
	TotalWords       int    `json:"totalWords"`
	AverageChunkSize int    `json:"averageChunkSize"`
	TotalChunksInDB  int    `json:"totalChunksInDb"`
	EmbeddingModel   string `json:"embeddingModel"`
	TotalTokens      int    `json:"totalTokens,omitempty"`
}

// IndexResult is the outcome of indexing a site. On success Message is set;
// on failure Stage, Code and Error say what went wrong.
type IndexResult struct {
	Success bool       `json:"success"`
	Message string     `json:"message,omitempty"`
	Stage   IndexStage `json:"stage,omitempty"`
	Code    string     `json:"code,omitempty"`
	Error   string     `json:"error,omitempty"`
	Stats   IndexStats `json:"stats"`
}

// Indexer crawls a site and stores its chunks for retrieval.
type Indexer interface {
	// Index never fails outright; failures are reported in the result.
	Index(ctx context.Context, url string) *IndexResult
}

// SystemStatus reports the health and settings of the pipeline.
type SystemStatus struct {
	Status              string           `json:"status"`
	Collection          *CollectionStats `json:"collection,omitempty"`
	Memory              MemoryStats      `json:"memory"`
	EmbeddingModel      string           `json:"embeddingModel"`
	GenerationModel     string           `json:"generationModel"`
	ChunkSize           int              `json:"chunkSize"`
	ChunkOverlap        int              `json:"chunkOverlap"`
	TopK                int              `json:"topK"`
	SimilarityThreshold float64          `json:"similarityThreshold"`
	MaxPages            int              `json:"maxPages"`
	Error               string           `json:"error,omitempty"`
}
