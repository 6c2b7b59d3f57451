package sitechat

import "time"

// DefaultUserAgent is sent with every crawl request.
const DefaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36"

// DefaultCollection is the vector store collection used when none is configured.
const DefaultCollection = "website_content"

// Fetcher, extractor and provider names accepted in configuration.
const (
	FetcherHTTP = "http"
	FetcherRod  = "rod"

	ExtractorHeuristic   = "heuristic"
	ExtractorTrafilatura = "trafilatura"
	ExtractorReadability = "readability"

	ProviderOllama     = "ollama"
	ProviderGemini     = "gemini"
	ProviderExtractive = "extractive"
)

// Config holds every tunable of the pipeline. It is passed by reference into
// component constructors; nothing reads configuration from package state.
type Config struct {
	Validator  ValidatorConfig  `yaml:"validator"`
	Crawler    CrawlerConfig    `yaml:"crawler"`
	Chunker    ChunkerConfig    `yaml:"chunker"`
	Retrieval  RetrievalConfig  `yaml:"retrieval"`
	Embedding  EmbeddingConfig  `yaml:"embedding"`
	Generation GenerationConfig `yaml:"generation"`
	Store      StoreConfig      `yaml:"store"`
	Session    SessionConfig    `yaml:"session"`
	Index      IndexConfig      `yaml:"index"`
}

// ValidatorConfig configures URL validation.
type ValidatorConfig struct {
	Timeout time.Duration `yaml:"timeout"`
}

// CrawlerConfig configures the crawler.
type CrawlerConfig struct {
	MaxPages        int             `yaml:"max_pages"`
	Timeout         time.Duration   `yaml:"timeout"`
	Delay           time.Duration   `yaml:"delay"`
	MaxLinksPerPage int             `yaml:"max_links_per_page"`
	UserAgent       string          `yaml:"user_agent"`
	Fetcher         string          `yaml:"fetcher"`
	Extractor       string          `yaml:"extractor"`
	UseSitemap      bool            `yaml:"use_sitemap"`
	RetryDelays     []time.Duration `yaml:"retry_delays"`
}

// ChunkerConfig configures chunk size and overlap, both in characters.
type ChunkerConfig struct {
	Size    int `yaml:"size"`
	Overlap int `yaml:"overlap"`
}

// RetrievalConfig configures query-time retrieval.
type RetrievalConfig struct {
	TopK                int     `yaml:"top_k"`
	SimilarityThreshold float64 `yaml:"similarity_threshold"`
	HistoryMessages     int     `yaml:"history_messages"`
}

// EmbeddingConfig selects the embedding backend.
type EmbeddingConfig struct {
	Provider  string `yaml:"provider"`
	Model     string `yaml:"model"`
	BaseURL   string `yaml:"base_url"`
	BatchSize int    `yaml:"batch_size"`
}

// GenerationConfig selects the answer generation backend.
type GenerationConfig struct {
	Provider    string  `yaml:"provider"`
	Model       string  `yaml:"model"`
	BaseURL     string  `yaml:"base_url"`
	Temperature float64 `yaml:"temperature"`
	MaxTokens   int     `yaml:"max_tokens"`
}

// StoreConfig locates the vector store.
type StoreConfig struct {
	Path       string `yaml:"path"`
	Collection string `yaml:"collection"`
}

// SessionConfig bounds conversation memory.
type SessionConfig struct {
	MaxMessages     int           `yaml:"max_messages"`
	ContextMessages int           `yaml:"context_messages"`
	MaxAge          time.Duration `yaml:"max_age"`
}

// IndexConfig holds optional indexing extras.
type IndexConfig struct {
	CountTokens bool   `yaml:"count_tokens"`
	DumpDir     string `yaml:"dump_dir"`
}

// DefaultConfig returns the configuration used when no file is given.
func DefaultConfig() *Config {
	return &Config{
		Validator: ValidatorConfig{
			Timeout: 10 * time.Second,
		},
		Crawler: CrawlerConfig{
			MaxPages:        50,
			Timeout:         30 * time.Second,
			Delay:           time.Second,
			MaxLinksPerPage: 10,
			UserAgent:       DefaultUserAgent,
			Fetcher:         FetcherHTTP,
			Extractor:       ExtractorHeuristic,
		},
		Chunker: ChunkerConfig{
			Size:    1000,
			Overlap: 200,
		},
		Retrieval: RetrievalConfig{
			TopK:                5,
			SimilarityThreshold: 0.7,
			HistoryMessages:     2,
		},
		Embedding: EmbeddingConfig{
			Provider:  ProviderOllama,
			Model:     "all-minilm",
			BaseURL:   "http://localhost:11434",
			BatchSize: 32,
		},
		Generation: GenerationConfig{
			Provider:    ProviderExtractive,
			Model:       "gemini-2.5-flash",
			BaseURL:     "http://localhost:11434",
			Temperature: 0.7,
			MaxTokens:   512,
		},
		Store: StoreConfig{
			Collection: DefaultCollection,
		},
		Session: SessionConfig{
			MaxMessages:     20,
			ContextMessages: 6,
			MaxAge:          24 * time.Hour,
		},
	}
}

// Validate returns an error if the configuration contains invalid values.
func (c *Config) Validate() error {
	switch {
	case c.Validator.Timeout <= 0:
		return Errorf(EINVALID, "validator timeout must be positive")
	case c.Crawler.MaxPages <= 0:
		return Errorf(EINVALID, "crawler max_pages must be positive")
	case c.Crawler.Timeout <= 0:
		return Errorf(EINVALID, "crawler timeout must be positive")
	case c.Crawler.Delay < 0:
		return Errorf(EINVALID, "crawler delay must not be negative")
	case c.Crawler.MaxLinksPerPage <= 0:
		return Errorf(EINVALID, "crawler max_links_per_page must be positive")
	case c.Chunker.Size <= 0:
		return Errorf(EINVALID, "chunker size must be positive")
	case c.Chunker.Overlap < 0 || c.Chunker.Overlap >= c.Chunker.Size:
		return Errorf(EINVALID, "chunker overlap must be in [0, size)")
	case c.Retrieval.TopK <= 0:
		return Errorf(EINVALID, "retrieval top_k must be positive")
	case c.Retrieval.SimilarityThreshold < 0 || c.Retrieval.SimilarityThreshold > 1:
		return Errorf(EINVALID, "retrieval similarity_threshold must be in [0, 1]")
	case c.Retrieval.HistoryMessages < 0:
		return Errorf(EINVALID, "retrieval history_messages must not be negative")
	case c.Embedding.BatchSize <= 0:
		return Errorf(EINVALID, "embedding batch_size must be positive")
	case c.Store.Collection == "":
		return Errorf(EINVALID, "store collection required")
	case c.Session.MaxMessages <= 0:
		return Errorf(EINVALID, "session max_messages must be positive")
	case c.Session.ContextMessages <= 0:
		return Errorf(EINVALID, "session context_messages must be positive")
	}

	if !oneOf(c.Crawler.Fetcher, FetcherHTTP, FetcherRod) {
		return Errorf(EINVALID, "unknown crawler fetcher %q", c.Crawler.Fetcher)
	}
	if !oneOf(c.Crawler.Extractor, ExtractorHeuristic, ExtractorTrafilatura, ExtractorReadability) {
		return Errorf(EINVALID, "unknown crawler extractor %q", c.Crawler.Extractor)
	}
	if !oneOf(c.Embedding.Provider, ProviderOllama, ProviderGemini) {
		return Errorf(EINVALID, "unknown embedding provider %q", c.Embedding.Provider)
	}
	if !oneOf(c.Generation.Provider, ProviderExtractive, ProviderOllama, ProviderGemini) {
		return Errorf(EINVALID, "unknown generation provider %q", c.Generation.Provider)
	}
	return nil
}

func oneOf(v string, allowed ...string) bool {
	for _, a := range allowed {
		if v == a {
			return true
		}
	}
	return false
}
