// Package yaml loads and saves sitechat configuration files.
package yaml

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/harshydav08/sitechat"
	"gopkg.in/yaml.v3"
)

// Load reads the config at path over sitechat.DefaultConfig. Keys missing
// from the file keep their defaults. A missing file yields the defaults.
// The result is validated.
func Load(path string) (*sitechat.Config, error) {
	cfg := sitechat.DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return nil, err
	}
	if err := Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save writes cfg to path, creating directories as needed.
func Save(path string, cfg *sitechat.Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// Marshal renders cfg as YAML with durations written as strings such
// as "30s".
func Marshal(cfg *sitechat.Config) ([]byte, error) {
	return yaml.Marshal(toFile(cfg))
}

// Unmarshal decodes YAML into cfg. Fields absent from data are left as
// they are.
func Unmarshal(data []byte, cfg *sitechat.Config) error {
	f := toFile(cfg)
	if err := yaml.Unmarshal(data, f); err != nil {
		return sitechat.Errorf(sitechat.EINVALID, "parse config: %v", err)
	}
	return f.apply(cfg)
}

// DefaultPath returns ~/.sitechat/config.yaml.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".sitechat", "config.yaml"), nil
}

// file mirrors sitechat.Config with durations held as strings.
type file struct {
	Validator struct {
		Timeout string `yaml:"timeout"`
	} `yaml:"validator"`
	Crawler struct {
		MaxPages        int      `yaml:"max_pages"`
		Timeout         string   `yaml:"timeout"`
		Delay           string   `yaml:"delay"`
		MaxLinksPerPage int      `yaml:"max_links_per_page"`
		UserAgent       string   `yaml:"user_agent"`
		Fetcher         string   `yaml:"fetcher"`
		Extractor       string   `yaml:"extractor"`
		UseSitemap      bool     `yaml:"use_sitemap"`
		RetryDelays     []string `yaml:"retry_delays"`
	} `yaml:"crawler"`
	Chunker    sitechat.ChunkerConfig    `yaml:"chunker"`
	Retrieval  sitechat.RetrievalConfig  `yaml:"retrieval"`
	Embedding  sitechat.EmbeddingConfig  `yaml:"embedding"`
	Generation sitechat.GenerationConfig `yaml:"generation"`
	Store      sitechat.StoreConfig      `yaml:"store"`
	Session    struct {
		MaxMessages     int    `yaml:"max_messages"`
		ContextMessages int    `yaml:"context_messages"`
		MaxAge          string `yaml:"max_age"`
	} `yaml:"session"`
	Index sitechat.IndexConfig `yaml:"index"`
}

func toFile(cfg *sitechat.Config) *file {
	f := &file{
		Chunker:    cfg.Chunker,
		Retrieval:  cfg.Retrieval,
		Embedding:  cfg.Embedding,
		Generation: cfg.Generation,
		Store:      cfg.Store,
		Index:      cfg.Index,
	}
	f.Validator.Timeout = cfg.Validator.Timeout.String()

	f.Crawler.MaxPages = cfg.Crawler.MaxPages
	f.Crawler.Timeout = cfg.Crawler.Timeout.String()
	f.Crawler.Delay = cfg.Crawler.Delay.String()
	f.Crawler.MaxLinksPerPage = cfg.Crawler.MaxLinksPerPage
	f.Crawler.UserAgent = cfg.Crawler.UserAgent
	f.Crawler.Fetcher = cfg.Crawler.Fetcher
	f.Crawler.Extractor = cfg.Crawler.Extractor
	f.Crawler.UseSitemap = cfg.Crawler.UseSitemap
	f.Crawler.RetryDelays = []string{}
	for _, d := range cfg.Crawler.RetryDelays {
		f.Crawler.RetryDelays = append(f.Crawler.RetryDelays, d.String())
	}

	f.Session.MaxMessages = cfg.Session.MaxMessages
	f.Session.ContextMessages = cfg.Session.ContextMessages
	f.Session.MaxAge = cfg.Session.MaxAge.String()
	return f
}

func (f *file) apply(cfg *sitechat.Config) error {
	var err error
	if cfg.Validator.Timeout, err = duration("validator.timeout", f.Validator.Timeout); err != nil {
		return err
	}
	if cfg.Crawler.Timeout, err = duration("crawler.timeout", f.Crawler.Timeout); err != nil {
		return err
	}
	if cfg.Crawler.Delay, err = duration("crawler.delay", f.Crawler.Delay); err != nil {
		return err
	}
	if cfg.Session.MaxAge, err = duration("session.max_age", f.Session.MaxAge); err != nil {
		return err
	}

	var delays []time.Duration
	for i, s := range f.Crawler.RetryDelays {
		d, err := duration(fmt.Sprintf("crawler.retry_delays[%d]", i), s)
		if err != nil {
			return err
		}
		delays = append(delays, d)
	}

	cfg.Crawler.MaxPages = f.Crawler.MaxPages
	cfg.Crawler.MaxLinksPerPage = f.Crawler.MaxLinksPerPage
	cfg.Crawler.UserAgent = f.Crawler.UserAgent
	cfg.Crawler.Fetcher = f.Crawler.Fetcher
	cfg.Crawler.Extractor = f.Crawler.Extractor
	cfg.Crawler.UseSitemap = f.Crawler.UseSitemap
	cfg.Crawler.RetryDelays = delays
	cfg.Chunker = f.Chunker
	cfg.Retrieval = f.Retrieval
	cfg.Embedding = f.Embedding
	cfg.Generation = f.Generation
	cfg.Store = f.Store
	cfg.Session.MaxMessages = f.Session.MaxMessages
	cfg.Session.ContextMessages = f.Session.ContextMessages
	cfg.Index = f.Index
	return nil
}

func duration(key, s string) (time.Duration, error) {
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, sitechat.Errorf(sitechat.EINVALID, "%s: invalid duration %q", key, s)
	}
	return d, nil
}
