package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/harshydav08/sitechat"
	"github.com/harshydav08/sitechat/chunk"
	"github.com/harshydav08/sitechat/crawl"
	"github.com/harshydav08/sitechat/extractive"
	"github.com/harshydav08/sitechat/fs"
	"github.com/harshydav08/sitechat/gemini"
	"github.com/harshydav08/sitechat/goquery"
	"github.com/harshydav08/sitechat/htmltomarkdown"
	sitechathttp "github.com/harshydav08/sitechat/http"
	"github.com/harshydav08/sitechat/memory"
	"github.com/harshydav08/sitechat/ollama"
	"github.com/harshydav08/sitechat/rag"
	"github.com/harshydav08/sitechat/readability"
	"github.com/harshydav08/sitechat/rod"
	sitechatslog "github.com/harshydav08/sitechat/slog"
	"github.com/harshydav08/sitechat/sqlite"
	"github.com/harshydav08/sitechat/trafilatura"
	"github.com/harshydav08/sitechat/yaml"
	"github.com/joho/godotenv"
	"google.golang.org/genai"
)

func main() {
	ctx := context.Background()

	// A missing .env file is fine.
	_ = godotenv.Load()

	m := NewMain()
	defer m.Close()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		m.Close()
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Getenv reads environment overrides. Defaults to os.Getenv.
	Getenv func(string) string

	// Stdin feeds the chat command. Defaults to os.Stdin.
	Stdin io.Reader

	// SQLite database, opened by Run unless --ephemeral is set.
	DB *sqlite.DB

	closers []func() error
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{
		Getenv: os.Getenv,
		Stdin:  os.Stdin,
	}
}

// Close releases the browser and database opened by Run. It is safe to
// call more than once.
func (m *Main) Close() error {
	var errs []error
	for i := len(m.closers) - 1; i >= 0; i-- {
		errs = append(errs, m.closers[i]())
	}
	m.closers = nil
	return errors.Join(errs...)
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("sitechat"),
		kong.Description("Index a website and ask questions answered only from its content."),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'sitechat --help' to see available commands")
	}
	for _, a := range args {
		if a == "help" || a == "--help" || a == "-h" {
			_, _ = parser.Parse(args)
			return nil
		}
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}
	cmd := strings.Fields(kongCtx.Command())[0]

	cfg, configPath, err := m.loadConfig(cli)
	if err != nil {
		return err
	}
	if cmd == "index" {
		if cli.Index.MaxPages > 0 {
			cfg.Crawler.MaxPages = cli.Index.MaxPages
		}
		if cli.Index.Dump != "" {
			cfg.Index.DumpDir = cli.Index.Dump
		}
	}

	level := slog.LevelWarn
	if cli.Debug {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
		Stdin:  m.Stdin,
		Config: cfg,

		ConfigPath: configPath,
	}

	var validator sitechat.URLValidator = sitechathttp.NewValidator(
		sitechathttp.WithTimeout(cfg.Validator.Timeout),
		sitechathttp.WithUserAgent(cfg.Crawler.UserAgent),
	)
	if cli.Debug {
		validator = sitechatslog.NewLoggingValidator(validator, logger)
	}
	deps.Validator = validator

	if cmd != "config" && cmd != "validate" {
		svc, err := m.wire(ctx, cmd, cli, cfg, logger, stderr)
		if err != nil {
			return err
		}
		svc.Validator = validator
		deps.Service = svc
	}

	return kongCtx.Run(deps)
}

// loadConfig reads the config file and applies environment and flag
// overrides, in that order of increasing precedence.
func (m *Main) loadConfig(cli *CLI) (*sitechat.Config, string, error) {
	path := cli.Config
	if path == "" {
		path = m.Getenv("SITECHAT_CONFIG")
	}
	if path == "" {
		var err error
		if path, err = yaml.DefaultPath(); err != nil {
			return nil, "", err
		}
	}

	cfg, err := yaml.Load(path)
	if err != nil {
		return nil, "", fmt.Errorf("failed to load config %q: %w", path, err)
	}

	if host := m.Getenv("OLLAMA_HOST"); host != "" {
		if !strings.Contains(host, "://") {
			host = "http://" + host
		}
		cfg.Embedding.BaseURL = host
		cfg.Generation.BaseURL = host
	}
	if p := m.Getenv("SITECHAT_DB"); p != "" {
		cfg.Store.Path = p
	}
	if cli.DB != "" {
		cfg.Store.Path = cli.DB
	}
	if cfg.Store.Path == "" {
		cfg.Store.Path = defaultDBPath()
	}
	return cfg, path, nil
}

// wire builds the service for cmd. The crawler and its browser are only
// built for index; backends are only built for commands that use them.
func (m *Main) wire(ctx context.Context, cmd string, cli *CLI, cfg *sitechat.Config, logger *slog.Logger, stderr io.Writer) (*rag.Service, error) {
	svc := &rag.Service{
		Config:   cfg,
		Logger:   logger,
		Chunker:  chunk.NewChunker(cfg.Chunker.Size, cfg.Chunker.Overlap),
		Sessions: memory.NewSessionService(cfg.Session.MaxMessages, cfg.Session.ContextMessages),
	}

	var store sitechat.VectorStore
	if cli.Ephemeral {
		store = memory.NewVectorStore(cfg.Store.Collection)
	} else {
		if err := os.MkdirAll(filepath.Dir(cfg.Store.Path), 0o755); err != nil {
			return nil, err
		}
		m.DB = sqlite.NewDB(cfg.Store.Path)
		if err := m.DB.Open(); err != nil {
			fmt.Fprintf(stderr, "Hint: Set SITECHAT_DB or --db to use a different database path\n")
			return nil, fmt.Errorf("failed to open database at %q: %w", cfg.Store.Path, err)
		}
		m.closers = append(m.closers, m.DB.Close)
		store = sqlite.NewVectorStore(m.DB, cfg.Store.Collection)
	}

	var gc *genai.Client
	geminiClient := func() (*genai.Client, error) {
		if gc != nil {
			return gc, nil
		}
		apiKey := m.Getenv("GEMINI_API_KEY")
		if apiKey == "" {
			fmt.Fprintln(stderr, "GEMINI_API_KEY environment variable not set. Get an API key at https://aistudio.google.com/apikey")
			return nil, sitechat.Errorf(sitechat.EINVALID, "GEMINI_API_KEY not set")
		}
		c, err := genai.NewClient(ctx, &genai.ClientConfig{
			APIKey:  apiKey,
			Backend: genai.BackendGeminiAPI,
		})
		if err != nil {
			fmt.Fprintln(stderr, "Hint: Check your GEMINI_API_KEY is valid")
			return nil, fmt.Errorf("failed to connect to Gemini API: %w", err)
		}
		gc = c
		return gc, nil
	}

	embedder, err := newEmbedder(cfg, geminiClient)
	if err != nil {
		return nil, err
	}
	generator, err := newGenerator(cfg, geminiClient)
	if err != nil {
		return nil, err
	}

	if cli.Debug {
		store = sitechatslog.NewLoggingVectorStore(store, logger)
		embedder = sitechatslog.NewLoggingEmbedder(embedder, logger)
		generator = sitechatslog.NewLoggingGenerator(generator, logger)
	}
	svc.Store = store
	svc.Embedder = embedder
	svc.Generator = generator

	if cmd != "index" {
		return svc, nil
	}

	crawler, err := m.newCrawler(cfg, cli.Debug, logger, stderr)
	if err != nil {
		return nil, err
	}
	svc.Crawler = crawler

	if cfg.Index.CountTokens {
		tc, err := gemini.NewTokenCounter(gemini.DefaultTokenizerModel)
		if err != nil {
			return nil, fmt.Errorf("failed to create token counter: %w", err)
		}
		svc.Tokens = tc
	}
	if cfg.Index.DumpDir != "" {
		svc.Pages = fs.NewWriter(cfg.Index.DumpDir)
	}
	return svc, nil
}

func (m *Main) newCrawler(cfg *sitechat.Config, debug bool, logger *slog.Logger, stderr io.Writer) (*crawl.Crawler, error) {
	cc := cfg.Crawler

	var fetcher sitechat.Fetcher
	switch cc.Fetcher {
	case sitechat.FetcherRod:
		f, err := rod.NewFetcher(rod.WithFetchTimeout(cc.Timeout), rod.WithUserAgent(cc.UserAgent))
		if err != nil {
			fmt.Fprintln(stderr, "Hint: Chrome or Chromium must be installed")
			return nil, fmt.Errorf("failed to start browser: %w", err)
		}
		m.closers = append(m.closers, f.Close)
		fetcher = f
	default:
		fetcher = sitechathttp.NewFetcher(sitechathttp.WithTimeout(cc.Timeout), sitechathttp.WithUserAgent(cc.UserAgent))
	}

	var extractor sitechat.Extractor
	switch cc.Extractor {
	case sitechat.ExtractorTrafilatura:
		extractor = trafilatura.NewExtractor(htmltomarkdown.NewConverter())
	case sitechat.ExtractorReadability:
		extractor = readability.NewExtractor(htmltomarkdown.NewConverter())
	default:
		extractor = goquery.NewExtractor()
	}

	var links sitechat.LinkSelector = goquery.NewLinkSelector()
	var sitemaps sitechat.SitemapService
	if cc.UseSitemap {
		sitemaps = sitechathttp.NewSitemapService(nil, sitechathttp.WithTimeout(cc.Timeout), sitechathttp.WithUserAgent(cc.UserAgent))
	}

	if debug {
		fetcher = sitechatslog.NewLoggingFetcher(fetcher, logger)
		links = sitechatslog.NewLoggingLinkSelector(links, logger)
		if sitemaps != nil {
			sitemaps = sitechatslog.NewLoggingSitemapService(sitemaps, logger)
		}
	}

	return &crawl.Crawler{
		Fetcher:     fetcher,
		Extractor:   extractor,
		Links:       links,
		RateLimiter: crawl.NewDomainLimiter(cc.Delay),
		Sitemaps:    sitemaps,
		Logger:      logger,
		MaxPages:    cc.MaxPages,
		MaxLinks:    cc.MaxLinksPerPage,
		RetryDelays: cc.RetryDelays,
	}, nil
}

func newEmbedder(cfg *sitechat.Config, geminiClient func() (*genai.Client, error)) (sitechat.Embedder, error) {
	ec := cfg.Embedding
	switch ec.Provider {
	case sitechat.ProviderGemini:
		client, err := geminiClient()
		if err != nil {
			return nil, err
		}
		model := modelFor(ec.Model, gemini.DefaultEmbeddingModel, ollama.DefaultEmbeddingModel)
		return gemini.NewEmbedder(client, model, gemini.WithBatchSize(ec.BatchSize)), nil
	default:
		client := ollama.NewClient(ollama.WithBaseURL(ec.BaseURL))
		model := modelFor(ec.Model, ollama.DefaultEmbeddingModel, gemini.DefaultEmbeddingModel)
		return ollama.NewEmbedder(client, model), nil
	}
}

func newGenerator(cfg *sitechat.Config, geminiClient func() (*genai.Client, error)) (sitechat.Generator, error) {
	gc := cfg.Generation
	switch gc.Provider {
	case sitechat.ProviderGemini:
		client, err := geminiClient()
		if err != nil {
			return nil, err
		}
		return gemini.NewGenerator(client, modelFor(gc.Model, gemini.DefaultModel, ollama.DefaultModel)), nil
	case sitechat.ProviderOllama:
		client := ollama.NewClient(ollama.WithBaseURL(gc.BaseURL))
		return ollama.NewGenerator(client, modelFor(gc.Model, ollama.DefaultModel, gemini.DefaultModel)), nil
	default:
		return extractive.NewGenerator(), nil
	}
}

// modelFor returns model, or fallback when model is empty or names the
// other provider's default.
func modelFor(model, fallback, otherDefault string) string {
	if model == "" || model == otherDefault {
		return fallback
	}
	return model
}

func defaultDBPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "sitechat.db"
	}
	return filepath.Join(home, ".sitechat", "sitechat.db")
}
