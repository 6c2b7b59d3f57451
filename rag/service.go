package rag

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/harshydav08/sitechat"
)

// Index and status messages.
const (
	msgNoPages  = "No content could be extracted from the website"
	msgNoChunks = "No meaningful content could be processed from the crawled pages"

	StatusHealthy = "healthy"
	StatusError   = "error"
)

// Ensure Service implements the orchestration interfaces at compile time.
var (
	_ sitechat.Indexer = (*Service)(nil)
	_ sitechat.Asker   = (*Service)(nil)
)

// Service runs the index and ask pipelines over its collaborators. Failures
// are reported in result values; no method panics or returns a raw backend
// error for index or ask.
type Service struct {
	Validator sitechat.URLValidator
	Crawler   sitechat.Crawler
	Chunker   sitechat.Chunker
	Embedder  sitechat.Embedder
	Generator sitechat.Generator
	Store     sitechat.VectorStore
	Sessions  sitechat.SessionService

	// Retriever and Synthesizer default to the package implementations
	// built from Embedder, Store, Generator and Config.
	Retriever   sitechat.Retriever
	Synthesizer sitechat.Synthesizer

	// Tokens counts chunk tokens when Config.Index.CountTokens is set.
	// Optional.
	Tokens sitechat.TokenCounter

	// Pages receives the crawled pages before chunking. Optional.
	Pages sitechat.PageWriter

	// Config defaults to sitechat.DefaultConfig().
	Config *sitechat.Config

	// Logger defaults to discarding output.
	Logger *slog.Logger
}

// Index crawls url and replaces its chunks in the store.
func (s *Service) Index(ctx context.Context, url string) *sitechat.IndexResult {
	return s.IndexWithProgress(ctx, url, nil)
}

// IndexWithProgress is Index with crawl progress reported to progress.
func (s *Service) IndexWithProgress(ctx context.Context, rawURL string, progress sitechat.ProgressFunc) *sitechat.IndexResult {
	cfg := s.config()
	logger := s.logger()
	res := &sitechat.IndexResult{Stats: sitechat.IndexStats{URL: rawURL}}

	fail := func(stage sitechat.IndexStage, code, msg string) *sitechat.IndexResult {
		res.Stage = stage
		res.Code = code
		res.Error = msg
		logger.Warn("index failed", "url", res.Stats.URL, "stage", stage, "err", msg)
		return res
	}
	failErr := func(stage sitechat.IndexStage, err error) *sitechat.IndexResult {
		return fail(stage, sitechat.ErrorCode(err), "Failed to index website: "+sitechat.ErrorMessage(err))
	}

	v := s.Validator.Validate(ctx, rawURL)
	if !v.Valid {
		return fail(sitechat.StageValidate, sitechat.EINVALID, v.Reason)
	}
	res.Stats.URL = v.URL

	pages, err := s.Crawler.Crawl(ctx, v.URL, progress)
	res.Stats.PagesCrawled = len(pages)
	if err != nil {
		return failErr(sitechat.StageCrawl, err)
	}
	if len(pages) == 0 {
		return fail(sitechat.StageCrawl, sitechat.ENOTFOUND, msgNoPages)
	}
	logger.Info("crawled", "url", v.URL, "pages", len(pages))

	if s.Pages != nil {
		if err := s.Pages.WritePages(ctx, pages); err != nil {
			logger.Warn("write pages failed", "err", err)
		}
	}

	var chunks []*sitechat.TextChunk
	for _, p := range pages {
		text := s.Chunker.Clean(p.Content)
		if strings.TrimSpace(text) == "" {
			continue
		}
		chunks = append(chunks, s.Chunker.Chunk(text, sitechat.PageMetadata{
			SourceURL:         p.URL,
			PageTitle:         p.Title,
			OriginalWordCount: p.WordCount,
		})...)
	}
	if len(chunks) == 0 {
		return fail(sitechat.StageChunk, sitechat.ENOTFOUND, msgNoChunks)
	}

	summary := sitechat.SummarizeChunks(chunks)
	res.Stats.ChunksCreated = summary.TotalChunks
	res.Stats.TotalWords = summary.TotalWords
	res.Stats.AverageChunkSize = summary.AverageChunkSize
	res.Stats.EmbeddingModel = s.Embedder.Model()
	if cfg.Index.CountTokens && s.Tokens != nil {
		res.Stats.TotalTokens = s.countTokens(ctx, chunks)
	}

	texts := make([]string, len(chunks))
	for i, c := range chunks {
		texts[i] = c.Content
	}
	vectors, err := s.Embedder.Embed(ctx, texts)
	if err != nil {
		return failErr(sitechat.StageEmbed, err)
	}
	if len(vectors) != len(chunks) {
		return failErr(sitechat.StageEmbed, sitechat.Errorf(sitechat.EINTERNAL, "embedder returned %d vectors for %d chunks", len(vectors), len(chunks)))
	}

	records := make([]*sitechat.VectorRecord, len(chunks))
	for i, c := range chunks {
		meta := c.Metadata.Map()
		meta[sitechat.MetaSiteURL] = v.URL
		records[i] = &sitechat.VectorRecord{
			ID:        c.ID,
			Content:   c.Content,
			Metadata:  meta,
			Embedding: vectors[i],
		}
	}

	if err := s.replaceSite(ctx, v.URL, records); err != nil {
		return failErr(sitechat.StageStore, err)
	}

	total, err := s.Store.Count(ctx)
	if err != nil {
		return failErr(sitechat.StageStore, err)
	}
	res.Stats.TotalChunksInDB = total

	res.Success = true
	res.Message = fmt.Sprintf("Successfully indexed %d pages with %d chunks", len(pages), len(chunks))
	logger.Info("indexed", "url", v.URL, "pages", len(pages), "chunks", len(chunks))
	return res
}

// replaceSite removes the chunks previously stored for site and writes
// records in their place.
func (s *Service) replaceSite(ctx context.Context, site string, records []*sitechat.VectorRecord) error {
	filter := sitechat.Metadata{sitechat.MetaSiteURL: site}
	exists, err := s.Store.ExistsWhere(ctx, filter)
	if err != nil {
		return err
	}
	if exists {
		n, err := s.Store.DeleteWhere(ctx, filter)
		if err != nil {
			return err
		}
		s.logger().Info("removed previous chunks", "url", site, "count", n)
	}
	return s.Store.Upsert(ctx, records)
}

// countTokens sums token counts over chunks. Counting errors are logged
// and the partial sum is kept.
func (s *Service) countTokens(ctx context.Context, chunks []*sitechat.TextChunk) int {
	var total int
	for _, c := range chunks {
		n, err := s.Tokens.CountTokens(ctx, c.Content)
		if err != nil {
			s.logger().Warn("count tokens failed", "id", c.ID, "err", err)
			return total
		}
		total += n
	}
	return total
}

// Ask answers question. When sessionID names an existing session, its
// recent messages feed retrieval and both turns are recorded.
func (s *Service) Ask(ctx context.Context, sessionID, question string) *sitechat.Answer {
	question = strings.TrimSpace(question)
	if question == "" {
		return failed(sitechat.ProcessingErrorAnswer, sitechat.Errorf(sitechat.EINVALID, "question required"))
	}

	tracked := sessionID != "" && s.Sessions != nil && s.Sessions.SessionExists(sessionID)
	var history []*sitechat.Message
	if tracked {
		history = s.Sessions.RecentContext(sessionID)
		s.Sessions.AppendMessage(sessionID, sitechat.RoleUser, question, nil)
	}

	answer := s.answer(ctx, question, history)

	if tracked {
		s.Sessions.AppendMessage(sessionID, sitechat.RoleAssistant, answer.Text, sitechat.Metadata{
			"confidence":  answer.Confidence,
			"sources":     answer.Sources,
			"chunks_used": answer.ChunksUsed,
		})
	}
	return answer
}

func (s *Service) answer(ctx context.Context, question string, history []*sitechat.Message) *sitechat.Answer {
	evidence, err := s.retriever().Retrieve(ctx, question, history)
	if err != nil {
		s.logger().Error("retrieve failed", "err", err)
		return failed(sitechat.ProcessingErrorAnswer, err)
	}
	s.logger().Debug("retrieved", "count", len(evidence))

	answer := s.synthesizer().Synthesize(ctx, question, evidence, history)
	if answer.Failed() {
		s.logger().Error("synthesize failed", "err", answer.Error)
	}
	return answer
}

// Status reports store, memory and model settings. A store failure yields
// StatusError with the cause in Error.
func (s *Service) Status(ctx context.Context) *sitechat.SystemStatus {
	cfg := s.config()
	st := &sitechat.SystemStatus{
		Status:              StatusHealthy,
		ChunkSize:           cfg.Chunker.Size,
		ChunkOverlap:        cfg.Chunker.Overlap,
		TopK:                cfg.Retrieval.TopK,
		SimilarityThreshold: cfg.Retrieval.SimilarityThreshold,
		MaxPages:            cfg.Crawler.MaxPages,
	}
	if s.Embedder != nil {
		st.EmbeddingModel = s.Embedder.Model()
	}
	if s.Generator != nil {
		st.GenerationModel = s.Generator.Model()
	}
	if s.Sessions != nil {
		st.Memory = s.Sessions.Stats()
	}

	stats, err := s.Store.Stats(ctx)
	if err != nil {
		st.Status = StatusError
		st.Error = sitechat.ErrorMessage(err)
		return st
	}
	st.Collection = stats
	return st
}

// ClearDatabase removes every stored chunk.
func (s *Service) ClearDatabase(ctx context.Context) error {
	if err := s.Store.Clear(ctx); err != nil {
		return err
	}
	s.logger().Info("database cleared")
	return nil
}

// CreateSession starts a conversation.
func (s *Service) CreateSession() string {
	return s.Sessions.CreateSession()
}

// History returns every retained message of a session.
func (s *Service) History(sessionID string) []*sitechat.Message {
	return s.Sessions.History(sessionID)
}

// ClearSession deletes a session.
func (s *Service) ClearSession(sessionID string) bool {
	return s.Sessions.ClearSession(sessionID)
}

// SessionInfo summarizes a session.
func (s *Service) SessionInfo(sessionID string) (*sitechat.SessionInfo, error) {
	return s.Sessions.SessionInfo(sessionID)
}

// ListSessions summarizes every session.
func (s *Service) ListSessions() []*sitechat.SessionInfo {
	return s.Sessions.Sessions()
}

// SessionExists reports whether a session exists.
func (s *Service) SessionExists(sessionID string) bool {
	return s.Sessions.SessionExists(sessionID)
}

// MemoryStats aggregates conversation memory usage.
func (s *Service) MemoryStats() sitechat.MemoryStats {
	return s.Sessions.Stats()
}

// SweepSessions removes sessions idle longer than maxAge, or than
// Config.Session.MaxAge when maxAge is not positive.
func (s *Service) SweepSessions(maxAge time.Duration) int {
	if maxAge <= 0 {
		maxAge = s.config().Session.MaxAge
	}
	n := s.Sessions.SweepExpired(maxAge)
	if n > 0 {
		s.logger().Info("swept sessions", "count", n)
	}
	return n
}

func (s *Service) retriever() sitechat.Retriever {
	if s.Retriever != nil {
		return s.Retriever
	}
	cfg := s.config()
	return NewRetriever(s.Embedder, s.Store,
		WithTopK(cfg.Retrieval.TopK),
		WithSimilarityThreshold(cfg.Retrieval.SimilarityThreshold),
		WithHistoryMessages(cfg.Retrieval.HistoryMessages),
	)
}

func (s *Service) synthesizer() sitechat.Synthesizer {
	if s.Synthesizer != nil {
		return s.Synthesizer
	}
	cfg := s.config()
	return NewSynthesizer(s.Generator, sitechat.GenerateOptions{
		Temperature: cfg.Generation.Temperature,
		MaxTokens:   cfg.Generation.MaxTokens,
	})
}

func (s *Service) config() *sitechat.Config {
	if s.Config == nil {
		return sitechat.DefaultConfig()
	}
	return s.Config
}

func (s *Service) logger() *slog.Logger {
	if s.Logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return s.Logger
}
