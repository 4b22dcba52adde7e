// Package pipeline orchestrates note recovery: fetching raw text, running
// the recovery core, persisting documents and caching exports.
// Dependency injection via interfaces makes it fully testable.
package pipeline

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/egoistcookie/playWright/internal/cache"
	"github.com/egoistcookie/playWright/internal/document"
	"github.com/egoistcookie/playWright/internal/domain"
	"github.com/egoistcookie/playWright/internal/fetcher"
	"github.com/egoistcookie/playWright/internal/parser"
	"github.com/egoistcookie/playWright/internal/search"
)

// Document name prefixes.
const (
	PrefixDiary    = "日记"
	PrefixFallback = "日记_替代方法"
)

// ErrNotRecovered is returned when a query names an export that is not cached.
var ErrNotRecovered = errors.New("export not recovered (call notes_recover first)")

// FileReader abstracts file system access for testability.
type FileReader interface {
	ReadFile(path string) ([]byte, error)
}

// Clock abstracts time access for reproducible tests.
type Clock interface {
	Now() time.Time
}

// Pipeline ties together fetching, recovery, persistence and search.
type Pipeline struct {
	cache    cache.Cache
	docs     cache.DocumentWriter
	fetcher  fetcher.Fetcher
	searcher search.Searcher
	reader   FileReader
	clock    Clock
	logger   *slog.Logger

	rules         Rules
	recoverer     *Recoverer
	fallbackLimit int
	minBlockLen   int
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithLogger sets the logger for the pipeline and its recoverer.
func WithLogger(logger *slog.Logger) Option {
	return func(p *Pipeline) {
		if logger != nil {
			p.logger = logger
		}
	}
}

// WithRules replaces DefaultRules.
func WithRules(r Rules) Option {
	return func(p *Pipeline) { p.rules = r }
}

// WithFallback sets the fallback document's character limit and the
// minimum block length used to extract it.
func WithFallback(limit, minBlockLen int) Option {
	return func(p *Pipeline) {
		p.fallbackLimit = limit
		p.minBlockLen = minBlockLen
	}
}

// New creates a Pipeline with all its dependencies injected.
func New(c cache.Cache, w cache.DocumentWriter, f fetcher.Fetcher, s search.Searcher, r FileReader, clk Clock, opts ...Option) *Pipeline {
	p := &Pipeline{
		cache:         c,
		docs:          w,
		fetcher:       f,
		searcher:      s,
		reader:        r,
		clock:         clk,
		logger:        slog.New(slog.DiscardHandler),
		rules:         DefaultRules(),
		fallbackLimit: document.DefaultFallbackLimit,
		minBlockLen:   parser.DefaultMinBlockLen,
	}
	for _, opt := range opts {
		opt(p)
	}
	p.recoverer = NewRecoverer(p.rules, p.logger)
	return p
}

// RecoverResult describes one recovered source.
type RecoverResult struct {
	ExportID     string
	Source       string
	Format       string
	NumEntries   int
	OutputPath   string
	FallbackPath string
	FromCache    bool
	ExportedAt   time.Time
	Stats        domain.DedupStats
}

func resultFor(exp *domain.Export, fromCache bool) *RecoverResult {
	return &RecoverResult{
		ExportID:     exp.ExportID,
		Source:       exp.Source,
		Format:       exp.Format,
		NumEntries:   len(exp.Entries),
		OutputPath:   exp.OutputPath,
		FallbackPath: exp.FallbackPath,
		FromCache:    fromCache,
		ExportedAt:   exp.ExportedAt,
		Stats:        exp.Stats,
	}
}

// ExportIDFor derives the export ID from raw text: the first 16 hex
// characters of its SHA256.
func ExportIDFor(raw string) (id, hash string) {
	sum := sha256.Sum256([]byte(raw))
	hash = hex.EncodeToString(sum[:])
	return hash[:16], hash
}

// RecoverSource fetches source, recovers its entries and writes the
// document. Identical raw text is served from cache unless force is set.
// When nothing is recovered from non-blank text, the page text is saved
// as a fallback document instead.
func (p *Pipeline) RecoverSource(ctx context.Context, source string, force bool) (*RecoverResult, error) {
	if strings.TrimSpace(source) == "" {
		return nil, errors.New("source is required")
	}

	raw, err := p.fetcher.Fetch(ctx, source)
	if err != nil {
		return nil, fmt.Errorf("fetch source: %w", err)
	}

	id, hash := ExportIDFor(raw)

	if !force {
		if cached, ok := p.lookup(id); ok && cached.SourceHash == hash {
			p.logger.Debug("recover: cache hit", "export_id", id, "source", source)
			return resultFor(cached, true), nil
		}
	}

	at := p.clock.Now()
	res := p.recoverer.Recover(raw, at)

	exp := &domain.Export{
		ExportID:   id,
		Source:     source,
		SourceHash: hash,
		Format:     res.Format,
		ExportedAt: at,
		Entries:    res.Entries,
		Document:   res.Document,
		Stats:      res.Stats,
		Version:    domain.CacheVersion,
	}

	switch {
	case len(res.Entries) > 0:
		path, err := p.docs.Save(PrefixDiary, res.Document, at)
		if err != nil {
			return nil, fmt.Errorf("save document: %w", err)
		}
		exp.OutputPath = path

	case strings.TrimSpace(raw) != "":
		fallback := document.Fallback(parser.ExtractBlocks(raw, p.minBlockLen), p.fallbackLimit)
		path, err := p.docs.Save(PrefixFallback, fallback, at)
		if err != nil {
			return nil, fmt.Errorf("save fallback document: %w", err)
		}
		exp.FallbackPath = path
		p.logger.Warn("recover: no entries, saved fallback", "source", source, "path", path)
	}

	p.cache.Set(id, exp)
	if err := p.cache.SaveToDisk(exp); err != nil {
		return nil, fmt.Errorf("save cache: %w", err)
	}

	return resultFor(exp, false), nil
}

// lookup checks memory, then disk, warming memory on a disk hit.
func (p *Pipeline) lookup(id string) (*domain.Export, bool) {
	if exp, err := p.cache.Get(id); err == nil {
		return exp, true
	}
	exp, err := p.cache.LoadFromDisk(id)
	if err != nil {
		if !errors.Is(err, cache.ErrNotFound) {
			p.logger.Warn("recover: unreadable cache entry", "export_id", id, "error", err)
		}
		return nil, false
	}
	p.cache.Set(id, exp)
	return exp, true
}

// Export returns a cached export by ID.
func (p *Pipeline) Export(exportID string) (*domain.Export, error) {
	if exportID == "" {
		return nil, errors.New("export_id is required")
	}
	exp, ok := p.lookup(exportID)
	if !ok {
		return nil, fmt.Errorf("%s: %w", exportID, ErrNotRecovered)
	}
	return exp, nil
}

// Query searches one export's entries, or all cached exports when
// exportID is empty, returning token-bounded excerpts.
func (p *Pipeline) Query(exportID string, q search.Query) (string, error) {
	if strings.TrimSpace(q.Text) == "" && strings.TrimSpace(q.Date) == "" {
		return "", errors.New("prompt or date is required")
	}

	if exportID != "" {
		exp, err := p.Export(exportID)
		if err != nil {
			return "", err
		}
		return p.searcher.Search(exp, q)
	}

	exports := p.List()
	if len(exports) == 0 {
		return "", ErrNotRecovered
	}

	merged := &domain.Export{Source: "all exports"}
	for _, exp := range exports {
		for _, e := range exp.Entries {
			e.Order = len(merged.Entries)
			merged.Entries = append(merged.Entries, e)
		}
	}
	return p.searcher.Search(merged, q)
}

// List returns all cached exports, newest first.
func (p *Pipeline) List() []*domain.Export {
	ids := p.cache.List()
	out := make([]*domain.Export, 0, len(ids))
	for _, id := range ids {
		if exp, ok := p.lookup(id); ok {
			out = append(out, exp)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].ExportedAt.After(out[j].ExportedAt)
	})
	return out
}

// Split writes one file per title marker of the export at path into
// outDir and returns the paths written. An empty outDir means
// document.DefaultSplitDir next to the file.
func (p *Pipeline) Split(path, outDir string) ([]string, error) {
	if outDir == "" {
		outDir = filepath.Join(filepath.Dir(path), document.DefaultSplitDir)
	}

	content, err := p.reader.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}

	sections := document.SplitSections(string(content))
	if len(sections) == 0 {
		return nil, fmt.Errorf("%s: no title markers found", path)
	}

	paths, err := document.WriteSections(outDir, sections)
	if err != nil {
		return paths, err
	}
	p.logger.Info("split: done", "path", path, "out", outDir, "files", len(paths))
	return paths, nil
}

// Stats reports per-title statistics for the export at path.
func (p *Pipeline) Stats(path string) (document.StatsReport, error) {
	content, err := p.reader.ReadFile(path)
	if err != nil {
		return document.StatsReport{}, fmt.Errorf("read file: %w", err)
	}
	return document.Stats(string(content)), nil
}

// OSFileReader is the production implementation using the real filesystem.
type OSFileReader struct{}

// ReadFile reads a file from the real filesystem.
func (OSFileReader) ReadFile(path string) ([]byte, error) {
	return os.ReadFile(path)
}

// RealClock uses the actual system time.
type RealClock struct{}

// Now returns the current time.
func (RealClock) Now() time.Time {
	return time.Now()
}
