package pipeline

import (
	"log/slog"
	"time"

	"github.com/egoistcookie/playWright/internal/document"
	"github.com/egoistcookie/playWright/internal/domain"
	"github.com/egoistcookie/playWright/internal/parser"
	"github.com/egoistcookie/playWright/internal/text"
)

// Input formats Recover understands.
const (
	FormatLines  = "lines"
	FormatMarker = "marker"
)

// Rules holds the tunable heuristics of a recovery run.
type Rules struct {
	Title               string
	SimilarityThreshold float64
	MinContentLen       int
	NavigationKeywords  []string
	NoiseKeywords       []string
}

// DefaultRules returns the thresholds tuned against the notes web app.
func DefaultRules() Rules {
	return Rules{
		Title:               document.DefaultTitle,
		SimilarityThreshold: text.DefaultSimilarityThreshold,
		MinContentLen:       parser.DefaultMinContentLen,
	}
}

// Result is the outcome of one recovery.
type Result struct {
	Format   string
	Entries  []domain.Entry
	Document string
	Stats    domain.DedupStats
}

// Recoverer turns raw page text into a cleaned, entry-structured document.
// It holds no external resources; Recover is a pure function of its input
// and the given time.
type Recoverer struct {
	rules   Rules
	lines   parser.Parser
	markers parser.Parser
	filter  *text.ContentFilter
	logger  *slog.Logger
}

// NewRecoverer builds a Recoverer. A nil logger discards diagnostics.
func NewRecoverer(rules Rules, logger *slog.Logger) *Recoverer {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	if rules.Title == "" {
		rules.Title = document.DefaultTitle
	}

	return &Recoverer{
		rules: rules,
		lines: parser.NewEntryParser(
			parser.WithClassifier(parser.NewClassifier(nil, rules.NoiseKeywords)),
			parser.WithMinContentLen(rules.MinContentLen),
			parser.WithLogger(logger),
		),
		markers: parser.NewMarkerParser(),
		filter:  text.NewContentFilter(rules.NavigationKeywords...),
		logger:  logger,
	}
}

// Recover segments raw, cleans each entry, deduplicates entries by title
// and assembles the document stamped with at. Title variants compete on
// their cleaned content. Marker-block input is parsed
// per marker; anything else goes through the line state machine.
func (r *Recoverer) Recover(raw string, at time.Time) Result {
	format, p := FormatLines, r.lines
	if parser.HasMarkers(raw) {
		format, p = FormatMarker, r.markers
	}

	segmented := p.Parse(raw)
	polished, cleanup := r.polish(segmented)
	entries, stats := DedupEntries(polished, r.rules.MinContentLen)
	stats.Input = len(segmented)
	stats.DroppedCleaned = cleanup.DroppedCleaned
	stats.ParagraphsDropped = cleanup.ParagraphsDropped

	for i := range entries {
		entries[i].Order = i
		entries[i].Terms = text.NormalizeTerms(entries[i].Title + " " + entries[i].Content)
	}

	r.logger.Info("recover: done",
		"format", format,
		"segmented", len(segmented),
		"kept", stats.Kept,
		"duplicates", stats.Duplicates,
		"dropped_empty", stats.DroppedEmpty,
		"dropped_short", stats.DroppedShort,
		"dropped_cleaned", stats.DroppedCleaned,
		"paragraphs_dropped", stats.ParagraphsDropped,
	)

	return Result{
		Format:   format,
		Entries:  entries,
		Document: document.Assemble(r.rules.Title, entries, at),
		Stats:    stats,
	}
}

// polish runs the chrome filter and paragraph dedup over each segmented
// entry. Entries already too short pass through for DedupEntries to count;
// entries the cleanup leaves too short are dropped here.
func (r *Recoverer) polish(entries []domain.Entry) ([]domain.Entry, domain.DedupStats) {
	var stats domain.DedupStats
	out := make([]domain.Entry, 0, len(entries))

	for _, e := range entries {
		if !parser.LongEnough(text.StripMetadata(e.Content), r.rules.MinContentLen) {
			out = append(out, e)
			continue
		}

		content := r.filter.Filter(e.Content)
		content, dropped := text.DedupParagraphsCount(content, r.rules.SimilarityThreshold)
		stats.ParagraphsDropped += dropped

		if !parser.LongEnough(content, r.rules.MinContentLen) {
			r.logger.Debug("recover: entry emptied by cleanup", "title", e.Title)
			stats.DroppedCleaned++
			continue
		}

		e.Content = content
		out = append(out, e)
	}
	return out, stats
}
