// Package parser segments raw scraped text into note entries.
// Lines are classified by an ordered list of named matchers and fed through
// a two-state machine; no NLP, just the shapes the notes site renders.
package parser

import (
	"log/slog"
	"strings"
	"unicode/utf8"

	"github.com/egoistcookie/playWright/internal/domain"
	"github.com/egoistcookie/playWright/internal/text"
)

// DefaultMinContentLen is the trimmed content length an entry must exceed
// to be kept.
const DefaultMinContentLen = 5

// Parser turns raw text into an ordered entry sequence.
// Entries are not yet deduplicated by title.
type Parser interface {
	Parse(content string) []domain.Entry
}

// EntryParser is the line state machine for flat page text: a title line
// opens an entry, body lines are appended, and the next title, a file-info
// line or end of input closes it.
type EntryParser struct {
	classifier *Classifier
	minLen     int
	logger     *slog.Logger
}

// Option configures an EntryParser.
type Option func(*EntryParser)

// WithLogger sets the logger for segmentation diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(p *EntryParser) {
		if logger != nil {
			p.logger = logger
		}
	}
}

// WithMinContentLen overrides DefaultMinContentLen.
func WithMinContentLen(n int) Option {
	return func(p *EntryParser) {
		if n >= 0 {
			p.minLen = n
		}
	}
}

// WithClassifier replaces the default line classifier.
func WithClassifier(c *Classifier) Option {
	return func(p *EntryParser) {
		if c != nil {
			p.classifier = c
		}
	}
}

// NewEntryParser creates a parser with the default title patterns and
// noise vocabulary.
func NewEntryParser(opts ...Option) *EntryParser {
	p := &EntryParser{
		classifier: NewClassifier(nil, nil),
		minLen:     DefaultMinContentLen,
		logger:     slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// LongEnough reports whether trimmed content exceeds minLen characters.
func LongEnough(content string, minLen int) bool {
	return utf8.RuneCountInString(strings.TrimSpace(content)) > minLen
}

// Parse runs the state machine over content. It never fails: lines outside
// an entry that are not titles are dropped as chrome.
func (p *EntryParser) Parse(content string) []domain.Entry {
	var (
		entries []domain.Entry
		cur     *domain.Entry
		body    strings.Builder
	)

	emit := func() {
		cur.Content = body.String()
		cur.Order = len(entries)
		entries = append(entries, *cur)
		cur = nil
		body.Reset()
	}

	for i, raw := range strings.Split(content, "\n") {
		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}

		cls := p.classifier.Classify(line)
		switch cls.Kind {
		case Noise:
			p.logger.Debug("parser: noise line dropped", "line", i+1)

		case FileInfo:
			if cur != nil && body.Len() > 0 {
				emit()
			}

		case Title:
			if cur != nil {
				if LongEnough(body.String(), p.minLen) {
					emit()
				} else {
					p.logger.Debug("parser: short entry replaced", "title", cur.Title)
				}
			}
			cur = &domain.Entry{Title: line}
			body.Reset()

		case Body:
			if cur == nil {
				continue
			}
			stripped := text.StripMetadata(line)
			if stripped == "" {
				continue
			}
			if body.Len() > 0 {
				body.WriteByte('\n')
			}
			body.WriteString(stripped)
		}
	}

	if cur != nil {
		tail := text.StripMetadata(body.String())
		if LongEnough(tail, p.minLen) {
			body.Reset()
			body.WriteString(tail)
			emit()
		}
	}

	p.logger.Debug("parser: segmented", "entries", len(entries))
	return entries
}
