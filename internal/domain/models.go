// Package domain contains core data types shared across the notes recovery tool.
// These are pure data structures with no behavior - the "nouns" of the application.
package domain

import "time"

// CacheVersion is incremented when the cache format changes.
// Old, incompatible caches are rejected and rebuilt.
const CacheVersion = 2

// DefaultMaxTokens is the default token limit for query responses.
const DefaultMaxTokens = 500

// Entry is one recovered diary/note record.
//
// Example: the line "20230401-Morning" followed by "Woke up early."
// becomes Entry{Title: "20230401-Morning", Content: "Woke up early."}.
type Entry struct {
	// Title is the recognized title line (date-prefixed or marker title)
	Title string `json:"title"`

	// Content is the cleaned body, lines joined by newlines
	Content string `json:"content"`

	// Order is the position at which the title was first seen in the input
	Order int `json:"order"`

	// Terms is a list of normalized, searchable words extracted from Title and Content.
	Terms []string `json:"terms,omitempty"`
}

// DedupStats describes what the entry deduplicator dropped.
type DedupStats struct {
	Input      int `json:"input"`
	Kept       int `json:"kept"`
	Duplicates int `json:"duplicates"`

	// DroppedEmpty counts entries whose content was empty after trimming.
	DroppedEmpty int `json:"dropped_empty"`

	// DroppedShort counts entries with some content, but not enough to keep.
	DroppedShort int `json:"dropped_short"`

	// DroppedCleaned counts entries that fell below the threshold only after
	// chrome filtering and paragraph dedup.
	DroppedCleaned int `json:"dropped_cleaned"`

	// ParagraphsDropped counts near-duplicate paragraphs removed.
	ParagraphsDropped int `json:"paragraphs_dropped"`
}

// Export is one recovery run over a raw text source.
// Once created, an Export is cached to disk so identical input is not reprocessed.
type Export struct {
	// ExportID is derived from the raw text (SHA256 prefix)
	ExportID string `json:"export_id"`

	// Source is the file path or URL the raw text came from
	Source string `json:"source"`

	// SourceHash is a SHA256 hash of the raw text
	SourceHash string `json:"source_hash"`

	// Format is the input shape the entries were parsed from ("lines" or "marker")
	Format string `json:"format"`

	// ExportedAt is when the document was assembled
	ExportedAt time.Time `json:"exported_at"`

	// Entries is the final, deduplicated and cleaned entry list
	Entries []Entry `json:"entries"`

	// Document is the assembled text written to OutputPath
	Document string `json:"document"`

	// OutputPath is where the document was persisted (empty if not written)
	OutputPath string `json:"output_path,omitempty"`

	// FallbackPath is set when no entries were recovered and the raw page text was saved instead
	FallbackPath string `json:"fallback_path,omitempty"`

	Stats DedupStats `json:"stats"`

	// Version identifies the cache format version
	Version int `json:"version"`
}

// Section is a titled block of an export, as split by title markers.
type Section struct {
	Title string `json:"title"`
	Line  int    `json:"line"` // 1-indexed line of the title marker
	Text  string `json:"text"`
}

// TitleStat reports how much text follows one title marker.
type TitleStat struct {
	Title      string `json:"title"`
	Line       int    `json:"line"`
	Characters int    `json:"characters"` // non-blank characters up to the next title
	BlankLines int    `json:"blank_lines"`
	Empty      bool   `json:"empty"`
}
