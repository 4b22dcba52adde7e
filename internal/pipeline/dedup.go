package pipeline

import (
	"strings"
	"unicode/utf8"

	"github.com/egoistcookie/playWright/internal/domain"
	"github.com/egoistcookie/playWright/internal/parser"
	"github.com/egoistcookie/playWright/internal/text"
)

// DedupEntries collapses entries sharing a title. Content is metadata
// stripped first; entries whose trimmed content is minLen characters or
// fewer are dropped. On a title collision the longer content replaces the
// kept one, and a tie keeps the first. Output follows first-seen title
// order and Order is renumbered from 0.
func DedupEntries(entries []domain.Entry, minLen int) ([]domain.Entry, domain.DedupStats) {
	stats := domain.DedupStats{Input: len(entries)}
	slot := make(map[string]int, len(entries))
	out := make([]domain.Entry, 0, len(entries))

	for _, e := range entries {
		e.Content = text.StripMetadata(e.Content)

		if !parser.LongEnough(e.Content, minLen) {
			if strings.TrimSpace(e.Content) == "" {
				stats.DroppedEmpty++
			} else {
				stats.DroppedShort++
			}
			continue
		}

		if i, ok := slot[e.Title]; ok {
			stats.Duplicates++
			if utf8.RuneCountInString(e.Content) > utf8.RuneCountInString(out[i].Content) {
				out[i] = e
			}
			continue
		}

		slot[e.Title] = len(out)
		out = append(out, e)
	}

	for i := range out {
		out[i].Order = i
	}
	stats.Kept = len(out)
	return out, stats
}
