package text

import (
	"regexp"
	"strings"
)

// DefaultSimilarityThreshold is the score above which two paragraphs are
// treated as the same paragraph rendered twice.
const DefaultSimilarityThreshold = 0.90

// paragraphBreakRe matches a blank-line boundary (whitespace-only lines count as blank).
var paragraphBreakRe = regexp.MustCompile(`\n\s*\n`)

// SplitParagraphs splits text on blank lines, trims each paragraph and
// discards empty ones.
func SplitParagraphs(content string) []string {
	parts := paragraphBreakRe.Split(content, -1)
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

// DedupParagraphs removes near-duplicate paragraphs from content.
// Paragraphs are visited in order; one is dropped when its similarity to any
// already kept paragraph exceeds threshold. Kept paragraphs are rejoined with
// a blank line. A threshold <= 0 uses DefaultSimilarityThreshold.
func DedupParagraphs(content string, threshold float64) string {
	kept, _ := dedupParagraphs(content, threshold)
	return strings.Join(kept, "\n\n")
}

// DedupParagraphsCount is DedupParagraphs that also reports how many
// paragraphs were dropped.
func DedupParagraphsCount(content string, threshold float64) (string, int) {
	kept, dropped := dedupParagraphs(content, threshold)
	return strings.Join(kept, "\n\n"), dropped
}

func dedupParagraphs(content string, threshold float64) ([]string, int) {
	if threshold <= 0 {
		threshold = DefaultSimilarityThreshold
	}

	paragraphs := SplitParagraphs(content)
	kept := make([]string, 0, len(paragraphs))
	dropped := 0

	for _, p := range paragraphs {
		duplicate := false
		for _, k := range kept {
			if Similarity(p, k) > threshold {
				duplicate = true
				break
			}
		}
		if duplicate {
			dropped++
			continue
		}
		kept = append(kept, p)
	}

	return kept, dropped
}
