package text

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// DefaultSystemKeywords are words that show up when script source, rather
// than note text, leaks into a scraped block.
var DefaultSystemKeywords = []string{"function", "window", "document", "console", "Object", "Array", "JSON"}

var bracketRe = regexp.MustCompile(`[{}()\[\]]`)

// ValidityRules tunes LooksLikeContent.
type ValidityRules struct {
	MinLength      int      // shorter blocks are rejected (default 10)
	KeywordCutoff  int      // more system keywords than this rejects (default 3)
	MaxTags        int      // more HTML tags than this rejects (default 10)
	MaxBracketRate float64  // bracket characters above this share of length reject (default 0.1)
	SystemKeywords []string // default DefaultSystemKeywords
}

// DefaultValidityRules returns the thresholds tuned against the notes web app.
func DefaultValidityRules() ValidityRules {
	return ValidityRules{
		MinLength:      10,
		KeywordCutoff:  3,
		MaxTags:        10,
		MaxBracketRate: 0.1,
		SystemKeywords: DefaultSystemKeywords,
	}
}

// LooksLikeContent reports whether a scraped block reads like note text
// rather than markup or script.
func (r ValidityRules) LooksLikeContent(block string) bool {
	trimmed := strings.TrimSpace(block)
	if utf8.RuneCountInString(trimmed) < r.MinLength {
		return false
	}

	lower := strings.ToLower(block)
	hits := 0
	for _, kw := range r.SystemKeywords {
		if strings.Contains(lower, strings.ToLower(kw)) {
			hits++
		}
	}
	if hits > r.KeywordCutoff {
		return false
	}

	if len(htmlTagRe.FindAllStringIndex(block, -1)) > r.MaxTags {
		return false
	}

	brackets := len(bracketRe.FindAllStringIndex(block, -1))
	return float64(brackets) <= float64(utf8.RuneCountInString(block))*r.MaxBracketRate
}

// LooksLikeContent applies DefaultValidityRules.
func LooksLikeContent(block string) bool {
	return DefaultValidityRules().LooksLikeContent(block)
}
