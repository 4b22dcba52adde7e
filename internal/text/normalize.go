// Package text provides the string-level building blocks of note recovery:
// edit distance, similarity, paragraph deduplication, UI chrome filtering and
// metadata stripping. Everything here is pure and safe for any input string.
package text

import (
	"regexp"
	"strings"
)

// tokenRe matches single Han characters or runs of ASCII word characters.
// Notes are mostly Chinese, which has no spaces to split on.
var tokenRe = regexp.MustCompile(`\p{Han}|[a-zA-Z0-9_]+`)

// htmlTagRe matches HTML tags like <a>, </p>, <div class="foo">
var htmlTagRe = regexp.MustCompile(`<[^>]+>`)

// htmlEntityRe matches HTML entities like &amp; &#39;
var htmlEntityRe = regexp.MustCompile(`&[a-zA-Z0-9#]+;`)

// Stopwords are common words filtered during term extraction.
var Stopwords = map[string]struct{}{
	"the": {}, "a": {}, "an": {}, "and": {}, "or": {}, "to": {},
	"of": {}, "in": {}, "for": {}, "with": {}, "on": {}, "at": {},
	"is": {}, "are": {}, "was": {}, "were": {}, "be": {}, "been": {},
	"it": {}, "its": {}, "this": {}, "that": {},
	// Chinese particles and pronouns that appear in nearly every entry
	"的": {}, "了": {}, "是": {}, "在": {}, "我": {}, "和": {},
	"也": {}, "就": {}, "都": {}, "有": {}, "这": {}, "个": {},
}

// IsStopword reports whether a normalized term is a stopword.
func IsStopword(term string) bool {
	_, ok := Stopwords[term]
	return ok
}

// StripHTML removes HTML tags and entities from text.
// Converts "<a href='x'>link</a> &amp; more" to "link & more"
func StripHTML(text string) string {
	text = htmlTagRe.ReplaceAllString(text, "")

	text = strings.ReplaceAll(text, "&amp;", "&")
	text = strings.ReplaceAll(text, "&lt;", "<")
	text = strings.ReplaceAll(text, "&gt;", ">")
	text = strings.ReplaceAll(text, "&quot;", "\"")
	text = strings.ReplaceAll(text, "&#39;", "'")
	text = strings.ReplaceAll(text, "&nbsp;", " ")

	return htmlEntityRe.ReplaceAllString(text, "")
}

// NormalizeTerms converts text into a list of searchable terms.
// It strips HTML, lowercases, tokenizes, removes stopwords, and skips
// single-byte tokens. Han characters become one term each.
//
// Example: "The Morning 散步" → ["morning", "散", "步"]
func NormalizeTerms(text string) []string {
	text = StripHTML(text)
	text = strings.ToLower(text)
	raw := tokenRe.FindAllString(text, -1)

	out := make([]string, 0, len(raw))
	for _, t := range raw {
		if len(t) <= 1 {
			continue
		}
		if IsStopword(t) {
			continue
		}
		out = append(out, t)
	}
	return out
}
