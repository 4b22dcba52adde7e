package parser

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// DefaultMinBlockLen is the character count a block must exceed to be kept.
const DefaultMinBlockLen = 10

// blockStartRe matches lines that open a block: a leading date or a
// markdown heading.
var blockStartRe = regexp.MustCompile(`^(?:\d{4}[-/]\d{2}[-/]\d{2}|\d{8}|\d{4}年\d{1,2}月\d{1,2}日|#)`)

// ExtractBlocks groups lines into blocks, each starting at a date-like line
// or heading, and keeps blocks longer than minLen characters. Lines before
// the first block start are dropped. Kept blocks
// are joined with a blank line. If nothing qualifies the input is returned
// unchanged. A minLen <= 0 uses DefaultMinBlockLen.
func ExtractBlocks(content string, minLen int) string {
	if minLen <= 0 {
		minLen = DefaultMinBlockLen
	}

	var (
		blocks  []string
		cur     []string
		size    int
		inBlock bool
	)

	flush := func() {
		if len(cur) > 0 && size > minLen {
			blocks = append(blocks, strings.Join(cur, "\n"))
		}
		cur = cur[:0]
		size = 0
	}

	for _, raw := range strings.Split(content, "\n") {
		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}
		if blockStartRe.MatchString(line) {
			flush()
			inBlock = true
		}
		if !inBlock {
			continue
		}
		cur = append(cur, line)
		size += utf8.RuneCountInString(line)
	}
	flush()

	if len(blocks) == 0 {
		return content
	}
	return strings.Join(blocks, "\n\n")
}
