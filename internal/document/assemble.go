// Package document renders recovered entries into the exported text
// document and works with exports after the fact: splitting them by title
// and reporting per-title statistics.
package document

import (
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/egoistcookie/playWright/internal/domain"
)

const (
	// DefaultTitle heads every export.
	DefaultTitle = "有道云笔记 - 日记内容汇总"

	// TimestampLayout renders the export time the way the zh-CN locale does.
	TimestampLayout = "2006/1/2 15:04:05"

	// DefaultFallbackLimit caps the fallback document, in characters.
	DefaultFallbackLimit = 10000

	headerRule = "=================================="
	entryRule  = "---"

	fallbackHeading = "# 页面文本内容\n\n"
)

// Assemble renders entries under a header with the export time and count.
// Entry content is written as given; cleaning happens before this point.
// An empty entry list still yields a header with count 0.
func Assemble(title string, entries []domain.Entry, at time.Time) string {
	if strings.TrimSpace(title) == "" {
		title = DefaultTitle
	}

	size := len(title) + 128
	for _, e := range entries {
		size += len(e.Title) + len(e.Content) + 16
	}

	var sb strings.Builder
	sb.Grow(size)

	sb.WriteString("# ")
	sb.WriteString(title)
	sb.WriteString("\n\n导出时间: ")
	sb.WriteString(at.Format(TimestampLayout))
	sb.WriteString("\n\n导出条目数: ")
	sb.WriteString(strconv.Itoa(len(entries)))
	sb.WriteString("\n\n")
	sb.WriteString(headerRule)
	sb.WriteString("\n\n")

	for i, e := range entries {
		sb.WriteString("## ")
		sb.WriteString(e.Title)
		sb.WriteString("\n\n")
		sb.WriteString(e.Content)
		sb.WriteString("\n\n")
		if i < len(entries)-1 {
			sb.WriteString(entryRule)
			sb.WriteString("\n\n")
		}
	}

	return sb.String()
}

// Fallback renders raw page text when no entry could be recovered,
// truncated to limit characters. A limit <= 0 uses DefaultFallbackLimit.
func Fallback(raw string, limit int) string {
	if limit <= 0 {
		limit = DefaultFallbackLimit
	}
	return fallbackHeading + truncateRunes(raw, limit)
}

func truncateRunes(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	i := 0
	for pos := range s {
		if i == n {
			return s[:pos]
		}
		i++
	}
	return s
}
