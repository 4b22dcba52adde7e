package document

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/egoistcookie/playWright/internal/domain"
)

const markerPrefix = "###标题###["

// StatsReport summarizes the titles of a marker-format export.
type StatsReport struct {
	Titles     []domain.TitleStat `json:"titles"`
	EmptyNotes int                `json:"empty_notes"`
	EmptyRatio float64            `json:"empty_ratio"`
}

// Stats scans content for title marker lines and measures the text under
// each: non-blank characters and blank lines up to the next marker, or to
// the end of input for the last one.
func Stats(content string) StatsReport {
	lines := strings.Split(content, "\n")

	var report StatsReport
	var cur *domain.TitleStat

	closeCur := func() {
		if cur == nil {
			return
		}
		cur.Empty = cur.Characters == 0
		if cur.Empty {
			report.EmptyNotes++
		}
		report.Titles = append(report.Titles, *cur)
	}

	for i, raw := range lines {
		line := strings.TrimSpace(raw)
		if strings.HasPrefix(line, markerPrefix) {
			closeCur()
			cur = &domain.TitleStat{Title: markerTitle(line), Line: i + 1}
			continue
		}
		if cur == nil {
			continue
		}
		if line == "" {
			cur.BlankLines++
			continue
		}
		cur.Characters += utf8.RuneCountInString(line)
	}
	closeCur()

	if n := len(report.Titles); n > 0 {
		report.EmptyRatio = float64(report.EmptyNotes) / float64(n)
	}
	return report
}

// markerTitle returns the text between the marker prefix and the last "]".
func markerTitle(line string) string {
	t := strings.TrimPrefix(line, markerPrefix)
	if i := strings.LastIndex(t, "]"); i >= 0 {
		t = t[:i]
	}
	return strings.TrimSpace(t)
}

// Format renders the report as a plain-text table.
func (r StatsReport) Format() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "标题总数: %d\n", len(r.Titles))
	fmt.Fprintf(&sb, "空笔记数: %d\n", r.EmptyNotes)
	fmt.Fprintf(&sb, "空笔记比例: %.1f%%\n\n", r.EmptyRatio*100)

	for _, t := range r.Titles {
		status := "正常"
		if t.Empty {
			status = "空笔记"
		}
		fmt.Fprintf(&sb, "L%-6d %-30s chars=%-8d blank=%-4d %s\n",
			t.Line, shorten(t.Title, 25), t.Characters, t.BlankLines, status)
	}
	return sb.String()
}

func shorten(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return truncateRunes(s, n) + "…"
}
