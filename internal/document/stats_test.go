package document

import (
	"math"
	"strings"
	"testing"
)

func TestStats(t *testing.T) {
	report := Stats(markerExport)

	if len(report.Titles) != 3 {
		t.Fatalf("expected 3 titles, got %d", len(report.Titles))
	}

	first := report.Titles[0]
	if first.Title != "Day one" || first.Line != 2 || first.Characters != 4 || first.BlankLines != 2 || first.Empty {
		t.Errorf("first title = %+v", first)
	}

	second := report.Titles[1]
	if second.Title != "a/b:c" || second.BlankLines != 3 {
		t.Errorf("second title = %+v", second)
	}

	last := report.Titles[2]
	if !last.Empty {
		t.Errorf("last title should be empty: %+v", last)
	}

	if report.EmptyNotes != 1 {
		t.Errorf("EmptyNotes = %d, want 1", report.EmptyNotes)
	}
	if math.Abs(report.EmptyRatio-1.0/3.0) > 1e-9 {
		t.Errorf("EmptyRatio = %f", report.EmptyRatio)
	}
}

func TestStats_NestedBrackets(t *testing.T) {
	report := Stats("###标题###[案例评审记录 [最后修改时间20250227]] \n内容\n")
	if len(report.Titles) != 1 || report.Titles[0].Title != "案例评审记录 [最后修改时间20250227]" {
		t.Errorf("titles = %+v", report.Titles)
	}
}

func TestStats_NoTitles(t *testing.T) {
	report := Stats("plain text\n")
	if len(report.Titles) != 0 || report.EmptyRatio != 0 {
		t.Errorf("report = %+v", report)
	}
	if !strings.Contains(report.Format(), "标题总数: 0") {
		t.Errorf("Format = %q", report.Format())
	}
}
