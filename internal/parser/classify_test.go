package parser

import "testing"

func TestClassify(t *testing.T) {
	c := NewClassifier(nil, nil)

	tests := []struct {
		line string
		kind LineKind
		rule string
	}{
		{"20230401-Morning", Title, "yyyymmdd"},
		{"2023年4月1日-周六", Title, "cjk-date"},
		{"2023-04-01-Note", Title, "dashed-date"},
		{"2023/4/1–晚上", Title, "dashed-date"},
		{"20230401-工作日志", Title, "yyyymmdd"},
		{"2023.04.01 12 KB", FileInfo, "file-info"},
		{"  2023-04-01 12:30 3KB  ", FileInfo, "file-info"},
		{"2023-04-01 12:30", Body, ""},
		{"回收站", Noise, "noise"},
		{"总共 12 项", Noise, "noise"},
		{"Woke up early.", Body, ""},
		{"20230401", Body, ""},
		{"", Body, ""},
	}

	for _, tc := range tests {
		t.Run(tc.line, func(t *testing.T) {
			got := c.Classify(tc.line)
			if got.Kind != tc.kind || got.Rule != tc.rule {
				t.Errorf("Classify(%q) = %v/%q, want %v/%q", tc.line, got.Kind, got.Rule, tc.kind, tc.rule)
			}
		})
	}
}

func TestClassify_CustomNoise(t *testing.T) {
	c := NewClassifier(nil, []string{"Sidebar"})

	if got := c.Classify("Sidebar links"); got.Kind != Noise {
		t.Errorf("expected noise, got %v", got.Kind)
	}
	// Default vocabulary no longer applies
	if got := c.Classify("回收站"); got.Kind != Body {
		t.Errorf("expected body, got %v", got.Kind)
	}
}

func TestTitleRule_Precedence(t *testing.T) {
	c := NewClassifier(nil, nil)

	// Matches yyyymmdd, 20yymmdd and year-2020-2025; the first listed wins.
	rule, ok := c.TitleRule("20230401-Note")
	if !ok || rule != "yyyymmdd" {
		t.Errorf("TitleRule = %q, %v; want yyyymmdd", rule, ok)
	}
}

func TestLineKind_String(t *testing.T) {
	want := map[LineKind]string{Body: "body", Title: "title", FileInfo: "file-info", Noise: "noise"}
	for k, s := range want {
		if k.String() != s {
			t.Errorf("%d.String() = %q, want %q", k, k.String(), s)
		}
	}
}
