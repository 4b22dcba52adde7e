package text

import (
	"strings"
	"testing"
)

func TestContentFilter_RemovesNavigationLines(t *testing.T) {
	f := NewContentFilter()

	got := f.Filter("设置\n真正的内容\n回收站 (3)\n最后一行")
	want := "真正的内容\n最后一行"
	if got != want {
		t.Errorf("Filter = %q, want %q", got, want)
	}
}

func TestContentFilter_CaseInsensitiveKeywords(t *testing.T) {
	f := NewContentFilter("Menu")

	got := f.Filter("MENU bar\nbody text\nmain menu")
	if got != "body text" {
		t.Errorf("Filter = %q, want %q", got, "body text")
	}
}

func TestContentFilter_Whitespace(t *testing.T) {
	f := NewContentFilter("nothing-matches-this")

	got := f.Filter("  hello \t  world  \n\n\n\n  next   line ")
	want := "hello world\n\nnext line"
	if got != want {
		t.Errorf("Filter = %q, want %q", got, want)
	}
}

func TestContentFilter_StripsMarkupAndScript(t *testing.T) {
	f := NewContentFilter("nothing-matches-this")

	tests := []struct {
		name   string
		input  string
		absent string
	}{
		{"html tag", "<b>bold</b> text", "<b>"},
		{"template", "before {{ user.name }} after", "{{"},
		{"function", "x function foo(a) { return a } y", "function"},
		{"assignment", "const a = 1; rest", "const"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := f.Filter(tc.input)
			if strings.Contains(got, tc.absent) {
				t.Errorf("Filter(%q) = %q, still contains %q", tc.input, got, tc.absent)
			}
		})
	}

	if got := f.Filter("const a = 1; rest"); got != "rest" {
		t.Errorf("Filter = %q, want %q", got, "rest")
	}
}

func TestContentFilter_EmptyInput(t *testing.T) {
	if got := NewContentFilter().Filter(" \n\n "); got != "" {
		t.Errorf("Filter(blank) = %q, want empty", got)
	}
}
