package parser

import "testing"

func TestMarkerParser_Parse(t *testing.T) {
	content := "###标题###[Day one] \n\n第一段内容。\n\n第二段 2023.04.01 12 KB\n\n" +
		"###标题###[Day two] \n\n另一天的记录。\n"

	entries := NewMarkerParser().Parse(content)
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	if entries[0].Title != "Day one" || entries[0].Content != "第一段内容。\n\n第二段" {
		t.Errorf("entry 0 = %+v", entries[0])
	}
	if entries[1].Title != "Day two" || entries[1].Content != "另一天的记录。" || entries[1].Order != 1 {
		t.Errorf("entry 1 = %+v", entries[1])
	}
}

func TestMarkerParser_SkipsPreambleAndBlankTitles(t *testing.T) {
	entries := NewMarkerParser().Parse("preamble\n###标题###[] x\n###标题###[B] body text")
	if len(entries) != 1 || entries[0].Title != "B" || entries[0].Content != "body text" {
		t.Fatalf("got %+v", entries)
	}
}

func TestHasMarkers(t *testing.T) {
	tests := []struct {
		content string
		want    bool
	}{
		{Marker("Note") + "\n\nbody", true},
		{"###标题###[A]body", false},
		{"20230401-Morning\nWoke up early.", false},
	}

	for _, tc := range tests {
		if got := HasMarkers(tc.content); got != tc.want {
			t.Errorf("HasMarkers(%q) = %v, want %v", tc.content, got, tc.want)
		}
	}
}

func TestSplitMarkers_Offsets(t *testing.T) {
	content := "x\n" + Marker("A") + "one\n" + Marker("B") + "two"
	blocks := SplitMarkers(content)
	if len(blocks) != 2 {
		t.Fatalf("expected 2 blocks, got %d", len(blocks))
	}
	if blocks[0].Offset != 2 || blocks[0].Text != "one" {
		t.Errorf("block 0 = %+v", blocks[0])
	}
	if blocks[1].Title != "B" || blocks[1].Text != "two" {
		t.Errorf("block 1 = %+v", blocks[1])
	}
}
