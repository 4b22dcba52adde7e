package mcp

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/egoistcookie/playWright/internal/parser"
	"github.com/egoistcookie/playWright/internal/pipeline"
	"github.com/egoistcookie/playWright/internal/testutil"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const diaryPage = "20230401-Morning\nWoke up early.\n\n20230402-Evening\nWent for a walk.\n"

func createTestHandlers() (*Handlers, *testutil.MockFetcher, *testutil.MockReader) {
	fetcher := testutil.NewMockFetcher()
	fetcher.Pages["notes.txt"] = diaryPage
	reader := testutil.NewMockReader()

	p := pipeline.New(
		testutil.NewMockCache(),
		&testutil.MockDocumentWriter{},
		fetcher,
		testutil.MockSearcher{},
		reader,
		testutil.NewMockClock(time.Time{}),
	)
	return NewHandlers(p, nil), fetcher, reader
}

// getTextFromResult extracts text content from MCP result
func getTextFromResult(result *mcp.CallToolResult) string {
	if len(result.Content) == 0 {
		return ""
	}
	if tc, ok := result.Content[0].(*mcp.TextContent); ok {
		return tc.Text
	}
	return ""
}

func TestNotesRecover_ReturnsExportID(t *testing.T) {
	handlers, _, _ := createTestHandlers()

	result, _, err := handlers.NotesRecover(context.Background(), nil, RecoverArgs{Sources: []string{"notes.txt"}})
	if err != nil {
		t.Fatalf("NotesRecover: %v", err)
	}

	text := getTextFromResult(result)
	if !strings.Contains(text, "export_id:") || !strings.Contains(text, "entries: 2") {
		t.Errorf("unexpected response: %s", text)
	}
	if !strings.Contains(text, "Recovered 1 sources (0 from cache, 0 failed)") {
		t.Errorf("unexpected header: %s", text)
	}
}

func TestNotesRecover_ReportsFailuresPerSource(t *testing.T) {
	handlers, _, _ := createTestHandlers()

	result, _, err := handlers.NotesRecover(context.Background(), nil, RecoverArgs{Sources: []string{"notes.txt", "missing.txt", " "}})
	if err != nil {
		t.Fatalf("NotesRecover: %v", err)
	}

	text := getTextFromResult(result)
	if !strings.Contains(text, "FAILED: missing.txt") {
		t.Errorf("missing source should be reported: %s", text)
	}
	if !strings.Contains(text, "Recovered 1 sources (0 from cache, 1 failed)") {
		t.Errorf("unexpected header: %s", text)
	}
}

func TestNotesRecover_ErrorsWithoutSources(t *testing.T) {
	handlers, _, _ := createTestHandlers()

	if _, _, err := handlers.NotesRecover(context.Background(), nil, RecoverArgs{}); err == nil {
		t.Error("expected error for empty sources")
	}
}

func TestNotesQuery_ReturnsExcerpts(t *testing.T) {
	handlers, _, _ := createTestHandlers()

	if _, _, err := handlers.NotesRecover(context.Background(), nil, RecoverArgs{Sources: []string{"notes.txt"}}); err != nil {
		t.Fatalf("NotesRecover: %v", err)
	}

	result, _, err := handlers.NotesQuery(context.Background(), nil, QueryArgs{Prompt: "walk"})
	if err != nil {
		t.Fatalf("NotesQuery: %v", err)
	}
	if text := getTextFromResult(result); !strings.Contains(text, "Mock search result for: walk") {
		t.Errorf("unexpected response: %s", text)
	}
}

func TestNotesQuery_Errors(t *testing.T) {
	handlers, _, _ := createTestHandlers()

	if _, _, err := handlers.NotesQuery(context.Background(), nil, QueryArgs{ExportID: "abc", Prompt: " "}); err == nil {
		t.Error("expected error without prompt or date")
	}
	if _, _, err := handlers.NotesQuery(context.Background(), nil, QueryArgs{ExportID: "abc", Prompt: "walk"}); err == nil {
		t.Error("expected error for unknown export")
	}
}

func TestNotesList(t *testing.T) {
	handlers, _, _ := createTestHandlers()

	result, _, err := handlers.NotesList(context.Background(), nil, struct{}{})
	if err != nil {
		t.Fatal(err)
	}
	if text := getTextFromResult(result); !strings.Contains(text, "No exports") {
		t.Errorf("unexpected empty response: %s", text)
	}

	if _, _, err := handlers.NotesRecover(context.Background(), nil, RecoverArgs{Sources: []string{"notes.txt"}}); err != nil {
		t.Fatal(err)
	}

	result, _, err = handlers.NotesList(context.Background(), nil, struct{}{})
	if err != nil {
		t.Fatal(err)
	}
	text := getTextFromResult(result)
	if !strings.Contains(text, "Recovered exports: 1") || !strings.Contains(text, "source: notes.txt") {
		t.Errorf("unexpected response: %s", text)
	}
}

func TestNotesSplit(t *testing.T) {
	handlers, _, reader := createTestHandlers()
	reader.Files["export.txt"] = parser.Marker("A") + "first body\n" + parser.Marker("B") + "second body\n"

	result, _, err := handlers.NotesSplit(context.Background(), nil, SplitArgs{Path: "export.txt", Out: t.TempDir()})
	if err != nil {
		t.Fatalf("NotesSplit: %v", err)
	}
	if text := getTextFromResult(result); !strings.Contains(text, "Wrote 2 notes") {
		t.Errorf("unexpected response: %s", text)
	}

	if _, _, err := handlers.NotesSplit(context.Background(), nil, SplitArgs{}); err == nil {
		t.Error("expected error for empty path")
	}
}

func TestNotesStats(t *testing.T) {
	handlers, _, reader := createTestHandlers()
	reader.Files["export.txt"] = parser.Marker("A") + "\n\n" + parser.Marker("B") + "\nbody\n"

	result, _, err := handlers.NotesStats(context.Background(), nil, StatsArgs{Path: "export.txt"})
	if err != nil {
		t.Fatalf("NotesStats: %v", err)
	}
	if text := getTextFromResult(result); !strings.Contains(text, "空笔记数: 1") {
		t.Errorf("unexpected response: %s", text)
	}

	if _, _, err := handlers.NotesStats(context.Background(), nil, StatsArgs{Path: "missing.txt"}); err == nil {
		t.Error("expected error for missing file")
	}
}
