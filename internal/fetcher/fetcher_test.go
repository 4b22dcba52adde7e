package fetcher

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const editorPage = `<!DOCTYPE html>
<html><head><title>Browser title</title></head>
<body>
<pre class="top-title-placeholder">20230401-Morning</pre>
<div data-block-type="paragraph" class="css-1xgc5oj">
  <span data-bulb-node-id="a1">Woke up early and went running.</span>
</div>
<div data-block-type="paragraph" class="css-1xgc5oj">
  <span data-bulb-node-id="a2"><span>Breakfast with friends afterwards.</span></span>
</div>
<div data-block-type="paragraph" class="css-1xgc5oj">
  <span data-bulb-node-id="a3">   </span>
</div>
</body></html>`

const articlePage = `<!DOCTYPE html>
<html><head><title>Plain page</title></head>
<body><h1>Heading</h1><p>First paragraph of the page.</p></body></html>`

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func TestParseMode(t *testing.T) {
	tests := []struct {
		in      string
		want    Mode
		wantErr bool
	}{
		{"", ModeAuto, false},
		{"DOM", ModeDOM, false},
		{" readability ", ModeReadability, false},
		{"pdf", "", true},
	}

	for _, tc := range tests {
		got, err := ParseMode(tc.in)
		if (err != nil) != tc.wantErr || got != tc.want {
			t.Errorf("ParseMode(%q) = %q, %v", tc.in, got, err)
		}
	}
}

func TestFetch_TextFilePassesThrough(t *testing.T) {
	raw := "20230401-Morning\nWoke up early.\n"
	path := writeFile(t, "page.txt", raw)

	got, err := NewLoader(ModeAuto).Fetch(context.Background(), path)
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if got != raw {
		t.Errorf("Fetch = %q, want %q", got, raw)
	}
}

func TestFetch_DOMExtraction(t *testing.T) {
	path := writeFile(t, "note.html", editorPage)

	for _, mode := range []Mode{ModeAuto, ModeDOM} {
		got, err := NewLoader(mode).Fetch(context.Background(), path)
		if err != nil {
			t.Fatalf("Fetch(%s): %v", mode, err)
		}

		want := "###标题###[20230401-Morning] \n\n" +
			"Woke up early and went running.\n\n" +
			"Breakfast with friends afterwards.\n\n"
		if got != want {
			t.Errorf("Fetch(%s) = %q, want %q", mode, got, want)
		}
	}
}

func TestFetch_DOMModeWithoutEditor(t *testing.T) {
	path := writeFile(t, "page.html", articlePage)

	_, err := NewLoader(ModeDOM).Fetch(context.Background(), path)
	if !errors.Is(err, ErrNoContent) {
		t.Errorf("expected ErrNoContent, got %v", err)
	}
}

func TestFetch_AutoFallsBackToMarkdown(t *testing.T) {
	path := writeFile(t, "page.html", articlePage)

	got, err := NewLoader(ModeAuto).Fetch(context.Background(), path)
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if !strings.Contains(got, "# Heading") || !strings.Contains(got, "First paragraph of the page.") {
		t.Errorf("markdown output = %q", got)
	}
	if strings.Contains(got, "<p>") {
		t.Errorf("markdown output still has tags: %q", got)
	}
}

func TestFetch_HTTP(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/note" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write([]byte(editorPage))
	}))
	defer srv.Close()

	got, err := NewLoader(ModeAuto, WithHTTPClient(srv.Client())).Fetch(context.Background(), srv.URL+"/note")
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if !strings.HasPrefix(got, "###标题###[20230401-Morning]") {
		t.Errorf("Fetch = %q", got)
	}

	_, err = NewLoader(ModeAuto, WithHTTPClient(srv.Client())).Fetch(context.Background(), srv.URL+"/missing")
	if err == nil || !strings.Contains(err.Error(), "HTTP 404") {
		t.Errorf("expected HTTP 404 error, got %v", err)
	}
}

func TestFetch_EmptySource(t *testing.T) {
	path := writeFile(t, "empty.txt", "  \n\n ")

	_, err := NewLoader(ModeText).Fetch(context.Background(), path)
	if !errors.Is(err, ErrNoContent) {
		t.Errorf("expected ErrNoContent, got %v", err)
	}
}

func TestFetch_MissingFile(t *testing.T) {
	_, err := NewLoader(ModeText).Fetch(context.Background(), filepath.Join(t.TempDir(), "nope.txt"))
	if err == nil || !strings.Contains(err.Error(), "read file") {
		t.Errorf("expected read file error, got %v", err)
	}
}

func TestFetch_Readability(t *testing.T) {
	var sb strings.Builder
	sb.WriteString(`<!DOCTYPE html><html><head><title>Diary archive</title></head><body>`)
	sb.WriteString(`<nav><a href="/">Home</a><a href="/about">About</a></nav><article>`)
	for i := 1; i <= 5; i++ {
		sb.WriteString("<p>This is paragraph number ")
		sb.WriteString(string(rune('0' + i)))
		sb.WriteString(" of the diary archive, written on a quiet evening after a long walk along the river, ")
		sb.WriteString("with enough words in it that the extractor treats it as the main body of the page.</p>")
	}
	sb.WriteString(`</article></body></html>`)
	path := writeFile(t, "article.html", sb.String())

	got, err := NewLoader(ModeReadability).Fetch(context.Background(), path)
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if !strings.Contains(got, "paragraph number 3") {
		t.Errorf("readability output missing body: %q", got)
	}
}
