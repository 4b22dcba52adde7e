// Package fetcher produces raw page text for recovery. Sources are local
// files (plain text dumps or saved HTML pages) or http(s) URLs; HTML is
// turned into text by one of several strategies.
package fetcher

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	htmltomarkdown "github.com/JohannesKaufmann/html-to-markdown/v2"
	"github.com/JohannesKaufmann/html-to-markdown/v2/converter"
	readability "github.com/go-shiori/go-readability"

	"github.com/egoistcookie/playWright/internal/text"
)

// ErrNoContent is returned when a source yields no usable text.
var ErrNoContent = errors.New("no content")

// Mode selects how HTML sources are turned into text.
type Mode string

const (
	// ModeAuto uses DOM extraction for note editor pages and markdown
	// conversion for other HTML; non-HTML is passed through.
	ModeAuto Mode = "auto"
	// ModeText passes the source through unchanged.
	ModeText Mode = "text"
	// ModeMarkdown converts HTML to markdown, keeping line structure.
	ModeMarkdown Mode = "markdown"
	// ModeDOM reads the note editor's title and paragraph nodes.
	ModeDOM Mode = "dom"
	// ModeReadability extracts the main article text.
	ModeReadability Mode = "readability"
)

// ParseMode validates a mode name. Empty selects ModeAuto.
func ParseMode(s string) (Mode, error) {
	switch m := Mode(strings.ToLower(strings.TrimSpace(s))); m {
	case "":
		return ModeAuto, nil
	case ModeAuto, ModeText, ModeMarkdown, ModeDOM, ModeReadability:
		return m, nil
	default:
		return "", fmt.Errorf("unknown fetch mode %q", s)
	}
}

// Fetcher abstracts source loading for testability.
type Fetcher interface {
	// Fetch returns the raw text of source, a file path or URL.
	Fetch(ctx context.Context, source string) (string, error)
}

// Loader is the production Fetcher.
type Loader struct {
	client *http.Client
	mode   Mode
	rules  text.ValidityRules
	logger *slog.Logger
}

// Option configures a Loader.
type Option func(*Loader)

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(l *Loader) {
		if logger != nil {
			l.logger = logger
		}
	}
}

// WithHTTPClient replaces the default client (30s timeout).
func WithHTTPClient(c *http.Client) Option {
	return func(l *Loader) {
		if c != nil {
			l.client = c
		}
	}
}

// WithValidityRules sets the rules DOM extraction uses to reject
// script-like text.
func WithValidityRules(r text.ValidityRules) Option {
	return func(l *Loader) { l.rules = r }
}

// NewLoader creates a Loader for the given mode.
func NewLoader(mode Mode, opts ...Option) *Loader {
	if mode == "" {
		mode = ModeAuto
	}
	l := &Loader{
		client: &http.Client{Timeout: 30 * time.Second},
		mode:   mode,
		rules:  text.DefaultValidityRules(),
		logger: slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Fetch reads source and converts it according to the loader's mode.
func (l *Loader) Fetch(ctx context.Context, source string) (string, error) {
	body, pageURL, err := l.read(ctx, source)
	if err != nil {
		return "", err
	}

	out, err := l.convert(body, pageURL)
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(out) == "" {
		return "", fmt.Errorf("%s: %w", source, ErrNoContent)
	}
	return out, nil
}

func (l *Loader) convert(body string, pageURL *url.URL) (string, error) {
	mode := l.mode
	if mode == ModeAuto {
		if !looksLikeHTML(body) {
			return body, nil
		}
		if out, ok := l.extractNote(body); ok {
			l.logger.Debug("fetcher: note editor found")
			return out, nil
		}
		mode = ModeMarkdown
	}

	switch mode {
	case ModeText:
		return body, nil
	case ModeMarkdown:
		return toMarkdown(body, pageURL)
	case ModeDOM:
		out, ok := l.extractNote(body)
		if !ok {
			return "", fmt.Errorf("note editor: %w", ErrNoContent)
		}
		return out, nil
	case ModeReadability:
		return readable(body, pageURL)
	default:
		return "", fmt.Errorf("unknown fetch mode %q", mode)
	}
}

// read loads the source bytes. URLs are fetched over HTTP; anything else is
// treated as a local path.
func (l *Loader) read(ctx context.Context, source string) (string, *url.URL, error) {
	u, err := url.Parse(source)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") {
		data, err := os.ReadFile(source)
		if err != nil {
			return "", nil, fmt.Errorf("read file: %w", err)
		}
		return string(data), nil, nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, source, nil)
	if err != nil {
		return "", nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", "notes-recover/1.0")

	resp, err := l.client.Do(req)
	if err != nil {
		return "", nil, fmt.Errorf("fetch URL: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", nil, fmt.Errorf("HTTP %d: %s", resp.StatusCode, resp.Status)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", nil, fmt.Errorf("read body: %w", err)
	}
	return string(body), u, nil
}

func looksLikeHTML(s string) bool {
	head := strings.ToLower(strings.TrimSpace(s))
	if len(head) > 512 {
		head = head[:512]
	}
	return strings.HasPrefix(head, "<!doctype html") ||
		strings.Contains(head, "<html") ||
		strings.Contains(head, "<body") ||
		strings.Contains(head, "<div")
}

func toMarkdown(body string, pageURL *url.URL) (string, error) {
	var opts []converter.ConvertOptionFunc
	if pageURL != nil {
		opts = append(opts, converter.WithDomain(pageURL.Scheme+"://"+pageURL.Host))
	}
	md, err := htmltomarkdown.ConvertString(body, opts...)
	if err != nil {
		return "", fmt.Errorf("convert to markdown: %w", err)
	}
	return md, nil
}

func readable(body string, pageURL *url.URL) (string, error) {
	article, err := readability.FromReader(strings.NewReader(body), pageURL)
	if err != nil {
		return "", fmt.Errorf("parse content: %w", err)
	}

	var sb strings.Builder
	if title := strings.TrimSpace(article.Title); title != "" {
		sb.WriteString("# ")
		sb.WriteString(title)
		sb.WriteString("\n\n")
	}
	sb.WriteString(strings.TrimSpace(article.TextContent))
	return sb.String(), nil
}
