package document

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/egoistcookie/playWright/internal/domain"
	"github.com/egoistcookie/playWright/internal/parser"
)

// DefaultSplitDir is created next to the input file when no output
// directory is given.
const DefaultSplitDir = "分割后的笔记"

var unsafeFilenameRe = regexp.MustCompile(`[\\/:*?"<>|]`)

// SanitizeFilename replaces characters that are invalid in file names.
func SanitizeFilename(title string) string {
	return unsafeFilenameRe.ReplaceAllString(title, "_")
}

// SplitSections splits a marker-format export into one section per title
// marker. Text before the first marker is ignored.
func SplitSections(content string) []domain.Section {
	blocks := parser.SplitMarkers(content)
	sections := make([]domain.Section, 0, len(blocks))
	for _, b := range blocks {
		sections = append(sections, domain.Section{
			Title: b.Title,
			Line:  strings.Count(content[:b.Offset], "\n") + 1,
			Text:  b.Text,
		})
	}
	return sections
}

// WriteSections writes each section to <dir>/<title>.txt and returns the
// paths written. Sections sharing a title overwrite each other.
func WriteSections(dir string, sections []domain.Section) ([]string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create output dir: %w", err)
	}

	paths := make([]string, 0, len(sections))
	for _, s := range sections {
		path := filepath.Join(dir, SanitizeFilename(s.Title)+".txt")
		if err := os.WriteFile(path, []byte(s.Text), 0o644); err != nil {
			return paths, fmt.Errorf("write section %q: %w", s.Title, err)
		}
		paths = append(paths, path)
	}
	return paths, nil
}
