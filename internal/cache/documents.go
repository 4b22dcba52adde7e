package cache

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// DocumentWriter persists assembled documents for the user to read.
type DocumentWriter interface {
	// Save writes doc under a name built from prefix and at,
	// returning the path written.
	Save(prefix, doc string, at time.Time) (string, error)
}

// DocumentStore writes documents into an export directory as
// 有道云笔记_<prefix>_<timestamp>.txt.
type DocumentStore struct {
	dir string
}

// NewDocumentStore creates a store rooted at dir, creating it if needed.
func NewDocumentStore(dir string) (*DocumentStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create export dir: %w", err)
	}
	return &DocumentStore{dir: dir}, nil
}

// FileName returns the document file name for prefix at the given time.
// The timestamp is ISO-8601 UTC with ':' and '.' replaced by '-'.
func FileName(prefix string, at time.Time) string {
	ts := at.UTC().Format("2006-01-02T15:04:05.000Z")
	ts = strings.NewReplacer(":", "-", ".", "-").Replace(ts)
	return fmt.Sprintf("有道云笔记_%s_%s.txt", prefix, ts)
}

// Save writes doc as UTF-8 text.
func (s *DocumentStore) Save(prefix, doc string, at time.Time) (string, error) {
	path := filepath.Join(s.dir, FileName(prefix, at))
	if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
		return "", fmt.Errorf("write document: %w", err)
	}
	return path, nil
}
