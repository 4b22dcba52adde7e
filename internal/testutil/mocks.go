// Package testutil provides shared test helpers and mock implementations.
// This avoids duplicating mock code across test files.
package testutil

import (
	"context"
	"errors"
	"sort"
	"time"

	"github.com/egoistcookie/playWright/internal/domain"
	"github.com/egoistcookie/playWright/internal/search"
)

// ErrNotFound is returned by mocks when a resource doesn't exist.
var ErrNotFound = errors.New("not found")

// MockCache is a simple in-memory cache for testing.
// It separates memory and disk caches to test caching behavior.
type MockCache struct {
	Mem  map[string]*domain.Export
	Disk map[string]*domain.Export
}

// NewMockCache creates a new MockCache with initialized maps.
func NewMockCache() *MockCache {
	return &MockCache{
		Mem:  make(map[string]*domain.Export),
		Disk: make(map[string]*domain.Export),
	}
}

func (m *MockCache) Get(exportID string) (*domain.Export, error) {
	if exp, ok := m.Mem[exportID]; ok {
		return exp, nil
	}
	return nil, ErrNotFound
}

func (m *MockCache) Set(exportID string, exp *domain.Export) {
	m.Mem[exportID] = exp
}

func (m *MockCache) LoadFromDisk(exportID string) (*domain.Export, error) {
	if exp, ok := m.Disk[exportID]; ok {
		return exp, nil
	}
	return nil, ErrNotFound
}

func (m *MockCache) SaveToDisk(exp *domain.Export) error {
	m.Disk[exp.ExportID] = exp
	return nil
}

func (m *MockCache) List() []string {
	seen := make(map[string]bool)
	for id := range m.Mem {
		seen[id] = true
	}
	for id := range m.Disk {
		seen[id] = true
	}
	ids := make([]string, 0, len(seen))
	for id := range seen {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// MockReader returns controlled file content for testing.
type MockReader struct {
	Files map[string]string // path -> content
}

// NewMockReader creates a MockReader with an initialized file map.
func NewMockReader() *MockReader {
	return &MockReader{Files: make(map[string]string)}
}

func (m *MockReader) ReadFile(path string) ([]byte, error) {
	if content, ok := m.Files[path]; ok {
		return []byte(content), nil
	}
	return nil, ErrNotFound
}

// MockFetcher serves raw page text from a map and counts calls.
type MockFetcher struct {
	Pages map[string]string // source -> raw text
	Calls int
}

// NewMockFetcher creates a MockFetcher with an initialized page map.
func NewMockFetcher() *MockFetcher {
	return &MockFetcher{Pages: make(map[string]string)}
}

func (m *MockFetcher) Fetch(ctx context.Context, source string) (string, error) {
	m.Calls++
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if raw, ok := m.Pages[source]; ok {
		return raw, nil
	}
	return "", ErrNotFound
}

// SavedDocument is one call recorded by MockDocumentWriter.
type SavedDocument struct {
	Prefix  string
	Content string
	At      time.Time
}

// MockDocumentWriter records saved documents instead of writing files.
type MockDocumentWriter struct {
	Saved []SavedDocument
	Err   error
}

func (m *MockDocumentWriter) Save(prefix, doc string, at time.Time) (string, error) {
	if m.Err != nil {
		return "", m.Err
	}
	m.Saved = append(m.Saved, SavedDocument{Prefix: prefix, Content: doc, At: at})
	return "/mock/out/" + prefix + ".txt", nil
}

// MockSearcher returns fixed content for testing.
type MockSearcher struct{}

func (MockSearcher) Search(exp *domain.Export, q search.Query) (string, error) {
	return "Mock search result for: " + q.Text + q.Date, nil
}

// MockClock returns a fixed time for reproducible tests.
type MockClock struct {
	Time time.Time
}

// NewMockClock creates a clock fixed at the given time.
// If t is zero, uses 2024-01-01 00:00:00 UTC.
func NewMockClock(t time.Time) MockClock {
	if t.IsZero() {
		t = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	}
	return MockClock{Time: t}
}

func (m MockClock) Now() time.Time { return m.Time }
