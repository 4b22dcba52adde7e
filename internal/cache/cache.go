// Package cache stores recovery exports.
// It supports both in-memory caching (fast, but lost on restart)
// and disk persistence (survives restarts), plus the writer that
// persists assembled documents for the user.
//
// The Cache interface allows us to swap implementations for testing.
package cache

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/egoistcookie/playWright/internal/domain"
)

// ErrNotFound is returned when a requested export doesn't exist.
var ErrNotFound = errors.New("export not found")

// ErrVersionMismatch is returned when the cache version doesn't match.
var ErrVersionMismatch = errors.New("cache version mismatch (delete the cache dir and recover again)")

const exportSuffix = ".export.json"

// Cache defines how exports are stored and retrieved.
type Cache interface {
	// Get retrieves an export from memory (fast path).
	// Returns ErrNotFound if not in memory.
	Get(exportID string) (*domain.Export, error)

	// Set stores an export in memory.
	Set(exportID string, exp *domain.Export)

	// LoadFromDisk retrieves an export from disk cache.
	// Returns ErrNotFound if no cache file exists.
	// Returns ErrVersionMismatch if cache is from old version.
	LoadFromDisk(exportID string) (*domain.Export, error)

	// SaveToDisk persists an export to disk for future sessions.
	SaveToDisk(exp *domain.Export) error

	// List returns the IDs of all exports in memory or on disk, sorted.
	List() []string
}

// FileCache implements Cache using JSON files on disk.
// It maintains an in-memory map for fast repeated access within a session.
type FileCache struct {
	cacheDir string
	mem      map[string]*domain.Export
	mu       sync.RWMutex // protects mem
}

// NewFileCache creates a new FileCache that stores files in the given directory.
// The directory is created if it doesn't exist.
func NewFileCache(cacheDir string) (*FileCache, error) {
	if err := os.MkdirAll(cacheDir, 0o755); err != nil {
		return nil, fmt.Errorf("create cache dir: %w", err)
	}
	return &FileCache{
		cacheDir: cacheDir,
		mem:      make(map[string]*domain.Export),
	}, nil
}

// Get retrieves an export from the in-memory cache.
func (c *FileCache) Get(exportID string) (*domain.Export, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	exp, ok := c.mem[exportID]
	if !ok {
		return nil, ErrNotFound
	}
	return exp, nil
}

// Set stores an export in the in-memory cache.
func (c *FileCache) Set(exportID string, exp *domain.Export) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.mem[exportID] = exp
}

func (c *FileCache) exportPath(exportID string) string {
	return filepath.Join(c.cacheDir, exportID+exportSuffix)
}

// LoadFromDisk loads an export from the cache directory.
func (c *FileCache) LoadFromDisk(exportID string) (*domain.Export, error) {
	data, err := os.ReadFile(c.exportPath(exportID))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("read cache file: %w", err)
	}

	var exp domain.Export
	if err := json.Unmarshal(data, &exp); err != nil {
		return nil, fmt.Errorf("parse cache file: %w", err)
	}

	// Reject caches from incompatible versions
	if exp.Version != domain.CacheVersion {
		return nil, ErrVersionMismatch
	}

	return &exp, nil
}

// SaveToDisk saves an export to the cache directory as a JSON file.
func (c *FileCache) SaveToDisk(exp *domain.Export) error {
	data, err := json.MarshalIndent(exp, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal export: %w", err)
	}

	if err := os.WriteFile(c.exportPath(exp.ExportID), data, 0o644); err != nil {
		return fmt.Errorf("write cache file: %w", err)
	}

	return nil
}

// List returns export IDs from memory and the cache directory.
// Unreadable directories are treated as empty.
func (c *FileCache) List() []string {
	seen := make(map[string]struct{})

	c.mu.RLock()
	for id := range c.mem {
		seen[id] = struct{}{}
	}
	c.mu.RUnlock()

	if entries, err := os.ReadDir(c.cacheDir); err == nil {
		for _, e := range entries {
			name := e.Name()
			if e.IsDir() || !strings.HasSuffix(name, exportSuffix) {
				continue
			}
			seen[strings.TrimSuffix(name, exportSuffix)] = struct{}{}
		}
	}

	ids := make([]string, 0, len(seen))
	for id := range seen {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
