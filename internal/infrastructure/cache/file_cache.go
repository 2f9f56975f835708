// Package cache stores classification results as JSON blobs addressed by
// query hash, with TTL expiry and a bounded entry count.
package cache

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/doeshing/ghask/internal/domain"
	"github.com/doeshing/ghask/internal/pkg/filesystem"
	"github.com/doeshing/ghask/internal/ports"
)

// FileCache keeps one file per cached classification under
// ~/.ghask/cache/classifications.
type FileCache struct {
	dir        string
	mu         sync.Mutex
	maxEntries int
	ttl        time.Duration
}

// NewFileCache returns a cache at the default location.
func NewFileCache(settings domain.CacheSettings) *FileCache {
	return NewFileCacheAt(filepath.Join(filesystem.AppDir(), "cache", "classifications"), settings)
}

// NewFileCacheAt returns a cache rooted at dir.
func NewFileCacheAt(dir string, settings domain.CacheSettings) *FileCache {
	return &FileCache{
		dir:        dir,
		maxEntries: settings.MaxEntries,
		ttl:        settings.CacheTTL(),
	}
}

// Get retrieves a cache entry. Expired entries are removed and reported as
// missing.
func (c *FileCache) Get(key string) (domain.CacheEntry, bool, error) {
	if key == "" {
		return domain.CacheEntry{}, false, nil
	}
	path := c.pathFor(key)
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return domain.CacheEntry{}, false, nil
		}
		return domain.CacheEntry{}, false, err
	}
	var entry domain.CacheEntry
	if err := json.Unmarshal(data, &entry); err != nil {
		return domain.CacheEntry{}, false, err
	}
	if c.ttl > 0 && time.Since(entry.CreatedAt) > c.ttl {
		_ = os.Remove(path)
		return domain.CacheEntry{}, false, nil
	}
	return entry, true, nil
}

// Set stores a cache entry, evicting the oldest files past the bound.
func (c *FileCache) Set(entry domain.CacheEntry) error {
	if entry.Key == "" {
		return nil
	}
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now()
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := os.MkdirAll(c.dir, 0o755); err != nil {
		return err
	}
	data, err := json.Marshal(entry)
	if err != nil {
		return err
	}
	if err := os.WriteFile(c.pathFor(entry.Key), data, 0o644); err != nil {
		return err
	}
	return c.evictIfNeeded()
}

// Entries lists cache entries (best-effort).
func (c *FileCache) Entries() ([]domain.CacheEntry, error) {
	files, err := os.ReadDir(c.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	var entries []domain.CacheEntry
	for _, f := range files {
		if f.IsDir() {
			continue
		}
		data, err := os.ReadFile(filepath.Join(c.dir, f.Name()))
		if err != nil {
			continue
		}
		var entry domain.CacheEntry
		if err := json.Unmarshal(data, &entry); err == nil {
			entries = append(entries, entry)
		}
	}
	return entries, nil
}

// Clear removes all cached entries.
func (c *FileCache) Clear() error {
	return os.RemoveAll(c.dir)
}

// Dir exposes the cache directory path.
func (c *FileCache) Dir() string {
	return c.dir
}

func (c *FileCache) pathFor(key string) string {
	return filepath.Join(c.dir, key+".json")
}

func (c *FileCache) evictIfNeeded() error {
	if c.maxEntries <= 0 {
		return nil
	}
	files, err := os.ReadDir(c.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	if len(files) <= c.maxEntries {
		return nil
	}

	type aged struct {
		name    string
		modTime time.Time
	}
	var candidates []aged
	for _, f := range files {
		info, err := f.Info()
		if err != nil {
			continue
		}
		candidates = append(candidates, aged{name: f.Name(), modTime: info.ModTime()})
	}
	sort.Slice(candidates, func(i, j int) bool {
		return candidates[i].modTime.Before(candidates[j].modTime)
	})
	for _, victim := range candidates[:len(candidates)-c.maxEntries] {
		_ = os.Remove(filepath.Join(c.dir, victim.name))
	}
	return nil
}

var _ ports.CacheRepository = (*FileCache)(nil)
