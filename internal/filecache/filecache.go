// Package filecache provides fast, concurrency-safe source access for the
// extraction pipeline using memory-mapped files, falling back to a plain
// read when mmap is unavailable.
package filecache

import (
	"fmt"
	"log/slog"
	"os"
	"sync"

	"github.com/edsrzf/mmap-go"
)

// Cache hands file content to the worker pool. Get is safe for concurrent
// use by multiple analysis workers.
type Cache interface {
	// Get returns a file's content, loading and mapping it on first access.
	Get(path string) ([]byte, error)

	// Size returns the number of currently cached files.
	Size() int

	// Stats returns cumulative cache metrics.
	Stats() Stats

	// Close unmaps every cached file and releases file descriptors.
	Close() error
}

// Config controls Cache behavior.
type Config struct {
	// MaxFiles caps the number of files kept mapped at once. 0 means
	// unlimited.
	MaxFiles int

	// Logger receives mmap-fallback warnings and the Close summary. If
	// nil, slog.Default() is used.
	Logger *slog.Logger
}

// Default returns limits suitable for a single analysis run over a
// project-sized repository.
func Default() Config {
	return Config{MaxFiles: 20000}
}

// Stats tracks cache performance for diagnostics.
type Stats struct {
	FilesLoaded  int64
	CacheHits    int64
	CacheMisses  int64
	MmapFailures int64
}

// mappedFile is one cached entry. data is the live view returned to
// callers; raw is non-nil only when the entry came from mmap, so Close can
// unmap it.
type mappedFile struct {
	data []byte
	raw  mmap.MMap
	file *os.File
}

// New builds a Cache. A zero Config uses Default().
func New(cfg Config) Cache {
	if cfg.MaxFiles == 0 && cfg.Logger == nil {
		cfg = Default()
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	return &fileCache{
		cfg:     cfg,
		entries: make(map[string]*mappedFile),
		logger:  cfg.Logger,
	}
}

type fileCache struct {
	cfg    Config
	logger *slog.Logger

	mu      sync.RWMutex
	entries map[string]*mappedFile

	statsMu sync.Mutex
	stats   Stats
}

func (c *fileCache) Get(path string) ([]byte, error) {
	c.mu.RLock()
	if mf, ok := c.entries[path]; ok {
		c.mu.RUnlock()
		c.recordHit()
		return mf.data, nil
	}
	c.mu.RUnlock()

	c.mu.Lock()
	defer c.mu.Unlock()

	// Double-check: another worker may have loaded it while we waited.
	if mf, ok := c.entries[path]; ok {
		c.recordHit()
		return mf.data, nil
	}

	if c.cfg.MaxFiles > 0 && len(c.entries) >= c.cfg.MaxFiles {
		c.recordMiss()
		return nil, fmt.Errorf("filecache: limit reached (%d files)", c.cfg.MaxFiles)
	}

	mf, err := c.loadFile(path)
	if err != nil {
		c.recordMiss()
		return nil, err
	}

	c.entries[path] = mf
	c.recordLoad()
	return mf.data, nil
}

func (c *fileCache) loadFile(path string) (*mappedFile, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %q: %w", path, err)
	}

	stat, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("stat %q: %w", path, err)
	}

	if stat.Size() == 0 {
		f.Close()
		return &mappedFile{data: []byte{}}, nil
	}

	raw, err := mmap.Map(f, mmap.RDONLY, 0)
	if err != nil {
		c.logger.Warn("mmap failed, reading file directly", "path", path, "error", err)
		data, readErr := os.ReadFile(path)
		f.Close()
		if readErr != nil {
			return nil, fmt.Errorf("mmap failed and fallback read failed for %q: mmap error: %v, read error: %w", path, err, readErr)
		}
		c.recordMmapFailure()
		return &mappedFile{data: data}, nil
	}

	return &mappedFile{data: []byte(raw), raw: raw, file: f}, nil
}

func (c *fileCache) Size() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

func (c *fileCache) Stats() Stats {
	c.statsMu.Lock()
	defer c.statsMu.Unlock()
	return c.stats
}

func (c *fileCache) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	var errs []error
	for path, mf := range c.entries {
		if mf.raw != nil {
			if err := mf.raw.Unmap(); err != nil {
				c.logger.Warn("failed to unmap file", "path", path, "error", err)
				errs = append(errs, err)
			}
		}
		if mf.file != nil {
			if err := mf.file.Close(); err != nil {
				c.logger.Warn("failed to close file", "path", path, "error", err)
				errs = append(errs, err)
			}
		}
	}
	c.entries = make(map[string]*mappedFile)

	c.logger.Info("filecache closed",
		"files_loaded", c.stats.FilesLoaded,
		"cache_hits", c.stats.CacheHits,
		"cache_misses", c.stats.CacheMisses,
		"mmap_failures", c.stats.MmapFailures)

	if len(errs) > 0 {
		return fmt.Errorf("errors during close: %v", errs)
	}
	return nil
}

func (c *fileCache) recordHit() {
	c.statsMu.Lock()
	c.stats.CacheHits++
	c.statsMu.Unlock()
}

func (c *fileCache) recordMiss() {
	c.statsMu.Lock()
	c.stats.CacheMisses++
	c.statsMu.Unlock()
}

func (c *fileCache) recordLoad() {
	c.statsMu.Lock()
	c.stats.FilesLoaded++
	c.statsMu.Unlock()
}

func (c *fileCache) recordMmapFailure() {
	c.statsMu.Lock()
	c.stats.MmapFailures++
	c.statsMu.Unlock()
}
