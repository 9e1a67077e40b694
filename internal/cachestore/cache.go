package cachestore

import (
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
)

// Cache is one JSON-backed key/value mapping. Puts update memory and
// immediately rewrite the whole file; batch sizes are bounded by the
// number of distinct companies/titles, so the full rewrite stays cheap.
type Cache[V any] struct {
	path string
	m    map[string]V
	log  *slog.Logger
}

// LoadCache eagerly reads the file at path. A missing file is a cold
// cache; a malformed one silently resets to empty (the file itself is
// not rewritten until the next Put).
func LoadCache[V any](path string, log *slog.Logger) *Cache[V] {
	c := &Cache[V]{path: path, m: make(map[string]V), log: log}

	b, err := os.ReadFile(path)
	if err != nil {
		return c
	}
	if err := json.Unmarshal(b, &c.m); err != nil {
		log.Warn("cache file malformed, starting cold", "path", path, "error", err)
		c.m = make(map[string]V)
	}
	return c
}

func (c *Cache[V]) Get(key string) (V, bool) {
	v, ok := c.m[key]
	return v, ok
}

func (c *Cache[V]) Put(key string, v V) {
	c.m[key] = v
	if err := c.Flush(); err != nil {
		c.log.Warn("cache write failed", "path", c.path, "error", err)
	}
}

func (c *Cache[V]) Len() int { return len(c.m) }

// Flush rewrites the whole file from memory.
func (c *Cache[V]) Flush() error {
	if err := os.MkdirAll(filepath.Dir(c.path), 0o755); err != nil {
		return err
	}
	b, err := json.MarshalIndent(c.m, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(c.path, b, 0o644)
}
