// Package assets supplies decoded, component-ready payloads keyed by
// logical path. The simulation core never parses file formats itself; it
// consumes whatever the registered loaders produce.
package assets

import (
	"fmt"
	"sync"
)

// Cache stores decoded assets by logical path. It is safe for concurrent
// use, since asset loading is the one async boundary around the otherwise
// single-threaded core.
type Cache struct {
	mu     sync.RWMutex
	assets map[string]any
}

// NewCache creates an empty cache.
func NewCache() *Cache {
	return &Cache{assets: make(map[string]any)}
}

// Insert stores a decoded asset under the path, replacing any previous
// entry.
func (c *Cache) Insert(path string, asset any) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.assets[path] = asset
}

// Remove drops the entry for the path. Returns false if absent.
func (c *Cache) Remove(path string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.assets[path]; !ok {
		return false
	}
	delete(c.assets, path)
	return true
}

// Clear drops every entry.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	clear(c.assets)
}

// Len returns the number of cached assets.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.assets)
}

// Fetch returns the asset stored under the path as a T. Absence is normal
// control flow; an entry of the wrong type is a programmer error (two call
// sites disagreeing about what a path holds) and panics.
func Fetch[T any](c *Cache, path string) (T, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	var zero T
	raw, ok := c.assets[path]
	if !ok {
		return zero, false
	}
	typed, ok := raw.(T)
	if !ok {
		panic(fmt.Sprintf("assets: %q holds %T, requested %T", path, raw, zero))
	}
	return typed, true
}
