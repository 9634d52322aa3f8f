package assets

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Texture is a decoded image payload: dimensions plus raw RGBA pixels.
type Texture struct {
	Width  int
	Height int
	Pixels []byte
}

// AudioClip is a decoded audio payload.
type AudioClip struct {
	SampleRate int
	Channels   int
	Samples    []byte
}

// Loader decodes one file format into a component-ready payload.
type Loader interface {
	Load(data []byte) (any, error)
}

// LoaderFunc adapts a function to the Loader interface.
type LoaderFunc func(data []byte) (any, error)

func (f LoaderFunc) Load(data []byte) (any, error) {
	return f(data)
}

// JSONLoader decodes a JSON document into a generic map payload.
func JSONLoader() Loader {
	return LoaderFunc(func(data []byte) (any, error) {
		var doc map[string]any
		if err := json.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("decode json: %w", err)
		}
		return doc, nil
	})
}

// Manager loads assets from a base directory through per-extension loaders
// and caches the decoded results. Loading failures are explicit error
// values the caller can recover from; they never panic.
type Manager struct {
	basePath string
	loaders  map[string]Loader
	cache    *Cache
}

// NewManager creates a manager rooted at basePath with a JSON loader
// pre-registered.
func NewManager(basePath string) *Manager {
	m := &Manager{
		basePath: basePath,
		loaders:  make(map[string]Loader),
		cache:    NewCache(),
	}
	m.RegisterLoader(".json", JSONLoader())
	return m
}

// Cache exposes the manager's decoded-asset cache.
func (m *Manager) Cache() *Cache {
	return m.cache
}

// RegisterLoader installs a loader for a file extension (with leading dot).
func (m *Manager) RegisterLoader(extension string, loader Loader) {
	m.loaders[strings.ToLower(extension)] = loader
}

// Load reads, decodes and caches the asset at the logical path (relative to
// the base directory). A cached asset is returned without touching disk.
func (m *Manager) Load(path string) (any, error) {
	if asset, ok := Fetch[any](m.cache, path); ok {
		return asset, nil
	}

	ext := strings.ToLower(filepath.Ext(path))
	loader, ok := m.loaders[ext]
	if !ok {
		return nil, fmt.Errorf("no loader registered for %q", ext)
	}

	data, err := os.ReadFile(filepath.Join(m.basePath, path))
	if err != nil {
		return nil, fmt.Errorf("read asset %q: %w", path, err)
	}

	asset, err := loader.Load(data)
	if err != nil {
		return nil, fmt.Errorf("load asset %q: %w", path, err)
	}

	m.cache.Insert(path, asset)
	return asset, nil
}
