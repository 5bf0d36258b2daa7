package resolve

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"
)

// Exports maps export names of a loaded module to value trees.
type Exports map[string]any

// RequireFunc loads a dependency of the module being loaded.
type RequireFunc func(path string) (Exports, error)

// Loader evaluates one module. Dependencies must be loaded through require so that
// they share the cache and its cycle detection.
type Loader interface {
	Load(path string, require RequireFunc) (Exports, error)
}

type cacheEntry struct {
	exports Exports
	err     error
}

type sourceEntry struct {
	text string
	err  error
}

// ModuleCache memoizes module loads by absolute path for the lifetime of one run.
// Failed loads are remembered as well, so each path is handed to the loader at most
// once. Loads are serialized; cached lookups are not.
type ModuleCache struct {
	loader Loader

	mu      sync.RWMutex
	modules map[string]cacheEntry
	sources map[string]sourceEntry
	loads   int

	// loadMu is held for a whole top-level load including nested dependency loads.
	loadMu sync.Mutex
}

// NewModuleCache returns an empty cache backed by loader.
func NewModuleCache(loader Loader) *ModuleCache {
	return &ModuleCache{
		loader:  loader,
		modules: make(map[string]cacheEntry),
		sources: make(map[string]sourceEntry),
	}
}

// Load returns the exports of the module at path, loading it on first use.
func (c *ModuleCache) Load(path string) (Exports, error) {
	path = filepath.Clean(path)
	if e, ok := c.lookup(path); ok {
		return e.exports, e.err
	}

	c.loadMu.Lock()
	defer c.loadMu.Unlock()

	return c.loadLocked(path, nil)
}

// loadLocked must be called with loadMu held. stack holds the chain of modules being
// loaded, outermost first.
func (c *ModuleCache) loadLocked(path string, stack []string) (Exports, error) {
	if e, ok := c.lookup(path); ok {
		return e.exports, e.err
	}

	if slices.Contains(stack, path) {
		chain := append(slices.Clone(stack), path)
		return nil, fmt.Errorf("%w: %s", ErrCircularImport, strings.Join(chain, " -> "))
	}

	next := append(slices.Clone(stack), path)
	exports, err := c.loader.Load(path, func(dep string) (Exports, error) {
		return c.loadLocked(filepath.Clean(dep), next)
	})

	c.mu.Lock()
	c.modules[path] = cacheEntry{exports: exports, err: err}
	c.loads++
	c.mu.Unlock()

	return exports, err
}

func (c *ModuleCache) lookup(path string) (cacheEntry, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	e, ok := c.modules[path]
	return e, ok
}

// Loads returns how many times the loader has been invoked.
func (c *ModuleCache) Loads() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.loads
}

// Source returns the text of the module at path, reading it on first use.
func (c *ModuleCache) Source(path string) (string, error) {
	path = filepath.Clean(path)

	c.mu.RLock()
	e, ok := c.sources[path]
	c.mu.RUnlock()
	if ok {
		return e.text, e.err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		err = fmt.Errorf("failed to read module source: %w", err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if e, ok := c.sources[path]; ok {
		return e.text, e.err
	}
	c.sources[path] = sourceEntry{text: string(data), err: err}
	return string(data), err
}
