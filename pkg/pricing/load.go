package pricing

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"sync"
)

//go:embed pricing.json
var defaultPricingJSON []byte

// Loader loads and caches pricing tables.
//
// Tables are cached per path so repeated batches do not re-read and re-parse
// the pricing file. The cache key for the bundled default table is the empty
// path. Invalidate drops a cached entry, which a Watcher does when the file
// changes on disk.
type Loader struct {
	mu    sync.RWMutex
	cache map[string]Table
}

// NewLoader creates a pricing table loader with an empty cache.
func NewLoader() *Loader {
	return &Loader{
		cache: make(map[string]Table),
	}
}

// Load returns the pricing table for the given path, parsing and validating
// it on first use. An empty path loads the bundled default table.
func (l *Loader) Load(path string) (Table, error) {
	l.mu.RLock()
	if table, ok := l.cache[path]; ok {
		l.mu.RUnlock()
		return table, nil
	}
	l.mu.RUnlock()

	table, err := loadTable(path)
	if err != nil {
		return nil, err
	}

	l.mu.Lock()
	l.cache[path] = table
	l.mu.Unlock()

	return table, nil
}

// Invalidate drops the cached table for the given path. The next Load will
// re-read the file.
func (l *Loader) Invalidate(path string) {
	l.mu.Lock()
	delete(l.cache, path)
	l.mu.Unlock()
}

// loadTable reads, parses, and validates a pricing table.
func loadTable(path string) (Table, error) {
	data := defaultPricingJSON
	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read pricing file %q: %w", path, err)
		}
		data = b
	}

	var table Table
	if err := json.Unmarshal(data, &table); err != nil {
		return nil, fmt.Errorf("failed to parse pricing table: %w", err)
	}

	if err := Validate(table); err != nil {
		return nil, fmt.Errorf("pricing table validation failed: %w", err)
	}

	return table, nil
}
