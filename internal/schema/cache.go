package schema

import "sync"

// CacheKey identifies a compiled validator. Two keys are equal only when
// the logical schema identity and the content of its definition both match,
// so editing a schema file on disk naturally produces a fresh entry.
type CacheKey struct {
	Name        string
	Version     string
	ContentHash string
}

// ValidatorCache caches compiled validators for the process lifetime.
// Entries are never evicted; the schema population is small and static.
type ValidatorCache struct {
	entries map[CacheKey]*Validator
	hits    int
	misses  int
	mu      sync.RWMutex
}

// NewValidatorCache creates an empty validator cache
func NewValidatorCache() *ValidatorCache {
	return &ValidatorCache{
		entries: make(map[CacheKey]*Validator),
	}
}

// Compile returns a validator for the given schema bytes, compiling at most
// once per (name, version, content) triple. Compiling identical bytes twice
// is guaranteed to hit the cache the second time. Compilation failures are
// returned and never cached.
func (c *ValidatorCache) Compile(raw []byte, name, version string) (*Validator, error) {
	key := CacheKey{Name: name, Version: version, ContentHash: HashContent(raw)}

	c.mu.RLock()
	v, ok := c.entries[key]
	c.mu.RUnlock()
	if ok {
		c.mu.Lock()
		c.hits++
		c.mu.Unlock()
		return v, nil
	}

	compiled, err := Compile(raw)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	// Another goroutine may have compiled the same schema concurrently;
	// keep the first entry so callers always share one validator.
	if existing, ok := c.entries[key]; ok {
		c.hits++
		return existing, nil
	}
	c.misses++
	c.entries[key] = compiled
	return compiled, nil
}

// Contains reports whether a validator is cached under the given key
func (c *ValidatorCache) Contains(key CacheKey) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	_, ok := c.entries[key]
	return ok
}

// Size returns the number of cached validators
func (c *ValidatorCache) Size() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// Stats returns cache hit/miss counters
func (c *ValidatorCache) Stats() (hits, misses int) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.hits, c.misses
}
