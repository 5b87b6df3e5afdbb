package rules

import "sync"

// ProgramCache stores compiled expression programs keyed by expression
// strings. Implementations must be safe for concurrent use.
type ProgramCache interface {
	Get(key string) (any, bool)
	Set(key string, value any)
}

// MapCache is a ProgramCache backed by a sync.Map. The zero value is ready to
// use.
type MapCache struct {
	entries sync.Map
}

// NewMapCache constructs an empty cache.
func NewMapCache() *MapCache {
	return &MapCache{}
}

// Get implements ProgramCache.
func (c *MapCache) Get(key string) (any, bool) {
	return c.entries.Load(key)
}

// Set implements ProgramCache.
func (c *MapCache) Set(key string, value any) {
	c.entries.Store(key, value)
}
