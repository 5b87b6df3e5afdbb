package state

import (
	"reflect"
	"sync"
)

// Registry maps (value type, context key) pairs to shared State instances.
// Structural operations are serialised by a registry-wide lock distinct from
// the per-entry locks, so iterating keys never blocks value mutation on
// entries already handed out.
//
// Accessors are package-level generic functions (For, Remove, Iterate)
// because Go methods cannot introduce type parameters.
type Registry struct {
	mu      sync.Mutex
	entries map[reflect.Type]map[string]any
}

// NewRegistry constructs an empty registry.
func NewRegistry() *Registry {
	return &Registry{entries: make(map[reflect.Type]map[string]any)}
}

var defaultRegistry = NewRegistry()

// Default returns the process-wide registry. Tests should Clear it between
// cases.
func Default() *Registry {
	return defaultRegistry
}

// For returns the State for (T, key), creating it with the zero value on
// first access. Repeated lookups with the same pair return the same instance
// until Remove or Clear drops it.
func For[T any](r *Registry, key string) *State[T] {
	r.mu.Lock()
	defer r.mu.Unlock()

	t := reflect.TypeFor[T]()
	byKey := r.entries[t]
	if byKey == nil {
		byKey = make(map[string]any)
		r.entries[t] = byKey
	}
	if entry, ok := byKey[key]; ok {
		return entry.(*State[T])
	}
	entry := New[T]()
	byKey[key] = entry
	return entry
}

// Remove drops the entry for (T, key). A subsequent For creates a fresh,
// zero-valued entry; handles obtained earlier keep the detached instance.
func Remove[T any](r *Registry, key string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if byKey := r.entries[reflect.TypeFor[T]()]; byKey != nil {
		delete(byKey, key)
	}
}

// Iterate invokes fn for every registered entry of type T, in unspecified
// order. The registry lock is held for the duration of the scan: the key set
// cannot change underneath fn, but entry values remain freely mutable. fn
// must not call back into registry structural operations.
func Iterate[T any](r *Registry, fn func(key string, entry *State[T])) {
	if fn == nil {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	for key, entry := range r.entries[reflect.TypeFor[T]()] {
		fn(key, entry.(*State[T]))
	}
}

// Clear drops every entry for every type. Subsequent accesses behave as
// first-time creation.
func (r *Registry) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = make(map[reflect.Type]map[string]any)
}
