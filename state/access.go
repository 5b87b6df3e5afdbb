package state

// Access is a scoped accessor over a State. It holds the entry's lock from
// Acquire until Release, so every mutation made through Value lands as one
// logical update; Release unlocks and fires a single observer notification.
type Access[T any] struct {
	state    *State[T]
	released bool
}

// Access acquires the entry's lock and returns a scoped accessor. The caller
// must Release it; defer is the usual pattern:
//
//	acc := entry.Access()
//	defer acc.Release()
//	acc.Value().Counter++
func (s *State[T]) Access() *Access[T] {
	s.mu.Lock()
	return &Access[T]{state: s}
}

// Value exposes the contained value for mutation. The returned pointer must
// not outlive the accessor.
func (a *Access[T]) Value() *T {
	return &a.state.value
}

// Release unlocks the entry and notifies observers with the committed value.
// It is idempotent.
func (a *Access[T]) Release() {
	if a == nil || a.released {
		return
	}
	a.released = true
	committed, observers := a.state.snapshotLocked()
	a.state.mu.Unlock()
	notify(observers, committed)
}
