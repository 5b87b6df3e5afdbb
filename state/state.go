// Package state provides keyed, observable value cells for layers. Each
// State holds one value of type T behind a mutex; the Registry maps
// (value type, context key) pairs to shared State instances so independent
// contexts never see each other's data.
package state

import "sync"

// Observer receives the committed value after every mutation.
type Observer[T any] func(T)

// State is a lockable, observable cell holding one value of type T.
//
// Observers run synchronously on the mutating goroutine after the lock is
// released, with a copy of the committed value, in registration order. An
// observer may re-enter the same State without deadlocking; notifications for
// overlapping mutations from different goroutines may interleave, but each
// observer always sees values that were actually committed.
type State[T any] struct {
	mu        sync.Mutex
	value     T
	observers []Observer[T]
}

// New constructs a State holding the zero value of T.
func New[T any]() *State[T] {
	return &State[T]{}
}

// Read returns a copy of the current value. The lock is held only for the
// copy.
func (s *State[T]) Read() T {
	s.mu.Lock()
	value := s.value
	s.mu.Unlock()
	return value
}

// Write replaces the value wholesale and notifies observers.
func (s *State[T]) Write(value T) {
	s.mu.Lock()
	s.value = value
	committed, observers := s.snapshotLocked()
	s.mu.Unlock()
	notify(observers, committed)
}

// Modify applies an in-place mutation under the lock and notifies observers.
// This is the only access pattern that makes a multi-field update atomic with
// respect to concurrent readers.
func (s *State[T]) Modify(fn func(*T)) {
	if fn == nil {
		return
	}
	s.mu.Lock()
	fn(&s.value)
	committed, observers := s.snapshotLocked()
	s.mu.Unlock()
	notify(observers, committed)
}

// Patch merges the non-empty parts of patch over the current value in one
// locked update. Nil pointers, maps, slices, and zero scalars in patch fall
// back to the current value.
func (s *State[T]) Patch(patch T) {
	s.Modify(func(current *T) {
		*current = Merge(patch, *current)
	})
}

// Observe appends an observer invoked after every committed mutation, in
// registration order.
func (s *State[T]) Observe(observer Observer[T]) {
	if observer == nil {
		return
	}
	s.mu.Lock()
	s.observers = append(s.observers, observer)
	s.mu.Unlock()
}

// snapshotLocked copies the committed value and the observer list. Callers
// must hold the lock.
func (s *State[T]) snapshotLocked() (T, []Observer[T]) {
	if len(s.observers) == 0 {
		return s.value, nil
	}
	return s.value, append([]Observer[T](nil), s.observers...)
}

func notify[T any](observers []Observer[T], value T) {
	for _, observer := range observers {
		observer(value)
	}
}
