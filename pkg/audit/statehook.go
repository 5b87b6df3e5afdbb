package audit

import "context"

// StateObserver builds a state observer that emits a state.changed event for
// every committed value. The returned function matches the observer shape of
// the state package (func(T)); wire it with entry.Observe.
func StateObserver[T any](emitter *Emitter, key string, input EventInput) func(T) {
	return func(value T) {
		if !emitter.Enabled() {
			return
		}
		in := input
		in.Key = key
		in.NewValue = value
		_ = emitter.Emit(context.Background(), BuildStateChangedEvent(in))
	}
}
