package state

import "github.com/derepsz/strata/internal/hydrate"

// Seed decodes payload into a T and writes it to the entry for (T, key),
// creating the entry when absent. When T (or *T) implements
// interface{ Validate() error } the decoded value is validated before the
// write; a failing validation leaves the entry untouched.
func Seed[T any](r *Registry, key string, payload map[string]any) error {
	return seed[T](r, key, payload)
}

// SeedStrict behaves like Seed but rejects payload fields unknown to T.
func SeedStrict[T any](r *Registry, key string, payload map[string]any) error {
	return seed[T](r, key, payload, hydrate.WithDisallowUnknownFields[T]())
}

func seed[T any](r *Registry, key string, payload map[string]any, opts ...hydrate.DecoderOption[T]) error {
	opts = append(opts, hydrate.WithPostHook[T](func(_ hydrate.Context, value *T) error {
		return validateValue(value)
	}))
	decoder := hydrate.NewDecoder(opts...)
	value, err := decoder.Decode(hydrate.Context{Key: key}, payload)
	if err != nil {
		return err
	}
	For[T](r, key).Write(value)
	return nil
}

func validateValue[T any](value *T) error {
	if v, ok := any(*value).(interface{ Validate() error }); ok {
		return v.Validate()
	}
	if v, ok := any(value).(interface{ Validate() error }); ok {
		return v.Validate()
	}
	return nil
}
