package state

import "context"

// GlobalScope is the context key convenience lookups default to.
const GlobalScope = "global"

type scopeKeyType struct{}

var scopeKey scopeKeyType

// WithScope tags ctx with a context key used by Current. An empty name
// resolves to GlobalScope.
func WithScope(ctx context.Context, name string) context.Context {
	if name == "" {
		name = GlobalScope
	}
	return context.WithValue(ctx, scopeKey, name)
}

// ScopeName returns the context key carried by ctx, defaulting to
// GlobalScope.
func ScopeName(ctx context.Context) string {
	if ctx == nil {
		return GlobalScope
	}
	if name, ok := ctx.Value(scopeKey).(string); ok && name != "" {
		return name
	}
	return GlobalScope
}

// Global resolves the State for (T, GlobalScope).
func Global[T any](r *Registry) *State[T] {
	return For[T](r, GlobalScope)
}

// Current resolves the State for (T, ScopeName(ctx)).
func Current[T any](r *Registry, ctx context.Context) *State[T] {
	return For[T](r, ScopeName(ctx))
}
