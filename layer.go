package strata

import "context"

// Layer is a named unit of cross-cutting behaviour. Layers are stateless
// carriers of hooks; mutable data belongs in the state subpackage.
type Layer interface {
	Name() string
}

// EnabledLayer reports a build/configuration-time enablement decision for a
// layer. Layers that do not implement it are enabled. The flag is read when a
// Set is built and never again.
type EnabledLayer interface {
	Layer
	Enabled() bool
}

// BeforeHook is implemented by layers that provide an operation-specific
// before hook for the (A, R) call shape. The descriptor is passed so a layer
// can distinguish operations sharing a shape.
type BeforeHook[A, R any] interface {
	Layer
	Before(ctx context.Context, op *Op[A, R], args A) error
}

// AfterHook is implemented by layers that provide an operation-specific after
// hook. The hook may mutate the result in place; earlier-declared layers and
// the caller observe the mutation.
type AfterHook[A, R any] interface {
	Layer
	After(ctx context.Context, op *Op[A, R], result *R, args A) error
}

// AnyBeforeHook is a generic before hook applying to every operation. It is
// selected only when the layer provides no operation-specific before hook for
// the shape being composed.
type AnyBeforeHook interface {
	Layer
	BeforeAny(ctx context.Context, op OpInfo, args any) error
}

// AnyAfterHook is the generic counterpart of AfterHook. The result is passed
// as a pointer (*R boxed in any) so the hook can mutate it.
type AnyAfterHook interface {
	Layer
	AfterAny(ctx context.Context, op OpInfo, result any, args any) error
}

// IsEnabled reports the enablement flag of a single layer.
func IsEnabled(layer Layer) bool {
	if layer == nil {
		return false
	}
	if e, ok := layer.(EnabledLayer); ok {
		return e.Enabled()
	}
	return true
}
