// Package strata composes cross-cutting layers around ordinary function
// calls. A pipeline wraps a core function with before hooks (declaration
// order) and after hooks (reverse order); hook capabilities are resolved once
// at composition time so execution pays no per-call dispatch cost, and an
// empty pipeline is a direct call. Mutable layer data lives in the state
// subpackage, keyed by value type and context scope.
package strata

import "reflect"

// None is the result type for operations that produce no value.
type None struct{}

// Op describes a call shape layers can hook into: argument type A and result
// type R. Identity is the descriptor value itself, so two operations sharing
// the same shape remain distinct hook targets. The name is diagnostic and
// surfaces in traces, logs, and generic hooks.
type Op[A, R any] struct {
	name string
}

// NewOp constructs an operation descriptor.
func NewOp[A, R any](name string) *Op[A, R] {
	return &Op[A, R]{name: name}
}

// Name returns the diagnostic name supplied at construction.
func (o *Op[A, R]) Name() string {
	if o == nil {
		return ""
	}
	return o.name
}

// ArgsType reports the argument type of the operation.
func (o *Op[A, R]) ArgsType() reflect.Type {
	return reflect.TypeFor[A]()
}

// ResultType reports the result type of the operation.
func (o *Op[A, R]) ResultType() reflect.Type {
	return reflect.TypeFor[R]()
}

// OpInfo is the type-erased view of an operation descriptor handed to generic
// hooks.
type OpInfo interface {
	Name() string
	ArgsType() reflect.Type
	ResultType() reflect.Type
}

// Void adapts a core function with no result to the pipeline signature.
func Void[A any](core func(A) error) func(A) (None, error) {
	return func(args A) (None, error) {
		return None{}, core(args)
	}
}
