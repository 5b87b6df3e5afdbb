// Package layers provides ready-made layers for strata pipelines: functional
// adapters for one-off hooks plus metrics, logging, validation, and audit
// layers backed by the state, rules, and audit packages.
package layers

import (
	"context"

	"github.com/derepsz/strata"
)

// Before returns a layer contributing only an operation-specific before hook.
func Before[A, R any](name string, fn func(context.Context, *strata.Op[A, R], A) error) strata.Layer {
	return &beforeLayer[A, R]{name: name, fn: fn}
}

// After returns a layer contributing only an operation-specific after hook.
func After[A, R any](name string, fn func(context.Context, *strata.Op[A, R], *R, A) error) strata.Layer {
	return &afterLayer[A, R]{name: name, fn: fn}
}

// Wrap returns a layer contributing both hooks for one operation shape.
// Either function may be nil, turning that phase into a no-op.
func Wrap[A, R any](name string, before func(context.Context, *strata.Op[A, R], A) error, after func(context.Context, *strata.Op[A, R], *R, A) error) strata.Layer {
	return &wrapLayer[A, R]{name: name, before: before, after: after}
}

// BeforeAny returns a layer contributing a generic before hook.
func BeforeAny(name string, fn func(context.Context, strata.OpInfo, any) error) strata.Layer {
	return &anyBeforeLayer{name: name, fn: fn}
}

// AfterAny returns a layer contributing a generic after hook. The result is
// passed as a pointer boxed in any.
func AfterAny(name string, fn func(context.Context, strata.OpInfo, any, any) error) strata.Layer {
	return &anyAfterLayer{name: name, fn: fn}
}

// Disabled wraps a layer with a permanently false enablement flag. The
// wrapper intentionally hides the layer's hook interfaces; a disabled layer
// never reaches capability detection anyway.
func Disabled(layer strata.Layer) strata.Layer {
	return disabledLayer{layer: layer}
}

type beforeLayer[A, R any] struct {
	name string
	fn   func(context.Context, *strata.Op[A, R], A) error
}

func (l *beforeLayer[A, R]) Name() string { return l.name }

func (l *beforeLayer[A, R]) Before(ctx context.Context, op *strata.Op[A, R], args A) error {
	if l.fn == nil {
		return nil
	}
	return l.fn(ctx, op, args)
}

type afterLayer[A, R any] struct {
	name string
	fn   func(context.Context, *strata.Op[A, R], *R, A) error
}

func (l *afterLayer[A, R]) Name() string { return l.name }

func (l *afterLayer[A, R]) After(ctx context.Context, op *strata.Op[A, R], result *R, args A) error {
	if l.fn == nil {
		return nil
	}
	return l.fn(ctx, op, result, args)
}

type wrapLayer[A, R any] struct {
	name   string
	before func(context.Context, *strata.Op[A, R], A) error
	after  func(context.Context, *strata.Op[A, R], *R, A) error
}

func (l *wrapLayer[A, R]) Name() string { return l.name }

func (l *wrapLayer[A, R]) Before(ctx context.Context, op *strata.Op[A, R], args A) error {
	if l.before == nil {
		return nil
	}
	return l.before(ctx, op, args)
}

func (l *wrapLayer[A, R]) After(ctx context.Context, op *strata.Op[A, R], result *R, args A) error {
	if l.after == nil {
		return nil
	}
	return l.after(ctx, op, result, args)
}

type anyBeforeLayer struct {
	name string
	fn   func(context.Context, strata.OpInfo, any) error
}

func (l *anyBeforeLayer) Name() string { return l.name }

func (l *anyBeforeLayer) BeforeAny(ctx context.Context, op strata.OpInfo, args any) error {
	if l.fn == nil {
		return nil
	}
	return l.fn(ctx, op, args)
}

type anyAfterLayer struct {
	name string
	fn   func(context.Context, strata.OpInfo, any, any) error
}

func (l *anyAfterLayer) Name() string { return l.name }

func (l *anyAfterLayer) AfterAny(ctx context.Context, op strata.OpInfo, result any, args any) error {
	if l.fn == nil {
		return nil
	}
	return l.fn(ctx, op, result, args)
}

type disabledLayer struct {
	layer strata.Layer
}

func (l disabledLayer) Name() string {
	if l.layer == nil {
		return ""
	}
	return l.layer.Name()
}

func (l disabledLayer) Enabled() bool { return false }
