package strata

import (
	"context"
	"errors"
	"time"
)

// ErrNilCore indicates Execute was handed a nil core function.
var ErrNilCore = errors.New("strata: core function must not be nil")

// ComposeOption configures pipeline composition.
type ComposeOption func(*composeConfig)

type composeConfig struct {
	logger HookLogger
}

// WithHookLogger wires a logger that receives one event per hook invocation.
func WithHookLogger(logger HookLogger) ComposeOption {
	return func(cfg *composeConfig) {
		if logger == nil {
			cfg.logger = noopHookLogger{}
			return
		}
		cfg.logger = logger
	}
}

type boundBefore[A any] struct {
	layer   string
	generic bool
	fn      func(ctx context.Context, args A) error
}

type boundAfter[A, R any] struct {
	layer   string
	generic bool
	fn      func(ctx context.Context, result *R, args A) error
}

// Pipeline executes an operation through a fixed hook table. The table is
// resolved once by Compose; Execute never inspects layer capabilities again.
// Pipelines are immutable and safe for concurrent use.
type Pipeline[A, R any] struct {
	op           *Op[A, R]
	befores      []boundBefore[A]
	afters       []boundAfter[A, R]
	capabilities []HookCapability
}

// Compose resolves the hook table for op over the enabled layers of set.
// For each layer the operation-specific hook wins; the generic hook is bound
// only when no specific one exists; layers contributing neither are skipped.
func Compose[A, R any](op *Op[A, R], set *Set, opts ...ComposeOption) *Pipeline[A, R] {
	cfg := composeConfig{}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	p := &Pipeline[A, R]{op: op}
	for _, layer := range set.Layers() {
		cap := HookCapability{Layer: layer.Name(), Before: CapabilityNone, After: CapabilityNone}

		switch h := layer.(type) {
		case BeforeHook[A, R]:
			cap.Before = CapabilitySpecific
			p.befores = append(p.befores, boundBefore[A]{
				layer: layer.Name(),
				fn: func(ctx context.Context, args A) error {
					return h.Before(ctx, op, args)
				},
			})
		case AnyBeforeHook:
			cap.Before = CapabilityGeneric
			p.befores = append(p.befores, boundBefore[A]{
				layer:   layer.Name(),
				generic: true,
				fn: func(ctx context.Context, args A) error {
					return h.BeforeAny(ctx, op, args)
				},
			})
		}

		switch h := layer.(type) {
		case AfterHook[A, R]:
			cap.After = CapabilitySpecific
			p.afters = append(p.afters, boundAfter[A, R]{
				layer: layer.Name(),
				fn: func(ctx context.Context, result *R, args A) error {
					return h.After(ctx, op, result, args)
				},
			})
		case AnyAfterHook:
			cap.After = CapabilityGeneric
			p.afters = append(p.afters, boundAfter[A, R]{
				layer:   layer.Name(),
				generic: true,
				fn: func(ctx context.Context, result *R, args A) error {
					return h.AfterAny(ctx, op, result, args)
				},
			})
		}

		p.capabilities = append(p.capabilities, cap)
	}

	if cfg.logger != nil {
		p.instrument(cfg.logger)
	}
	return p
}

// instrument wraps every bound hook with logger events so Execute stays
// branch-free.
func (p *Pipeline[A, R]) instrument(logger HookLogger) {
	opName := p.op.Name()
	for i := range p.befores {
		bound := p.befores[i]
		p.befores[i].fn = func(ctx context.Context, args A) error {
			start := time.Now()
			err := bound.fn(ctx, args)
			logger.LogHook(HookLogEvent{
				Op:       opName,
				Layer:    bound.layer,
				Phase:    PhaseBefore,
				Generic:  bound.generic,
				Duration: time.Since(start),
				Err:      err,
			})
			return err
		}
	}
	for i := range p.afters {
		bound := p.afters[i]
		p.afters[i].fn = func(ctx context.Context, result *R, args A) error {
			start := time.Now()
			err := bound.fn(ctx, result, args)
			logger.LogHook(HookLogEvent{
				Op:       opName,
				Layer:    bound.layer,
				Phase:    PhaseAfter,
				Generic:  bound.generic,
				Duration: time.Since(start),
				Err:      err,
			})
			return err
		}
	}
}

// Execute runs args through the pipeline. Before hooks fire in declaration
// order; a hook error aborts the run and the core function never executes.
// The core runs exactly once; its error skips all after hooks. After hooks
// fire in reverse declaration order and may mutate the result in place; an
// after hook error aborts the remaining after hooks and Execute returns the
// partially mutated result alongside the error. Errors are propagated
// untouched.
func (p *Pipeline[A, R]) Execute(ctx context.Context, core func(A) (R, error), args A) (R, error) {
	if core == nil {
		var zero R
		return zero, ErrNilCore
	}
	if len(p.befores) == 0 && len(p.afters) == 0 {
		return core(args)
	}
	if ctx == nil {
		ctx = context.Background()
	}

	for i := range p.befores {
		if err := p.befores[i].fn(ctx, args); err != nil {
			var zero R
			return zero, err
		}
	}

	result, err := core(args)
	if err != nil {
		return result, err
	}

	for i := len(p.afters) - 1; i >= 0; i-- {
		if err := p.afters[i].fn(ctx, &result, args); err != nil {
			return result, err
		}
	}
	return result, nil
}

// ExecuteTraced behaves like Execute and additionally collects a Trace of
// every hook invocation, including the ones cut off by a failure.
func (p *Pipeline[A, R]) ExecuteTraced(ctx context.Context, core func(A) (R, error), args A) (R, Trace, error) {
	trace := newTrace(p.op.Name())
	if core == nil {
		var zero R
		return zero, trace.finish(), ErrNilCore
	}
	if ctx == nil {
		ctx = context.Background()
	}

	for i := range p.befores {
		if err := trace.step(p.befores[i].layer, PhaseBefore, p.befores[i].generic, func() error {
			return p.befores[i].fn(ctx, args)
		}); err != nil {
			var zero R
			return zero, trace.finish(), err
		}
	}

	var result R
	if err := trace.step("", PhaseCore, false, func() error {
		var coreErr error
		result, coreErr = core(args)
		return coreErr
	}); err != nil {
		return result, trace.finish(), err
	}

	for i := len(p.afters) - 1; i >= 0; i-- {
		if err := trace.step(p.afters[i].layer, PhaseAfter, p.afters[i].generic, func() error {
			return p.afters[i].fn(ctx, &result, args)
		}); err != nil {
			return result, trace.finish(), err
		}
	}
	return result, trace.finish(), nil
}

// Op returns the descriptor the pipeline was composed for.
func (p *Pipeline[A, R]) Op() *Op[A, R] {
	return p.op
}

// Empty reports whether the pipeline holds no hooks and Execute degenerates
// to a direct call.
func (p *Pipeline[A, R]) Empty() bool {
	return len(p.befores) == 0 && len(p.afters) == 0
}
