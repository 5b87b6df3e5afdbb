package layers

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/derepsz/strata"
	"github.com/derepsz/strata/rules"
	"github.com/derepsz/strata/state"
)

// ErrRuleViolated reports a validation rule that evaluated to false.
var ErrRuleViolated = errors.New("layers: validation rule violated")

// Validation guards one operation shape with a rule expression. The rule is
// compiled once at construction and evaluated against the bound arguments on
// every execution; a non-true result aborts the pipeline before the core
// function runs.
type Validation[A, R any] struct {
	name     string
	engine   string
	expr     string
	compiled rules.CompiledRule
	bind     func(A) map[string]any
	logger   rules.RuleLogger
	enabled  bool
}

// ValidationOption configures a Validation layer.
type ValidationOption[A, R any] func(*Validation[A, R])

// WithValidationLogger wires a rule logger receiving one event per
// evaluation.
func WithValidationLogger[A, R any](logger rules.RuleLogger) ValidationOption[A, R] {
	return func(v *Validation[A, R]) {
		if logger != nil {
			v.logger = logger
		}
	}
}

// WithValidationEnabled fixes the enablement flag.
func WithValidationEnabled[A, R any](enabled bool) ValidationOption[A, R] {
	return func(v *Validation[A, R]) {
		v.enabled = enabled
	}
}

// NewValidation compiles expression with evaluator and returns the layer.
// bind maps the operation arguments into named rule inputs; a nil bind leaves
// only the standard bindings (op, layer, scope, now) available.
func NewValidation[A, R any](name string, evaluator rules.Evaluator, expression string, bind func(A) map[string]any, opts ...ValidationOption[A, R]) (*Validation[A, R], error) {
	if evaluator == nil {
		return nil, fmt.Errorf("layers: validation %q requires an evaluator", name)
	}
	compiled, err := evaluator.Compile(expression)
	if err != nil {
		return nil, err
	}
	v := &Validation[A, R]{
		name:     name,
		engine:   rules.EngineName(evaluator),
		expr:     expression,
		compiled: compiled,
		bind:     bind,
		logger:   rules.NopLogger{},
		enabled:  true,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(v)
		}
	}
	return v, nil
}

// Name implements strata.Layer.
func (v *Validation[A, R]) Name() string { return v.name }

// Enabled implements strata.EnabledLayer.
func (v *Validation[A, R]) Enabled() bool { return v.enabled }

// Before implements strata.BeforeHook.
func (v *Validation[A, R]) Before(ctx context.Context, op *strata.Op[A, R], args A) error {
	var bound map[string]any
	if v.bind != nil {
		bound = v.bind(args)
	}
	rctx := rules.RuleContext{
		Args:  bound,
		Op:    op.Name(),
		Layer: v.name,
		Scope: state.ScopeName(ctx),
	}

	start := time.Now()
	result, err := v.compiled.Evaluate(rctx)
	duration := time.Since(start)

	if err == nil {
		pass, ok := result.(bool)
		switch {
		case !ok:
			err = fmt.Errorf("layers: validation %q rule %q must evaluate to a boolean, got %T", v.name, v.expr, result)
		case !pass:
			err = fmt.Errorf("%w: %s", ErrRuleViolated, v.expr)
		}
	}

	v.logger.LogEvaluation(rules.RuleLogEvent{
		Engine:   v.engine,
		Expr:     v.expr,
		Op:       op.Name(),
		Scope:    rctx.Scope,
		Duration: duration,
		Err:      err,
	})
	return err
}
