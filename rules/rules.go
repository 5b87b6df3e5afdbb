// Package rules evaluates guard expressions against operation arguments.
// Three interchangeable engines are provided: expr-lang (default), CEL, and —
// behind the js_eval build tag — JavaScript via goja. Validation layers
// compile a rule once and evaluate it per pipeline execution.
package rules

import "time"

// RuleContext carries the inputs a rule expression is evaluated against.
type RuleContext struct {
	// Args holds named operation arguments bound into the expression
	// environment under "args" and, for map payloads, as top-level names.
	Args     map[string]any
	Metadata map[string]any
	Now      *time.Time
	Op       string
	Layer    string
	Scope    string
}

func (ctx RuleContext) withDefaults() RuleContext {
	if ctx.Now == nil {
		now := time.Now()
		ctx.Now = &now
	}
	if ctx.Args == nil {
		ctx.Args = map[string]any{}
	}
	if ctx.Metadata == nil {
		ctx.Metadata = map[string]any{}
	}
	return ctx
}

func (ctx RuleContext) timestamp() time.Time {
	ctx = ctx.withDefaults()
	return *ctx.Now
}

func (ctx RuleContext) scopeLabel() string {
	if ctx.Scope != "" {
		return ctx.Scope
	}
	return "unknown"
}

func (ctx RuleContext) binding() map[string]any {
	binding := map[string]any{
		"now":      ctx.timestamp(),
		"args":     ctx.Args,
		"metadata": ctx.Metadata,
		"op":       ctx.Op,
		"layer":    ctx.Layer,
		"scope":    ctx.Scope,
	}
	return binding
}

// Evaluator executes expressions against a rule context.
type Evaluator interface {
	Evaluate(ctx RuleContext, expr string) (any, error)
	Compile(expr string, opts ...CompileOption) (CompiledRule, error)
}

// CompiledRule represents a reusable expression program.
type CompiledRule interface {
	Evaluate(ctx RuleContext) (any, error)
}

// CompileOption configures evaluator compile behaviour.
type CompileOption interface {
	applyCompileOption(*compileConfig)
}

type compileConfig struct{}

type compileOptionFunc func(*compileConfig)

func (f compileOptionFunc) applyCompileOption(cfg *compileConfig) {
	if f != nil {
		f(cfg)
	}
}
