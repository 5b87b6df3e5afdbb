package layers

import (
	"context"

	"github.com/derepsz/strata"
	"github.com/derepsz/strata/pkg/audit"
	"github.com/derepsz/strata/state"
)

// Audit emits one audit event per completed operation. Placed first in a
// layer set, its after hook runs last and therefore only fires for runs every
// other layer and the core let through.
type Audit struct {
	name    string
	emitter *audit.Emitter
	input   audit.EventInput
	enabled bool
}

// AuditOption configures an Audit layer.
type AuditOption func(*Audit)

// WithAuditName overrides the default layer name.
func WithAuditName(name string) AuditOption {
	return func(a *Audit) {
		if name != "" {
			a.name = name
		}
	}
}

// WithAuditInput supplies actor/tenant/channel defaults stamped on every
// emitted event.
func WithAuditInput(input audit.EventInput) AuditOption {
	return func(a *Audit) {
		a.input = input
	}
}

// WithAuditEnabled fixes the enablement flag.
func WithAuditEnabled(enabled bool) AuditOption {
	return func(a *Audit) {
		a.enabled = enabled
	}
}

// NewAudit constructs an audit layer emitting through emitter.
func NewAudit(emitter *audit.Emitter, opts ...AuditOption) *Audit {
	a := &Audit{name: "audit", emitter: emitter, enabled: true}
	for _, opt := range opts {
		if opt != nil {
			opt(a)
		}
	}
	return a
}

// Name implements strata.Layer.
func (a *Audit) Name() string { return a.name }

// Enabled implements strata.EnabledLayer.
func (a *Audit) Enabled() bool { return a.enabled }

// AfterAny implements strata.AnyAfterHook.
func (a *Audit) AfterAny(ctx context.Context, op strata.OpInfo, result any, _ any) error {
	if !a.emitter.Enabled() {
		return nil
	}
	input := a.input
	input.Op = op.Name()
	input.Layer = a.name
	input.Scope = state.ScopeName(ctx)
	input.NewValue = derefResult(result)
	return a.emitter.Emit(ctx, audit.BuildExecutedEvent(input))
}
