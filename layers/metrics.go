package layers

import (
	"context"

	"github.com/derepsz/strata"
	"github.com/derepsz/strata/state"
)

// MetricsData accumulates per-scope operation counters.
type MetricsData struct {
	OperationCount   int
	OperationHistory []string
}

// Metrics counts every operation passing through a pipeline into the state
// entry for MetricsData under the scope carried by ctx.
type Metrics struct {
	name     string
	registry *state.Registry
	enabled  bool
}

// MetricsOption configures a Metrics layer.
type MetricsOption func(*Metrics)

// WithMetricsName overrides the default layer name.
func WithMetricsName(name string) MetricsOption {
	return func(m *Metrics) {
		if name != "" {
			m.name = name
		}
	}
}

// WithMetricsEnabled fixes the enablement flag.
func WithMetricsEnabled(enabled bool) MetricsOption {
	return func(m *Metrics) {
		m.enabled = enabled
	}
}

// NewMetrics constructs a metrics layer writing into registry.
func NewMetrics(registry *state.Registry, opts ...MetricsOption) *Metrics {
	m := &Metrics{name: "metrics", registry: registry, enabled: true}
	for _, opt := range opts {
		if opt != nil {
			opt(m)
		}
	}
	return m
}

// Name implements strata.Layer.
func (m *Metrics) Name() string { return m.name }

// Enabled implements strata.EnabledLayer.
func (m *Metrics) Enabled() bool { return m.enabled }

// BeforeAny implements strata.AnyBeforeHook.
func (m *Metrics) BeforeAny(ctx context.Context, op strata.OpInfo, _ any) error {
	entry := state.Current[MetricsData](m.registry, ctx)
	entry.Modify(func(data *MetricsData) {
		data.OperationCount++
		data.OperationHistory = append(data.OperationHistory, op.Name())
	})
	return nil
}
