package strata

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Trace captures the hook-by-hook execution of a single pipeline run.
type Trace struct {
	RunID     string        `json:"run_id"`
	Op        string        `json:"op"`
	StartedAt time.Time     `json:"started_at"`
	Duration  time.Duration `json:"duration"`
	Steps     []HookRecord  `json:"steps"`
}

// HookRecord details one step of a traced run. Layer is empty for the core
// step.
type HookRecord struct {
	Layer    string        `json:"layer,omitempty"`
	Phase    string        `json:"phase"`
	Generic  bool          `json:"generic,omitempty"`
	Duration time.Duration `json:"duration"`
	Err      string        `json:"err,omitempty"`
}

// ToJSON serialises the trace for logging or transport helpers.
func (t Trace) ToJSON() ([]byte, error) {
	type alias Trace
	return json.Marshal(alias(t))
}

// TraceFromJSON deserialises a payload previously generated via ToJSON.
func TraceFromJSON(payload []byte) (Trace, error) {
	type alias Trace
	var trace alias
	if err := json.Unmarshal(payload, &trace); err != nil {
		return Trace{}, err
	}
	return Trace(trace), nil
}

type traceBuilder struct {
	trace Trace
	start time.Time
}

func newTrace(op string) *traceBuilder {
	now := time.Now()
	return &traceBuilder{
		trace: Trace{
			RunID:     uuid.NewString(),
			Op:        op,
			StartedAt: now,
		},
		start: now,
	}
}

func (b *traceBuilder) step(layer, phase string, generic bool, fn func() error) error {
	start := time.Now()
	err := fn()
	record := HookRecord{
		Layer:    layer,
		Phase:    phase,
		Generic:  generic,
		Duration: time.Since(start),
	}
	if err != nil {
		record.Err = err.Error()
	}
	b.trace.Steps = append(b.trace.Steps, record)
	return err
}

func (b *traceBuilder) finish() Trace {
	b.trace.Duration = time.Since(b.start)
	return b.trace
}
