package strata

import "time"

// Hook phases as they appear in log events and traces.
const (
	PhaseBefore = "before"
	PhaseAfter  = "after"
	PhaseCore   = "core"
)

// HookLogEvent describes a single hook invocation for logging.
type HookLogEvent struct {
	Op       string
	Layer    string
	Phase    string
	Generic  bool
	Duration time.Duration
	Err      error
}

// HookLogger records hook events.
type HookLogger interface {
	LogHook(HookLogEvent)
}

// HookLoggerFunc adapts a function to HookLogger.
type HookLoggerFunc func(HookLogEvent)

// LogHook implements HookLogger.
func (f HookLoggerFunc) LogHook(event HookLogEvent) {
	if f != nil {
		f(event)
	}
}

type noopHookLogger struct{}

func (noopHookLogger) LogHook(HookLogEvent) {}
