package layers

import (
	"context"
	"fmt"
	"reflect"

	"github.com/derepsz/strata"
	"github.com/derepsz/strata/state"
)

// LogLevel controls whether the logging layer records operations.
type LogLevel int

const (
	// LevelNone suppresses all lines.
	LevelNone LogLevel = iota
	// LevelInfo records one line per completed operation.
	LevelInfo
)

// LogData holds the per-scope log level and the recorded lines.
type LogData struct {
	Level LogLevel
	Lines []string
}

// Logging records one formatted line per completed operation into the LogData
// entry for the scope carried by ctx. The level is read from the same entry,
// so scopes can be silenced independently.
type Logging struct {
	name     string
	registry *state.Registry
	enabled  bool
	format   func(op string, scope string, args, result any) string
}

// LoggingOption configures a Logging layer.
type LoggingOption func(*Logging)

// WithLoggingName overrides the default layer name.
func WithLoggingName(name string) LoggingOption {
	return func(l *Logging) {
		if name != "" {
			l.name = name
		}
	}
}

// WithLoggingEnabled fixes the enablement flag.
func WithLoggingEnabled(enabled bool) LoggingOption {
	return func(l *Logging) {
		l.enabled = enabled
	}
}

// WithLogFormat replaces the default line formatter.
func WithLogFormat(format func(op string, scope string, args, result any) string) LoggingOption {
	return func(l *Logging) {
		if format != nil {
			l.format = format
		}
	}
}

// NewLogging constructs a logging layer writing into registry.
func NewLogging(registry *state.Registry, opts ...LoggingOption) *Logging {
	l := &Logging{
		name:     "logging",
		registry: registry,
		enabled:  true,
		format:   defaultLogFormat,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(l)
		}
	}
	return l
}

func defaultLogFormat(op, scope string, args, result any) string {
	return fmt.Sprintf("%s (%s): %v -> %v", op, scope, args, result)
}

// Name implements strata.Layer.
func (l *Logging) Name() string { return l.name }

// Enabled implements strata.EnabledLayer.
func (l *Logging) Enabled() bool { return l.enabled }

// AfterAny implements strata.AnyAfterHook.
func (l *Logging) AfterAny(ctx context.Context, op strata.OpInfo, result any, args any) error {
	scope := state.ScopeName(ctx)
	entry := state.Current[LogData](l.registry, ctx)
	line := l.format(op.Name(), scope, args, derefResult(result))
	entry.Modify(func(data *LogData) {
		if data.Level < LevelInfo {
			return
		}
		data.Lines = append(data.Lines, line)
	})
	return nil
}

// derefResult unwraps the *R boxed in any that generic after hooks receive.
func derefResult(result any) any {
	v := reflect.ValueOf(result)
	if v.Kind() == reflect.Pointer && !v.IsNil() {
		return v.Elem().Interface()
	}
	return result
}
