package rules

import "time"

// RuleLogEvent describes an evaluation attempt for logging.
type RuleLogEvent struct {
	Engine   string
	Expr     string
	Op       string
	Scope    string
	Duration time.Duration
	Err      error
}

// RuleLogger records rule evaluations.
type RuleLogger interface {
	LogEvaluation(RuleLogEvent)
}

// RuleLoggerFunc adapts a function to RuleLogger.
type RuleLoggerFunc func(RuleLogEvent)

// LogEvaluation implements RuleLogger.
func (f RuleLoggerFunc) LogEvaluation(event RuleLogEvent) {
	if f != nil {
		f(event)
	}
}

// NopLogger discards every event.
type NopLogger struct{}

// LogEvaluation implements RuleLogger.
func (NopLogger) LogEvaluation(RuleLogEvent) {}

// EngineName reports the engine identifier of ev for logging.
func EngineName(ev Evaluator) string {
	switch ev.(type) {
	case *exprEvaluator:
		return "expr"
	case *celEvaluator:
		return "cel"
	default:
		if name := jsEngineName(ev); name != "" {
			return name
		}
		return "custom"
	}
}
