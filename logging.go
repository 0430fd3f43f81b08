package docstate

import "time"

// WriteEvent describes one attempted persisted write for logging.
type WriteEvent struct {
	Key        string
	Trigger    string // "debounce" or "save"
	Bytes      int
	SnapshotID string
	Duration   time.Duration
	Err        error
}

// Logger records binding write events.
type Logger interface {
	LogWrite(WriteEvent)
}

// LoggerFunc adapts a function to Logger.
type LoggerFunc func(WriteEvent)

// LogWrite implements Logger.
func (f LoggerFunc) LogWrite(event WriteEvent) {
	if f != nil {
		f(event)
	}
}

type noopLogger struct{}

func (noopLogger) LogWrite(WriteEvent) {}

// RuleLogEvent describes one constraint evaluation for logging.
type RuleLogEvent struct {
	Engine   string
	Expr     string
	Key      string
	Duration time.Duration
	Err      error
}

// RuleLogger records constraint evaluation events.
type RuleLogger interface {
	LogRule(RuleLogEvent)
}

// RuleLoggerFunc adapts a function to RuleLogger.
type RuleLoggerFunc func(RuleLogEvent)

// LogRule implements RuleLogger.
func (f RuleLoggerFunc) LogRule(event RuleLogEvent) {
	if f != nil {
		f(event)
	}
}

type noopRuleLogger struct{}

func (noopRuleLogger) LogRule(RuleLogEvent) {}
