// Package zapsink adapts binding and rule log events to a zap logger.
package zapsink

import (
	"go.uber.org/zap"

	docstate "github.com/goliatone/go-docstate"
)

// Sink forwards docstate log events to a zap.Logger.
type Sink struct {
	Logger *zap.Logger
}

// New returns a sink writing to logger. A nil logger yields a no-op sink.
func New(logger *zap.Logger) *Sink {
	return &Sink{Logger: logger}
}

// LogWrite implements docstate.Logger.
func (s *Sink) LogWrite(event docstate.WriteEvent) {
	if s == nil || s.Logger == nil {
		return
	}
	fields := []zap.Field{
		zap.String("key", event.Key),
		zap.String("trigger", event.Trigger),
		zap.Int("bytes", event.Bytes),
		zap.String("snapshot_id", event.SnapshotID),
		zap.Duration("duration", event.Duration),
	}
	if event.Err != nil {
		s.Logger.Error("document write failed", append(fields, zap.Error(event.Err))...)
		return
	}
	s.Logger.Debug("document written", fields...)
}

// LogRule implements docstate.RuleLogger.
func (s *Sink) LogRule(event docstate.RuleLogEvent) {
	if s == nil || s.Logger == nil {
		return
	}
	fields := []zap.Field{
		zap.String("engine", event.Engine),
		zap.String("expr", event.Expr),
		zap.String("key", event.Key),
		zap.Duration("duration", event.Duration),
	}
	if event.Err != nil {
		s.Logger.Warn("constraint evaluation failed", append(fields, zap.Error(event.Err))...)
		return
	}
	s.Logger.Debug("constraint evaluated", fields...)
}
