package memengine

import (
	"github.com/aegislib/circulation/eventstore"
)

// Option configures an EventStore.
type Option func(*EventStore) error

// WithLogger logs query/append outcomes at info level and failures at error level.
func WithLogger(logger eventstore.Logger) Option {
	return func(es *EventStore) error {
		es.instr.Logger = logger
		return nil
	}
}

// WithContextualLogger takes precedence over WithLogger.
func WithContextualLogger(logger eventstore.ContextualLogger) Option {
	return func(es *EventStore) error {
		es.instr.ContextualLogger = logger
		return nil
	}
}

func WithMetrics(collector eventstore.MetricsCollector) Option {
	return func(es *EventStore) error {
		es.instr.Metrics = collector
		return nil
	}
}

func WithTracing(collector eventstore.TracingCollector) Option {
	return func(es *EventStore) error {
		es.instr.Tracing = collector
		return nil
	}
}
