// Package telemetry bundles the logging, metrics and tracing calls shared by all eventstore engines.
package telemetry

import (
	"context"
	"math"
	"strconv"
	"time"

	"github.com/aegislib/circulation/eventstore"
)

const (
	MetricQueryDuration        = "eventstore_query_duration_seconds"
	MetricAppendDuration       = "eventstore_append_duration_seconds"
	MetricEventsQueried        = "eventstore_events_queried_total"
	MetricEventsAppended       = "eventstore_events_appended_total"
	MetricConcurrencyConflicts = "eventstore_concurrency_conflicts_total"
	MetricStoreErrors          = "eventstore_errors_total"

	SpanNameQuery  = "eventstore.query"
	SpanNameAppend = "eventstore.append"

	OperationQuery  = "query"
	OperationAppend = "append"

	StatusSuccess  = "success"
	StatusError    = "error"
	StatusConflict = "conflict"

	AttrEngine      = "engine"
	AttrOperation   = "operation"
	AttrStatus      = "status"
	AttrErrorType   = "error_type"
	AttrEventCount  = "event_count"
	AttrMaxSequence = "max_sequence"
	AttrExpectedSeq = "expected_sequence"
	AttrDurationMS  = "duration_ms"
	AttrError       = "error"
	AttrQuery       = "query"

	LogMsgQueryCompleted      = "eventstore operation: query completed"
	LogMsgEventsAppended      = "eventstore operation: events appended"
	LogMsgConcurrencyConflict = "eventstore operation: concurrency conflict detected"
	LogMsgStatementExecuted   = "eventstore statement executed"
)

// Instrumentation is embedded by engines. Every collector is optional.
type Instrumentation struct {
	Engine           string
	Logger           eventstore.Logger
	ContextualLogger eventstore.ContextualLogger
	Metrics          eventstore.MetricsCollector
	Tracing          eventstore.TracingCollector
}

// StartSpan opens a span for operation, or returns a nil SpanContext when tracing is off.
func (in Instrumentation) StartSpan(ctx context.Context, name, operation string) (context.Context, eventstore.SpanContext) {
	if in.Tracing == nil {
		return ctx, nil
	}

	return in.Tracing.StartSpan(ctx, name, map[string]string{AttrOperation: operation, AttrEngine: in.Engine})
}

// FinishSpan closes span with status and attrs; it tolerates a nil span.
func (in Instrumentation) FinishSpan(span eventstore.SpanContext, status string, attrs map[string]string) {
	if in.Tracing == nil || span == nil {
		return
	}

	in.Tracing.FinishSpan(span, status, attrs)
}

// QuerySucceeded records a finished query.
func (in Instrumentation) QuerySucceeded(
	ctx context.Context,
	span eventstore.SpanContext,
	eventCount int,
	maxSeq eventstore.MaxSequenceNumberUint,
	duration time.Duration,
) {

	in.recordDuration(ctx, MetricQueryDuration, duration, OperationQuery, StatusSuccess)
	in.recordValue(ctx, MetricEventsQueried, float64(eventCount), OperationQuery, StatusSuccess)
	in.FinishSpan(span, StatusSuccess, map[string]string{
		AttrEventCount:  strconv.Itoa(eventCount),
		AttrMaxSequence: strconv.FormatUint(uint64(maxSeq), 10),
		AttrDurationMS:  strconv.FormatFloat(ToMilliseconds(duration), 'f', 3, 64),
	})
	in.Info(ctx, LogMsgQueryCompleted, AttrEventCount, eventCount, AttrDurationMS, ToMilliseconds(duration))
}

// AppendSucceeded records a finished append.
func (in Instrumentation) AppendSucceeded(
	ctx context.Context,
	span eventstore.SpanContext,
	eventCount int,
	duration time.Duration,
) {

	in.recordDuration(ctx, MetricAppendDuration, duration, OperationAppend, StatusSuccess)
	in.recordValue(ctx, MetricEventsAppended, float64(eventCount), OperationAppend, StatusSuccess)
	in.FinishSpan(span, StatusSuccess, map[string]string{
		AttrEventCount: strconv.Itoa(eventCount),
		AttrDurationMS: strconv.FormatFloat(ToMilliseconds(duration), 'f', 3, 64),
	})
	in.Info(ctx, LogMsgEventsAppended, AttrEventCount, eventCount, AttrDurationMS, ToMilliseconds(duration))
}

// AppendConflicted records an append rejected by optimistic concurrency.
func (in Instrumentation) AppendConflicted(
	ctx context.Context,
	span eventstore.SpanContext,
	expectedSeq eventstore.MaxSequenceNumberUint,
	duration time.Duration,
) {

	in.recordDuration(ctx, MetricAppendDuration, duration, OperationAppend, StatusConflict)
	in.incrementCounter(ctx, MetricConcurrencyConflicts, map[string]string{AttrOperation: OperationAppend, AttrEngine: in.Engine})
	in.FinishSpan(span, StatusConflict, map[string]string{AttrExpectedSeq: strconv.FormatUint(uint64(expectedSeq), 10)})
	in.Info(ctx, LogMsgConcurrencyConflict, AttrExpectedSeq, expectedSeq)
}

// Failed records a failed operation and logs msg at error level.
func (in Instrumentation) Failed(
	ctx context.Context,
	span eventstore.SpanContext,
	operation string,
	errorType string,
	msg string,
	err error,
	args ...any,
) {

	in.incrementCounter(ctx, MetricStoreErrors, map[string]string{
		AttrOperation: operation,
		AttrEngine:    in.Engine,
		AttrErrorType: errorType,
	})
	in.FinishSpan(span, StatusError, map[string]string{AttrErrorType: errorType, AttrError: err.Error()})
	in.Error(ctx, msg, append([]any{AttrError, err.Error()}, args...)...)
}

// Statement logs a rendered statement at debug level.
func (in Instrumentation) Statement(ctx context.Context, operation, statement string, duration time.Duration) {
	in.Debug(ctx, LogMsgStatementExecuted, AttrOperation, operation, AttrDurationMS, ToMilliseconds(duration), AttrQuery, statement)
}

func (in Instrumentation) Debug(ctx context.Context, msg string, args ...any) {
	if in.ContextualLogger != nil {
		in.ContextualLogger.DebugContext(ctx, msg, args...)
	} else if in.Logger != nil {
		in.Logger.Debug(msg, args...)
	}
}

func (in Instrumentation) Info(ctx context.Context, msg string, args ...any) {
	if in.ContextualLogger != nil {
		in.ContextualLogger.InfoContext(ctx, msg, args...)
	} else if in.Logger != nil {
		in.Logger.Info(msg, args...)
	}
}

func (in Instrumentation) Warn(ctx context.Context, msg string, args ...any) {
	if in.ContextualLogger != nil {
		in.ContextualLogger.WarnContext(ctx, msg, args...)
	} else if in.Logger != nil {
		in.Logger.Warn(msg, args...)
	}
}

func (in Instrumentation) Error(ctx context.Context, msg string, args ...any) {
	if in.ContextualLogger != nil {
		in.ContextualLogger.ErrorContext(ctx, msg, args...)
	} else if in.Logger != nil {
		in.Logger.Error(msg, args...)
	}
}

func (in Instrumentation) recordDuration(ctx context.Context, metric string, d time.Duration, operation, status string) {
	if in.Metrics == nil {
		return
	}

	labels := map[string]string{AttrOperation: operation, AttrStatus: status, AttrEngine: in.Engine}
	if contextual, ok := in.Metrics.(eventstore.ContextualMetricsCollector); ok {
		contextual.RecordDurationContext(ctx, metric, d, labels)
		return
	}

	in.Metrics.RecordDuration(metric, d, labels)
}

func (in Instrumentation) recordValue(ctx context.Context, metric string, v float64, operation, status string) {
	if in.Metrics == nil {
		return
	}

	labels := map[string]string{AttrOperation: operation, AttrStatus: status, AttrEngine: in.Engine}
	if contextual, ok := in.Metrics.(eventstore.ContextualMetricsCollector); ok {
		contextual.RecordValueContext(ctx, metric, v, labels)
		return
	}

	in.Metrics.RecordValue(metric, v, labels)
}

func (in Instrumentation) incrementCounter(ctx context.Context, metric string, labels map[string]string) {
	if in.Metrics == nil {
		return
	}

	if contextual, ok := in.Metrics.(eventstore.ContextualMetricsCollector); ok {
		contextual.IncrementCounterContext(ctx, metric, labels)
		return
	}

	in.Metrics.IncrementCounter(metric, labels)
}

// ToMilliseconds rounds d to three decimal places.
func ToMilliseconds(d time.Duration) float64 {
	return math.Round(float64(d.Nanoseconds())/1e6*1000) / 1000
}
