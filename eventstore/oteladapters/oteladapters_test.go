package oteladapters_test

import (
	"bytes"
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/log/noop"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"github.com/aegislib/circulation/eventstore/oteladapters"
)

func givenMetricsCollector(t *testing.T) (*oteladapters.MetricsCollector, *sdkmetric.ManualReader) {
	t.Helper()

	reader := sdkmetric.NewManualReader()
	provider := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	t.Cleanup(func() { _ = provider.Shutdown(context.Background()) })

	return oteladapters.NewMetricsCollector(provider.Meter("test")), reader
}

func givenTracingCollector(t *testing.T) (*oteladapters.TracingCollector, *tracetest.InMemoryExporter) {
	t.Helper()

	exporter := tracetest.NewInMemoryExporter()
	provider := sdktrace.NewTracerProvider(sdktrace.WithSyncer(exporter))
	t.Cleanup(func() { _ = provider.Shutdown(context.Background()) })

	return oteladapters.NewTracingCollector(provider.Tracer("test")), exporter
}

func collect(t *testing.T, reader *sdkmetric.ManualReader, name string) metricdata.Aggregation {
	t.Helper()

	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(context.Background(), &rm))

	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			if m.Name == name {
				return m.Data
			}
		}
	}

	require.Failf(t, "metric not found", "metric %q was not collected", name)

	return nil
}

func Test_MetricsCollector_RecordDuration_InSeconds(t *testing.T) {
	// arrange
	collector, reader := givenMetricsCollector(t)

	// act
	collector.RecordDuration("commandhandler_handle_duration_seconds", 150*time.Millisecond,
		map[string]string{"command_type": "IssueCopy", "status": "success"})

	// assert
	histogram, ok := collect(t, reader, "commandhandler_handle_duration_seconds").(metricdata.Histogram[float64])
	require.True(t, ok)
	require.Len(t, histogram.DataPoints, 1)
	assert.Equal(t, uint64(1), histogram.DataPoints[0].Count)
	assert.InDelta(t, 0.15, histogram.DataPoints[0].Sum, 0.001)

	expected := attribute.NewSet(attribute.String("command_type", "IssueCopy"), attribute.String("status", "success"))
	assert.True(t, histogram.DataPoints[0].Attributes.Equals(&expected))
}

func Test_MetricsCollector_IncrementCounter_ReusesInstrument(t *testing.T) {
	collector, reader := givenMetricsCollector(t)
	labels := map[string]string{"engine": "memory"}

	collector.IncrementCounter("eventstore_events_appended_total", labels)
	collector.IncrementCounterContext(context.Background(), "eventstore_events_appended_total", labels)
	collector.IncrementCounter("eventstore_events_appended_total", labels)

	sum, ok := collect(t, reader, "eventstore_events_appended_total").(metricdata.Sum[int64])
	require.True(t, ok)
	require.Len(t, sum.DataPoints, 1)
	assert.Equal(t, int64(3), sum.DataPoints[0].Value)
}

func Test_MetricsCollector_RecordValue_KeepsLastValue(t *testing.T) {
	collector, reader := givenMetricsCollector(t)

	collector.RecordValue("circulation_copies_available", 10, nil)
	collector.RecordValueContext(context.Background(), "circulation_copies_available", 7, nil)

	gauge, ok := collect(t, reader, "circulation_copies_available").(metricdata.Gauge[float64])
	require.True(t, ok)
	require.Len(t, gauge.DataPoints, 1)
	assert.InDelta(t, 7.0, gauge.DataPoints[0].Value, 0.0001)
}

func Test_MetricsCollector_IsSafeForConcurrentUse(t *testing.T) {
	collector, reader := givenMetricsCollector(t)
	done := make(chan struct{})

	for range 8 {
		go func() {
			defer func() { done <- struct{}{} }()
			for range 50 {
				collector.IncrementCounter("concurrent_total", nil)
			}
		}()
	}
	for range 8 {
		<-done
	}

	sum, ok := collect(t, reader, "concurrent_total").(metricdata.Sum[int64])
	require.True(t, ok)
	assert.Equal(t, int64(400), sum.DataPoints[0].Value)
}

func Test_TracingCollector_SpanStatus(t *testing.T) {
	testCases := []struct {
		name     string
		status   string
		expected codes.Code
	}{
		{name: "success", status: "success", expected: codes.Ok},
		{name: "idempotent", status: "idempotent", expected: codes.Ok},
		{name: "error", status: "error", expected: codes.Error},
		{name: "conflict", status: "conflict", expected: codes.Error},
		{name: "canceled", status: "canceled", expected: codes.Error},
		{name: "unknown keeps unset", status: "whatever", expected: codes.Unset},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// arrange
			collector, exporter := givenTracingCollector(t)

			// act
			_, span := collector.StartSpan(context.Background(), "eventstore.append", map[string]string{"engine": "memory"})
			collector.FinishSpan(span, tc.status, map[string]string{"event_count": "1"})

			// assert
			spans := exporter.GetSpans()
			require.Len(t, spans, 1)
			assert.Equal(t, "eventstore.append", spans[0].Name)
			assert.Equal(t, tc.expected, spans[0].Status.Code)
			assert.Contains(t, spans[0].Attributes, attribute.String("engine", "memory"))
			assert.Contains(t, spans[0].Attributes, attribute.String("event_count", "1"))
		})
	}
}

func Test_TracingCollector_ChildSpansShareTheTrace(t *testing.T) {
	collector, exporter := givenTracingCollector(t)

	ctx, parent := collector.StartSpan(context.Background(), "commandhandler.handle", nil)
	_, child := collector.StartSpan(ctx, "eventstore.query", nil)
	collector.FinishSpan(child, "success", nil)
	collector.FinishSpan(parent, "success", nil)

	spans := exporter.GetSpans()
	require.Len(t, spans, 2)
	assert.Equal(t, spans[1].SpanContext.TraceID(), spans[0].SpanContext.TraceID())
	assert.Equal(t, spans[1].SpanContext.SpanID(), spans[0].Parent.SpanID(), "child ends first")
}

func Test_SlogBridgeLoggerWithHandler_WritesAllLevels(t *testing.T) {
	// arrange
	var buf bytes.Buffer
	logger := oteladapters.NewSlogBridgeLoggerWithHandler(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	ctx := context.Background()

	// act
	logger.DebugContext(ctx, "debug message")
	logger.InfoContext(ctx, "info message", "copy_id", "ACC-1")
	logger.WarnContext(ctx, "warn message")
	logger.ErrorContext(ctx, "error message", "attempt", 3)

	// assert
	output := buf.String()
	assert.Contains(t, output, `"level":"DEBUG"`)
	assert.Contains(t, output, `"msg":"info message","copy_id":"ACC-1"`)
	assert.Contains(t, output, `"level":"WARN"`)
	assert.Contains(t, output, `"attempt":3`)
}

func Test_OTelLogger_AcceptsAnyArguments(t *testing.T) {
	logger := oteladapters.NewOTelLogger(noop.NewLoggerProvider().Logger("test"))
	ctx := context.Background()

	assert.NotPanics(t, func() {
		logger.InfoContext(ctx, "message", "string", "v", "int", 1, "bool", true, "dangling")
		logger.ErrorContext(ctx, "message", slog.String("k", "v"), "error", assert.AnError)
		logger.DebugContext(ctx, "message")
		logger.WarnContext(ctx, "message", 42, "not a key")
	})
}
