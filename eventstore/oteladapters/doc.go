// Package oteladapters implements the eventstore observability interfaces on top of OpenTelemetry.
//
// The same adapters are handed to the command and query handlers of the circulation engine,
// so engines and handlers report into one MeterProvider and one TracerProvider:
//
//	logger := oteladapters.NewSlogBridgeLogger("circulation")
//	metrics := oteladapters.NewMetricsCollector(otel.Meter("circulation"))
//	tracing := oteladapters.NewTracingCollector(otel.Tracer("circulation"))
//
//	store, err := memengine.NewEventStore(
//		memengine.WithContextualLogger(logger),
//		memengine.WithMetrics(metrics),
//		memengine.WithTracing(tracing),
//	)
package oteladapters
