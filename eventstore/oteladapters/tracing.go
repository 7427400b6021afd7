package oteladapters

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/aegislib/circulation/eventstore"
)

var (
	_ eventstore.TracingCollector = (*TracingCollector)(nil)
	_ eventstore.SpanContext      = (*OTelSpanContext)(nil)
)

// TracingCollector starts OpenTelemetry spans for eventstore operations and handlers.
type TracingCollector struct {
	tracer trace.Tracer
}

func NewTracingCollector(tracer trace.Tracer) *TracingCollector {
	return &TracingCollector{tracer: tracer}
}

func (t *TracingCollector) StartSpan(ctx context.Context, name string, attrs map[string]string) (context.Context, eventstore.SpanContext) {
	set := attributeSet(attrs)
	spanCtx, span := t.tracer.Start(ctx, name, trace.WithAttributes(set.ToSlice()...))

	return spanCtx, &OTelSpanContext{span: span}
}

// FinishSpan ignores span contexts that were not started by a TracingCollector.
func (t *TracingCollector) FinishSpan(spanCtx eventstore.SpanContext, status string, attrs map[string]string) {
	otelSpanCtx, ok := spanCtx.(*OTelSpanContext)
	if !ok {
		return
	}

	set := attributeSet(attrs)
	otelSpanCtx.span.SetAttributes(set.ToSlice()...)
	otelSpanCtx.SetStatus(status)
	otelSpanCtx.span.End()
}

// OTelSpanContext wraps a trace.Span.
type OTelSpanContext struct {
	span trace.Span
}

// Span returns the wrapped span.
func (s *OTelSpanContext) Span() trace.Span {
	return s.span
}

// SetStatus maps handler and engine statuses to span codes. Business rejections such as
// "conflict" or "rejected" are errors on the span; idempotent outcomes are not.
func (s *OTelSpanContext) SetStatus(status string) {
	switch status {
	case "success", "ok", "idempotent":
		s.span.SetStatus(codes.Ok, "")
	case "error", "failed":
		s.span.SetStatus(codes.Error, "operation failed")
	case "canceled", "cancelled":
		s.span.SetStatus(codes.Error, "operation canceled")
	case "timeout":
		s.span.SetStatus(codes.Error, "operation timed out")
	case "conflict":
		s.span.SetStatus(codes.Error, "concurrency conflict")
	case "rejected":
		s.span.SetStatus(codes.Error, "command rejected")
	default:
		s.span.SetAttributes(attribute.String("status", status))
	}
}

func (s *OTelSpanContext) AddAttribute(key, value string) {
	s.span.SetAttributes(attribute.String(key, value))
}
