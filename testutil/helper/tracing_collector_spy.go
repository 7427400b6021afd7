package helper

import (
	"context"
	"maps"
	"sync"

	"github.com/aegislib/circulation/eventstore"
)

// SpySpanRecord is one finished span.
type SpySpanRecord struct {
	Name       string
	Status     string
	StartAttrs map[string]string
	EndAttrs   map[string]string
}

// SpySpanContext is the span handed out by TracingCollectorSpy.
type SpySpanContext struct {
	mu     sync.Mutex
	name   string
	status string
	start  map[string]string
	extra  map[string]string
}

func (c *SpySpanContext) SetStatus(status string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.status = status
}

func (c *SpySpanContext) AddAttribute(key, value string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.extra[key] = value
}

// TracingCollectorSpy records finished spans.
type TracingCollectorSpy struct {
	mu    sync.Mutex
	spans []SpySpanRecord
}

func NewTracingCollectorSpy() *TracingCollectorSpy {
	return &TracingCollectorSpy{}
}

func (s *TracingCollectorSpy) StartSpan(ctx context.Context, name string, attrs map[string]string) (context.Context, eventstore.SpanContext) {
	return ctx, &SpySpanContext{name: name, start: maps.Clone(attrs), extra: make(map[string]string)}
}

func (s *TracingCollectorSpy) FinishSpan(spanCtx eventstore.SpanContext, status string, attrs map[string]string) {
	span, ok := spanCtx.(*SpySpanContext)
	if !ok {
		return
	}

	span.mu.Lock()
	endAttrs := maps.Clone(span.extra)
	span.mu.Unlock()
	maps.Copy(endAttrs, attrs)

	s.mu.Lock()
	defer s.mu.Unlock()

	s.spans = append(s.spans, SpySpanRecord{Name: span.name, Status: status, StartAttrs: span.start, EndAttrs: endAttrs})
}

func (s *TracingCollectorSpy) Spans() []SpySpanRecord {
	s.mu.Lock()
	defer s.mu.Unlock()

	spans := make([]SpySpanRecord, len(s.spans))
	copy(spans, s.spans)

	return spans
}

// HasSpan reports whether a span with name finished with status.
func (s *TracingCollectorSpy) HasSpan(name, status string) bool {
	for _, span := range s.Spans() {
		if span.Name == name && span.Status == status {
			return true
		}
	}

	return false
}
