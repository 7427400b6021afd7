package memengine

import (
	"context"
	"errors"
	"slices"
	"sync"
	"time"

	jsoniter "github.com/json-iterator/go"

	"github.com/aegislib/circulation/eventstore"
	"github.com/aegislib/circulation/eventstore/internal/telemetry"
)

const (
	engineName              = "memory"
	errorTypeContext        = "context"
	errorTypeInvalidPayload = "invalid_payload"
	logMsgQueryAborted      = "query aborted"
	logMsgAppendRejected    = "append rejected"
)

// EventStore is safe for concurrent use.
type EventStore struct {
	mu     sync.RWMutex
	events []indexedEvent
	instr  telemetry.Instrumentation
}

// indexedEvent keeps the top-level string fields of the payload so that predicates
// don't have to decode JSON on every query.
type indexedEvent struct {
	event  eventstore.StorableEvent
	fields map[string]string
	seq    eventstore.MaxSequenceNumberUint
}

// NewEventStore creates an empty EventStore.
func NewEventStore(options ...Option) (*EventStore, error) {
	es := &EventStore{instr: telemetry.Instrumentation{Engine: engineName}}

	for _, option := range options {
		if err := option(es); err != nil {
			return nil, err
		}
	}

	return es, nil
}

// Query returns the matching events in sequence order together with the highest sequence
// number among them (0 when nothing matches).
func (es *EventStore) Query(ctx context.Context, filter eventstore.Filter) (
	eventstore.StorableEvents,
	eventstore.MaxSequenceNumberUint,
	error,
) {

	ctx, span := es.instr.StartSpan(ctx, telemetry.SpanNameQuery, telemetry.OperationQuery)
	start := time.Now()

	if err := ctx.Err(); err != nil {
		es.instr.Failed(ctx, span, telemetry.OperationQuery, errorTypeContext, logMsgQueryAborted, err)
		return nil, 0, errors.Join(eventstore.ErrQueryingEventsFailed, err)
	}

	es.mu.RLock()
	eventStream := make(eventstore.StorableEvents, 0)
	maxSequenceNumber := eventstore.MaxSequenceNumberUint(0)

	for _, e := range es.events {
		if matches(filter, e) {
			eventStream = append(eventStream, e.event)
			maxSequenceNumber = e.seq
		}
	}
	es.mu.RUnlock()

	es.instr.QuerySucceeded(ctx, span, len(eventStream), maxSequenceNumber, time.Since(start))

	return eventStream, maxSequenceNumber, nil
}

// Append stores the events if the highest sequence number matching filter still equals
// expectedMaxSequenceNumber, otherwise it returns eventstore.ErrConcurrencyConflict.
func (es *EventStore) Append(
	ctx context.Context,
	filter eventstore.Filter,
	expectedMaxSequenceNumber eventstore.MaxSequenceNumberUint,
	event eventstore.StorableEvent,
	additionalEvents ...eventstore.StorableEvent,
) error {

	ctx, span := es.instr.StartSpan(ctx, telemetry.SpanNameAppend, telemetry.OperationAppend)
	start := time.Now()

	if err := ctx.Err(); err != nil {
		es.instr.Failed(ctx, span, telemetry.OperationAppend, errorTypeContext, logMsgAppendRejected, err)
		return errors.Join(eventstore.ErrAppendingEventFailed, err)
	}

	allEvents := append(eventstore.StorableEvents{event}, additionalEvents...)
	indexed := make([]indexedEvent, 0, len(allEvents))

	for _, e := range allEvents {
		fields, err := indexPayload(e.PayloadJSON)
		if err != nil {
			es.instr.Failed(ctx, span, telemetry.OperationAppend, errorTypeInvalidPayload, logMsgAppendRejected, err,
				telemetry.AttrEventCount, len(allEvents))
			return errors.Join(eventstore.ErrAppendingEventFailed, eventstore.ErrInvalidPayloadJSON, err)
		}

		indexed = append(indexed, indexedEvent{event: e, fields: fields})
	}

	es.mu.Lock()

	if es.currentMaxSequenceNumber(filter) != expectedMaxSequenceNumber {
		es.mu.Unlock()
		es.instr.AppendConflicted(ctx, span, expectedMaxSequenceNumber, time.Since(start))

		return eventstore.ErrConcurrencyConflict
	}

	for i := range indexed {
		indexed[i].seq = eventstore.MaxSequenceNumberUint(len(es.events) + 1)
		es.events = append(es.events, indexed[i])
	}

	es.mu.Unlock()

	es.instr.AppendSucceeded(ctx, span, len(indexed), time.Since(start))

	return nil
}

// Len returns the number of stored events.
func (es *EventStore) Len() int {
	es.mu.RLock()
	defer es.mu.RUnlock()

	return len(es.events)
}

// currentMaxSequenceNumber must be called with es.mu held.
func (es *EventStore) currentMaxSequenceNumber(filter eventstore.Filter) eventstore.MaxSequenceNumberUint {
	for i := len(es.events) - 1; i >= 0; i-- {
		if matches(filter, es.events[i]) {
			return es.events[i].seq
		}
	}

	return 0
}

func matches(filter eventstore.Filter, e indexedEvent) bool {
	if filter.IsEmpty() {
		return true
	}

	for _, item := range filter.Items() {
		if itemMatches(item, e) {
			return true
		}
	}

	return false
}

func itemMatches(item eventstore.FilterItem, e indexedEvent) bool {
	if len(item.EventTypes()) > 0 && !slices.Contains(item.EventTypes(), e.event.EventType) {
		return false
	}

	predicates := item.Predicates()
	if len(predicates) == 0 {
		return true
	}

	predicateMatches := func(p eventstore.FilterPredicate) bool {
		val, ok := e.fields[p.Key()]
		return ok && val == p.Val()
	}

	if item.AllPredicatesMustMatch() {
		for _, p := range predicates {
			if !predicateMatches(p) {
				return false
			}
		}

		return true
	}

	return slices.ContainsFunc(predicates, predicateMatches)
}

func indexPayload(payloadJSON []byte) (map[string]string, error) {
	raw := make(map[string]any)
	if err := jsoniter.ConfigFastest.Unmarshal(payloadJSON, &raw); err != nil {
		return nil, err
	}

	fields := make(map[string]string, len(raw))
	for key, val := range raw {
		if s, ok := val.(string); ok {
			fields[key] = s
		}
	}

	return fields, nil
}
