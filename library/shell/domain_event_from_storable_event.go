package shell

import (
	"errors"

	jsoniter "github.com/json-iterator/go"

	"github.com/aegislib/circulation/eventstore"
	"github.com/aegislib/circulation/library/core"
)

var (
	// ErrMappingToDomainEventFailed is returned when domain event conversion fails.
	ErrMappingToDomainEventFailed = errors.New("mapping to domain event failed")

	// ErrMappingToDomainEventUnknownEventType is returned for unrecognized event types.
	ErrMappingToDomainEventUnknownEventType = errors.New("unknown event type")
)

// DomainEventsFrom converts multiple StorableEvents to DomainEvents.
func DomainEventsFrom(storableEvents eventstore.StorableEvents) (core.DomainEvents, error) {
	domainEvents := make(core.DomainEvents, 0, len(storableEvents))

	for _, storableEvent := range storableEvents {
		domainEvent, err := DomainEventFrom(storableEvent)
		if err != nil {
			return nil, err
		}

		domainEvents = append(domainEvents, domainEvent)
	}

	return domainEvents, nil
}

// DomainEventFrom converts a StorableEvent to its corresponding DomainEvent.
func DomainEventFrom(storableEvent eventstore.StorableEvent) (core.DomainEvent, error) {
	switch storableEvent.EventType {
	case core.BookCopyRegisteredEventType:
		return unmarshalPayload[core.BookCopyRegistered](storableEvent.PayloadJSON)

	case core.BookCopyIssuedEventType:
		return unmarshalPayload[core.BookCopyIssued](storableEvent.PayloadJSON)

	case core.BookCopyReturnedEventType:
		return unmarshalPayload[core.BookCopyReturned](storableEvent.PayloadJSON)

	case core.BookCopyRenewedEventType:
		return unmarshalPayload[core.BookCopyRenewed](storableEvent.PayloadJSON)

	case core.BookCopyStatusChangedEventType:
		return unmarshalPayload[core.BookCopyStatusChanged](storableEvent.PayloadJSON)

	case core.MemberRegisteredEventType:
		return unmarshalPayload[core.MemberRegistered](storableEvent.PayloadJSON)

	case core.RequestSubmittedEventType:
		return unmarshalPayload[core.RequestSubmitted](storableEvent.PayloadJSON)

	case core.RequestResolvedEventType:
		return unmarshalPayload[core.RequestResolved](storableEvent.PayloadJSON)

	case core.PolicyRuleAddedEventType:
		return unmarshalPayload[core.PolicyRuleAdded](storableEvent.PayloadJSON)

	case core.PolicyRuleRemovedEventType:
		return unmarshalPayload[core.PolicyRuleRemoved](storableEvent.PayloadJSON)
	}

	return nil, errors.Join(ErrMappingToDomainEventFailed, ErrMappingToDomainEventUnknownEventType)
}

func unmarshalPayload[E core.DomainEvent](payloadJSON []byte) (core.DomainEvent, error) {
	var payload E

	if err := jsoniter.ConfigFastest.Unmarshal(payloadJSON, &payload); err != nil {
		return nil, errors.Join(ErrMappingToDomainEventFailed, err)
	}

	return payload, nil
}
