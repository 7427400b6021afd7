package pendingrequests

import (
	"github.com/aegislib/circulation/eventstore"
	"github.com/aegislib/circulation/library/core"
)

// Project keeps the requests of the queried type that are still pending.
//
// Query Logic:
//
//	GIVEN: All RequestSubmitted and RequestResolved events
//	WHEN: PendingRequests query is executed for a RequestType
//	THEN: Requests of that type without a resolution are returned in arrival order
func Project(history core.DomainEvents, query Query, maxSequenceNumber eventstore.MaxSequenceNumberUint) PendingRequests {
	pending := make([]core.UserRequest, 0)

	for _, request := range core.RequestsFrom(history) {
		if request.Type == query.RequestType && request.Status == core.RequestPending {
			pending = append(pending, request)
		}
	}

	return PendingRequests{
		RequestType:    query.RequestType,
		Requests:       pending,
		Count:          len(pending),
		SequenceNumber: maxSequenceNumber,
	}
}

// BuildEventFilter selects every submission and resolution.
func BuildEventFilter() eventstore.Filter {
	return eventstore.BuildEventFilter().
		Matching().
		AnyEventTypeOf(core.RequestSubmittedEventType, core.RequestResolvedEventType).
		Finalize()
}
