package requestdetails

import (
	"github.com/aegislib/circulation/eventstore"
	"github.com/aegislib/circulation/library/core"
)

// Project returns the queried request with resolutions applied.
//
// Query Logic:
//
//	GIVEN: The submission and resolution events of one RequestID
//	WHEN: RequestDetails query is executed
//	THEN: The request is returned with its current status
//	ERROR: NotFoundError if the request was never submitted
func Project(history core.DomainEvents, query Query) (core.UserRequest, error) {
	for _, request := range core.RequestsFrom(history) {
		if request.ID == query.RequestID {
			return request, nil
		}
	}

	return core.UserRequest{}, core.NewNotFoundError(core.EntityRequest, query.RequestID)
}

// BuildEventFilter selects the submission and resolution of one request.
func BuildEventFilter(requestID string) eventstore.Filter {
	return eventstore.BuildEventFilter().
		Matching().
		AnyEventTypeOf(core.RequestSubmittedEventType, core.RequestResolvedEventType).
		AndAnyPredicateOf(eventstore.P(core.PredicateRequestID, requestID)).
		Finalize()
}
