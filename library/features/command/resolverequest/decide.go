package resolverequest

import (
	"fmt"

	"github.com/aegislib/circulation/eventstore"
	"github.com/aegislib/circulation/library/core"
)

type state struct {
	requestExists bool
	requestType   core.RequestType
	status        core.RequestStatus
}

// Decide determines whether a request can be resolved.
//
// Business Rules:
//
//	GIVEN: A submitted request with RequestID
//	WHEN: ResolveRequest command is received with decision approved or rejected
//	THEN: RequestResolved event is generated
//	ERROR: ValidationError if RequestID is blank or the decision is neither approved nor rejected
//	ERROR: NotFoundError if the request was never submitted
//	ERROR: InvalidStateError if the request is already approved or rejected
func Decide(history core.DomainEvents, command Command) core.DecisionResult {
	err := core.RequireFields(
		core.Required("requestId", command.RequestID),
		core.Required("decision", string(command.Decision)),
	)
	if err != nil {
		return core.ErrorDecision(err)
	}

	if command.Decision != core.RequestApproved && command.Decision != core.RequestRejected {
		return core.ErrorDecision(core.NewInvalidValueError(
			fmt.Sprintf("decision must be %s or %s, got %q", core.RequestApproved, core.RequestRejected, command.Decision)))
	}

	s := project(history, command.RequestID)

	if !s.requestExists {
		return core.ErrorDecision(core.NewNotFoundError(core.EntityRequest, command.RequestID))
	}

	if s.status.IsTerminal() {
		return core.ErrorDecision(core.NewInvalidStateError(core.EntityRequest, command.RequestID,
			fmt.Sprintf("request already %s", s.status)))
	}

	return core.SuccessDecision(
		core.BuildRequestResolved(
			command.RequestID,
			s.requestType,
			command.Decision,
			command.ResolvedBy,
			command.OccurredAt,
		))
}

func project(history core.DomainEvents, requestID string) state {
	s := state{}

	for _, event := range history {
		switch e := event.(type) {
		case core.RequestSubmitted:
			if e.RequestID == requestID {
				s.requestExists = true
				s.requestType = e.RequestType
				s.status = core.RequestPending
			}

		case core.RequestResolved:
			if e.RequestID == requestID {
				s.status = e.Decision
			}
		}
	}

	return s
}

// BuildEventFilter covers the submission and resolution of one request.
func BuildEventFilter(requestID string) eventstore.Filter {
	return eventstore.BuildEventFilter().
		Matching().
		AnyEventTypeOf(core.RequestSubmittedEventType, core.RequestResolvedEventType).
		AndAnyPredicateOf(eventstore.P(core.PredicateRequestID, requestID)).
		Finalize()
}
