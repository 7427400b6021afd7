package changecopystatus

import (
	"fmt"
	"slices"

	"github.com/aegislib/circulation/eventstore"
	"github.com/aegislib/circulation/library/core"
)

// exceptionPaths lists the statuses each status may move to.
var exceptionPaths = map[core.CopyStatus][]core.CopyStatus{
	core.CopyAvailable: {core.CopyDamaged, core.CopyMissing, core.CopyArchived},
	core.CopyIssued:    {core.CopyDamaged, core.CopyMissing, core.CopyArchived},
	core.CopyDamaged:   {core.CopyArchived},
	core.CopyMissing:   {core.CopyArchived},
}

type state struct {
	copyExists bool
	bookID     core.BookIDString
	status     core.CopyStatus
}

// Decide determines whether a copy can move to the requested status.
//
// Business Rules:
//
//	GIVEN: A copy with CopyID and a target Status
//	WHEN: ChangeCopyStatus command is received
//	THEN: BookCopyStatusChanged event is generated
//	ERROR: ValidationError if CopyID is blank or Status is unknown
//	ERROR: NotFoundError if the copy was never registered
//	ERROR: InvalidStateError if no exception path leads from the current to the target status
//	IDEMPOTENCY: If the copy already has the target status, no event is generated
func Decide(history core.DomainEvents, command Command) core.DecisionResult {
	if err := core.RequireFields(core.Required("copyId", command.CopyID), core.Required("status", string(command.Status))); err != nil {
		return core.ErrorDecision(err)
	}

	if !command.Status.IsValid() {
		return core.ErrorDecision(core.NewInvalidValueError(fmt.Sprintf("unknown copy status %q", command.Status)))
	}

	s := project(history, command.CopyID)

	if !s.copyExists {
		return core.ErrorDecision(core.NewNotFoundError(core.EntityCopy, command.CopyID))
	}

	if s.status == command.Status {
		return core.IdempotentDecision()
	}

	if !slices.Contains(exceptionPaths[s.status], command.Status) {
		return core.ErrorDecision(core.NewInvalidStateError(core.EntityCopy, command.CopyID,
			fmt.Sprintf("cannot move from %s to %s", s.status, command.Status)))
	}

	return core.SuccessDecision(
		core.BuildBookCopyStatusChanged(
			command.CopyID,
			s.bookID,
			s.status,
			command.Status,
			command.Reason,
			command.HandledBy,
			command.OccurredAt,
		))
}

func project(history core.DomainEvents, copyID core.CopyIDString) state {
	s := state{}

	for _, event := range history {
		switch e := event.(type) {
		case core.BookCopyRegistered:
			if e.CopyID == copyID {
				s.copyExists = true
				s.bookID = e.BookID
				s.status = e.Status
			}

		case core.BookCopyIssued:
			if e.CopyID == copyID {
				s.status = core.CopyIssued
			}

		case core.BookCopyReturned:
			if e.CopyID == copyID {
				s.status = core.CopyAvailable
			}

		case core.BookCopyStatusChanged:
			if e.CopyID == copyID {
				s.status = e.ToStatus
			}
		}
	}

	return s
}

// BuildEventFilter covers the lifecycle of one copy.
func BuildEventFilter(copyID core.CopyIDString) eventstore.Filter {
	eventTypes := core.CopyLifecycleEventTypes()

	return eventstore.BuildEventFilter().
		Matching().
		AnyEventTypeOf(eventTypes[0], eventTypes[1:]...).
		AndAnyPredicateOf(eventstore.P(core.PredicateCopyID, copyID)).
		Finalize()
}
