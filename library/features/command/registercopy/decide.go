package registercopy

import (
	"github.com/aegislib/circulation/eventstore"
	"github.com/aegislib/circulation/library/core"
)

// Decide determines whether a copy can be registered.
//
// Business Rules:
//
//	GIVEN: A copy of the book BookID with accession number ID
//	WHEN: RegisterCopy command is received
//	THEN: BookCopyRegistered event is generated
//	ERROR: ValidationError if required fields are blank or the status/holder invariant is broken
//	ERROR: NotFoundError if the catalog has no book BookID
//	ERROR: ConflictError if a copy with the same ID is already registered
func Decide(history core.DomainEvents, command Command, catalog core.CatalogLookup) core.DecisionResult {
	if err := command.Copy.Validate(); err != nil {
		return core.ErrorDecision(err)
	}

	if _, ok := catalog.Book(command.Copy.BookID); !ok {
		return core.ErrorDecision(core.NewNotFoundError(core.EntityBook, command.Copy.BookID))
	}

	if copyIsRegistered(history, command.Copy.ID) {
		return core.ErrorDecision(core.NewConflictError(core.EntityCopy, "id", command.Copy.ID))
	}

	return core.SuccessDecision(core.BuildBookCopyRegistered(command.Copy, command.OccurredAt))
}

func copyIsRegistered(history core.DomainEvents, copyID core.CopyIDString) bool {
	for _, event := range history {
		if e, ok := event.(core.BookCopyRegistered); ok && e.CopyID == copyID {
			return true
		}
	}

	return false
}

// BuildEventFilter covers the registration of one copy.
func BuildEventFilter(copyID core.CopyIDString) eventstore.Filter {
	return eventstore.BuildEventFilter().
		Matching().
		AnyEventTypeOf(core.BookCopyRegisteredEventType).
		AndAnyPredicateOf(eventstore.P(core.PredicateCopyID, copyID)).
		Finalize()
}
