package returncopy

import (
	"github.com/aegislib/circulation/eventstore"
	"github.com/aegislib/circulation/library/core"
)

const reasonCopyNotInCirculation = "artifact not identified in circulation"

type state struct {
	copyExists         bool
	bookID             core.BookIDString
	status             core.CopyStatus
	holder             core.UserIDString
	transactionIDTaken bool
}

// Decide determines whether a copy can be returned.
//
// Business Rules:
//
//	GIVEN: A copy with CopyID
//	WHEN: ReturnCopy command is received
//	THEN: BookCopyReturned event is generated for the prior holder (or the external holder)
//	ERROR: ValidationError if CopyID is blank
//	ERROR: NotFoundError if the copy was never registered
//	ERROR: InvalidStateError "artifact not identified in circulation" unless the copy is issued
//	ERROR: ConflictError if the candidate TransactionID is already in the ledger
func Decide(history core.DomainEvents, command Command, catalog core.CatalogLookup) core.DecisionResult {
	if err := core.RequireFields(core.Required("copyId", command.CopyID)); err != nil {
		return core.ErrorDecision(err)
	}

	s := project(history, command.CopyID, command.TransactionID)

	if !s.copyExists {
		return core.ErrorDecision(core.NewNotFoundError(core.EntityCopy, command.CopyID))
	}

	if s.status != core.CopyIssued {
		return core.ErrorDecision(core.NewInvalidStateError(core.EntityCopy, command.CopyID, reasonCopyNotInCirculation))
	}

	if s.transactionIDTaken {
		return core.ErrorDecision(core.NewConflictError(core.EntityTransaction, "id", command.TransactionID))
	}

	holder := s.holder
	if holder == "" {
		holder = core.ExternalHolder
	}

	return core.SuccessDecision(
		core.BuildBookCopyReturned(
			command.TransactionID,
			command.CopyID,
			s.bookID,
			catalog.TitleOf(s.bookID),
			holder,
			command.HandledBy,
			command.OccurredAt,
		))
}

func project(history core.DomainEvents, copyID core.CopyIDString, transactionID core.TransactionIDString) state {
	s := state{}

	for _, event := range history {
		if id, ok := core.TransactionIDOf(event); ok && id == transactionID {
			s.transactionIDTaken = true
		}

		switch e := event.(type) {
		case core.BookCopyRegistered:
			if e.CopyID == copyID {
				s.copyExists = true
				s.bookID = e.BookID
				s.status = e.Status
				s.holder = e.LastHandledBy
			}

		case core.BookCopyIssued:
			if e.CopyID == copyID {
				s.status = core.CopyIssued
				s.holder = e.UserID
			}

		case core.BookCopyReturned:
			if e.CopyID == copyID {
				s.status = core.CopyAvailable
				s.holder = ""
			}

		case core.BookCopyStatusChanged:
			if e.CopyID == copyID {
				s.status = e.ToStatus
			}
		}
	}

	return s
}

// BuildEventFilter covers the lifecycle of one copy plus any ledger event with the candidate transaction ID.
func BuildEventFilter(copyID core.CopyIDString, transactionID core.TransactionIDString) eventstore.Filter {
	eventTypes := core.CopyLifecycleEventTypes()

	return eventstore.BuildEventFilter().
		Matching().
		AnyEventTypeOf(eventTypes[0], eventTypes[1:]...).
		AndAnyPredicateOf(
			eventstore.P(core.PredicateCopyID, copyID),
			eventstore.P(core.PredicateTransactionID, transactionID),
		).
		Finalize()
}
