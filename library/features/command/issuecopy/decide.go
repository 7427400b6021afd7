package issuecopy

import (
	"github.com/aegislib/circulation/eventstore"
	"github.com/aegislib/circulation/library/core"
)

const reasonCopyNotAvailable = "artifact node locked or occupied"

type state struct {
	copyExists         bool
	bookID             core.BookIDString
	status             core.CopyStatus
	transactionIDTaken bool
}

// Decide determines whether a copy can be issued to a member.
//
// Business Rules:
//
//	GIVEN: A copy with CopyID and a member identity UserID
//	WHEN: IssueCopy command is received
//	THEN: BookCopyIssued event is generated, due in fourteen days
//	ERROR: ValidationError if CopyID or UserID is blank
//	ERROR: NotFoundError if the copy was never registered
//	ERROR: InvalidStateError "artifact node locked or occupied" unless the copy is available
//	ERROR: ConflictError if the candidate TransactionID is already in the ledger
func Decide(history core.DomainEvents, command Command, catalog core.CatalogLookup) core.DecisionResult {
	err := core.RequireFields(
		core.Required("copyId", command.CopyID),
		core.Required("userId", command.UserID),
	)
	if err != nil {
		return core.ErrorDecision(err)
	}

	s := project(history, command.CopyID, command.TransactionID)

	if !s.copyExists {
		return core.ErrorDecision(core.NewNotFoundError(core.EntityCopy, command.CopyID))
	}

	if s.status != core.CopyAvailable {
		return core.ErrorDecision(core.NewInvalidStateError(core.EntityCopy, command.CopyID, reasonCopyNotAvailable))
	}

	if s.transactionIDTaken {
		return core.ErrorDecision(core.NewConflictError(core.EntityTransaction, "id", command.TransactionID))
	}

	return core.SuccessDecision(
		core.BuildBookCopyIssued(
			command.TransactionID,
			command.CopyID,
			s.bookID,
			catalog.TitleOf(s.bookID),
			command.UserID,
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
