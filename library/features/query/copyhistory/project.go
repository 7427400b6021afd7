package copyhistory

import (
	"github.com/aegislib/circulation/eventstore"
	"github.com/aegislib/circulation/library/core"
)

// Project returns the ledger entries of the queried copy.
//
// Query Logic:
//
//	GIVEN: Ledger events filtered by CopyID
//	WHEN: CopyHistory query is executed
//	THEN: CopyHistory is returned with issue, return and renewal entries in arrival order
func Project(history core.DomainEvents, query Query, maxSequenceNumber eventstore.MaxSequenceNumberUint) CopyHistory {
	transactions := make([]core.Transaction, 0)

	for _, transaction := range core.TransactionsFrom(history) {
		if transaction.BookCopyID == query.CopyID {
			transactions = append(transactions, transaction)
		}
	}

	return CopyHistory{
		CopyID:         query.CopyID,
		Transactions:   transactions,
		Count:          len(transactions),
		SequenceNumber: maxSequenceNumber,
	}
}

// BuildEventFilter selects the ledger events of one copy.
func BuildEventFilter(copyID core.CopyIDString) eventstore.Filter {
	eventTypes := core.LedgerEventTypes()

	return eventstore.BuildEventFilter().
		Matching().
		AnyEventTypeOf(eventTypes[0], eventTypes[1:]...).
		AndAnyPredicateOf(eventstore.P(core.PredicateCopyID, copyID)).
		Finalize()
}
