package transactionledger

import (
	"github.com/aegislib/circulation/eventstore"
	"github.com/aegislib/circulation/library/core"
)

// Project maps every ledger event to its transaction.
//
// Query Logic:
//
//	GIVEN: All BookCopyIssued, BookCopyReturned and BookCopyRenewed events
//	WHEN: TransactionLedger query is executed
//	THEN: Ledger is returned in arrival order
func Project(history core.DomainEvents, _ Query, maxSequenceNumber eventstore.MaxSequenceNumberUint) Ledger {
	transactions := core.TransactionsFrom(history)

	return Ledger{
		Transactions:   transactions,
		Count:          len(transactions),
		SequenceNumber: maxSequenceNumber,
	}
}

// BuildEventFilter selects every ledger event.
func BuildEventFilter() eventstore.Filter {
	eventTypes := core.LedgerEventTypes()

	return eventstore.BuildEventFilter().
		Matching().
		AnyEventTypeOf(eventTypes[0], eventTypes[1:]...).
		Finalize()
}
