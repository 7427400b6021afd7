package overdueloans

import (
	"slices"

	"github.com/aegislib/circulation/eventstore"
	"github.com/aegislib/circulation/library/core"
)

// Project keeps, per copy, the latest ledger entry when it is an active loan past due.
//
// Query Logic:
//
//	GIVEN: All ledger events
//	WHEN: OverdueLoans query is executed at Now
//	THEN: The latest entry of every copy still on loan with DueDate before Now is returned
//	THEN: Entries are ordered by arrival and carry status overdue
func Project(history core.DomainEvents, query Query, maxSequenceNumber eventstore.MaxSequenceNumberUint) OverdueLoans {
	transactions := core.TransactionsFrom(history)

	latest := make(map[core.CopyIDString]int, len(transactions))
	for i, transaction := range transactions {
		latest[transaction.BookCopyID] = i
	}

	positions := make([]int, 0, len(latest))
	for _, i := range latest {
		positions = append(positions, i)
	}
	slices.Sort(positions)

	loans := make([]core.Transaction, 0)
	for _, i := range positions {
		if loan := transactions[i]; loan.IsOverdueAt(query.Now) {
			loan.Status = core.TransactionOverdue
			loans = append(loans, loan)
		}
	}

	return OverdueLoans{
		AsOf:           query.Now,
		Loans:          loans,
		Count:          len(loans),
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
