package transactionledger

import (
	"slices"

	"github.com/aegislib/circulation/eventstore"
	"github.com/aegislib/circulation/library/core"
)

// Ledger is the append-only list of transactions in arrival order.
type Ledger struct {
	Transactions   []core.Transaction
	Count          int
	SequenceNumber eventstore.MaxSequenceNumberUint
}

// NewestFirst returns a copy of the entries with the most recent first.
func (l Ledger) NewestFirst() []core.Transaction {
	reversed := slices.Clone(l.Transactions)
	slices.Reverse(reversed)

	return reversed
}
