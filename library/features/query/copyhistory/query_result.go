package copyhistory

import (
	"github.com/aegislib/circulation/eventstore"
	"github.com/aegislib/circulation/library/core"
)

// CopyHistory is the ledger of one copy in arrival order.
type CopyHistory struct {
	CopyID         core.CopyIDString
	Transactions   []core.Transaction
	Count          int
	SequenceNumber eventstore.MaxSequenceNumberUint
}
