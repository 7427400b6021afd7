package overdueloans

import (
	"time"

	"github.com/aegislib/circulation/eventstore"
	"github.com/aegislib/circulation/library/core"
)

// OverdueLoans lists the overdue loans as of a point in time. Each entry has status overdue.
type OverdueLoans struct {
	AsOf           time.Time
	Loans          []core.Transaction
	Count          int
	SequenceNumber eventstore.MaxSequenceNumberUint
}
