package memberflux

import (
	"github.com/aegislib/circulation/eventstore"
	"github.com/aegislib/circulation/library/core"
)

// MemberFlux is the ledger of one member in arrival order. Member is nil for unregistered identities.
type MemberFlux struct {
	MemberID       string
	Member         *core.UserProfile
	Transactions   []core.Transaction
	Count          int
	SequenceNumber eventstore.MaxSequenceNumberUint
}
