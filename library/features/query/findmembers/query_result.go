package findmembers

import (
	"github.com/aegislib/circulation/eventstore"
	"github.com/aegislib/circulation/library/core"
)

// Members is the result of a member search, in registration order.
type Members struct {
	Members        []core.UserProfile
	Count          int
	SequenceNumber eventstore.MaxSequenceNumberUint
}

// First returns the earliest registered match.
func (m Members) First() (core.UserProfile, bool) {
	if len(m.Members) == 0 {
		return core.UserProfile{}, false
	}

	return m.Members[0], true
}
