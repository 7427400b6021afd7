package pendingrequests

import (
	"github.com/aegislib/circulation/eventstore"
	"github.com/aegislib/circulation/library/core"
)

// PendingRequests lists the unresolved requests of one type in arrival order.
type PendingRequests struct {
	RequestType    core.RequestType
	Requests       []core.UserRequest
	Count          int
	SequenceNumber eventstore.MaxSequenceNumberUint
}
