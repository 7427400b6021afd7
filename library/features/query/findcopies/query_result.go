package findcopies

import (
	"github.com/aegislib/circulation/eventstore"
	"github.com/aegislib/circulation/library/core"
)

// CopyView is a copy together with the title of its book.
type CopyView struct {
	Copy  core.BookCopy
	Title string
}

// Copies is the result of a copy search, in registration order.
type Copies struct {
	Copies         []CopyView
	Count          int
	SequenceNumber eventstore.MaxSequenceNumberUint
}
