package bookavailability

import (
	"github.com/aegislib/circulation/eventstore"
	"github.com/aegislib/circulation/library/core"
)

// Availability compares the declared and the tracked copy counts of a book.
type Availability struct {
	BookID            core.BookIDString
	Title             string
	DeclaredTotal     int
	DeclaredAvailable int
	TrackedTotal      int
	TrackedAvailable  int
	ByStatus          map[core.CopyStatus]int
	SequenceNumber    eventstore.MaxSequenceNumberUint
}

// IsConsistent reports whether the catalog figures match the tracked copies.
func (a Availability) IsConsistent() bool {
	return a.DeclaredTotal == a.TrackedTotal && a.DeclaredAvailable == a.TrackedAvailable
}
