package bookavailability

import (
	"github.com/aegislib/circulation/eventstore"
	"github.com/aegislib/circulation/library/core"
)

// Project counts the copies of the queried book by current status.
//
// Query Logic:
//
//	GIVEN: The catalog record and the copy lifecycle events of one BookID
//	WHEN: BookAvailability query is executed
//	THEN: Availability is returned with the declared and the tracked counts
func Project(
	history core.DomainEvents,
	book core.Book,
	maxSequenceNumber eventstore.MaxSequenceNumberUint,
) Availability {

	availability := Availability{
		BookID:            book.ID,
		Title:             book.Title,
		DeclaredTotal:     book.TotalCopies,
		DeclaredAvailable: book.AvailableCopies,
		ByStatus:          make(map[core.CopyStatus]int),
		SequenceNumber:    maxSequenceNumber,
	}

	for _, bookCopy := range core.CopiesFrom(history) {
		if bookCopy.BookID != book.ID {
			continue
		}

		availability.TrackedTotal++
		availability.ByStatus[bookCopy.Status]++

		if bookCopy.Status == core.CopyAvailable {
			availability.TrackedAvailable++
		}
	}

	return availability
}

// BuildEventFilter selects the copy lifecycle events of one book.
func BuildEventFilter(bookID core.BookIDString) eventstore.Filter {
	eventTypes := core.CopyLifecycleEventTypes()

	return eventstore.BuildEventFilter().
		Matching().
		AnyEventTypeOf(eventTypes[0], eventTypes[1:]...).
		AndAnyPredicateOf(eventstore.P(core.PredicateBookID, bookID)).
		Finalize()
}
