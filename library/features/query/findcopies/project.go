package findcopies

import (
	"strings"

	"github.com/aegislib/circulation/eventstore"
	"github.com/aegislib/circulation/library/core"
)

// Project folds the copy lifecycle and keeps the copies matching the search text.
//
// Query Logic:
//
//	GIVEN: All copy lifecycle events and the catalog titles
//	WHEN: FindCopies query is executed with a blank text
//	THEN: The first 50 copies are returned
//	WHEN: FindCopies query is executed with a text
//	THEN: Up to 100 copies whose id or title contain the text are returned
func Project(
	history core.DomainEvents,
	query Query,
	catalog core.CatalogLookup,
	maxSequenceNumber eventstore.MaxSequenceNumberUint,
) Copies {

	needle := strings.ToLower(query.Text)
	limit := query.Limit()
	views := make([]CopyView, 0)

	for _, bookCopy := range core.CopiesFrom(history) {
		if len(views) >= limit {
			break
		}

		title := catalog.TitleOf(bookCopy.BookID)
		if needle == "" ||
			strings.Contains(strings.ToLower(bookCopy.ID), needle) ||
			strings.Contains(strings.ToLower(title), needle) {

			views = append(views, CopyView{Copy: bookCopy, Title: title})
		}
	}

	return Copies{
		Copies:         views,
		Count:          len(views),
		SequenceNumber: maxSequenceNumber,
	}
}

// BuildEventFilter selects every copy lifecycle event.
func BuildEventFilter() eventstore.Filter {
	eventTypes := core.CopyLifecycleEventTypes()

	return eventstore.BuildEventFilter().
		Matching().
		AnyEventTypeOf(eventTypes[0], eventTypes[1:]...).
		Finalize()
}
