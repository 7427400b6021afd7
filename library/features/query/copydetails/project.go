package copydetails

import (
	"github.com/aegislib/circulation/eventstore"
	"github.com/aegislib/circulation/library/core"
)

// Project folds the lifecycle of the queried copy.
//
// Query Logic:
//
//	GIVEN: The lifecycle events of one CopyID
//	WHEN: CopyDetails query is executed
//	THEN: The copy is returned with its current status and holder
//	ERROR: NotFoundError if the copy was never registered
func Project(history core.DomainEvents, query Query) (core.BookCopy, error) {
	state := core.NewCopyState()
	for _, event := range history {
		state.Apply(event)
	}

	bookCopy, found := state.Copy(query.CopyID)
	if !found {
		return core.BookCopy{}, core.NewNotFoundError(core.EntityCopy, query.CopyID)
	}

	return bookCopy, nil
}

// BuildEventFilter selects the lifecycle events of one copy.
func BuildEventFilter(copyID core.CopyIDString) eventstore.Filter {
	eventTypes := core.CopyLifecycleEventTypes()

	return eventstore.BuildEventFilter().
		Matching().
		AnyEventTypeOf(eventTypes[0], eventTypes[1:]...).
		AndAnyPredicateOf(eventstore.P(core.PredicateCopyID, copyID)).
		Finalize()
}
