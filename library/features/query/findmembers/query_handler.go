package findmembers

import (
	"context"

	"github.com/aegislib/circulation/eventstore"
	"github.com/aegislib/circulation/library/shell"
)

// QueryHandler runs the query workflow: Query → Unmarshal → Project.
type QueryHandler struct {
	eventStore shell.QueriesEvents
}

// NewQueryHandler creates a new QueryHandler with the provided event store dependency.
func NewQueryHandler(eventStore shell.QueriesEvents) (QueryHandler, error) {
	if eventStore == nil {
		return QueryHandler{}, shell.ErrNilEventStore
	}

	return QueryHandler{eventStore: eventStore}, nil
}

// Handle searches members by libraryId or name.
func (h QueryHandler) Handle(ctx context.Context, query Query) (Members, error) {
	ctx = eventstore.WithEventualConsistency(ctx)

	storableEvents, maxSequenceNumber, err := h.eventStore.Query(ctx, BuildEventFilter())
	if err != nil {
		return Members{}, err
	}

	history, err := shell.DomainEventsFrom(storableEvents)
	if err != nil {
		return Members{}, err
	}

	return Project(history, query, maxSequenceNumber), nil
}
