package pendingrequests

import (
	"context"

	"github.com/aegislib/circulation/eventstore"
	"github.com/aegislib/circulation/library/shell"
)

// QueryHandler runs the query workflow: Validate → Query → Unmarshal → Project.
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

// Handle returns the pending requests of one type. An unknown type is a ValidationError.
func (h QueryHandler) Handle(ctx context.Context, query Query) (PendingRequests, error) {
	if err := query.Validate(); err != nil {
		return PendingRequests{}, err
	}

	ctx = eventstore.WithEventualConsistency(ctx)

	storableEvents, maxSequenceNumber, err := h.eventStore.Query(ctx, BuildEventFilter())
	if err != nil {
		return PendingRequests{}, err
	}

	history, err := shell.DomainEventsFrom(storableEvents)
	if err != nil {
		return PendingRequests{}, err
	}

	return Project(history, query, maxSequenceNumber), nil
}
