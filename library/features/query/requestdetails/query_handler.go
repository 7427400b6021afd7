package requestdetails

import (
	"context"

	"github.com/aegislib/circulation/eventstore"
	"github.com/aegislib/circulation/library/core"
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

// Handle returns one request. Unknown ids are a NotFoundError.
func (h QueryHandler) Handle(ctx context.Context, query Query) (core.UserRequest, error) {
	if err := core.RequireFields(core.Required("requestId", query.RequestID)); err != nil {
		return core.UserRequest{}, err
	}

	ctx = eventstore.WithEventualConsistency(ctx)

	storableEvents, _, err := h.eventStore.Query(ctx, BuildEventFilter(query.RequestID))
	if err != nil {
		return core.UserRequest{}, err
	}

	history, err := shell.DomainEventsFrom(storableEvents)
	if err != nil {
		return core.UserRequest{}, err
	}

	return Project(history, query)
}
