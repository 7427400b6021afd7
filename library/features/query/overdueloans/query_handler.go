package overdueloans

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

// Handle returns the loans overdue at query.Now. A zero Now is a ValidationError.
func (h QueryHandler) Handle(ctx context.Context, query Query) (OverdueLoans, error) {
	if query.Now.IsZero() {
		return OverdueLoans{}, core.NewInvalidValueError("overdue loans need a reference time")
	}

	ctx = eventstore.WithEventualConsistency(ctx)

	storableEvents, maxSequenceNumber, err := h.eventStore.Query(ctx, BuildEventFilter())
	if err != nil {
		return OverdueLoans{}, err
	}

	history, err := shell.DomainEventsFrom(storableEvents)
	if err != nil {
		return OverdueLoans{}, err
	}

	return Project(history, query, maxSequenceNumber), nil
}
