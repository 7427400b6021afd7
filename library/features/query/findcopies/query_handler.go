package findcopies

import (
	"context"

	"github.com/aegislib/circulation/eventstore"
	"github.com/aegislib/circulation/library/core"
	"github.com/aegislib/circulation/library/shell"
)

// QueryHandler runs the query workflow: Query → Unmarshal → Project against the catalog.
type QueryHandler struct {
	eventStore shell.QueriesEvents
	catalog    core.CatalogLookup
}

// NewQueryHandler creates a new QueryHandler with the provided dependencies.
func NewQueryHandler(eventStore shell.QueriesEvents, catalog core.CatalogLookup) (QueryHandler, error) {
	if eventStore == nil {
		return QueryHandler{}, shell.ErrNilEventStore
	}

	if catalog == nil {
		return QueryHandler{}, shell.ErrNilCatalog
	}

	return QueryHandler{eventStore: eventStore, catalog: catalog}, nil
}

// Handle searches copies by id or title.
func (h QueryHandler) Handle(ctx context.Context, query Query) (Copies, error) {
	ctx = eventstore.WithEventualConsistency(ctx)

	storableEvents, maxSequenceNumber, err := h.eventStore.Query(ctx, BuildEventFilter())
	if err != nil {
		return Copies{}, err
	}

	history, err := shell.DomainEventsFrom(storableEvents)
	if err != nil {
		return Copies{}, err
	}

	return Project(history, query, h.catalog, maxSequenceNumber), nil
}
