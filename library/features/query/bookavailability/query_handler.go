package bookavailability

import (
	"context"

	"github.com/aegislib/circulation/eventstore"
	"github.com/aegislib/circulation/library/core"
	"github.com/aegislib/circulation/library/shell"
)

// QueryHandler runs the query workflow: Lookup → Query → Unmarshal → Project.
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

// Handle returns the availability of one book. Books missing from the catalog are a NotFoundError.
func (h QueryHandler) Handle(ctx context.Context, query Query) (Availability, error) {
	book, found := h.catalog.Book(query.BookID)
	if !found {
		return Availability{}, core.NewNotFoundError(core.EntityBook, query.BookID)
	}

	ctx = eventstore.WithEventualConsistency(ctx)

	storableEvents, maxSequenceNumber, err := h.eventStore.Query(ctx, BuildEventFilter(query.BookID))
	if err != nil {
		return Availability{}, err
	}

	history, err := shell.DomainEventsFrom(storableEvents)
	if err != nil {
		return Availability{}, err
	}

	return Project(history, book, maxSequenceNumber), nil
}
