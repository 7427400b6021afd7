package memberflux

import (
	"context"
	"slices"

	"github.com/aegislib/circulation/eventstore"
	"github.com/aegislib/circulation/library/core"
	"github.com/aegislib/circulation/library/shell"
)

// QueryHandler runs the query workflow in two reads: resolve the member, then read their ledger.
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

// Handle returns the ledger entries of one member. A blank MemberID is a ValidationError.
func (h QueryHandler) Handle(ctx context.Context, query Query) (MemberFlux, error) {
	if err := core.RequireFields(core.Required("memberId", query.MemberID)); err != nil {
		return MemberFlux{}, err
	}

	ctx = eventstore.WithEventualConsistency(ctx)

	memberEvents, _, err := h.eventStore.Query(ctx, BuildMemberFilter(query.MemberID))
	if err != nil {
		return MemberFlux{}, err
	}

	members, err := shell.DomainEventsFrom(memberEvents)
	if err != nil {
		return MemberFlux{}, err
	}

	var member *core.UserProfile
	if resolved, found := memberFrom(members, query.MemberID); found {
		member = &resolved
	}

	ledgerEvents, maxSequenceNumber, err := h.eventStore.Query(ctx, BuildEventFilter(IdentitiesOf(query.MemberID, member)))
	if err != nil {
		return MemberFlux{}, err
	}

	ledger, err := shell.DomainEventsFrom(ledgerEvents)
	if err != nil {
		return MemberFlux{}, err
	}

	return Project(slices.Concat(members, ledger), query, maxSequenceNumber), nil
}
