package memberflux

import (
	"slices"

	"github.com/aegislib/circulation/eventstore"
	"github.com/aegislib/circulation/library/core"
)

// Project returns the ledger entries held under any identity of the queried member.
//
// Query Logic:
//
//	GIVEN: The member's registration and the ledger events for their identities
//	WHEN: MemberFlux query is executed
//	THEN: MemberFlux is returned with every entry whose UserID is the member's libraryId or username
func Project(history core.DomainEvents, query Query, maxSequenceNumber eventstore.MaxSequenceNumberUint) MemberFlux {
	member, found := memberFrom(history, query.MemberID)

	flux := MemberFlux{
		MemberID:       query.MemberID,
		Transactions:   make([]core.Transaction, 0),
		SequenceNumber: maxSequenceNumber,
	}

	if found {
		flux.Member = &member
	}

	identities := IdentitiesOf(query.MemberID, flux.Member)

	for _, transaction := range core.TransactionsFrom(history) {
		if slices.Contains(identities, transaction.UserID) {
			flux.Transactions = append(flux.Transactions, transaction)
		}
	}

	flux.Count = len(flux.Transactions)

	return flux
}

// IdentitiesOf returns the identities ledger entries of a member may be recorded under.
func IdentitiesOf(memberID string, member *core.UserProfile) []string {
	if member == nil {
		return []string{memberID}
	}

	identities := make([]string, 0, 2)
	for _, id := range []string{member.LibraryID, member.Username} {
		if id != "" && !slices.Contains(identities, id) {
			identities = append(identities, id)
		}
	}

	return identities
}

func memberFrom(history core.DomainEvents, memberID string) (core.UserProfile, bool) {
	for _, event := range history {
		if e, ok := event.(core.MemberRegistered); ok {
			if profile := e.Profile(); profile.Identifies(memberID) {
				return profile, true
			}
		}
	}

	return core.UserProfile{}, false
}

// BuildMemberFilter selects the registration of a member by libraryId or username.
func BuildMemberFilter(memberID string) eventstore.Filter {
	return eventstore.BuildEventFilter().
		Matching().
		AnyEventTypeOf(core.MemberRegisteredEventType).
		AndAnyPredicateOf(
			eventstore.P(core.PredicateLibraryID, memberID),
			eventstore.P(core.PredicateUsername, memberID),
		).
		Finalize()
}

// BuildEventFilter selects the ledger events held under any of identities.
func BuildEventFilter(identities []string) eventstore.Filter {
	eventTypes := core.LedgerEventTypes()

	predicates := make([]eventstore.FilterPredicate, 0, len(identities))
	for _, id := range identities {
		predicates = append(predicates, eventstore.P(core.PredicateUserID, id))
	}

	return eventstore.BuildEventFilter().
		Matching().
		AnyEventTypeOf(eventTypes[0], eventTypes[1:]...).
		AndAnyPredicateOf(predicates[0], predicates[1:]...).
		Finalize()
}
