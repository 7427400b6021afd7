package findmembers

import (
	"strings"

	"github.com/aegislib/circulation/eventstore"
	"github.com/aegislib/circulation/library/core"
)

// Project keeps the registered members matching the search text.
//
// Query Logic:
//
//	GIVEN: All MemberRegistered events
//	WHEN: FindMembers query is executed
//	THEN: Up to 100 members whose libraryId or name contain the text are returned
func Project(history core.DomainEvents, query Query, maxSequenceNumber eventstore.MaxSequenceNumberUint) Members {
	needle := strings.ToLower(query.Text)
	members := make([]core.UserProfile, 0)

	for _, event := range history {
		if len(members) >= MatchLimit {
			break
		}

		if e, ok := event.(core.MemberRegistered); ok {
			if profile := e.Profile(); profile.MatchesQuery(needle) {
				members = append(members, profile)
			}
		}
	}

	return Members{
		Members:        members,
		Count:          len(members),
		SequenceNumber: maxSequenceNumber,
	}
}

// BuildEventFilter selects every member registration.
func BuildEventFilter() eventstore.Filter {
	return eventstore.BuildEventFilter().
		Matching().
		AnyEventTypeOf(core.MemberRegisteredEventType).
		Finalize()
}
