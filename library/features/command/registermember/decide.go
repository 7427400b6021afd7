package registermember

import (
	"github.com/aegislib/circulation/eventstore"
	"github.com/aegislib/circulation/library/core"
)

type state struct {
	libraryIDTaken bool
	usernameTaken  bool
}

// Decide determines whether a member can be enrolled.
//
// Business Rules:
//
//	GIVEN: A profile with Name, LibraryID and Username
//	WHEN: RegisterMember command is received
//	THEN: MemberRegistered event is generated
//	ERROR: ValidationError listing name and/or libraryId if blank, or for an invalid profile
//	ERROR: ConflictError if the libraryId or the username is already registered
func Decide(history core.DomainEvents, command Command) core.DecisionResult {
	profile := command.Profile

	err := core.RequireFields(
		core.Required("name", profile.Name),
		core.Required("libraryId", profile.LibraryID),
	)
	if err != nil {
		return core.ErrorDecision(err)
	}

	if err = profile.Validate(); err != nil {
		return core.ErrorDecision(err)
	}

	s := project(history, profile)

	if s.libraryIDTaken {
		return core.ErrorDecision(core.NewConflictError(core.EntityMember, "libraryId", profile.LibraryID))
	}

	if s.usernameTaken {
		return core.ErrorDecision(core.NewConflictError(core.EntityMember, "username", profile.Username))
	}

	return core.SuccessDecision(core.BuildMemberRegistered(profile, command.OccurredAt))
}

func project(history core.DomainEvents, profile core.UserProfile) state {
	s := state{}

	for _, event := range history {
		if e, ok := event.(core.MemberRegistered); ok {
			if e.LibraryID == profile.LibraryID {
				s.libraryIDTaken = true
			}

			if e.Username == profile.Username {
				s.usernameTaken = true
			}
		}
	}

	return s
}

// BuildEventFilter covers every registration with the same libraryId or username.
func BuildEventFilter(libraryID string, username string) eventstore.Filter {
	return eventstore.BuildEventFilter().
		Matching().
		AnyEventTypeOf(core.MemberRegisteredEventType).
		AndAnyPredicateOf(
			eventstore.P(core.PredicateLibraryID, libraryID),
			eventstore.P(core.PredicateUsername, username),
		).
		Finalize()
}
