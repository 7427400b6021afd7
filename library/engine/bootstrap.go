package engine

import (
	"context"
	"errors"
	"slices"

	jsoniter "github.com/json-iterator/go"

	"github.com/aegislib/circulation/eventstore"
	"github.com/aegislib/circulation/library/core"
	"github.com/aegislib/circulation/library/seed"
	"github.com/aegislib/circulation/library/shell"
)

var (
	// ErrInvalidSeedData is returned by Bootstrap, joined with the domain error, before anything is appended.
	ErrInvalidSeedData = errors.New("invalid seed data")

	// ErrBootstrapFailed is returned by Bootstrap when the event store fails.
	ErrBootstrapFailed = errors.New("bootstrap failed")
)

// BootstrapResult reports how many seed events Bootstrap appended and how many chunks it found
// already present.
type BootstrapResult struct {
	AppendedEvents int
	SkippedChunks  int
}

type seedEvent struct {
	event     core.DomainEvent
	entity    string
	field     string
	predicate eventstore.FilterPredicate
}

// Bootstrap validates data and appends it as registration events in chunks.
//
// Each chunk is appended under a boundary over its entity ids with an expected sequence number
// of zero, so a chunk that is already present is skipped. Running Bootstrap twice appends
// nothing the second time. A chunk whose ids are only partly present fails with a ConflictError
// for the first id that was registered before.
func (e *Engine) Bootstrap(ctx context.Context, data seed.Data) (BootstrapResult, error) {
	events, err := e.seedEventsFrom(data)
	if err != nil {
		return BootstrapResult{}, errors.Join(ErrInvalidSeedData, err)
	}

	ctx = eventstore.WithStrongConsistency(ctx)
	root := shell.NewCommandEventMetadata()
	result := BootstrapResult{}

	for chunk := range slices.Chunk(events, e.chunkSize) {
		appended, chunkErr := e.appendChunk(ctx, chunk, shell.CausedBy(root))
		if chunkErr != nil {
			return result, errors.Join(ErrBootstrapFailed, chunkErr)
		}

		if appended {
			result.AppendedEvents += len(chunk)
		} else {
			result.SkippedChunks++
		}
	}

	return result, nil
}

func (e *Engine) appendChunk(ctx context.Context, chunk []seedEvent, metadata shell.EventMetadata) (bool, error) {
	filter := chunkFilter(chunk)

	present, _, err := e.store.Query(ctx, filter)
	if err != nil {
		return false, err
	}

	if len(present) > 0 {
		return false, conflictOf(chunk, present)
	}

	domainEvents := make(core.DomainEvents, 0, len(chunk))
	for _, se := range chunk {
		domainEvents = append(domainEvents, se.event)
	}

	storableEvents, err := shell.StorableEventsFrom(domainEvents, metadata)
	if err != nil {
		return false, err
	}

	err = e.store.Append(ctx, filter, 0, storableEvents[0], storableEvents[1:]...)
	if errors.Is(err, eventstore.ErrConcurrencyConflict) {
		// Another process seeded the same chunk in between.
		return false, nil
	}

	return err == nil, err
}

// conflictOf returns nil if every id of the chunk is present, else a ConflictError for the first present one.
func conflictOf(chunk []seedEvent, present eventstore.StorableEvents) error {
	keys := make([]string, 0, 4)
	for _, se := range chunk {
		if key := se.predicate.Key(); !slices.Contains(keys, key) {
			keys = append(keys, key)
		}
	}

	presentIDs := make(map[eventstore.FilterPredicate]struct{}, len(present))
	for _, event := range present {
		for _, key := range keys {
			if value := jsoniter.ConfigFastest.Get(event.PayloadJSON, key).ToString(); value != "" {
				presentIDs[eventstore.P(key, value)] = struct{}{}
			}
		}
	}

	var first *seedEvent
	missing := false

	for i := range chunk {
		if _, found := presentIDs[chunk[i].predicate]; !found {
			missing = true
			continue
		}

		if first == nil {
			first = &chunk[i]
		}
	}

	if !missing || first == nil {
		return nil
	}

	return core.NewConflictError(first.entity, first.field, first.predicate.Val())
}

func chunkFilter(chunk []seedEvent) eventstore.Filter {
	eventTypes := make([]string, 0, 4)
	predicates := make([]eventstore.FilterPredicate, 0, len(chunk))

	for _, se := range chunk {
		if eventType := se.event.IsEventType(); !slices.Contains(eventTypes, eventType) {
			eventTypes = append(eventTypes, eventType)
		}

		predicates = append(predicates, se.predicate)
	}

	return eventstore.BuildEventFilter().
		Matching().
		AnyEventTypeOf(eventTypes[0], eventTypes[1:]...).
		AndAnyPredicateOf(predicates[0], predicates[1:]...).
		Finalize()
}

func (e *Engine) seedEventsFrom(data seed.Data) ([]seedEvent, error) {
	at := e.now()
	events := make([]seedEvent, 0, len(data.Copies)+len(data.Members)+len(data.Requests)+len(data.Rules))

	for _, book := range data.Books {
		if err := book.Validate(); err != nil {
			return nil, err
		}

		if _, found := e.catalog.Book(book.ID); !found {
			return nil, core.NewNotFoundError(core.EntityBook, book.ID)
		}
	}

	copyIDs := make(map[string]struct{}, len(data.Copies))
	for _, bookCopy := range data.Copies {
		if err := bookCopy.Validate(); err != nil {
			return nil, err
		}

		if _, found := e.catalog.Book(bookCopy.BookID); !found {
			return nil, core.NewNotFoundError(core.EntityBook, bookCopy.BookID)
		}

		if err := unique(copyIDs, core.EntityCopy, "id", bookCopy.ID); err != nil {
			return nil, err
		}

		events = append(events, seedEvent{
			event:     core.BuildBookCopyRegistered(bookCopy, at),
			entity:    core.EntityCopy,
			field:     "id",
			predicate: eventstore.P(core.PredicateCopyID, bookCopy.ID),
		})
	}

	libraryIDs := make(map[string]struct{}, len(data.Members))
	usernames := make(map[string]struct{}, len(data.Members))
	for _, member := range data.Members {
		if err := core.RequireFields(core.Required("libraryId", member.LibraryID)); err != nil {
			return nil, err
		}

		if err := member.Validate(); err != nil {
			return nil, err
		}

		if err := unique(libraryIDs, core.EntityMember, "libraryId", member.LibraryID); err != nil {
			return nil, err
		}

		if err := unique(usernames, core.EntityMember, "username", member.Username); err != nil {
			return nil, err
		}

		events = append(events, seedEvent{
			event:     core.BuildMemberRegistered(member, at),
			entity:    core.EntityMember,
			field:     "libraryId",
			predicate: eventstore.P(core.PredicateLibraryID, member.LibraryID),
		})
	}

	requestIDs := make(map[string]struct{}, len(data.Requests))
	for _, request := range data.Requests {
		if err := request.Validate(); err != nil {
			return nil, err
		}

		if err := unique(requestIDs, core.EntityRequest, "id", request.ID); err != nil {
			return nil, err
		}

		events = append(events, seedEvent{
			event:     core.BuildRequestSubmitted(request),
			entity:    core.EntityRequest,
			field:     "id",
			predicate: eventstore.P(core.PredicateRequestID, request.ID),
		})
	}

	ruleIDs := make(map[string]struct{}, len(data.Rules))
	for _, rule := range data.Rules {
		err := core.RequireFields(
			core.Required("id", rule.ID),
			core.Required("condition", rule.Condition),
			core.Required("action", rule.Action),
		)
		if err != nil {
			return nil, err
		}

		if err = unique(ruleIDs, core.EntityRule, "id", rule.ID); err != nil {
			return nil, err
		}

		events = append(events, seedEvent{
			event:     core.BuildPolicyRuleAdded(rule, at),
			entity:    core.EntityRule,
			field:     "id",
			predicate: eventstore.P(core.PredicateRuleID, rule.ID),
		})
	}

	return events, nil
}

func unique(seen map[string]struct{}, entity string, key string, value string) error {
	if _, exists := seen[value]; exists {
		return core.NewConflictError(entity, key, value)
	}

	seen[value] = struct{}{}

	return nil
}
