package fixtures

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/aegislib/circulation/eventstore"
	"github.com/aegislib/circulation/eventstore/memengine"
	"github.com/aegislib/circulation/library/catalog"
	"github.com/aegislib/circulation/library/core"
	"github.com/aegislib/circulation/library/shell"
)

// FakeClock is the fixed "now" of library tests.
var FakeClock = time.Date(2026, 3, 2, 9, 30, 0, 0, time.UTC)

// Book returns a catalog record with five declared copies, three of them available.
func Book(id core.BookIDString, title string) core.Book {
	return core.Book{
		ID:              id,
		ISBN:            "978-1234567890",
		Title:           title,
		Author:          "Ursula Le Guin",
		Publisher:       "Aegis Publications",
		Edition:         "v.2.4 Neural",
		Category:        "Fiction",
		Demand:          core.DemandMedium,
		TotalCopies:     5,
		AvailableCopies: 3,
	}
}

// AvailableCopy returns a copy in status available and condition good.
func AvailableCopy(id core.CopyIDString, bookID core.BookIDString) core.BookCopy {
	return core.BookCopy{
		ID:            id,
		BookID:        bookID,
		Status:        core.CopyAvailable,
		Condition:     core.ConditionGood,
		ShelfLocation: "S0-R1",
	}
}

// Member returns an active student profile.
func Member(username string, libraryID string, name string) core.UserProfile {
	return core.UserProfile{
		Username:         username,
		Name:             name,
		Role:             core.RoleStudent,
		LibraryID:        libraryID,
		Department:       "Robotics",
		Status:           core.MemberActive,
		Tier:             core.TierNormal,
		ReliabilityScore: 90,
	}
}

// NewCatalog builds a catalog from books and fails the test on invalid input.
func NewCatalog(t *testing.T, books ...core.Book) *catalog.Catalog {
	t.Helper()

	c, err := catalog.New(books)
	require.NoError(t, err)

	return c
}

// NewEventStore returns an empty in-memory event store.
func NewEventStore(t *testing.T) *memengine.EventStore {
	t.Helper()

	es, err := memengine.NewEventStore()
	require.NoError(t, err)

	return es
}

// GivenEvents appends events to the store in the given order.
func GivenEvents(t *testing.T, es shell.EventStore, events ...core.DomainEvent) {
	t.Helper()

	if len(events) == 0 {
		return
	}

	ctx := eventstore.WithStrongConsistency(context.Background())
	filter := eventstore.BuildEventFilter().MatchingAnyEvent()

	_, maxSequenceNumber, err := es.Query(ctx, filter)
	require.NoError(t, err)

	storableEvents, err := shell.StorableEventsFrom(events, shell.NewCommandEventMetadata())
	require.NoError(t, err)

	require.NoError(t, es.Append(ctx, filter, maxSequenceNumber, storableEvents[0], storableEvents[1:]...))
}

// StoredEvents returns every stored event as domain events.
func StoredEvents(t *testing.T, es shell.QueriesEvents) core.DomainEvents {
	t.Helper()

	storableEvents, _, err := es.Query(context.Background(), eventstore.BuildEventFilter().MatchingAnyEvent())
	require.NoError(t, err)

	history, err := shell.DomainEventsFrom(storableEvents)
	require.NoError(t, err)

	return history
}

// Registered returns the BookCopyRegistered events for copies.
func Registered(copies ...core.BookCopy) []core.DomainEvent {
	events := make([]core.DomainEvent, 0, len(copies))
	for _, bookCopy := range copies {
		events = append(events, core.BuildBookCopyRegistered(bookCopy, FakeClock.Add(-24*time.Hour)))
	}

	return events
}
