package sqliteengine_test

import (
	"context"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aegislib/circulation/eventstore"
	"github.com/aegislib/circulation/eventstore/sqliteengine"
	"github.com/aegislib/circulation/testutil/helper"
)

func givenEventStore(t *testing.T, options ...sqliteengine.Option) *sqliteengine.EventStore {
	t.Helper()

	db, err := sqliteengine.Open(filepath.Join(t.TempDir(), "events.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	es, err := sqliteengine.NewEventStoreFromSQLDB(db, options...)
	require.NoError(t, err)
	require.NoError(t, es.CreateSchema(context.Background()))

	return es
}

func givenEvent(t *testing.T, eventType string, payload string) eventstore.StorableEvent {
	t.Helper()

	event, err := eventstore.BuildStorableEventWithEmptyMetadata(eventType, time.Now().UTC(), []byte(payload))
	require.NoError(t, err)

	return event
}

func copyFilter(copyID string) eventstore.Filter {
	return eventstore.BuildEventFilter().
		Matching().
		AnyEventTypeOf("BookCopyIssued", "BookCopyReturned").
		AndAnyPredicateOf(eventstore.P("CopyID", copyID)).
		Finalize()
}

func Test_SQLite_AppendThenQuery_ReturnsEventsInOrder(t *testing.T) {
	// arrange
	ctx := context.Background()
	es := givenEventStore(t)
	filter := copyFilter("ACC-1")

	// act
	err := es.Append(ctx, filter, 0,
		givenEvent(t, "BookCopyIssued", `{"CopyID":"ACC-1","UserID":"u1"}`),
		givenEvent(t, "BookCopyReturned", `{"CopyID":"ACC-1","UserID":"u1"}`),
	)
	require.NoError(t, err)
	require.NoError(t, es.Append(ctx, copyFilter("ACC-2"), 0, givenEvent(t, "BookCopyIssued", `{"CopyID":"ACC-2"}`)))

	events, maxSeq, queryErr := es.Query(ctx, filter)

	// assert
	require.NoError(t, queryErr)
	require.Len(t, events, 2)
	assert.Equal(t, "BookCopyIssued", events[0].EventType)
	assert.Equal(t, "BookCopyReturned", events[1].EventType)
	assert.Equal(t, eventstore.MaxSequenceNumberUint(2), maxSeq)
	assert.False(t, events[0].OccurredAt.IsZero())
}

func Test_SQLite_Append_ReturnsConflictWhenStreamMovedOn(t *testing.T) {
	// arrange
	ctx := context.Background()
	es := givenEventStore(t)
	filter := copyFilter("ACC-1")
	require.NoError(t, es.Append(ctx, filter, 0, givenEvent(t, "BookCopyIssued", `{"CopyID":"ACC-1"}`)))

	// act
	err := es.Append(ctx, filter, 0, givenEvent(t, "BookCopyIssued", `{"CopyID":"ACC-1"}`))

	// assert
	assert.ErrorIs(t, err, eventstore.ErrConcurrencyConflict)
	events, _, queryErr := es.Query(ctx, filter)
	require.NoError(t, queryErr)
	assert.Len(t, events, 1)
}

func Test_SQLite_Append_UnrelatedStreamsDoNotConflict(t *testing.T) {
	ctx := context.Background()
	es := givenEventStore(t)
	require.NoError(t, es.Append(ctx, copyFilter("ACC-1"), 0, givenEvent(t, "BookCopyIssued", `{"CopyID":"ACC-1"}`)))

	err := es.Append(ctx, copyFilter("ACC-2"), 0, givenEvent(t, "BookCopyIssued", `{"CopyID":"ACC-2"}`))

	assert.NoError(t, err)
}

func Test_SQLite_Query_AllPredicatesMustMatch(t *testing.T) {
	// arrange
	ctx := context.Background()
	es := givenEventStore(t)
	everything := eventstore.BuildEventFilter().MatchingAnyEvent()
	require.NoError(t, es.Append(ctx, everything, 0,
		givenEvent(t, "BookCopyIssued", `{"CopyID":"ACC-1","UserID":"u1"}`),
		givenEvent(t, "BookCopyIssued", `{"CopyID":"ACC-2","UserID":"u1"}`),
	))
	filter := eventstore.BuildEventFilter().
		Matching().
		AllPredicatesOf(eventstore.P("CopyID", "ACC-2"), eventstore.P("UserID", "u1")).
		Finalize()

	// act
	events, maxSeq, err := es.Query(ctx, filter)

	// assert
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.JSONEq(t, `{"CopyID":"ACC-2","UserID":"u1"}`, string(events[0].PayloadJSON))
	assert.Equal(t, eventstore.MaxSequenceNumberUint(2), maxSeq)
}

func Test_SQLite_ConcurrentAppends_ExactlyOneWins(t *testing.T) {
	// arrange
	ctx := context.Background()
	es := givenEventStore(t)
	filter := copyFilter("ACC-1")
	const writers = 10

	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		succeeded int
		conflicts int
	)

	// act
	for range writers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := es.Append(ctx, filter, 0, givenEvent(t, "BookCopyIssued", `{"CopyID":"ACC-1"}`))

			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				succeeded++
			case assert.ErrorIs(t, err, eventstore.ErrConcurrencyConflict):
				conflicts++
			}
		}()
	}
	wg.Wait()

	// assert
	assert.Equal(t, 1, succeeded)
	assert.Equal(t, writers-1, conflicts)
}

func Test_SQLite_WorksThroughSQLX(t *testing.T) {
	db, err := sqliteengine.Open(filepath.Join(t.TempDir(), "events.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	es, err := sqliteengine.NewEventStoreFromSQLX(sqlx.NewDb(db, "sqlite3"), sqliteengine.WithTableName("ledger"))
	require.NoError(t, err)
	require.NoError(t, es.CreateSchema(context.Background()))

	require.NoError(t, es.Append(context.Background(), copyFilter("ACC-9"), 0, givenEvent(t, "BookCopyIssued", `{"CopyID":"ACC-9"}`)))
	events, _, err := es.Query(context.Background(), copyFilter("ACC-9"))

	require.NoError(t, err)
	assert.Len(t, events, 1)
}

func Test_SQLite_Options(t *testing.T) {
	_, err := sqliteengine.NewEventStoreFromSQLDB(nil)
	assert.ErrorIs(t, err, eventstore.ErrNilDatabaseConnection)

	db, openErr := sqliteengine.Open(filepath.Join(t.TempDir(), "events.db"))
	require.NoError(t, openErr)
	t.Cleanup(func() { _ = db.Close() })

	_, err = sqliteengine.NewEventStoreFromSQLDB(db, sqliteengine.WithTableName(""))
	assert.ErrorIs(t, err, eventstore.ErrEmptyEventsTableName)
}

func Test_SQLite_Append_IsObserved(t *testing.T) {
	// arrange
	logSpy := helper.NewLogHandlerSpy()
	metricsSpy := helper.NewMetricsCollectorSpy()
	tracingSpy := helper.NewTracingCollectorSpy()
	es := givenEventStore(t,
		sqliteengine.WithLogger(logSpy.Logger()),
		sqliteengine.WithMetrics(metricsSpy),
		sqliteengine.WithTracing(tracingSpy),
	)

	// act
	err := es.Append(context.Background(), copyFilter("ACC-1"), 0, givenEvent(t, "BookCopyIssued", `{"CopyID":"ACC-1"}`))

	// assert
	require.NoError(t, err)
	assert.True(t, tracingSpy.HasSpan("eventstore.append", "success"))
	assert.Equal(t, []float64{1}, metricsSpy.Values("eventstore_events_appended_total"))
}
