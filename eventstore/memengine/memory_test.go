package memengine_test

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aegislib/circulation/eventstore"
	"github.com/aegislib/circulation/eventstore/memengine"
)

func givenEventStore(t *testing.T) *memengine.EventStore {
	t.Helper()

	es, err := memengine.NewEventStore()
	require.NoError(t, err)

	return es
}

func givenEvent(t *testing.T, eventType string, payload string) eventstore.StorableEvent {
	t.Helper()

	event, err := eventstore.BuildStorableEventWithEmptyMetadata(eventType, time.Unix(0, 0).UTC(), []byte(payload))
	require.NoError(t, err)

	return event
}

func givenEventsWereAppended(t *testing.T, es *memengine.EventStore, events ...eventstore.StorableEvent) {
	t.Helper()

	for _, event := range events {
		_, maxSeq, err := es.Query(context.Background(), eventstore.BuildEventFilter().MatchingAnyEvent())
		require.NoError(t, err)
		require.NoError(t, es.Append(context.Background(), eventstore.BuildEventFilter().MatchingAnyEvent(), maxSeq, event))
	}
}

func filterForCopy(copyID string) eventstore.Filter {
	return eventstore.BuildEventFilter().
		Matching().
		AnyEventTypeOf("BookCopyIssued", "BookCopyReturned").
		AndAnyPredicateOf(eventstore.P("CopyID", copyID)).
		Finalize()
}

func Test_Query_ReturnsMatchingEventsInSequenceOrder(t *testing.T) {
	// arrange
	es := givenEventStore(t)
	givenEventsWereAppended(t, es,
		givenEvent(t, "BookCopyIssued", `{"CopyID":"ACC-1","UserID":"member_7"}`),
		givenEvent(t, "BookCopyIssued", `{"CopyID":"ACC-2","UserID":"member_8"}`),
		givenEvent(t, "MemberRegistered", `{"Username":"member_9"}`),
		givenEvent(t, "BookCopyReturned", `{"CopyID":"ACC-1","UserID":"member_7"}`),
	)

	// act
	events, maxSeq, err := es.Query(context.Background(), filterForCopy("ACC-1"))

	// assert
	assert.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, "BookCopyIssued", events[0].EventType)
	assert.Equal(t, "BookCopyReturned", events[1].EventType)
	assert.Equal(t, eventstore.MaxSequenceNumberUint(4), maxSeq)
}

func Test_Query_WithAllPredicates(t *testing.T) {
	// arrange
	es := givenEventStore(t)
	givenEventsWereAppended(t, es,
		givenEvent(t, "BookCopyIssued", `{"CopyID":"ACC-1","UserID":"member_7"}`),
		givenEvent(t, "BookCopyIssued", `{"CopyID":"ACC-1","UserID":"member_8"}`),
	)
	filter := eventstore.BuildEventFilter().
		Matching().
		AllPredicatesOf(eventstore.P("CopyID", "ACC-1"), eventstore.P("UserID", "member_8")).
		Finalize()

	// act
	events, maxSeq, err := es.Query(context.Background(), filter)

	// assert
	assert.NoError(t, err)
	assert.Len(t, events, 1)
	assert.Equal(t, eventstore.MaxSequenceNumberUint(2), maxSeq)
}

func Test_Query_NonStringPayloadFieldsDoNotMatchPredicates(t *testing.T) {
	// arrange
	es := givenEventStore(t)
	givenEventsWereAppended(t, es, givenEvent(t, "PolicyRuleAdded", `{"RuleID":1}`))
	filter := eventstore.BuildEventFilter().Matching().AnyPredicateOf(eventstore.P("RuleID", "1")).Finalize()

	// act
	events, maxSeq, err := es.Query(context.Background(), filter)

	// assert
	assert.NoError(t, err)
	assert.Empty(t, events)
	assert.Zero(t, maxSeq)
}

func Test_Append_Succeeds_WhenNothingMatchedBefore(t *testing.T) {
	// arrange
	es := givenEventStore(t)
	givenEventsWereAppended(t, es, givenEvent(t, "BookCopyIssued", `{"CopyID":"ACC-2"}`))

	// act
	err := es.Append(context.Background(), filterForCopy("ACC-1"), 0, givenEvent(t, "BookCopyIssued", `{"CopyID":"ACC-1"}`))

	// assert
	assert.NoError(t, err)
	assert.Equal(t, 2, es.Len())
}

func Test_Append_Fails_WhenStreamChangedAfterQuery(t *testing.T) {
	// arrange
	es := givenEventStore(t)
	filter := filterForCopy("ACC-1")
	_, maxSeq, err := es.Query(context.Background(), filter)
	require.NoError(t, err)
	givenEventsWereAppended(t, es, givenEvent(t, "BookCopyIssued", `{"CopyID":"ACC-1"}`))

	// act
	err = es.Append(context.Background(), filter, maxSeq, givenEvent(t, "BookCopyIssued", `{"CopyID":"ACC-1"}`))

	// assert
	assert.ErrorIs(t, err, eventstore.ErrConcurrencyConflict)
	assert.Equal(t, 1, es.Len())
}

func Test_Append_MultipleEventsAtomically(t *testing.T) {
	// arrange
	es := givenEventStore(t)

	// act
	err := es.Append(
		context.Background(),
		filterForCopy("ACC-1"),
		0,
		givenEvent(t, "BookCopyIssued", `{"CopyID":"ACC-1"}`),
		givenEvent(t, "BookCopyReturned", `{"CopyID":"ACC-1"}`),
	)

	// assert
	assert.NoError(t, err)
	events, maxSeq, queryErr := es.Query(context.Background(), filterForCopy("ACC-1"))
	assert.NoError(t, queryErr)
	assert.Len(t, events, 2)
	assert.Equal(t, eventstore.MaxSequenceNumberUint(2), maxSeq)
}

func Test_Append_RejectsInvalidPayload(t *testing.T) {
	// arrange
	es := givenEventStore(t)
	broken := eventstore.StorableEvent{EventType: "BookCopyIssued", PayloadJSON: []byte(`{`), MetadataJSON: []byte(`{}`)}

	// act
	err := es.Append(context.Background(), filterForCopy("ACC-1"), 0, broken)

	// assert
	assert.ErrorIs(t, err, eventstore.ErrInvalidPayloadJSON)
	assert.Zero(t, es.Len())
}

func Test_QueryAndAppend_FailOnCanceledContext(t *testing.T) {
	// arrange
	es := givenEventStore(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	// act
	_, _, queryErr := es.Query(ctx, filterForCopy("ACC-1"))
	appendErr := es.Append(ctx, filterForCopy("ACC-1"), 0, givenEvent(t, "BookCopyIssued", `{"CopyID":"ACC-1"}`))

	// assert
	assert.ErrorIs(t, queryErr, context.Canceled)
	assert.ErrorIs(t, appendErr, context.Canceled)
}

func Test_Append_ConcurrentWritersOnSameStream_ExactlyOneWins(t *testing.T) {
	// arrange
	es := givenEventStore(t)
	filter := filterForCopy("ACC-1")
	_, maxSeq, err := es.Query(context.Background(), filter)
	require.NoError(t, err)

	var wg sync.WaitGroup
	var successes atomic.Int32
	var conflicts atomic.Int32

	// act
	for i := range 20 {
		wg.Add(1)
		go func() {
			defer wg.Done()

			appendErr := es.Append(
				context.Background(),
				filter,
				maxSeq,
				givenEvent(t, "BookCopyIssued", fmt.Sprintf(`{"CopyID":"ACC-1","UserID":"member_%d"}`, i)),
			)

			switch {
			case appendErr == nil:
				successes.Add(1)
			case assert.ErrorIs(t, appendErr, eventstore.ErrConcurrencyConflict):
				conflicts.Add(1)
			}
		}()
	}

	wg.Wait()

	// assert
	assert.Equal(t, int32(1), successes.Load())
	assert.Equal(t, int32(19), conflicts.Load())
	assert.Equal(t, 1, es.Len())
}
