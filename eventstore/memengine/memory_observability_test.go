package memengine_test

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aegislib/circulation/eventstore"
	"github.com/aegislib/circulation/eventstore/memengine"
	"github.com/aegislib/circulation/testutil/helper"
)

func Test_Observability_QueryAndAppend_AreInstrumented(t *testing.T) {
	// arrange
	logSpy := helper.NewLogHandlerSpy()
	metricsSpy := helper.NewMetricsCollectorSpy()
	tracingSpy := helper.NewTracingCollectorSpy()

	es, err := memengine.NewEventStore(
		memengine.WithLogger(logSpy.Logger()),
		memengine.WithMetrics(metricsSpy),
		memengine.WithTracing(tracingSpy),
	)
	require.NoError(t, err)

	filter := filterForCopy("ACC-1")

	// act
	_, maxSeq, queryErr := es.Query(context.Background(), filter)
	appendErr := es.Append(context.Background(), filter, maxSeq, givenEvent(t, "BookCopyIssued", `{"CopyID":"ACC-1"}`))

	// assert
	require.NoError(t, queryErr)
	require.NoError(t, appendErr)
	assert.True(t, logSpy.HasLog(slog.LevelInfo, "eventstore operation: query completed"))
	assert.True(t, logSpy.HasLog(slog.LevelInfo, "eventstore operation: events appended"))
	assert.True(t, metricsSpy.HasDuration("eventstore_query_duration_seconds", map[string]string{"status": "success", "engine": "memory"}))
	assert.True(t, metricsSpy.HasDuration("eventstore_append_duration_seconds", map[string]string{"status": "success"}))
	assert.Equal(t, []float64{1}, metricsSpy.Values("eventstore_events_appended_total"))
	assert.True(t, tracingSpy.HasSpan("eventstore.query", "success"))
	assert.True(t, tracingSpy.HasSpan("eventstore.append", "success"))
}

func Test_Observability_ConcurrencyConflict_IsCounted(t *testing.T) {
	// arrange
	logSpy := helper.NewLogHandlerSpy()
	metricsSpy := helper.NewMetricsCollectorSpy()
	tracingSpy := helper.NewTracingCollectorSpy()

	es, err := memengine.NewEventStore(
		memengine.WithContextualLogger(logSpy.Logger()),
		memengine.WithMetrics(metricsSpy),
		memengine.WithTracing(tracingSpy),
	)
	require.NoError(t, err)
	givenEventsWereAppended(t, es, givenEvent(t, "BookCopyIssued", `{"CopyID":"ACC-1"}`))

	// act
	appendErr := es.Append(context.Background(), filterForCopy("ACC-1"), 0, givenEvent(t, "BookCopyIssued", `{"CopyID":"ACC-1"}`))

	// assert
	assert.ErrorIs(t, appendErr, eventstore.ErrConcurrencyConflict)
	assert.Equal(t, 1, metricsSpy.CounterCount("eventstore_concurrency_conflicts_total", nil))
	assert.True(t, tracingSpy.HasSpan("eventstore.append", "conflict"))

	expected, found := logSpy.AttrOf(slog.LevelInfo, "eventstore operation: concurrency conflict detected", "expected_sequence")
	assert.True(t, found)
	assert.Equal(t, uint64(0), expected.Uint64())
}
