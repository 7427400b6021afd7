package overdueloans_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aegislib/circulation/library/core"
	"github.com/aegislib/circulation/library/features/query/overdueloans"
	"github.com/aegislib/circulation/testutil/fixtures"
)

func Test_QueryHandler_Handle(t *testing.T) {
	// arrange
	es := fixtures.NewEventStore(t)
	fixtures.GivenEvents(t, es,
		core.BuildBookCopyIssued("TXN-100001", "ACC-1", "B-1", "Dune", "member_1", core.DefaultOperator, fixtures.FakeClock),
	)
	handler, err := overdueloans.NewQueryHandler(es)
	require.NoError(t, err)

	// act
	result, err := handler.Handle(context.Background(), overdueloans.BuildQuery(fixtures.FakeClock.Add(30*24*time.Hour)))

	// assert
	require.NoError(t, err)
	assert.Equal(t, 1, result.Count)
}

func Test_QueryHandler_Handle_RejectsZeroTime(t *testing.T) {
	// arrange
	handler, err := overdueloans.NewQueryHandler(fixtures.NewEventStore(t))
	require.NoError(t, err)

	// act
	_, err = handler.Handle(context.Background(), overdueloans.BuildQuery(time.Time{}))

	// assert
	assert.ErrorIs(t, err, core.ErrValidation)
}
