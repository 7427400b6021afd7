package copyhistory_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aegislib/circulation/library/core"
	"github.com/aegislib/circulation/library/features/query/copyhistory"
	"github.com/aegislib/circulation/testutil/fixtures"
)

func Test_QueryHandler_Handle_ReturnsTheLedgerOfOneCopy(t *testing.T) {
	// arrange
	es := fixtures.NewEventStore(t)
	at := fixtures.FakeClock
	fixtures.GivenEvents(t, es,
		core.BuildBookCopyRegistered(fixtures.AvailableCopy("ACC-1", "B-1"), at),
		core.BuildBookCopyRegistered(fixtures.AvailableCopy("ACC-2", "B-1"), at),
		core.BuildBookCopyIssued("TXN-100001", "ACC-1", "B-1", "Dune", "member_7", core.DefaultOperator, at),
		core.BuildBookCopyIssued("TXN-100002", "ACC-2", "B-1", "Dune", "member_8", core.DefaultOperator, at),
		core.BuildBookCopyReturned("TXN-100003", "ACC-1", "B-1", "Dune", "member_7", core.DefaultOperator, at),
	)
	handler, err := copyhistory.NewQueryHandler(es)
	require.NoError(t, err)

	// act
	result, err := handler.Handle(context.Background(), copyhistory.BuildQuery("ACC-1"))

	// assert
	require.NoError(t, err)
	require.Equal(t, 2, result.Count)
	assert.Equal(t, "TXN-100001", result.Transactions[0].ID)
	assert.Equal(t, core.TransactionIssue, result.Transactions[0].Type)
	assert.Equal(t, "TXN-100003", result.Transactions[1].ID)
	assert.Equal(t, core.TransactionReturn, result.Transactions[1].Type)
	assert.Equal(t, uint(5), uint(result.SequenceNumber))
}

func Test_QueryHandler_Handle_EmptyForUnknownCopy(t *testing.T) {
	// arrange
	handler, err := copyhistory.NewQueryHandler(fixtures.NewEventStore(t))
	require.NoError(t, err)

	// act
	result, err := handler.Handle(context.Background(), copyhistory.BuildQuery("ACC-404"))

	// assert
	require.NoError(t, err)
	assert.Equal(t, 0, result.Count)
	assert.NotNil(t, result.Transactions)
}

func Test_QueryHandler_Handle_RejectsBlankCopyID(t *testing.T) {
	// arrange
	handler, err := copyhistory.NewQueryHandler(fixtures.NewEventStore(t))
	require.NoError(t, err)

	// act
	_, err = handler.Handle(context.Background(), copyhistory.BuildQuery(""))

	// assert
	assert.ErrorIs(t, err, core.ErrValidation)
}
