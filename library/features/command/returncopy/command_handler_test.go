package returncopy_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aegislib/circulation/library/core"
	"github.com/aegislib/circulation/library/features/command/returncopy"
	"github.com/aegislib/circulation/library/shell"
	"github.com/aegislib/circulation/testutil/fixtures"
)

func Test_CommandHandler_Handle_Success(t *testing.T) {
	// arrange
	es := fixtures.NewEventStore(t)
	fixtures.GivenEvents(t, es, fixtures.Registered(fixtures.AvailableCopy("ACC-1", "B-1"))...)
	fixtures.GivenEvents(t, es, givenIssued("ACC-1", "member_7"))
	handler := givenHandler(t, es)

	// act
	result, err := handler.Handle(context.Background(), returncopy.BuildCommand("ACC-1", "", fixtures.FakeClock))

	// assert
	require.NoError(t, err)
	returned, ok := result.Event.(core.BookCopyReturned)
	require.True(t, ok)
	assert.Equal(t, "member_7", returned.UserID)
	assert.Equal(t, core.DefaultOperator, returned.HandledBy)
	assert.Regexp(t, `^TXN-\d{6}$`, returned.TransactionID)

	copies := core.CopiesFrom(fixtures.StoredEvents(t, es))
	assert.Equal(t, core.CopyAvailable, copies[0].Status)
	assert.Empty(t, copies[0].LastHandledBy)
}

func Test_CommandHandler_Handle_FailsWithoutAppending_WhenCopyIsNotIssued(t *testing.T) {
	// arrange
	es := fixtures.NewEventStore(t)
	fixtures.GivenEvents(t, es, fixtures.Registered(fixtures.AvailableCopy("ACC-1", "B-1"))...)
	handler := givenHandler(t, es)

	// act
	_, err := handler.Handle(context.Background(), returncopy.BuildCommand("ACC-1", "", fixtures.FakeClock))

	// assert
	assert.ErrorIs(t, err, core.ErrInvalidState)
	assert.Len(t, fixtures.StoredEvents(t, es), 1)
}

func givenHandler(t *testing.T, es shell.EventStore) returncopy.CommandHandler {
	t.Helper()

	handler, err := returncopy.NewCommandHandler(es, fixtures.NewCatalog(t, fixtures.Book("B-1", "The Dispossessed")))
	require.NoError(t, err)

	return handler
}
