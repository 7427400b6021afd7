package resolverequest_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aegislib/circulation/library/core"
	"github.com/aegislib/circulation/library/features/command/resolverequest"
	"github.com/aegislib/circulation/testutil/fixtures"
)

func Test_CommandHandler_Handle_SecondResolutionFails(t *testing.T) {
	// arrange
	es := fixtures.NewEventStore(t)
	fixtures.GivenEvents(t, es, givenSubmitted("REQ-1")...)
	handler, err := resolverequest.NewCommandHandler(es)
	require.NoError(t, err)

	// act
	approved, approveErr := handler.Handle(context.Background(),
		resolverequest.BuildCommand("REQ-1", core.RequestApproved, "", fixtures.FakeClock))
	_, rejectErr := handler.Handle(context.Background(),
		resolverequest.BuildCommand("REQ-1", core.RequestRejected, "", fixtures.FakeClock))

	// assert
	require.NoError(t, approveErr)
	assert.IsType(t, core.RequestResolved{}, approved.Event)
	assert.ErrorIs(t, rejectErr, core.ErrInvalidState)

	history := fixtures.StoredEvents(t, es)
	require.Len(t, history, 2)
	assert.Equal(t, core.RequestApproved, history[1].(core.RequestResolved).Decision)
}
