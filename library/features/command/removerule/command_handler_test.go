package removerule_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aegislib/circulation/library/core"
	"github.com/aegislib/circulation/library/features/command/addrule"
	"github.com/aegislib/circulation/library/features/command/removerule"
	"github.com/aegislib/circulation/testutil/fixtures"
)

func Test_CommandHandler_Handle_AddThenRemove(t *testing.T) {
	// arrange
	ctx := context.Background()
	es := fixtures.NewEventStore(t)
	add, err := addrule.NewCommandHandler(es)
	require.NoError(t, err)
	remove, err := removerule.NewCommandHandler(es)
	require.NoError(t, err)

	_, err = add.Handle(ctx, addrule.BuildCommand("RULE-1", "Overdue Artifacts > 5", "Lock Identity Node", fixtures.FakeClock))
	require.NoError(t, err)

	// act
	_, firstErr := remove.Handle(ctx, removerule.BuildCommand("RULE-1", fixtures.FakeClock))
	_, secondErr := remove.Handle(ctx, removerule.BuildCommand("RULE-1", fixtures.FakeClock))

	// assert
	require.NoError(t, firstErr)
	assert.ErrorIs(t, secondErr, core.ErrNotFound)
	assert.Len(t, fixtures.StoredEvents(t, es), 2)
}
