package registermember_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aegislib/circulation/library/core"
	"github.com/aegislib/circulation/library/features/command/registermember"
	"github.com/aegislib/circulation/testutil/fixtures"
)

func Test_CommandHandler_Handle_RejectsADuplicateLibraryID(t *testing.T) {
	// arrange
	es := fixtures.NewEventStore(t)
	handler, err := registermember.NewCommandHandler(es)
	require.NoError(t, err)
	first := fixtures.Member("member_a", "LIB-2026-STU-48213", "Ada Vance")
	second := fixtures.Member("member_b", "LIB-2026-STU-48213", "Bo Lind")

	// act
	_, firstErr := handler.Handle(context.Background(), registermember.BuildCommand(first, fixtures.FakeClock))
	_, secondErr := handler.Handle(context.Background(), registermember.BuildCommand(second, fixtures.FakeClock))

	// assert
	require.NoError(t, firstErr)
	var conflict core.ConflictError
	require.ErrorAs(t, secondErr, &conflict)
	assert.Equal(t, "libraryId", conflict.Key)
	assert.Len(t, fixtures.StoredEvents(t, es), 1)
}
