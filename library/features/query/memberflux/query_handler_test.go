package memberflux_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aegislib/circulation/library/core"
	"github.com/aegislib/circulation/library/features/query/memberflux"
	"github.com/aegislib/circulation/testutil/fixtures"
)

func Test_QueryHandler_Handle_ResolvesTheMemberFirst(t *testing.T) {
	// arrange
	es := fixtures.NewEventStore(t)
	fixtures.GivenEvents(t, es, givenHistory()...)
	handler, err := memberflux.NewQueryHandler(es)
	require.NoError(t, err)

	// act
	flux, err := handler.Handle(context.Background(), memberflux.BuildQuery("LIB-2024-STU-10000"))

	// assert
	require.NoError(t, err)
	require.NotNil(t, flux.Member)
	assert.Equal(t, "member_1000", flux.Member.Username)
	assert.Equal(t, 2, flux.Count)
}

func Test_QueryHandler_Handle_RejectsBlankMemberID(t *testing.T) {
	// arrange
	handler, err := memberflux.NewQueryHandler(fixtures.NewEventStore(t))
	require.NoError(t, err)

	// act
	_, err = handler.Handle(context.Background(), memberflux.BuildQuery(" "))

	// assert
	assert.ErrorIs(t, err, core.ErrValidation)
}
