package findcopies_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aegislib/circulation/library/features/query/findcopies"
	"github.com/aegislib/circulation/library/shell"
	"github.com/aegislib/circulation/testutil/fixtures"
)

func Test_NewQueryHandler_RejectsNilDependencies(t *testing.T) {
	_, err := findcopies.NewQueryHandler(nil, fixtures.NewCatalog(t))
	assert.ErrorIs(t, err, shell.ErrNilEventStore)

	_, err = findcopies.NewQueryHandler(fixtures.NewEventStore(t), nil)
	assert.ErrorIs(t, err, shell.ErrNilCatalog)
}

func Test_QueryHandler_Handle_FindsRegisteredCopies(t *testing.T) {
	// arrange
	es := fixtures.NewEventStore(t)
	fixtures.GivenEvents(t, es, fixtures.Registered(fixtures.AvailableCopy("ACC-1", "B-1"))...)
	handler, err := findcopies.NewQueryHandler(es, fixtures.NewCatalog(t, fixtures.Book("B-1", "Dune")))
	require.NoError(t, err)

	// act
	result, err := handler.Handle(context.Background(), findcopies.BuildQuery("dune"))

	// assert
	require.NoError(t, err)
	require.Equal(t, 1, result.Count)
	assert.Equal(t, "Dune", result.Copies[0].Title)
}
