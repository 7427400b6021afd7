package catalog_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aegislib/circulation/library/catalog"
	"github.com/aegislib/circulation/library/core"
)

func givenBook(t *testing.T, id string, title string) core.Book {
	t.Helper()

	return core.Book{
		ID:              id,
		ISBN:            "978-0000000000",
		Title:           title,
		Author:          "Ursula Le Guin",
		Mood:            []string{"Analytical"},
		Demand:          core.DemandMedium,
		TotalCopies:     5,
		AvailableCopies: 3,
	}
}

func Test_New_RejectsInvalidBook(t *testing.T) {
	book := givenBook(t, "B-1", "The Dispossessed")
	book.AvailableCopies = 6

	_, err := catalog.New([]core.Book{book})

	assert.ErrorIs(t, err, core.ErrValidation)
}

func Test_New_RejectsDuplicateID(t *testing.T) {
	_, err := catalog.New([]core.Book{givenBook(t, "B-1", "A"), givenBook(t, "B-1", "B")})

	assert.ErrorIs(t, err, core.ErrConflict)
}

func Test_Catalog_LookupAndTitleFallback(t *testing.T) {
	// arrange
	c, err := catalog.New([]core.Book{givenBook(t, "B-1", "The Dispossessed"), givenBook(t, "B-2", "The Lathe of Heaven")})
	require.NoError(t, err)

	// act
	book, found := c.Book("B-2")
	_, missing := c.Book("B-3")

	// assert
	assert.True(t, found)
	assert.Equal(t, "The Lathe of Heaven", book.Title)
	assert.False(t, missing)
	assert.Equal(t, "The Dispossessed", c.TitleOf("B-1"))
	assert.Equal(t, core.UnknownBookTitle, c.TitleOf("B-3"))
	assert.Equal(t, 2, c.Len())
}

func Test_Catalog_IsNotMutableThroughReturnedBooks(t *testing.T) {
	// arrange
	source := givenBook(t, "B-1", "The Dispossessed")
	c, err := catalog.New([]core.Book{source})
	require.NoError(t, err)

	// act
	source.Mood[0] = "Changed"
	books := c.Books()
	books[0].Mood[0] = "Changed too"

	// assert
	book, _ := c.Book("B-1")
	assert.Equal(t, []string{"Analytical"}, book.Mood)
}

func Test_Catalog_Search(t *testing.T) {
	c, err := catalog.New([]core.Book{
		givenBook(t, "B-1", "The Dispossessed"),
		givenBook(t, "B-2", "The Lathe of Heaven"),
		givenBook(t, "B-3", "Foundation"),
	})
	require.NoError(t, err)

	assert.Len(t, c.Search("the", 0), 2)
	assert.Len(t, c.Search("the", 1), 1)
	assert.Len(t, c.Search("", 0), 3)
	assert.Len(t, c.Search("LE GUIN", 0), 3)
}
