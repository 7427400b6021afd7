package findcopies_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aegislib/circulation/library/core"
	"github.com/aegislib/circulation/library/features/query/findcopies"
	"github.com/aegislib/circulation/testutil/fixtures"
)

func Test_Project_MatchesCopyIDOrTitle(t *testing.T) {
	// arrange
	catalog := fixtures.NewCatalog(t, fixtures.Book("B-1", "Dune"), fixtures.Book("B-2", "Solaris"))
	history := core.DomainEvents(fixtures.Registered(
		fixtures.AvailableCopy("ACC-1", "B-1"),
		fixtures.AvailableCopy("ACC-2", "B-2"),
		fixtures.AvailableCopy("ACC-31", "B-1"),
	))

	testCases := []struct {
		name     string
		text     string
		expected []string
	}{
		{name: "title, case-insensitive", text: "dUnE", expected: []string{"ACC-1", "ACC-31"}},
		{name: "copy id, partial", text: "acc-3", expected: []string{"ACC-31"}},
		{name: "no match", text: "Neuromancer", expected: []string{}},
		{name: "blank browses", text: "  ", expected: []string{"ACC-1", "ACC-2", "ACC-31"}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// act
			result := findcopies.Project(history, findcopies.BuildQuery(tc.text), catalog, 3)

			// assert
			ids := make([]string, 0)
			for _, view := range result.Copies {
				ids = append(ids, view.Copy.ID)
			}
			assert.Equal(t, tc.expected, ids)
			assert.Equal(t, len(tc.expected), result.Count)
		})
	}
}

func Test_Project_LimitsTheResult(t *testing.T) {
	// arrange
	catalog := fixtures.NewCatalog(t, fixtures.Book("B-1", "Dune"))
	copies := make([]core.BookCopy, 0, 120)
	for i := range 120 {
		copies = append(copies, fixtures.AvailableCopy(fmt.Sprintf("ACC-%d", 10000+i), "B-1"))
	}
	history := core.DomainEvents(fixtures.Registered(copies...))

	// act
	browsed := findcopies.Project(history, findcopies.BuildQuery(""), catalog, 120)
	matched := findcopies.Project(history, findcopies.BuildQuery("dune"), catalog, 120)

	// assert
	assert.Equal(t, findcopies.BrowseLimit, browsed.Count)
	assert.Equal(t, findcopies.MatchLimit, matched.Count)
}

func Test_Project_ShowsCurrentStatusAndTitleFallback(t *testing.T) {
	// arrange
	catalog := fixtures.NewCatalog(t, fixtures.Book("B-1", "Dune"))
	history := core.DomainEvents{
		core.BuildBookCopyRegistered(fixtures.AvailableCopy("ACC-1", "B-1"), fixtures.FakeClock),
		core.BuildBookCopyRegistered(fixtures.AvailableCopy("ACC-2", "B-404"), fixtures.FakeClock),
		core.BuildBookCopyIssued("TXN-100001", "ACC-1", "B-1", "Dune", "member_7", core.DefaultOperator, fixtures.FakeClock),
	}

	// act
	result := findcopies.Project(history, findcopies.BuildQuery(""), catalog, 3)

	// assert
	require.Equal(t, 2, result.Count)
	assert.Equal(t, core.CopyIssued, result.Copies[0].Copy.Status)
	assert.Equal(t, "member_7", result.Copies[0].Copy.LastHandledBy)
	assert.Equal(t, core.UnknownBookTitle, result.Copies[1].Title)
}
