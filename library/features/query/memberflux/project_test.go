package memberflux_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aegislib/circulation/library/core"
	"github.com/aegislib/circulation/library/features/query/memberflux"
	"github.com/aegislib/circulation/testutil/fixtures"
)

func Test_Project_MatchesBothIdentitiesOfTheMember(t *testing.T) {
	// arrange
	history := givenHistory()

	testCases := []struct {
		name     string
		memberID string
	}{
		{name: "by username", memberID: "member_1000"},
		{name: "by library id", memberID: "LIB-2024-STU-10000"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// act
			flux := memberflux.Project(history, memberflux.BuildQuery(tc.memberID), 7)

			// assert
			require.NotNil(t, flux.Member)
			assert.Equal(t, "Student Name 1000", flux.Member.Name)
			require.Equal(t, 2, flux.Count)
			assert.Equal(t, "TXN-100001", flux.Transactions[0].ID)
			assert.Equal(t, "TXN-100003", flux.Transactions[1].ID)
		})
	}
}

func Test_Project_UsesAnUnregisteredIdentityAsIs(t *testing.T) {
	// act
	flux := memberflux.Project(givenHistory(), memberflux.BuildQuery("walk-in"), 7)

	// assert
	assert.Nil(t, flux.Member)
	require.Equal(t, 1, flux.Count)
	assert.Equal(t, "TXN-100002", flux.Transactions[0].ID)
}

func givenHistory() core.DomainEvents {
	at := fixtures.FakeClock

	return core.DomainEvents{
		core.BuildMemberRegistered(fixtures.Member("member_1000", "LIB-2024-STU-10000", "Student Name 1000"), at),
		core.BuildBookCopyIssued("TXN-100001", "ACC-1", "B-1", "Dune", "member_1000", core.DefaultOperator, at),
		core.BuildBookCopyIssued("TXN-100002", "ACC-2", "B-1", "Dune", "walk-in", core.DefaultOperator, at),
		core.BuildBookCopyReturned("TXN-100003", "ACC-3", "B-1", "Dune", "LIB-2024-STU-10000", core.DefaultOperator, at),
	}
}
