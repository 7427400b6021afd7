package overdueloans_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aegislib/circulation/library/core"
	"github.com/aegislib/circulation/library/features/query/overdueloans"
	"github.com/aegislib/circulation/testutil/fixtures"
)

func Test_Project_ListsActiveLoansPastTheirDueDate(t *testing.T) {
	// arrange
	at := fixtures.FakeClock
	history := core.DomainEvents{
		core.BuildBookCopyIssued("TXN-100001", "ACC-1", "B-1", "Dune", "member_1", core.DefaultOperator, at),
		core.BuildBookCopyIssued("TXN-100002", "ACC-2", "B-1", "Dune", "member_2", core.DefaultOperator, at),
		core.BuildBookCopyIssued("TXN-100003", "ACC-3", "B-1", "Dune", "member_3", core.DefaultOperator, at),
		core.BuildBookCopyReturned("TXN-100004", "ACC-2", "B-1", "Dune", "member_2", core.DefaultOperator, at.Add(time.Hour)),
		core.BuildBookCopyRenewed("TXN-100005", "ACC-3", "B-1", "Dune", "member_3", core.DefaultOperator, at.Add(10*24*time.Hour)),
	}
	now := at.Add(core.LoanPeriod + 24*time.Hour)

	// act
	result := overdueloans.Project(history, overdueloans.BuildQuery(now), 5)

	// assert
	require.Equal(t, 1, result.Count)
	assert.Equal(t, "TXN-100001", result.Loans[0].ID)
	assert.Equal(t, core.TransactionOverdue, result.Loans[0].Status)
	assert.Equal(t, now, result.AsOf)
}

func Test_Project_NothingIsOverdueBeforeTheDueDate(t *testing.T) {
	// arrange
	at := fixtures.FakeClock
	history := core.DomainEvents{
		core.BuildBookCopyIssued("TXN-100001", "ACC-1", "B-1", "Dune", "member_1", core.DefaultOperator, at),
	}

	// act
	result := overdueloans.Project(history, overdueloans.BuildQuery(at.Add(core.LoanPeriod)), 1)

	// assert
	assert.Equal(t, 0, result.Count)
	assert.NotNil(t, result.Loans)
}
