package core_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/aegislib/circulation/library/core"
)

func Test_CopiesFrom_FoldsTheLifecycleInRegistrationOrder(t *testing.T) {
	// arrange
	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	history := core.DomainEvents{
		core.BuildBookCopyRegistered(givenCopy("ACC-2", "B-1"), now),
		core.BuildBookCopyRegistered(givenCopy("ACC-1", "B-1"), now),
		core.BuildBookCopyIssued("TXN-100001", "ACC-1", "B-1", "Dune", "member_7", core.DefaultOperator, now),
		core.BuildBookCopyIssued("TXN-100002", "ACC-2", "B-1", "Dune", "member_8", core.DefaultOperator, now),
		core.BuildBookCopyReturned("TXN-100003", "ACC-2", "B-1", "Dune", "member_8", core.DefaultOperator, now),
		core.BuildBookCopyStatusChanged("ACC-2", "B-1", core.CopyAvailable, core.CopyMissing, "lost", core.DefaultOperator, now),
		core.BuildBookCopyIssued("TXN-100004", "ACC-9", "B-1", "Dune", "member_9", core.DefaultOperator, now),
	}

	// act
	copies := core.CopiesFrom(history)

	// assert
	assert.Len(t, copies, 2)
	assert.Equal(t, "ACC-2", copies[0].ID)
	assert.Equal(t, core.CopyMissing, copies[0].Status)
	assert.Empty(t, copies[0].LastHandledBy)
	assert.Equal(t, "ACC-1", copies[1].ID)
	assert.Equal(t, core.CopyIssued, copies[1].Status)
	assert.Equal(t, "member_7", copies[1].LastHandledBy)
}

func Test_CopiesFrom_ClearsTheHolderOfADamagedCopyMadeAvailable(t *testing.T) {
	// arrange
	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	damaged := givenCopy("ACC-120", "B-1")
	damaged.Status = core.CopyDamaged
	damaged.Condition = core.ConditionDamaged
	damaged.LastHandledBy = "LIB-2024-STU-10039"
	history := core.DomainEvents{
		core.BuildBookCopyRegistered(damaged, now),
		core.BuildBookCopyStatusChanged("ACC-120", "B-1", core.CopyDamaged, core.CopyAvailable, "repaired", core.DefaultOperator, now),
	}

	// act
	copies := core.CopiesFrom(history)

	// assert
	assert.Len(t, copies, 1)
	assert.Equal(t, core.CopyAvailable, copies[0].Status)
	assert.Empty(t, copies[0].LastHandledBy)
}

func givenCopy(id string, bookID string) core.BookCopy {
	return core.BookCopy{
		ID:            id,
		BookID:        bookID,
		Status:        core.CopyAvailable,
		Condition:     core.ConditionGood,
		ShelfLocation: "S0-R1",
	}
}
