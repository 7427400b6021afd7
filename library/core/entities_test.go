package core_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/aegislib/circulation/library/core"
)

func Test_Book_Validate(t *testing.T) {
	testCases := []struct {
		name    string
		book    core.Book
		wantErr bool
	}{
		{name: "valid", book: core.Book{ID: "B-1", Title: "T", TotalCopies: 5, AvailableCopies: 3}},
		{name: "all available", book: core.Book{ID: "B-1", Title: "T", TotalCopies: 2, AvailableCopies: 2}},
		{name: "more available than total", book: core.Book{ID: "B-1", Title: "T", TotalCopies: 2, AvailableCopies: 3}, wantErr: true},
		{name: "negative counts", book: core.Book{ID: "B-1", Title: "T", TotalCopies: -1}, wantErr: true},
		{name: "missing title", book: core.Book{ID: "B-1"}, wantErr: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.book.Validate()

			if tc.wantErr {
				assert.ErrorIs(t, err, core.ErrValidation)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func Test_BookCopy_Validate(t *testing.T) {
	testCases := []struct {
		name    string
		copy    core.BookCopy
		wantErr bool
	}{
		{name: "available without holder", copy: core.BookCopy{ID: "ACC-1", BookID: "B-1", Status: core.CopyAvailable}},
		{name: "issued with holder", copy: core.BookCopy{ID: "ACC-1", BookID: "B-1", Status: core.CopyIssued, LastHandledBy: "member_1"}},
		{name: "damaged keeps last holder", copy: core.BookCopy{ID: "ACC-1", BookID: "B-1", Status: core.CopyDamaged, LastHandledBy: "member_1"}},
		{name: "issued without holder", copy: core.BookCopy{ID: "ACC-1", BookID: "B-1", Status: core.CopyIssued}, wantErr: true},
		{name: "available with holder", copy: core.BookCopy{ID: "ACC-1", BookID: "B-1", Status: core.CopyAvailable, LastHandledBy: "member_1"}, wantErr: true},
		{name: "unknown status", copy: core.BookCopy{ID: "ACC-1", BookID: "B-1", Status: "lost"}, wantErr: true},
		{name: "unknown condition", copy: core.BookCopy{ID: "ACC-1", BookID: "B-1", Status: core.CopyAvailable, Condition: "soggy"}, wantErr: true},
		{name: "missing book id", copy: core.BookCopy{ID: "ACC-1", Status: core.CopyAvailable}, wantErr: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.copy.Validate()

			if tc.wantErr {
				assert.ErrorIs(t, err, core.ErrValidation)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func Test_UserProfile_IdentifiesAndMatches(t *testing.T) {
	profile := core.UserProfile{
		Username:  "member_1001",
		Name:      "Student Name 1001",
		Role:      core.RoleStudent,
		LibraryID: "LIB-2024-STU-10001",
	}

	assert.True(t, profile.Identifies("member_1001"))
	assert.True(t, profile.Identifies("LIB-2024-STU-10001"))
	assert.False(t, profile.Identifies(""))
	assert.True(t, profile.MatchesQuery("stu-1000"))
	assert.True(t, profile.MatchesQuery("name 1001"))
	assert.False(t, profile.MatchesQuery("librarian"))
}

func Test_UserProfile_Validate_RejectsScoreOutOfRange(t *testing.T) {
	profile := core.UserProfile{Username: "u", Name: "n", Role: core.RoleReader, ReliabilityScore: 101}

	assert.ErrorIs(t, profile.Validate(), core.ErrValidation)
}

func Test_UserRequest_Validate_RejectsMismatchingData(t *testing.T) {
	request := core.UserRequest{
		ID:   "REQ-1",
		Type: core.RequestBookAcquisition,
		Data: core.EnrollmentData{Name: "Ada"},
	}

	assert.ErrorIs(t, request.Validate(), core.ErrValidation)
}

func Test_Transaction_IsOverdueAt(t *testing.T) {
	issuedAt := time.Date(2026, 1, 1, 9, 0, 0, 0, time.UTC)
	dueDate := core.DueDateFrom(issuedAt)
	active := core.Transaction{Status: core.TransactionActive, DueDate: &dueDate}
	completed := core.Transaction{Status: core.TransactionCompleted}

	assert.False(t, active.IsOverdueAt(issuedAt.Add(13*24*time.Hour)))
	assert.True(t, active.IsOverdueAt(issuedAt.Add(15*24*time.Hour)))
	assert.False(t, completed.IsOverdueAt(issuedAt.Add(30*24*time.Hour)))
}
