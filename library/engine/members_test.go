package engine_test

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aegislib/circulation/library/core"
	"github.com/aegislib/circulation/library/engine"
	"github.com/aegislib/circulation/library/seed"
	"github.com/aegislib/circulation/testutil/fixtures"
)

func Test_Engine_Register(t *testing.T) {
	// arrange
	ctx := context.Background()
	e := givenEngine(t, nil)

	// act
	member, err := e.Register(ctx, "Ada Lovelace", "Mathematics")

	// assert
	require.NoError(t, err)
	assert.Regexp(t, regexp.MustCompile(`^LIB-2026-STU-\d{5}$`), member.LibraryID)
	assert.Regexp(t, regexp.MustCompile(`^member_[0-9a-f]{8}$`), member.Username)
	assert.Equal(t, core.RoleStudent, member.Role)
	assert.Equal(t, core.MemberActive, member.Status)
	assert.Equal(t, core.TierNormal, member.Tier)
	assert.Equal(t, 90, member.ReliabilityScore)

	found, err := e.FindMemberByQuery(ctx, "ada")
	require.NoError(t, err)
	first, ok := found.First()
	require.True(t, ok)
	assert.Equal(t, member.LibraryID, first.LibraryID)
}

func Test_Engine_Register_RejectsBlankName(t *testing.T) {
	// arrange
	e := givenEngine(t, nil)

	// act
	_, err := e.Register(context.Background(), "  ", "Mathematics")

	// assert
	var validationErr core.ValidationError
	require.True(t, errors.As(err, &validationErr))
	assert.Equal(t, []string{"name"}, validationErr.Missing)
}

func Test_Engine_Register_GeneratesUniqueLibraryIDs(t *testing.T) {
	// arrange
	ctx := context.Background()
	e := givenEngine(t, nil)
	seen := make(map[string]struct{})

	for range 50 {
		// act
		member, err := e.Register(ctx, "Student", "Robotics")

		// assert
		require.NoError(t, err)
		_, duplicate := seen[member.LibraryID]
		require.False(t, duplicate, member.LibraryID)
		seen[member.LibraryID] = struct{}{}
	}
}

type constantRandom struct {
	value int
	calls int
}

func (r *constantRandom) Intn(_ int) int {
	r.calls++

	return r.value
}

func Test_Engine_Register_GivesUpAfterRepeatedCollisions(t *testing.T) {
	// arrange
	ctx := context.Background()
	random := &constantRandom{value: 7}
	e := givenEngine(t, nil, engine.WithRandomSource(random))

	taken, err := e.Register(ctx, "Ada Lovelace", "Mathematics")
	require.NoError(t, err)

	// act
	_, err = e.Register(ctx, "Alan Turing", "Mathematics")

	// assert
	var conflict core.ConflictError
	require.ErrorAs(t, err, &conflict)
	assert.Equal(t, core.EntityMember, conflict.Entity)
	assert.Equal(t, taken.LibraryID, conflict.Value)
	assert.Equal(t, 1+core.MaxIDGenerationAttempts, random.calls)

	found, err := e.FindMemberByQuery(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, 1, found.Count)
}

func Test_Engine_Enroll(t *testing.T) {
	// arrange
	ctx := context.Background()
	e := givenEngine(t, nil)

	// act
	member, err := e.Enroll(ctx, "Grace Hopper", "LIB-2025-STU-20000", "Navy")

	// assert
	require.NoError(t, err)
	assert.Equal(t, "LIB-2025-STU-20000", member.LibraryID)

	_, err = e.Enroll(ctx, "Someone Else", "LIB-2025-STU-20000", "Navy")
	assert.ErrorIs(t, err, core.ErrConflict)

	_, err = e.Enroll(ctx, "", "", "Navy")
	var validationErr core.ValidationError
	require.True(t, errors.As(err, &validationErr))
	assert.Equal(t, []string{"name", "libraryId"}, validationErr.Missing)
}

func Test_Engine_FluxForMember(t *testing.T) {
	// arrange
	ctx := context.Background()
	e := givenSeededEngine(t, seed.Data{
		Books:   []core.Book{fixtures.Book("B-1", "Dune")},
		Copies:  []core.BookCopy{fixtures.AvailableCopy("ACC-1", "B-1"), fixtures.AvailableCopy("ACC-2", "B-1")},
		Members: []core.UserProfile{fixtures.Member("member_1000", "LIB-2024-STU-10000", "Ada Lovelace")},
	})
	_, err := e.Issue(ctx, "ACC-1", "member_1000")
	require.NoError(t, err)
	_, err = e.Issue(ctx, "ACC-2", "LIB-2024-STU-10000")
	require.NoError(t, err)

	// act
	flux, err := e.FluxForMember(ctx, "member_1000")

	// assert
	require.NoError(t, err)
	assert.Equal(t, 2, flux.Count)

	history, err := e.HistoryForCopy(ctx, "ACC-2")
	require.NoError(t, err)
	assert.Equal(t, 1, history.Count)
}
