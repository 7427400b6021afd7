package engine

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/aegislib/circulation/library/core"
	"github.com/aegislib/circulation/library/features/command/registermember"
)

const (
	defaultReliabilityScore = 90
)

// Register enrolls a student with a generated libraryId and username.
// A blank name is a ValidationError. Colliding identities are regenerated a few times before
// the ConflictError is returned.
func (e *Engine) Register(ctx context.Context, name string, department string) (core.UserProfile, error) {
	var err error

	for range core.MaxIDGenerationAttempts {
		profile := newStudent(name, department)
		profile.LibraryID = core.GenerateLibraryID(core.RoleStudent, e.now().Year(), e.random)
		profile.Username = core.GenerateUsername(uuid.New())

		var registered core.UserProfile
		registered, err = e.enroll(ctx, profile)

		if !errors.Is(err, core.ErrConflict) {
			return registered, err
		}
	}

	return core.UserProfile{}, err
}

// Enroll registers a student under an explicit libraryId. A duplicate libraryId is a ConflictError.
func (e *Engine) Enroll(ctx context.Context, name string, libraryID string, department string) (core.UserProfile, error) {
	profile := newStudent(name, department)
	profile.LibraryID = libraryID
	profile.Username = core.GenerateUsername(uuid.New())

	return e.enroll(ctx, profile)
}

func (e *Engine) enroll(ctx context.Context, profile core.UserProfile) (core.UserProfile, error) {
	result, err := e.handlers.registerMember.Handle(ctx, registermember.BuildCommand(profile, e.now()))
	if err != nil {
		return core.UserProfile{}, err
	}

	registered, _ := result.Event.(core.MemberRegistered)

	return registered.Profile(), nil
}

func newStudent(name string, department string) core.UserProfile {
	return core.UserProfile{
		Name:             name,
		Role:             core.RoleStudent,
		Department:       department,
		Status:           core.MemberActive,
		Tier:             core.TierNormal,
		ReliabilityScore: defaultReliabilityScore,
	}
}
