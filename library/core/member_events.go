package core

import (
	"time"
)

const MemberRegisteredEventType = "MemberRegistered"

// MemberRegistered adds a UserProfile to the member registry.
type MemberRegistered struct {
	Username         string
	LibraryID        string
	Name             string
	Role             Role
	Department       string
	Status           MemberStatus
	Tier             Tier
	ReliabilityScore int
	OccurredAt       OccurredAt
}

func BuildMemberRegistered(profile UserProfile, occurredAt time.Time) MemberRegistered {
	return MemberRegistered{
		Username:         profile.Username,
		LibraryID:        profile.LibraryID,
		Name:             profile.Name,
		Role:             profile.Role,
		Department:       profile.Department,
		Status:           profile.Status,
		Tier:             profile.Tier,
		ReliabilityScore: profile.ReliabilityScore,
		OccurredAt:       ToOccurredAt(occurredAt),
	}
}

func (e MemberRegistered) IsEventType() string {
	return MemberRegisteredEventType
}

func (e MemberRegistered) HasOccurredAt() time.Time {
	return e.OccurredAt
}

// Profile returns the registered member.
func (e MemberRegistered) Profile() UserProfile {
	return UserProfile{
		Username:         e.Username,
		Name:             e.Name,
		Role:             e.Role,
		LibraryID:        e.LibraryID,
		Department:       e.Department,
		Status:           e.Status,
		Tier:             e.Tier,
		ReliabilityScore: e.ReliabilityScore,
	}
}
