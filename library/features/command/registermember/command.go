package registermember

import (
	"time"

	"github.com/aegislib/circulation/library/core"
)

const commandType = "RegisterMember"

// Command represents the intent to enroll a member.
type Command struct {
	Profile    core.UserProfile
	OccurredAt core.OccurredAt
}

// CommandType returns the type identifier for this command.
func (c Command) CommandType() string {
	return commandType
}

// BuildCommand creates a new Command.
func BuildCommand(profile core.UserProfile, occurredAt time.Time) Command {
	return Command{
		Profile:    profile,
		OccurredAt: core.ToOccurredAt(occurredAt),
	}
}
