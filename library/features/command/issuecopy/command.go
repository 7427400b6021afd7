package issuecopy

import (
	"time"

	"github.com/aegislib/circulation/library/core"
)

const commandType = "IssueCopy"

// Command represents the intent to lend a copy to a member.
// TransactionID is assigned by the CommandHandler for each attempt.
type Command struct {
	CopyID        core.CopyIDString
	UserID        core.UserIDString
	TransactionID core.TransactionIDString
	HandledBy     string
	OccurredAt    core.OccurredAt
}

// CommandType returns the type identifier for this command.
func (c Command) CommandType() string {
	return commandType
}

// BuildCommand creates a new Command. An empty handledBy is recorded as the default operator.
func BuildCommand(copyID core.CopyIDString, userID core.UserIDString, handledBy string, occurredAt time.Time) Command {
	if handledBy == "" {
		handledBy = core.DefaultOperator
	}

	return Command{
		CopyID:     copyID,
		UserID:     userID,
		HandledBy:  handledBy,
		OccurredAt: core.ToOccurredAt(occurredAt),
	}
}
