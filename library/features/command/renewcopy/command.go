package renewcopy

import (
	"time"

	"github.com/aegislib/circulation/library/core"
)

const commandType = "RenewCopy"

// Command represents the intent to extend the loan of an issued copy.
type Command struct {
	CopyID        core.CopyIDString
	TransactionID core.TransactionIDString
	HandledBy     string
	OccurredAt    core.OccurredAt
}

// CommandType returns the type identifier for this command.
func (c Command) CommandType() string {
	return commandType
}

// BuildCommand creates a new Command. An empty handledBy is recorded as the default operator.
func BuildCommand(copyID core.CopyIDString, handledBy string, occurredAt time.Time) Command {
	if handledBy == "" {
		handledBy = core.DefaultOperator
	}

	return Command{
		CopyID:     copyID,
		HandledBy:  handledBy,
		OccurredAt: core.ToOccurredAt(occurredAt),
	}
}
