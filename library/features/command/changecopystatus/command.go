package changecopystatus

import (
	"time"

	"github.com/aegislib/circulation/library/core"
)

const commandType = "ChangeCopyStatus"

// Command represents the intent to move a copy onto an exception path.
type Command struct {
	CopyID     core.CopyIDString
	Status     core.CopyStatus
	Reason     string
	HandledBy  string
	OccurredAt core.OccurredAt
}

// CommandType returns the type identifier for this command.
func (c Command) CommandType() string {
	return commandType
}

// BuildCommand creates a new Command. An empty handledBy is recorded as the default operator.
func BuildCommand(
	copyID core.CopyIDString,
	status core.CopyStatus,
	reason string,
	handledBy string,
	occurredAt time.Time,
) Command {

	if handledBy == "" {
		handledBy = core.DefaultOperator
	}

	return Command{
		CopyID:     copyID,
		Status:     status,
		Reason:     reason,
		HandledBy:  handledBy,
		OccurredAt: core.ToOccurredAt(occurredAt),
	}
}
