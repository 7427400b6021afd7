package registercopy

import (
	"time"

	"github.com/aegislib/circulation/library/core"
)

const commandType = "RegisterCopy"

// Command represents the intent to add a physical copy to the inventory.
type Command struct {
	Copy       core.BookCopy
	OccurredAt core.OccurredAt
}

// CommandType returns the type identifier for this command.
func (c Command) CommandType() string {
	return commandType
}

// BuildCommand creates a new Command. A copy without status is available, one without condition is new.
func BuildCommand(bookCopy core.BookCopy, occurredAt time.Time) Command {
	if bookCopy.Status == "" {
		bookCopy.Status = core.CopyAvailable
	}

	if bookCopy.Condition == "" {
		bookCopy.Condition = core.ConditionNew
	}

	return Command{
		Copy:       bookCopy,
		OccurredAt: core.ToOccurredAt(occurredAt),
	}
}
