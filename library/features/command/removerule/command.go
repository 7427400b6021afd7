package removerule

import (
	"time"

	"github.com/aegislib/circulation/library/core"
)

const commandType = "RemoveRule"

// Command represents the intent to remove a policy rule.
type Command struct {
	RuleID     string
	OccurredAt core.OccurredAt
}

// CommandType returns the type identifier for this command.
func (c Command) CommandType() string {
	return commandType
}

// BuildCommand creates a new Command.
func BuildCommand(ruleID string, occurredAt time.Time) Command {
	return Command{
		RuleID:     ruleID,
		OccurredAt: core.ToOccurredAt(occurredAt),
	}
}
