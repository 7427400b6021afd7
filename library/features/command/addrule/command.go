package addrule

import (
	"time"

	"github.com/aegislib/circulation/library/core"
)

const commandType = "AddRule"

// Command represents the intent to add a policy rule.
type Command struct {
	Rule       core.Rule
	OccurredAt core.OccurredAt
}

// CommandType returns the type identifier for this command.
func (c Command) CommandType() string {
	return commandType
}

// BuildCommand creates a new Command for an active rule.
func BuildCommand(ruleID string, condition string, action string, occurredAt time.Time) Command {
	return Command{
		Rule: core.Rule{
			ID:        ruleID,
			Condition: condition,
			Action:    action,
			IsActive:  true,
		},
		OccurredAt: core.ToOccurredAt(occurredAt),
	}
}
