package resolverequest

import (
	"time"

	"github.com/aegislib/circulation/library/core"
)

const commandType = "ResolveRequest"

// Command represents the decision on a pending request.
type Command struct {
	RequestID  string
	Decision   core.RequestStatus
	ResolvedBy string
	OccurredAt core.OccurredAt
}

// CommandType returns the type identifier for this command.
func (c Command) CommandType() string {
	return commandType
}

// BuildCommand creates a new Command. An empty resolvedBy is recorded as the default operator.
func BuildCommand(requestID string, decision core.RequestStatus, resolvedBy string, occurredAt time.Time) Command {
	if resolvedBy == "" {
		resolvedBy = core.DefaultOperator
	}

	return Command{
		RequestID:  requestID,
		Decision:   decision,
		ResolvedBy: resolvedBy,
		OccurredAt: core.ToOccurredAt(occurredAt),
	}
}
