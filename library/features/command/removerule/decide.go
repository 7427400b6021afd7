package removerule

import (
	"github.com/aegislib/circulation/eventstore"
	"github.com/aegislib/circulation/library/core"
)

// Decide determines whether a rule can be removed.
//
// Business Rules:
//
//	GIVEN: A rule ID
//	WHEN: RemoveRule command is received
//	THEN: PolicyRuleRemoved event is generated
//	ERROR: ValidationError if the rule ID is blank
//	ERROR: NotFoundError if no rule with that ID is in the rule set
func Decide(history core.DomainEvents, command Command) core.DecisionResult {
	if err := core.RequireFields(core.Required("id", command.RuleID)); err != nil {
		return core.ErrorDecision(err)
	}

	present := false

	for _, event := range history {
		switch e := event.(type) {
		case core.PolicyRuleAdded:
			if e.RuleID == command.RuleID {
				present = true
			}

		case core.PolicyRuleRemoved:
			if e.RuleID == command.RuleID {
				present = false
			}
		}
	}

	if !present {
		return core.ErrorDecision(core.NewNotFoundError(core.EntityRule, command.RuleID))
	}

	return core.SuccessDecision(core.BuildPolicyRuleRemoved(command.RuleID, command.OccurredAt))
}

// BuildEventFilter covers the additions and removals of one rule ID.
func BuildEventFilter(ruleID string) eventstore.Filter {
	return eventstore.BuildEventFilter().
		Matching().
		AnyEventTypeOf(core.PolicyRuleAddedEventType, core.PolicyRuleRemovedEventType).
		AndAnyPredicateOf(eventstore.P(core.PredicateRuleID, ruleID)).
		Finalize()
}
