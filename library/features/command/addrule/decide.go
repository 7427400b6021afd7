package addrule

import (
	"github.com/aegislib/circulation/eventstore"
	"github.com/aegislib/circulation/library/core"
)

// Decide determines whether a rule can be added.
//
// Business Rules:
//
//	GIVEN: A rule with ID, Condition and Action
//	WHEN: AddRule command is received
//	THEN: PolicyRuleAdded event is generated
//	ERROR: ValidationError listing condition and/or action if blank
//	ERROR: ConflictError if a rule with the same ID is in the rule set
func Decide(history core.DomainEvents, command Command) core.DecisionResult {
	err := core.RequireFields(
		core.Required("id", command.Rule.ID),
		core.Required("condition", command.Rule.Condition),
		core.Required("action", command.Rule.Action),
	)
	if err != nil {
		return core.ErrorDecision(err)
	}

	if ruleIsPresent(history, command.Rule.ID) {
		return core.ErrorDecision(core.NewConflictError(core.EntityRule, "id", command.Rule.ID))
	}

	return core.SuccessDecision(core.BuildPolicyRuleAdded(command.Rule, command.OccurredAt))
}

func ruleIsPresent(history core.DomainEvents, ruleID string) bool {
	present := false

	for _, event := range history {
		switch e := event.(type) {
		case core.PolicyRuleAdded:
			if e.RuleID == ruleID {
				present = true
			}

		case core.PolicyRuleRemoved:
			if e.RuleID == ruleID {
				present = false
			}
		}
	}

	return present
}

// BuildEventFilter covers the additions and removals of one rule ID.
func BuildEventFilter(ruleID string) eventstore.Filter {
	return eventstore.BuildEventFilter().
		Matching().
		AnyEventTypeOf(core.PolicyRuleAddedEventType, core.PolicyRuleRemovedEventType).
		AndAnyPredicateOf(eventstore.P(core.PredicateRuleID, ruleID)).
		Finalize()
}
