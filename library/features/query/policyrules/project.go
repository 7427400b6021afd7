package policyrules

import (
	"slices"

	"github.com/aegislib/circulation/eventstore"
	"github.com/aegislib/circulation/library/core"
)

// Project folds rule additions and removals.
//
// Query Logic:
//
//	GIVEN: All PolicyRuleAdded and PolicyRuleRemoved events
//	WHEN: PolicyRules query is executed
//	THEN: RuleSet is returned with the present rules ordered by their latest addition
func Project(history core.DomainEvents, _ Query, maxSequenceNumber eventstore.MaxSequenceNumberUint) RuleSet {
	rules := make([]core.Rule, 0)

	without := func(ruleID string) {
		rules = slices.DeleteFunc(rules, func(r core.Rule) bool { return r.ID == ruleID })
	}

	for _, event := range history {
		switch e := event.(type) {
		case core.PolicyRuleAdded:
			without(e.RuleID)
			rules = append(rules, e.Rule())

		case core.PolicyRuleRemoved:
			without(e.RuleID)
		}
	}

	return RuleSet{
		Rules:          rules,
		Count:          len(rules),
		SequenceNumber: maxSequenceNumber,
	}
}

// BuildEventFilter selects every rule addition and removal.
func BuildEventFilter() eventstore.Filter {
	return eventstore.BuildEventFilter().
		Matching().
		AnyEventTypeOf(core.PolicyRuleAddedEventType, core.PolicyRuleRemovedEventType).
		Finalize()
}
