package core

import (
	"time"
)

const (
	PolicyRuleAddedEventType   = "PolicyRuleAdded"
	PolicyRuleRemovedEventType = "PolicyRuleRemoved"
)

type PolicyRuleAdded struct {
	RuleID     string
	Condition  string
	Action     string
	IsActive   bool
	OccurredAt OccurredAt
}

func BuildPolicyRuleAdded(rule Rule, occurredAt time.Time) PolicyRuleAdded {
	return PolicyRuleAdded{
		RuleID:     rule.ID,
		Condition:  rule.Condition,
		Action:     rule.Action,
		IsActive:   rule.IsActive,
		OccurredAt: ToOccurredAt(occurredAt),
	}
}

func (e PolicyRuleAdded) IsEventType() string {
	return PolicyRuleAddedEventType
}

func (e PolicyRuleAdded) HasOccurredAt() time.Time {
	return e.OccurredAt
}

func (e PolicyRuleAdded) Rule() Rule {
	return Rule{ID: e.RuleID, Condition: e.Condition, Action: e.Action, IsActive: e.IsActive}
}

type PolicyRuleRemoved struct {
	RuleID     string
	OccurredAt OccurredAt
}

func BuildPolicyRuleRemoved(ruleID string, occurredAt time.Time) PolicyRuleRemoved {
	return PolicyRuleRemoved{
		RuleID:     ruleID,
		OccurredAt: ToOccurredAt(occurredAt),
	}
}

func (e PolicyRuleRemoved) IsEventType() string {
	return PolicyRuleRemovedEventType
}

func (e PolicyRuleRemoved) HasOccurredAt() time.Time {
	return e.OccurredAt
}
