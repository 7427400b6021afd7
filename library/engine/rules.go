package engine

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/aegislib/circulation/library/core"
	"github.com/aegislib/circulation/library/features/command/addrule"
	"github.com/aegislib/circulation/library/features/command/removerule"
)

// AddRule appends an active rule under a generated id.
// Blank condition or action is a ValidationError.
func (e *Engine) AddRule(ctx context.Context, condition string, action string) (core.Rule, error) {
	var err error

	for range core.MaxIDGenerationAttempts {
		var rule core.Rule
		rule, err = e.AddRuleWithID(ctx, core.GenerateRuleID(uuid.New()), condition, action)

		if !errors.Is(err, core.ErrConflict) {
			return rule, err
		}
	}

	return core.Rule{}, err
}

// AddRuleWithID appends an active rule under ruleID. A present rule with that id is a ConflictError.
func (e *Engine) AddRuleWithID(ctx context.Context, ruleID string, condition string, action string) (core.Rule, error) {
	result, err := e.handlers.addRule.Handle(ctx, addrule.BuildCommand(ruleID, condition, action, e.now()))
	if err != nil {
		return core.Rule{}, err
	}

	added, _ := result.Event.(core.PolicyRuleAdded)

	return added.Rule(), nil
}

// RemoveRule removes a present rule. Unknown ids are a NotFoundError.
func (e *Engine) RemoveRule(ctx context.Context, ruleID string) error {
	_, err := e.handlers.removeRule.Handle(ctx, removerule.BuildCommand(ruleID, e.now()))

	return err
}
