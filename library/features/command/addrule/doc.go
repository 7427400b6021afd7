// Package addrule implements adding a rule to the Policy Rule Set.
//
// Rules are descriptive configuration: a condition, an action and an active flag. Nothing
// evaluates them against the ledger or the registry.
package addrule
