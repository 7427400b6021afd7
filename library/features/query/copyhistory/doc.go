// Package copyhistory implements the history of one physical copy: every ledger entry for it,
// in arrival order.
package copyhistory
