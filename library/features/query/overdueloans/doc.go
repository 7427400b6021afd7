// Package overdueloans implements the overdue view of the ledger: copies whose latest ledger entry
// is an active loan past its due date.
package overdueloans
