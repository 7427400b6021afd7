package core

import (
	"time"
)

// CopyIDString is the accession number of a physical copy.
type CopyIDString = string

// BookIDString identifies a catalog record.
type BookIDString = string

// UserIDString identifies a member, either by username or by libraryId.
type UserIDString = string

// TransactionIDString identifies a ledger entry.
type TransactionIDString = string

// EventTypeString is the type identifier of a domain event.
type EventTypeString = string

// OccurredAt represents when an event occurred.
type OccurredAt = time.Time

// ToOccurredAt converts a time to OccurredAt with UTC normalization and microsecond precision.
func ToOccurredAt(t time.Time) OccurredAt {
	return t.UTC().Truncate(time.Microsecond)
}

const (
	// LoanPeriod is added to the issue or renewal time to get the due date.
	LoanPeriod = 14 * 24 * time.Hour

	// DefaultOperator is recorded as handledBy when no operator identity is given.
	DefaultOperator = "Admin"

	// UnknownBookTitle is snapshotted into the ledger when the catalog has no title for a copy.
	UnknownBookTitle = "Classified Artifact"

	// ExternalHolder is recorded as the userId of a return when the copy had no known holder.
	ExternalHolder = "External Node"
)

// DueDateFrom returns the due date of a loan issued or renewed at t.
func DueDateFrom(t time.Time) time.Time {
	return ToOccurredAt(t.Add(LoanPeriod))
}
