package core

import (
	"time"
)

const (
	BookCopyRegisteredEventType    = "BookCopyRegistered"
	BookCopyIssuedEventType        = "BookCopyIssued"
	BookCopyReturnedEventType      = "BookCopyReturned"
	BookCopyRenewedEventType       = "BookCopyRenewed"
	BookCopyStatusChangedEventType = "BookCopyStatusChanged"
)

// CopyLifecycleEventTypes are all events that change a copy's status or holder.
func CopyLifecycleEventTypes() []string {
	return []string{
		BookCopyRegisteredEventType,
		BookCopyIssuedEventType,
		BookCopyReturnedEventType,
		BookCopyRenewedEventType,
		BookCopyStatusChangedEventType,
	}
}

// LedgerEventTypes are the events that are ledger entries.
func LedgerEventTypes() []string {
	return []string{
		BookCopyIssuedEventType,
		BookCopyReturnedEventType,
		BookCopyRenewedEventType,
	}
}

// BookCopyRegistered puts a physical copy into the inventory, at seeding or by "Inject Artifact".
type BookCopyRegistered struct {
	CopyID        CopyIDString
	BookID        BookIDString
	Status        CopyStatus
	Condition     CopyCondition
	LastHandledBy UserIDString
	ShelfLocation string
	OccurredAt    OccurredAt
}

func BuildBookCopyRegistered(bookCopy BookCopy, occurredAt time.Time) BookCopyRegistered {
	return BookCopyRegistered{
		CopyID:        bookCopy.ID,
		BookID:        bookCopy.BookID,
		Status:        bookCopy.Status,
		Condition:     bookCopy.Condition,
		LastHandledBy: bookCopy.LastHandledBy,
		ShelfLocation: bookCopy.ShelfLocation,
		OccurredAt:    ToOccurredAt(occurredAt),
	}
}

func (e BookCopyRegistered) IsEventType() string {
	return BookCopyRegisteredEventType
}

func (e BookCopyRegistered) HasOccurredAt() time.Time {
	return e.OccurredAt
}

// Copy returns the copy as registered.
func (e BookCopyRegistered) Copy() BookCopy {
	return BookCopy{
		ID:            e.CopyID,
		BookID:        e.BookID,
		Status:        e.Status,
		Condition:     e.Condition,
		LastHandledBy: e.LastHandledBy,
		ShelfLocation: e.ShelfLocation,
	}
}

// BookCopyIssued lends a copy to a member. It is the "issue" ledger entry.
type BookCopyIssued struct {
	TransactionID TransactionIDString
	CopyID        CopyIDString
	BookID        BookIDString
	BookTitle     string
	UserID        UserIDString
	DueDate       time.Time
	HandledBy     string
	OccurredAt    OccurredAt
}

func BuildBookCopyIssued(
	transactionID TransactionIDString,
	copyID CopyIDString,
	bookID BookIDString,
	bookTitle string,
	userID UserIDString,
	handledBy string,
	occurredAt time.Time,
) BookCopyIssued {

	return BookCopyIssued{
		TransactionID: transactionID,
		CopyID:        copyID,
		BookID:        bookID,
		BookTitle:     bookTitle,
		UserID:        userID,
		DueDate:       DueDateFrom(occurredAt),
		HandledBy:     handledBy,
		OccurredAt:    ToOccurredAt(occurredAt),
	}
}

func (e BookCopyIssued) IsEventType() string {
	return BookCopyIssuedEventType
}

func (e BookCopyIssued) HasOccurredAt() time.Time {
	return e.OccurredAt
}

// BookCopyReturned brings a copy back into circulation. It is the "return" ledger entry.
type BookCopyReturned struct {
	TransactionID TransactionIDString
	CopyID        CopyIDString
	BookID        BookIDString
	BookTitle     string
	UserID        UserIDString
	HandledBy     string
	OccurredAt    OccurredAt
}

func BuildBookCopyReturned(
	transactionID TransactionIDString,
	copyID CopyIDString,
	bookID BookIDString,
	bookTitle string,
	userID UserIDString,
	handledBy string,
	occurredAt time.Time,
) BookCopyReturned {

	return BookCopyReturned{
		TransactionID: transactionID,
		CopyID:        copyID,
		BookID:        bookID,
		BookTitle:     bookTitle,
		UserID:        userID,
		HandledBy:     handledBy,
		OccurredAt:    ToOccurredAt(occurredAt),
	}
}

func (e BookCopyReturned) IsEventType() string {
	return BookCopyReturnedEventType
}

func (e BookCopyReturned) HasOccurredAt() time.Time {
	return e.OccurredAt
}

// BookCopyRenewed extends the loan of an issued copy. It is the "renewal" ledger entry.
type BookCopyRenewed struct {
	TransactionID TransactionIDString
	CopyID        CopyIDString
	BookID        BookIDString
	BookTitle     string
	UserID        UserIDString
	DueDate       time.Time
	HandledBy     string
	OccurredAt    OccurredAt
}

func BuildBookCopyRenewed(
	transactionID TransactionIDString,
	copyID CopyIDString,
	bookID BookIDString,
	bookTitle string,
	userID UserIDString,
	handledBy string,
	occurredAt time.Time,
) BookCopyRenewed {

	return BookCopyRenewed{
		TransactionID: transactionID,
		CopyID:        copyID,
		BookID:        bookID,
		BookTitle:     bookTitle,
		UserID:        userID,
		DueDate:       DueDateFrom(occurredAt),
		HandledBy:     handledBy,
		OccurredAt:    ToOccurredAt(occurredAt),
	}
}

func (e BookCopyRenewed) IsEventType() string {
	return BookCopyRenewedEventType
}

func (e BookCopyRenewed) HasOccurredAt() time.Time {
	return e.OccurredAt
}

// BookCopyStatusChanged moves a copy along an exception path (damaged, missing, archived).
type BookCopyStatusChanged struct {
	CopyID     CopyIDString
	BookID     BookIDString
	FromStatus CopyStatus
	ToStatus   CopyStatus
	Reason     string
	HandledBy  string
	OccurredAt OccurredAt
}

func BuildBookCopyStatusChanged(
	copyID CopyIDString,
	bookID BookIDString,
	from CopyStatus,
	to CopyStatus,
	reason string,
	handledBy string,
	occurredAt time.Time,
) BookCopyStatusChanged {

	return BookCopyStatusChanged{
		CopyID:     copyID,
		BookID:     bookID,
		FromStatus: from,
		ToStatus:   to,
		Reason:     reason,
		HandledBy:  handledBy,
		OccurredAt: ToOccurredAt(occurredAt),
	}
}

func (e BookCopyStatusChanged) IsEventType() string {
	return BookCopyStatusChangedEventType
}

func (e BookCopyStatusChanged) HasOccurredAt() time.Time {
	return e.OccurredAt
}
