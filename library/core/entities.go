package core

import (
	"fmt"
	"strings"
	"time"
)

// Book is a catalog record. The catalog is immutable for the lifetime of an engine.
type Book struct {
	ID              BookIDString
	ISBN            string
	Title           string
	Author          string
	Publisher       string
	Edition         string
	Category        string
	CoverURL        string
	Mood            []string
	Demand          DemandLevel
	TotalCopies     int
	AvailableCopies int
}

// Validate checks the invariants of a Book.
func (b Book) Validate() error {
	if err := RequireFields(Required("id", b.ID), Required("title", b.Title)); err != nil {
		return err
	}

	if b.TotalCopies < 0 || b.AvailableCopies < 0 {
		return NewInvalidValueError(fmt.Sprintf("book %q has negative copy counts", b.ID))
	}

	if b.AvailableCopies > b.TotalCopies {
		return NewInvalidValueError(fmt.Sprintf("book %q has more available (%d) than total (%d) copies",
			b.ID, b.AvailableCopies, b.TotalCopies))
	}

	return nil
}

// BookCopy is one physical instance of a Book. BookID and LastHandledBy are weak references.
type BookCopy struct {
	ID            CopyIDString
	BookID        BookIDString
	Status        CopyStatus
	Condition     CopyCondition
	LastHandledBy UserIDString
	ShelfLocation string
}

// Validate checks the invariants of a BookCopy: issued copies carry a holder, available ones don't.
func (c BookCopy) Validate() error {
	if err := RequireFields(Required("id", c.ID), Required("bookId", c.BookID)); err != nil {
		return err
	}

	if !c.Status.IsValid() {
		return NewInvalidValueError(fmt.Sprintf("copy %q has unknown status %q", c.ID, c.Status))
	}

	if c.Condition != "" && !c.Condition.IsValid() {
		return NewInvalidValueError(fmt.Sprintf("copy %q has unknown condition %q", c.ID, c.Condition))
	}

	if c.Status == CopyIssued && c.LastHandledBy == "" {
		return NewInvalidValueError(fmt.Sprintf("issued copy %q has no holder", c.ID))
	}

	if c.Status == CopyAvailable && c.LastHandledBy != "" {
		return NewInvalidValueError(fmt.Sprintf("available copy %q must not have a holder", c.ID))
	}

	return nil
}

// Transaction is one immutable ledger entry.
type Transaction struct {
	ID         TransactionIDString
	UserID     UserIDString
	BookCopyID CopyIDString
	BookTitle  string
	Type       TransactionType
	Timestamp  time.Time
	DueDate    *time.Time
	FineAmount *float64
	Status     TransactionStatus
	HandledBy  string
}

// IsOverdueAt reports whether an active loan entry is past its due date at now.
func (t Transaction) IsOverdueAt(now time.Time) bool {
	return t.Status == TransactionActive && t.DueDate != nil && now.After(*t.DueDate)
}

// UserProfile is a member or staff identity.
type UserProfile struct {
	Username         string
	Name             string
	Role             Role
	LibraryID        string
	Department       string
	Status           MemberStatus
	Tier             Tier
	ReliabilityScore int
}

// Validate checks the invariants of a UserProfile.
func (u UserProfile) Validate() error {
	if err := RequireFields(Required("username", u.Username), Required("name", u.Name)); err != nil {
		return err
	}

	if !u.Role.IsValid() {
		return NewInvalidValueError(fmt.Sprintf("member %q has unknown role %q", u.Username, u.Role))
	}

	if u.ReliabilityScore < 0 || u.ReliabilityScore > 100 {
		return NewInvalidValueError(fmt.Sprintf("member %q has reliability score %d outside 0..100", u.Username, u.ReliabilityScore))
	}

	return nil
}

// Identifies reports whether id is the member's username or libraryId.
func (u UserProfile) Identifies(id string) bool {
	return id != "" && (u.Username == id || u.LibraryID == id)
}

// MatchesQuery is a case-insensitive partial match on libraryId or name.
func (u UserProfile) MatchesQuery(lowerQuery string) bool {
	return strings.Contains(strings.ToLower(u.LibraryID), lowerQuery) ||
		strings.Contains(strings.ToLower(u.Name), lowerQuery)
}

// RequestData is the payload of a UserRequest. It is either AcquisitionData or EnrollmentData.
type RequestData interface {
	RequestType() RequestType
}

// AcquisitionData asks the library to acquire a title.
type AcquisitionData struct {
	Title  string
	Author string
}

func (AcquisitionData) RequestType() RequestType {
	return RequestBookAcquisition
}

// EnrollmentData asks the library to enroll an applicant as a member.
type EnrollmentData struct {
	Name       string
	Department string
}

func (EnrollmentData) RequestType() RequestType {
	return RequestUserEnrollment
}

// UserRequest is a pending administrative action.
type UserRequest struct {
	ID        string
	Type      RequestType
	UserID    UserIDString
	Data      RequestData
	Status    RequestStatus
	Timestamp time.Time
	Priority  Priority
}

// Validate checks that Data matches Type.
func (r UserRequest) Validate() error {
	if err := RequireFields(Required("id", r.ID)); err != nil {
		return err
	}

	if !r.Type.IsValid() {
		return NewInvalidValueError(fmt.Sprintf("request %q has unknown type %q", r.ID, r.Type))
	}

	if r.Data == nil || r.Data.RequestType() != r.Type {
		return NewInvalidValueError(fmt.Sprintf("request %q of type %q carries mismatching data", r.ID, r.Type))
	}

	return nil
}

// Fine is declared for completeness; no flow creates fines.
type Fine struct {
	ID          string
	UserID      UserIDString
	Amount      float64
	Reason      FineReason
	Status      FineStatus
	Timestamp   time.Time
	ReferenceID TransactionIDString
}

// Rule is a descriptive policy declaration. Nothing evaluates it.
type Rule struct {
	ID        string
	Condition string
	Action    string
	IsActive  bool
}
