package core

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrNotFound matches every NotFoundError.
	ErrNotFound = errors.New("not found")

	// ErrInvalidState matches every InvalidStateError.
	ErrInvalidState = errors.New("invalid state")

	// ErrValidation matches every ValidationError.
	ErrValidation = errors.New("validation failed")

	// ErrConflict matches every ConflictError.
	ErrConflict = errors.New("conflict")
)

const (
	EntityCopy        = "copy"
	EntityBook        = "book"
	EntityMember      = "member"
	EntityRequest     = "request"
	EntityRule        = "rule"
	EntityTransaction = "transaction"
)

// NotFoundError reports an unknown copy, book, member, request or rule id.
type NotFoundError struct {
	Entity string
	ID     string
}

func NewNotFoundError(entity string, id string) NotFoundError {
	return NotFoundError{Entity: entity, ID: id}
}

func (e NotFoundError) Error() string {
	return fmt.Sprintf("%s %q not found", e.Entity, e.ID)
}

func (e NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// InvalidStateError reports that an entity is not in the status an operation requires.
type InvalidStateError struct {
	Entity string
	ID     string
	Reason string
}

func NewInvalidStateError(entity string, id string, reason string) InvalidStateError {
	return InvalidStateError{Entity: entity, ID: id, Reason: reason}
}

func (e InvalidStateError) Error() string {
	return fmt.Sprintf("%s %q: %s", e.Entity, e.ID, e.Reason)
}

func (e InvalidStateError) Is(target error) bool {
	return target == ErrInvalidState
}

// ValidationError lists the required fields that were missing, or describes an invalid value.
type ValidationError struct {
	Missing []string
	Reason  string
}

// RequiredField is a named input value that must not be blank.
type RequiredField struct {
	Name  string
	Value string
}

// Required builds a RequiredField.
func Required(name string, value string) RequiredField {
	return RequiredField{Name: name, Value: value}
}

// RequireFields returns a ValidationError listing every blank field, in the given order, or nil.
func RequireFields(fields ...RequiredField) error {
	missing := make([]string, 0)

	for _, field := range fields {
		if strings.TrimSpace(field.Value) == "" {
			missing = append(missing, field.Name)
		}
	}

	if len(missing) == 0 {
		return nil
	}

	return ValidationError{Missing: missing}
}

func NewInvalidValueError(reason string) ValidationError {
	return ValidationError{Reason: reason}
}

func (e ValidationError) Error() string {
	if len(e.Missing) > 0 {
		return "missing required field(s): " + strings.Join(e.Missing, ", ")
	}

	return "invalid input: " + e.Reason
}

func (e ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// ConflictError reports a duplicate unique key.
type ConflictError struct {
	Entity string
	Key    string
	Value  string
}

func NewConflictError(entity string, key string, value string) ConflictError {
	return ConflictError{Entity: entity, Key: key, Value: value}
}

func (e ConflictError) Error() string {
	return fmt.Sprintf("%s with %s %q already exists", e.Entity, e.Key, e.Value)
}

func (e ConflictError) Is(target error) bool {
	return target == ErrConflict
}
