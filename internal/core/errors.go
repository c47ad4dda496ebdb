package core

import (
	"errors"
	"fmt"
)

// Validation reason sentinels. They are always wrapped in a ValidationError
// so callers can match either the class or the specific reason.
var (
	ErrEmptyDescription = errors.New("empty description")
	ErrZeroAmount       = errors.New("amount must be non-zero")
	ErrInvalidAmount    = errors.New("invalid amount")
	ErrInvalidDate      = errors.New("invalid date")
	ErrDuplicateID      = errors.New("duplicate transaction id")
)

// ValidationError reports an input that violates a ledger invariant.
// The rejected operation leaves the store unchanged.
type ValidationError struct {
	Field  string
	Reason error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %v", e.Field, e.Reason)
}

func (e *ValidationError) Unwrap() error { return e.Reason }

// NotFoundError reports an edit or delete referencing an unknown id.
type NotFoundError struct {
	ID int64
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("transaction %d not found", e.ID)
}

// PersistenceError reports a failed write-through. The in-memory store
// remains authoritative; the caller should warn that changes may not
// survive a restart.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("persist %s: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }

// IsValidation reports whether err is (or wraps) a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// IsNotFound reports whether err is (or wraps) a NotFoundError.
func IsNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}

// IsPersistence reports whether err is (or wraps) a PersistenceError.
func IsPersistence(err error) bool {
	var pe *PersistenceError
	return errors.As(err, &pe)
}
