package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors for the registration and query workflows.
var (
	ErrNotFound              = errors.New("not found")
	ErrEventNotFound         = fmt.Errorf("event %w", ErrNotFound)
	ErrCapacityExceeded      = errors.New("event capacity full")
	ErrDuplicateRegistration = errors.New("duplicate registration")
	ErrInvalidInput          = errors.New("invalid input")
)

// PersistenceError reports a storage failure that is not one of the business-rule errors.
// Op names the workflow step that failed; Err is the underlying driver error.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}

// NewPersistenceError wraps err as a *PersistenceError for op.
func NewPersistenceError(op string, err error) error {
	return &PersistenceError{Op: op, Err: err}
}
