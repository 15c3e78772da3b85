package ledger

import (
	"errors"
	"fmt"
)

// Common errors
var (
	ErrValidation  = errors.New("invalid expense record")
	ErrNotFound    = errors.New("expense not found")
	ErrPersistence = errors.New("persistence failure")
)

// ValidationError describes why an expense record was rejected before it
// entered the ledger. It unwraps to ErrValidation.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid expense record: %s: %s", e.Field, e.Reason)
}

func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

// PersistenceError reports a store failure. The in-memory ledger state is
// still valid when it is returned; the affected record is flagged unsynced.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("persistence failure: %s: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return ErrPersistence
}
