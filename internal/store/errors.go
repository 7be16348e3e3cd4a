package store

import (
	"errors"
	"fmt"
)

// Common store errors used across all store implementations.
var (
	// ErrNotFound is returned when a requested entity does not exist in
	// the store. This is the generic version of the entity-specific
	// not-found errors below.
	ErrNotFound = errors.New("entity not found")

	// ErrInvalidEntity is returned when an entity fails validation before
	// being stored. Check the wrapped error for specific details.
	ErrInvalidEntity = errors.New("invalid entity")

	// Entity-specific "not found" errors

	// ErrLogNotFound indicates that the requested life log does not exist.
	ErrLogNotFound = fmt.Errorf("%w: log", ErrNotFound)

	// ErrReminderNotFound indicates that the requested reminder does not exist.
	ErrReminderNotFound = fmt.Errorf("%w: reminder", ErrNotFound)

	// ErrAssetNotFound indicates that the requested asset does not exist.
	ErrAssetNotFound = fmt.Errorf("%w: asset", ErrNotFound)
)

// IsNotFoundError checks if the error is any kind of "not found" error.
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// StoreError is a custom error type for store-specific failures with
// additional context. It wraps the original storage error and is never
// silently swallowed; callers unwrap with errors.Is/errors.As.
type StoreError struct {
	Entity    string // The entity type (e.g., "reminder", "asset")
	Operation string // The operation that failed (e.g., "save", "reorder")
	Message   string // Error message
	Err       error  // Original error
}

// Error implements the error interface for StoreError.
func (e *StoreError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s operation on %s failed: %s: %v",
			e.Operation, e.Entity, e.Message, e.Err)
	}
	return fmt.Sprintf("%s operation on %s failed: %s", e.Operation, e.Entity, e.Message)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *StoreError) Unwrap() error {
	return e.Err
}

// NewStoreError creates a new StoreError with the given entity, operation,
// message, and wrapped error.
func NewStoreError(entity, operation, message string, err error) *StoreError {
	return &StoreError{
		Entity:    entity,
		Operation: operation,
		Message:   message,
		Err:       err,
	}
}
