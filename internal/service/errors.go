// Package service provides the application service owning all
// cross-entity operations on logs, reminders, and assets.
package service

import (
	"errors"
	"fmt"

	"github.com/phrazzld/nudge-api/internal/store"
)

// Common sentinel errors returned by the TrackerService. Callers check
// for these with errors.Is; the API layer maps them to HTTP status codes.
var (
	// ErrReminderNotFound indicates that the reminder does not exist.
	ErrReminderNotFound = errors.New("reminder not found")

	// ErrLogNotFound indicates that the life log does not exist.
	ErrLogNotFound = errors.New("log not found")

	// ErrAssetNotFound indicates that the asset does not exist.
	ErrAssetNotFound = errors.New("asset not found")
)

// TrackerServiceError wraps unexpected errors from the tracker service
// with operation context.
type TrackerServiceError struct {
	// Operation is the operation that failed (e.g., "log_event", "reorder_reminders")
	Operation string
	// Message is a human-readable description of the error
	Message string
	// Err is the underlying error that caused the failure
	Err error
}

// Error implements the error interface for TrackerServiceError.
func (e *TrackerServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("tracker service %s failed: %s: %v", e.Operation, e.Message, e.Err)
	}
	return fmt.Sprintf("tracker service %s failed: %s", e.Operation, e.Message)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *TrackerServiceError) Unwrap() error {
	return e.Err
}

// newServiceError wraps err with operation context, mapping store-level
// not-found sentinels to their service-level counterparts first so
// callers can test with errors.Is without knowing the storage layer.
func newServiceError(operation, message string, err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, store.ErrReminderNotFound):
		return ErrReminderNotFound
	case errors.Is(err, store.ErrLogNotFound):
		return ErrLogNotFound
	case errors.Is(err, store.ErrAssetNotFound):
		return ErrAssetNotFound
	}

	return &TrackerServiceError{
		Operation: operation,
		Message:   message,
		Err:       err,
	}
}
