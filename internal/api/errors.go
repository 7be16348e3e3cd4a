package api

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/phrazzld/nudge-api/internal/api/shared"
	"github.com/phrazzld/nudge-api/internal/domain"
	"github.com/phrazzld/nudge-api/internal/service"
	"github.com/phrazzld/nudge-api/internal/store"
)

// MapErrorToStatusCode maps internal errors to appropriate HTTP status codes
// based on the error type. This prevents leaking internal error types or
// messages to clients.
func MapErrorToStatusCode(err error) int {
	switch {
	// Not found errors
	case errors.Is(err, service.ErrLogNotFound),
		errors.Is(err, service.ErrReminderNotFound),
		errors.Is(err, service.ErrAssetNotFound),
		errors.Is(err, store.ErrNotFound):
		return http.StatusNotFound

	// Bad request errors
	case errors.Is(err, domain.ErrValidation),
		errors.Is(err, domain.ErrInvalidID),
		errors.Is(err, domain.ErrInvalidLogCategory),
		errors.Is(err, domain.ErrInvalidReminderStatus),
		errors.Is(err, domain.ErrInvalidOffsetUnit),
		errors.Is(err, domain.ErrInvalidAssetType),
		errors.Is(err, domain.ErrInvalidAssetStatus),
		errors.Is(err, store.ErrInvalidEntity):
		return http.StatusBadRequest

	// Default: internal server error
	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns a sanitized, user-friendly error message
// based on the error type. This prevents leaking sensitive internal details.
func GetSafeErrorMessage(err error) string {
	if err == nil {
		return "An unexpected error occurred"
	}

	switch {
	case errors.Is(err, service.ErrLogNotFound):
		return "Log not found"

	case errors.Is(err, service.ErrReminderNotFound):
		return "Reminder not found"

	case errors.Is(err, service.ErrAssetNotFound):
		return "Asset not found"

	case errors.Is(err, store.ErrNotFound):
		return "Not found"

	case errors.Is(err, domain.ErrInvalidLogCategory):
		return "Invalid log category"

	case errors.Is(err, domain.ErrInvalidReminderStatus):
		return "Invalid reminder status"

	case errors.Is(err, domain.ErrInvalidOffsetUnit):
		return "Invalid remind-before unit"

	case errors.Is(err, domain.ErrInvalidAssetType):
		return "Invalid asset type"

	case errors.Is(err, domain.ErrInvalidAssetStatus):
		return "Invalid asset status"

	case errors.Is(err, domain.ErrValidation),
		errors.Is(err, domain.ErrInvalidID),
		errors.Is(err, store.ErrInvalidEntity):
		return "Invalid entity data"

	default:
		return "An unexpected error occurred"
	}
}

// HandleAPIError maps an error to a status code and safe message and
// writes the error response. An empty userMessage falls back to the
// mapped safe message.
func HandleAPIError(w http.ResponseWriter, r *http.Request, err error, userMessage string) {
	status := MapErrorToStatusCode(err)
	if userMessage == "" {
		userMessage = GetSafeErrorMessage(err)
	}
	shared.RespondWithErrorAndLog(w, r, status, userMessage, err)
}

// SanitizeValidationError removes sensitive details from validation errors
// and returns a user-friendly message.
func SanitizeValidationError(err error) string {
	errMsg := err.Error()

	// Example format: "Key: 'CreateNudgeRequest.Title' Error:Field
	// validation for 'Title' failed on the 'required' tag"
	if strings.Contains(errMsg, "Field validation") {
		parts := strings.Split(errMsg, "Error:")
		if len(parts) >= 2 {
			fieldParts := strings.Split(parts[1], "'")
			if len(fieldParts) >= 3 {
				field := fieldParts[1]
				var tag string
				if len(fieldParts) >= 5 {
					tag = fieldParts[3]
				}
				if tag != "" {
					return fmt.Sprintf("Invalid %s: %s", field, getValidationTagMessage(tag))
				}
				return fmt.Sprintf("Invalid %s", field)
			}
		}
	}

	return "Validation error"
}

// getValidationTagMessage maps validation tags to user-friendly error messages
func getValidationTagMessage(tag string) string {
	switch tag {
	case "required":
		return "required field"
	case "min":
		return "too short"
	case "max":
		return "too long"
	case "oneof":
		return "invalid value"
	case "gte":
		return "too small"
	default:
		return "validation failed"
	}
}
