package domain

import "errors"

// Common domain errors used across the application.
var (
	// ErrValidation is returned when a domain entity fails validation.
	// This is often wrapped with a more specific error message.
	ErrValidation = errors.New("validation failed")

	// ErrInvalidID is returned when an ID is malformed or invalid.
	ErrInvalidID = errors.New("invalid ID")

	// ErrInvalidLogCategory is returned when a life log category is not
	// one of the known values.
	ErrInvalidLogCategory = errors.New("invalid log category")

	// ErrInvalidReminderStatus is returned when a reminder status is not valid.
	ErrInvalidReminderStatus = errors.New("invalid reminder status")

	// ErrInvalidOffsetUnit is returned when a remind-before unit is not valid.
	ErrInvalidOffsetUnit = errors.New("invalid remind-before unit")

	// ErrInvalidAssetType is returned when an asset type is not valid.
	ErrInvalidAssetType = errors.New("invalid asset type")

	// ErrInvalidAssetStatus is returned when an asset status is not valid.
	ErrInvalidAssetStatus = errors.New("invalid asset status")
)
