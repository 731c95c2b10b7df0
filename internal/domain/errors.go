package domain

import "errors"

// Store errors.
var (
	// ErrUserNotFound is returned by store lookups when no live row
	// matches. Activities translate it into a structured "not found"
	// value rather than propagating it.
	ErrUserNotFound = errors.New("user not found")

	// ErrDuplicateUser is returned by the store when an insert hits a
	// uniqueness constraint. It marks the race window between the
	// duplicate pre-check and the insert and must surface as a 409
	// business outcome, never as an infrastructure failure.
	ErrDuplicateUser = errors.New("duplicate user")
)

// Validation errors. These are business outcomes (400) and are rejected
// at the dispatch boundary before any workflow is submitted.
var (
	ErrMissingName   = errors.New("name is required")
	ErrInvalidEmail  = errors.New("email is invalid")
	ErrInvalidMobile = errors.New("mobile must be 7-15 digits")
	ErrEmptyUpdate   = errors.New("update names no fields")
)

// Application error types attached to Temporal errors. Workflows use
// these tags to reclassify specific activity failures as business
// outcomes instead of letting the retry machinery handle them.
const (
	// ErrTypeDuplicateUser tags the non-retryable error raised when a
	// create hits the store's uniqueness constraint.
	ErrTypeDuplicateUser = "DuplicateUser"

	// ErrTypeValidation tags non-retryable input validation failures.
	ErrTypeValidation = "Validation"
)
