// Package app holds the application services and business logic.
package app

import "errors"

// Validation failure kinds reported to the HTTP boundary.
const (
	KindMissingFields = "MISSING_REQUIRED_FIELDS"
	KindUserNotFound  = "USER_NOT_FOUND"
	KindInvalidWeight = "INVALID_WEIGHT"
	KindInvalidHeight = "INVALID_HEIGHT"
	KindInvalidBMI    = "INVALID_BMI"
	KindInvalidDate   = "INVALID_DATE_FORMAT"
	KindFutureDate    = "FUTURE_DATE_NOT_ALLOWED"
	KindEntryFailed   = "WEIGHT_ENTRY_FAILED"
)

// ValidationError is a rejected submission tagged with a machine-readable
// kind, so the HTTP layer can map it onto the response envelope without
// string matching.
type ValidationError struct {
	Kind    string
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

func invalid(kind, message string) *ValidationError {
	return &ValidationError{Kind: kind, Message: message}
}

var (
	// ErrInvalidCredentials indicates that the provided username or password was incorrect.
	ErrInvalidCredentials = errors.New("invalid username or password")
	// ErrUsernameTaken indicates that the requested username already exists.
	ErrUsernameTaken = errors.New("username already taken")
	// ErrSessionNotFound indicates that the requested session does not exist.
	ErrSessionNotFound = errors.New("session not found")
	// ErrSessionExpired indicates that the session has expired.
	ErrSessionExpired = errors.New("session expired")
	// ErrUserNotFound indicates that the user does not exist.
	ErrUserNotFound = errors.New("user not found")
)
