package apperrors

import "errors"

// Common errors
var (
	// Resource errors
	ErrResourceNotFound = errors.New("resource not found")
	ErrConflict         = errors.New("conflict")

	// Authentication errors
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrTokenExpired       = errors.New("token expired")
	ErrTokenInvalid       = errors.New("invalid token")
	ErrUnauthorized       = errors.New("authentication required")

	// Authorization errors
	ErrPermissionDenied = errors.New("permission denied")

	// Validation errors
	ErrValidationFailed = errors.New("validation failed")
	ErrBadRequest       = errors.New("bad request")

	// Throttling
	ErrRateLimited = errors.New("too many requests")

	// User errors
	ErrUserNotFound       = errors.New("user not found")
	ErrEmailAlreadyExists = errors.New("email already registered")
)

// Club and membership errors
var (
	ErrClubNotFound       = errors.New("club not found or inactive")
	ErrMembershipNotFound = errors.New("membership request not found")
	ErrAlreadyMember      = errors.New("already a member")
	ErrRequestPending     = errors.New("membership request already pending")
)

// Event errors
var (
	ErrEventNotFound        = errors.New("event not found")
	ErrEventCancelled       = errors.New("event is cancelled")
	ErrEventCompleted       = errors.New("event has already ended")
	ErrEventFull            = errors.New("event is full")
	ErrAlreadyRegistered    = errors.New("already registered for this event")
	ErrRegistrationNotFound = errors.New("registration not found")
)

// Certificate errors
var (
	ErrCertificateNotFound = errors.New("certificate not found")
	ErrCertificateExists   = errors.New("certificate already issued")
	ErrNotAttended         = errors.New("registration is not marked as attended")
)

// One-time code errors
var (
	ErrCodeNotFound = errors.New("no verification code found")
	ErrCodeExpired  = errors.New("verification code expired")
	ErrCodeMismatch = errors.New("invalid verification code")
)

// CustomError represents application-specific errors with additional context
type CustomError struct {
	Err     error
	Message string
}

// Error implements error interface
func (e *CustomError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return "unknown error"
}

// Unwrap implements errors.Unwrap interface
func (e *CustomError) Unwrap() error {
	return e.Err
}

// NewResourceNotFoundError creates a not-found error with a message
func NewResourceNotFoundError(message string) error {
	return &CustomError{Err: ErrResourceNotFound, Message: message}
}

// NewConflictError creates a conflict error with a message
func NewConflictError(message string) error {
	return &CustomError{Err: ErrConflict, Message: message}
}

// NewForbiddenError creates a permission-denied error with a message
func NewForbiddenError(message string) error {
	return &CustomError{Err: ErrPermissionDenied, Message: message}
}

// NewBadRequestError creates a bad-request error with a message
func NewBadRequestError(message string) error {
	return &CustomError{Err: ErrBadRequest, Message: message}
}
