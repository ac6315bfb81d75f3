package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrorCode identifies a failure kind that callers can branch on.
type ErrorCode string

const (
	ErrCodeValidationFailed   ErrorCode = "VALIDATION_FAILED"
	ErrCodeConflict           ErrorCode = "CONFLICT"
	ErrCodeInvalidCredentials ErrorCode = "INVALID_CREDENTIALS"
	ErrCodeAccountLocked      ErrorCode = "ACCOUNT_LOCKED"
	ErrCodeInvalidResetToken  ErrorCode = "INVALID_RESET_TOKEN"
	ErrCodeTokenInvalid       ErrorCode = "TOKEN_INVALID"
	ErrCodeForbidden          ErrorCode = "FORBIDDEN"
	ErrCodeDeliveryFailed     ErrorCode = "DELIVERY_FAILED"
	ErrCodeNotFound           ErrorCode = "NOT_FOUND"
	ErrCodeInternal           ErrorCode = "INTERNAL_ERROR"
)

// Detail keys shared between the service and transport layers.
const (
	DetailRemainingSeconds  = "remaining_seconds"
	DetailAttemptsRemaining = "attempts_remaining"
	DetailField             = "field"
)

// Error represents a structured error with code, message, and optional details
type Error struct {
	Code    ErrorCode
	Message string
	Details map[string]interface{}
	Err     error
}

// Error implements the error interface
func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the wrapped error for errors.Is and errors.As
func (e *Error) Unwrap() error {
	return e.Err
}

// WithDetail adds a detail to the error
func (e *Error) WithDetail(key string, value interface{}) *Error {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// HTTPStatusCode returns the HTTP status the transport layer should use.
func (e *Error) HTTPStatusCode() int {
	return MapErrorCodeToHTTPStatus(e.Code)
}

// New creates a new Error with the given code and message
func New(code ErrorCode, message string) *Error {
	return &Error{
		Code:    code,
		Message: message,
	}
}

// Newf creates a new Error with formatted message
func Newf(code ErrorCode, format string, args ...interface{}) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// Wrap wraps an existing error with code and message
func Wrap(err error, code ErrorCode, message string) *Error {
	if err == nil {
		return nil
	}
	return &Error{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// IsCode checks if an error has a specific error code
func IsCode(err error, code ErrorCode) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Code == code
	}
	return false
}

// GetCode extracts the error code from an error.
// Returns ErrCodeInternal if the error is not a structured Error.
func GetCode(err error) ErrorCode {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ErrCodeInternal
}

// GetDetails extracts the details from an error, nil for plain errors.
func GetDetails(err error) map[string]interface{} {
	var e *Error
	if errors.As(err, &e) {
		return e.Details
	}
	return nil
}

// As is errors.As restricted to *Error.
func As(err error) (*Error, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e, true
	}
	return nil, false
}

// MapErrorCodeToHTTPStatus maps error codes to HTTP status codes
func MapErrorCodeToHTTPStatus(code ErrorCode) int {
	switch code {
	case ErrCodeValidationFailed, ErrCodeInvalidResetToken:
		return http.StatusBadRequest
	case ErrCodeInvalidCredentials, ErrCodeTokenInvalid:
		return http.StatusUnauthorized
	case ErrCodeForbidden:
		return http.StatusForbidden
	case ErrCodeNotFound:
		return http.StatusNotFound
	case ErrCodeConflict:
		return http.StatusConflict
	case ErrCodeAccountLocked:
		return http.StatusLocked
	case ErrCodeDeliveryFailed:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// ValidationFailed reports a rejected input field.
func ValidationFailed(field, message string) *Error {
	err := New(ErrCodeValidationFailed, message)
	if field != "" {
		err.WithDetail(DetailField, field)
	}
	return err
}

// Conflict reports an already taken unique value.
func Conflict(message string) *Error {
	return New(ErrCodeConflict, message)
}

// InvalidCredentials carries the attempts left before the account locks.
func InvalidCredentials(attemptsRemaining int) *Error {
	return Newf(ErrCodeInvalidCredentials, "Invalid email or password. %d attempts remaining.", attemptsRemaining).
		WithDetail(DetailAttemptsRemaining, attemptsRemaining)
}

// AccountLocked carries the whole seconds left on the lock.
func AccountLocked(message string, remainingSeconds int) *Error {
	return New(ErrCodeAccountLocked, message).WithDetail(DetailRemainingSeconds, remainingSeconds)
}

// InvalidResetToken is the single message for every reset token failure.
func InvalidResetToken() *Error {
	return New(ErrCodeInvalidResetToken, "Invalid or expired reset token.")
}

// TokenInvalid reports a bearer token that failed verification.
func TokenInvalid(err error) *Error {
	return Wrap(err, ErrCodeTokenInvalid, "Invalid or expired token.")
}

// Forbidden creates a "forbidden" error
func Forbidden(message string) *Error {
	return New(ErrCodeForbidden, message)
}

// DeliveryFailed wraps a mail transport failure.
func DeliveryFailed(err error) *Error {
	return Wrap(err, ErrCodeDeliveryFailed, "Failed to send email.")
}

// NotFound creates a "not found" error
func NotFound(message string) *Error {
	return New(ErrCodeNotFound, message)
}

// InternalWrap wraps an internal error
func InternalWrap(err error, message string) *Error {
	return Wrap(err, ErrCodeInternal, message)
}
