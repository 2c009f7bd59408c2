package errors

import (
	"errors"
	"fmt"
)

// ErrorCode classifies application errors.
type ErrorCode string

const (
	// Auth errors
	ErrCodeUnauthorized ErrorCode = "UNAUTHORIZED"
	ErrCodeInvalidToken ErrorCode = "INVALID_TOKEN"
	ErrCodeMissingToken ErrorCode = "MISSING_TOKEN"
	ErrCodeLoginFailed  ErrorCode = "LOGIN_FAILED"
	ErrCodeInvalidRole  ErrorCode = "INVALID_ROLE"

	// Backend errors
	ErrCodeBackend         ErrorCode = "BACKEND_ERROR"
	ErrCodeBackendNotFound ErrorCode = "BACKEND_NOT_FOUND"
	ErrCodeBackendStatus   ErrorCode = "BACKEND_BAD_STATUS"

	// Validation errors
	ErrCodeValidation    ErrorCode = "VALIDATION_ERROR"
	ErrCodeRequiredField ErrorCode = "REQUIRED_FIELD"
	ErrCodeInvalidFormat ErrorCode = "INVALID_FORMAT"

	// Business errors
	ErrCodeInvalidTransition ErrorCode = "INVALID_TRANSITION"
	ErrCodeNotHeld           ErrorCode = "RESERVATION_NOT_HELD"
	ErrCodeInvalidOperation  ErrorCode = "INVALID_OPERATION"
)

// AppError is the application error carrying a code and an optional cause.
type AppError struct {
	Code    ErrorCode
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NewAppError builds a new AppError.
func NewAppError(code ErrorCode, message string, err error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// IsAppError reports whether err is an AppError.
func IsAppError(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr)
}

// GetAppError extracts the AppError from err, or nil.
func GetAppError(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return nil
}

var (
	// Reservation errors
	ErrReservationNotFound  = errors.New("reservation not found")
	ErrReservationNotHeld   = errors.New("reservation is not held")
	ErrReservationApproved  = errors.New("reservation already approved")
	ErrReservationCancelled = errors.New("reservation already cancelled")

	// Object errors
	ErrObjectNotFound = errors.New("object not found")

	// Contract errors
	ErrContractNotFound = errors.New("contract not found")

	// Validation errors
	ErrInvalidInput    = errors.New("invalid input")
	ErrMissingRequired = errors.New("missing required field")
	ErrInvalidFormat   = errors.New("invalid format")
)
