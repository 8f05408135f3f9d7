package utils

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrorKind classifies an application error independently of the transport
type ErrorKind string

const (
	InvalidArgument ErrorKind = "invalid_argument"
	NotFound        ErrorKind = "not_found"
	StorageFailure  ErrorKind = "storage_failure"
	Unauthorized    ErrorKind = "unauthorized"
)

// ErrNoData is returned when a partial update carries no fields
var ErrNoData = NewBadRequestError("No data")

// CustomError represents a custom application error
type CustomError struct {
	Kind    ErrorKind `json:"kind"`
	Code    int       `json:"code"`
	Message string    `json:"message"`
	Detail  string    `json:"detail,omitempty"`
	Err     error     `json:"-"`
}

func (e *CustomError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("%s: %s", e.Message, e.Detail)
	}
	return e.Message
}

func (e *CustomError) Unwrap() error {
	return e.Err
}

// Common error constructors
func NewBadRequestError(message string) *CustomError {
	return &CustomError{
		Kind:    InvalidArgument,
		Code:    http.StatusBadRequest,
		Message: message,
	}
}

func NewValidationError(detail string) *CustomError {
	return &CustomError{
		Kind:    InvalidArgument,
		Code:    http.StatusBadRequest,
		Message: "Validation failed",
		Detail:  detail,
	}
}

func NewNotFoundError(message string) *CustomError {
	return &CustomError{
		Kind:    NotFound,
		Code:    http.StatusNotFound,
		Message: message,
	}
}

func NewUnauthorizedError() *CustomError {
	return &CustomError{
		Kind:    Unauthorized,
		Code:    http.StatusUnauthorized,
		Message: "Unauthorized",
	}
}

// NewStorageError wraps a failure reported by the database. Constraint
// violations are the caller's fault and carry a 400 code.
func NewStorageError(err error, constraintViolation bool) *CustomError {
	code := http.StatusInternalServerError
	message := "Storage failure"
	if constraintViolation {
		code = http.StatusBadRequest
		message = "Constraint violation"
	}
	return &CustomError{
		Kind:    StorageFailure,
		Code:    code,
		Message: message,
		Detail:  err.Error(),
		Err:     err,
	}
}

// KindOf reports the kind of err, or StorageFailure for errors that are not
// a *CustomError.
func KindOf(err error) ErrorKind {
	var ce *CustomError
	if errors.As(err, &ce) {
		return ce.Kind
	}
	return StorageFailure
}

// IsKind reports whether err is a *CustomError of the given kind
func IsKind(err error, kind ErrorKind) bool {
	var ce *CustomError
	return errors.As(err, &ce) && ce.Kind == kind
}
