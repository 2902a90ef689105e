package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// Common error types
var (
	ErrNotFound         = errors.New("resource not found")
	ErrBadRequest       = errors.New("bad request")
	ErrInternal         = errors.New("internal error")
	ErrValidation       = errors.New("validation error")
	ErrEmptyInput       = errors.New("empty input")
	ErrModelUnavailable = errors.New("model unavailable")
	ErrRemoteCall       = errors.New("remote call failed")
)

// AppError represents an application error with context
type AppError struct {
	Err        error             `json:"-"`
	Message    string            `json:"message"`
	Code       string            `json:"code"`
	HTTPStatus int               `json:"-"`
	Details    map[string]string `json:"details,omitempty"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NotFound creates a not found error
func NotFound(resource string, id string) *AppError {
	return &AppError{
		Err:        ErrNotFound,
		Message:    fmt.Sprintf("%s not found", resource),
		Code:       "NOT_FOUND",
		HTTPStatus: http.StatusNotFound,
		Details:    map[string]string{"resource": resource, "id": id},
	}
}

// BadRequest creates a bad request error
func BadRequest(message string) *AppError {
	return &AppError{
		Err:        ErrBadRequest,
		Message:    message,
		Code:       "BAD_REQUEST",
		HTTPStatus: http.StatusBadRequest,
	}
}

// EmptyInput signals blank symptom text. User-correctable, reported inline.
func EmptyInput() *AppError {
	return &AppError{
		Err:        ErrEmptyInput,
		Message:    "symptom description must not be empty",
		Code:       "EMPTY_INPUT",
		HTTPStatus: http.StatusBadRequest,
	}
}

// ModelUnavailable signals that classifier artifacts are missing or unloaded.
func ModelUnavailable(cause error) *AppError {
	return &AppError{
		Err:        errors.Join(ErrModelUnavailable, cause),
		Message:    "classification model is not available",
		Code:       "MODEL_UNAVAILABLE",
		HTTPStatus: http.StatusServiceUnavailable,
	}
}

// RemoteCall signals a failed call to the model-serving endpoint. The
// underlying cause is preserved; there is no automatic retry.
func RemoteCall(message string, cause error) *AppError {
	return &AppError{
		Err:        errors.Join(ErrRemoteCall, cause),
		Message:    message,
		Code:       "REMOTE_CALL_ERROR",
		HTTPStatus: http.StatusBadGateway,
	}
}

// Validation creates a validation error with field details
func Validation(message string, details map[string]string) *AppError {
	return &AppError{
		Err:        ErrValidation,
		Message:    message,
		Code:       "VALIDATION_ERROR",
		HTTPStatus: http.StatusBadRequest,
		Details:    details,
	}
}

// Internal creates an internal error
func Internal(err error) *AppError {
	return &AppError{
		Err:        err,
		Message:    "internal server error",
		Code:       "INTERNAL_ERROR",
		HTTPStatus: http.StatusInternalServerError,
	}
}

// Wrap wraps an error with additional context
func Wrap(err error, message string) *AppError {
	if appErr, ok := err.(*AppError); ok {
		appErr.Message = fmt.Sprintf("%s: %s", message, appErr.Message)
		return appErr
	}
	return &AppError{
		Err:        err,
		Message:    message,
		Code:       "INTERNAL_ERROR",
		HTTPStatus: http.StatusInternalServerError,
	}
}
