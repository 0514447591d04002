package apperror

import (
	"errors"
	"fmt"
	"net/http"
)

// Error is a typed domain error. The core raises these; the HTTP layer maps
// Code to a status without the core ever knowing about HTTP.
type Error struct {
	Code    string
	Message string
}

func (e *Error) Error() string { return e.Message }

// Sentinel domain errors. Compare with errors.Is; wrap with fmt.Errorf("%w").
var (
	ErrNotFound            = &Error{Code: "NOT_FOUND", Message: "resource not found"}
	ErrInsufficientStock   = &Error{Code: "INSUFFICIENT_STOCK", Message: "insufficient stock"}
	ErrOrderCreationFailed = &Error{Code: "ORDER_CREATION_FAILED", Message: "order could not be created"}
	ErrTotalMismatch       = &Error{Code: "TOTAL_MISMATCH", Message: "declared total does not match computed total"}
	ErrInvalidTransition   = &Error{Code: "INVALID_TRANSITION", Message: "order status transition not allowed"}
	ErrConflict            = &Error{Code: "CONFLICT", Message: "resource already exists"}
)

// Validation builds a VALIDATION error with a caller-supplied message.
func Validation(format string, args ...interface{}) *Error {
	return &Error{Code: "VALIDATION", Message: fmt.Sprintf(format, args...)}
}

// NotFoundf builds a NOT_FOUND error with context. errors.Is against
// ErrNotFound still matches via Is below.
func NotFoundf(format string, args ...interface{}) *Error {
	return &Error{Code: "NOT_FOUND", Message: fmt.Sprintf(format, args...)}
}

// Is makes all errors sharing a Code equivalent under errors.Is.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

// HTTPStatus maps an error to a response status. Unknown errors are 500.
func HTTPStatus(err error) int {
	var appErr *Error
	if !errors.As(err, &appErr) {
		return http.StatusInternalServerError
	}
	switch appErr.Code {
	case "VALIDATION", "TOTAL_MISMATCH", "INVALID_TRANSITION":
		return http.StatusBadRequest
	case "NOT_FOUND":
		return http.StatusNotFound
	case "CONFLICT":
		return http.StatusConflict
	case "INSUFFICIENT_STOCK":
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

// CodeOf extracts the error code, or INTERNAL for untyped errors.
func CodeOf(err error) string {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	return "INTERNAL"
}
