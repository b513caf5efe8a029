package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// Error represents a typed domain error with HTTP awareness.
type Error struct {
	Code    string   `json:"code"`
	Message string   `json:"message"`
	Status  int      `json:"status"`
	Details []string `json:"details,omitempty"`
	Err     error    `json:"-"`
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the wrapped error.
func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// New creates a new Error instance.
func New(code string, status int, message string) *Error {
	return &Error{Code: code, Status: status, Message: message}
}

// Wrap attaches context to an existing error.
func Wrap(err error, code string, status int, message string) *Error {
	return &Error{Code: code, Status: status, Message: message, Err: err}
}

// Predefined errors for common scenarios.
var (
	ErrUnauthorized    = New("UNAUTHORIZED", http.StatusUnauthorized, "Hiányzó jogosultsági fejléc")
	ErrValidation      = New("VALIDATION_ERROR", http.StatusBadRequest, "Érvénytelen kérés")
	ErrFileRequired    = New("FILE_REQUIRED", http.StatusBadRequest, "Nincs feltöltött fájl")
	ErrUnsupportedFile = New("UNSUPPORTED_FILE", http.StatusBadRequest, "Csak CSV fájl tölthető fel")
	ErrFileTooLarge    = New("FILE_TOO_LARGE", http.StatusRequestEntityTooLarge, "A feltöltött fájl túl nagy")
	ErrCSVParse        = New("CSV_PARSE_FAILED", http.StatusBadRequest, "CSV parsing failed")
	ErrInternal        = New("INTERNAL_ERROR", http.StatusInternalServerError, "Váratlan hiba történt a CSV feldolgozása során")
)

// FromError normalises any error into an *Error.
func FromError(err error) *Error {
	if err == nil {
		return nil
	}
	var e *Error
	if errors.As(err, &e) {
		return e
	}
	return Wrap(err, ErrInternal.Code, ErrInternal.Status, ErrInternal.Message)
}

// Clone returns a copy of the error allowing for message overrides.
func Clone(err *Error, message string) *Error {
	if err == nil {
		return nil
	}
	clone := *err
	if message != "" {
		clone.Message = message
	}
	return &clone
}

// WithDetails returns a copy of err carrying the given client-facing detail lines
// and the underlying cause.
func WithDetails(err *Error, cause error, details ...string) *Error {
	if err == nil {
		return nil
	}
	clone := *err
	clone.Err = cause
	clone.Details = append([]string(nil), details...)
	return &clone
}
