package errs

import (
	"net/http"
	"strings"
	"time"
)

// FieldError represents a field-level validation error.
// Example:
//
//	{ "field": "suit", "error": "suit is required and must be a non-empty string" }
type FieldError struct {
	// Field is the field name/key the error relates to (e.g. "suit").
	Field string `json:"field"`

	// Error is the human-readable error message.
	Error string `json:"error"`
}

// HTTPError is the main custom error type for API responses.
//
// It implements the `error` interface via Error().
// Fields:
//   - Code: machine-friendly error code (e.g. "BAD_REQUEST").
//   - Message: human-friendly message.
//   - Status: HTTP status code.
//   - Override: the message is internal detail and gets replaced by a
//     generic one in production.
//   - Errors: list of per-field errors (validation).
type HTTPError struct {
	Code     string `json:"code"`
	Message  string `json:"message"`
	Status   int    `json:"status"`
	Override bool   `json:"override"`

	// Errors holds field-level validation errors.
	Errors []FieldError `json:"errors"`
}

// Error makes *HTTPError satisfy the built-in `error` interface.
func (e *HTTPError) Error() string {
	return e.Message
}

// Is customizes how errors.Is(...) treats HTTPError.
//
// It only checks whether the other thing is the same *type* (*HTTPError),
// it does NOT compare Code/Status.
func (e *HTTPError) Is(target error) bool {
	_, ok := target.(*HTTPError)

	return ok
}

// WithMessage returns a *copy* of this HTTPError with Message replaced.
func (e *HTTPError) WithMessage(message string) *HTTPError {
	return &HTTPError{
		Code:     e.Code,
		Message:  message,
		Status:   e.Status,
		Override: e.Override,
		Errors:   e.Errors,
	}
}

// Response converts the error into the JSON body written to clients.
func (e *HTTPError) Response(now time.Time) Response {
	return Response{
		Error:     http.StatusText(e.Status),
		Code:      e.Code,
		Message:   e.Message,
		Status:    e.Status,
		Errors:    e.Errors,
		Timestamp: now.UTC(),
	}
}

// Response is the error body every failed request receives.
//
//	{ "error": "Not Found", "code": "NOT_FOUND", "message": "...", "status": 404, "timestamp": "..." }
type Response struct {
	Error     string       `json:"error"`
	Code      string       `json:"code"`
	Message   string       `json:"message"`
	Status    int          `json:"status"`
	Errors    []FieldError `json:"errors,omitempty"`
	Timestamp time.Time    `json:"timestamp"`
}

// MakeUpperCaseWithUnderscores converts a string into an UPPER_CASE_WITH_UNDERSCORES format.
//
// Example:
//
//	"Bad Request" -> "BAD_REQUEST"
func MakeUpperCaseWithUnderscores(str string) string {
	return strings.ToUpper(strings.ReplaceAll(str, " ", "_"))
}
