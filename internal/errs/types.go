package errs

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"
)

// NewHTTPError creates an HTTPError whose code derives from the status text.
//
// http.StatusText(413) => "Request Entity Too Large" => "REQUEST_ENTITY_TOO_LARGE"
func NewHTTPError(status int, message string) *HTTPError {
	return &HTTPError{
		Code:    MakeUpperCaseWithUnderscores(http.StatusText(status)),
		Message: message,
		Status:  status,
	}
}

// NewBadRequestError creates a 400 Bad Request HTTPError.
//
// This supports extra payload:
//   - code: optional custom code string (if nil, defaults to "BAD_REQUEST")
//   - errors: optional slice of field errors (validation errors)
func NewBadRequestError(message string, override bool, code *string, errors []FieldError) *HTTPError {
	formattedCode := MakeUpperCaseWithUnderscores(http.StatusText(http.StatusBadRequest))

	// Note: this assumes the caller already formatted it the way they want.
	if code != nil {
		formattedCode = *code
	}

	return &HTTPError{
		Code:     formattedCode,
		Message:  message,
		Status:   http.StatusBadRequest,
		Override: override,
		Errors:   errors,
	}
}

// NewNotFoundError creates a 404 Not Found HTTPError.
func NewNotFoundError(message string, override bool, code *string) *HTTPError {
	formattedCode := MakeUpperCaseWithUnderscores(http.StatusText(http.StatusNotFound))

	if code != nil {
		formattedCode = *code
	}

	return &HTTPError{
		Code:     formattedCode,
		Message:  message,
		Status:   http.StatusNotFound,
		Override: override,
	}
}

// NewInternalServerError creates a 500 Internal Server Error HTTPError.
//
// message carries the real failure. Override is set so the global error
// handler swaps it for a generic message in production.
func NewInternalServerError(message string) *HTTPError {
	return &HTTPError{
		Code:     MakeUpperCaseWithUnderscores(http.StatusText(http.StatusInternalServerError)),
		Message:  message,
		Status:   http.StatusInternalServerError,
		Override: true,
	}
}

// NewTooManyRequestsError creates a 429 Too Many Requests HTTPError.
func NewTooManyRequestsError(message string) *HTTPError {
	return NewHTTPError(http.StatusTooManyRequests, message)
}

// ValidationError converts a list of field errors into a 400 Bad Request
// HTTPError. The message is every field message joined with "; ".
func ValidationError(fieldErrors []FieldError) *HTTPError {
	messages := make([]string, 0, len(fieldErrors))
	for _, fe := range fieldErrors {
		messages = append(messages, fe.Error)
	}

	return NewBadRequestError(strings.Join(messages, "; "), false, nil, fieldErrors)
}

// CardNotFoundError is the 404 returned for an unknown card id.
func CardNotFoundError(id int64) *HTTPError {
	return UnknownCardIDError(strconv.FormatInt(id, 10))
}

// UnknownCardIDError is CardNotFoundError for an id given as raw text.
func UnknownCardIDError(id string) *HTTPError {
	code := "CARD_NOT_FOUND"
	return NewNotFoundError(fmt.Sprintf("Card with ID %s does not exist", id), false, &code)
}

// RouteNotFoundError is the 404 returned for an unmatched method/path.
func RouteNotFoundError(method, path string) *HTTPError {
	code := "ROUTE_NOT_FOUND"
	return NewNotFoundError(fmt.Sprintf("The requested endpoint %s %s does not exist", method, path), false, &code)
}
