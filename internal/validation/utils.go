// Package validation contains the logic for validating
// request data.
//
// It uses the `validator` library to enforce rules (like
// numeric ranges) and extracts validation errors into a
// format the client can understand
package validation

import (
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"strings"

	"github.com/deppfellow/card-collection-api/internal/errs"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

// Validatable is implemented by request payload types that know how to validate themselves.
//
// Typical pattern:
// - Define a request struct with the raw (string) inputs
// - Implement Validate() error that runs the validators of this package
// - Return CustomValidationErrors (or validator.ValidationErrors)
type Validatable interface {
	Validate() error
}

// CustomValidationError represents a single validation issue for a specific field.
type CustomValidationError struct {
	Field   string
	Message string
}

// CustomValidationErrors is a slice of custom validation errors that satisfies error.
type CustomValidationErrors []CustomValidationError

func (c CustomValidationErrors) Error() string {
	messages := make([]string, 0, len(c))
	for _, e := range c {
		messages = append(messages, e.Message)
	}
	return strings.Join(messages, "; ")
}

// BindAndValidate binds request data into payload and validates it.
//
// Flow:
// 1) c.Bind(payload) populates request struct from path params, query and body.
// 2) payload.Validate() applies validation rules.
// 3) Returns *errs.HTTPError (400) with field-level errors if validation fails.
//
// A body in any media type other than JSON is ignored and the payload is
// validated as if no body was sent.
//
// NOTE: c.Bind expects a pointer to a struct.
func BindAndValidate(c echo.Context, payload Validatable) error {
	if err := c.Bind(payload); err != nil && !isUnsupportedMediaType(err) {
		return bindError(err)
	}

	return AsHTTPError(payload.Validate())
}

// AsHTTPError converts an error from a Validate method into the 400
// HTTPError written to clients. A nil error stays nil and an error that
// is already an HTTPError keeps its status.
func AsHTTPError(err error) error {
	if err == nil {
		return nil
	}

	var httpErr *errs.HTTPError
	if errors.As(err, &httpErr) {
		return httpErr
	}
	return errs.ValidationError(extractValidationError(err))
}

// isUnsupportedMediaType reports echo's rejection of a non-JSON body.
// Path params are already bound when echo gives up on the body.
func isUnsupportedMediaType(err error) bool {
	var echoErr *echo.HTTPError
	return errors.As(err, &echoErr) && echoErr.Code == http.StatusUnsupportedMediaType
}

// bindError keeps echo's own status for anything but a bad request and
// turns malformed JSON into a plain 400. A body cut off by the body
// limit middleware surfaces as a decode failure wrapping a 413.
func bindError(err error) error {
	if errors.Is(err, echo.ErrStatusRequestEntityTooLarge) {
		return echo.ErrStatusRequestEntityTooLarge
	}

	var echoErr *echo.HTTPError
	if errors.As(err, &echoErr) && echoErr.Code != http.StatusBadRequest {
		return echoErr
	}
	return errs.NewBadRequestError("Request body must be valid JSON", false, nil, nil)
}

func extractValidationError(err error) []errs.FieldError {
	var fieldErrors []errs.FieldError

	var customValidationErrors CustomValidationErrors
	if errors.As(err, &customValidationErrors) {
		for _, e := range customValidationErrors {
			fieldErrors = append(fieldErrors, errs.FieldError{
				Field: e.Field,
				Error: e.Message,
			})
		}
		return fieldErrors
	}

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return []errs.FieldError{{Field: "request", Error: err.Error()}}
	}

	// Convert validator.ValidationErrors into user-friendly messages.
	for _, fe := range validationErrors {
		field := strings.ToLower(fe.Field())

		fieldErrors = append(fieldErrors, errs.FieldError{
			Field: field,
			Error: field + " " + tagMessage(fe),
		})
	}

	return fieldErrors
}

func tagMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"

	case "min":
		// min tag means:
		// - for strings: minimum length
		// - for numbers: minimum value
		if fe.Type().Kind() == reflect.String {
			return fmt.Sprintf("must be at least %s characters", fe.Param())
		}
		return fmt.Sprintf("must be at least %s", fe.Param())

	case "max":
		if fe.Type().Kind() == reflect.String {
			return fmt.Sprintf("must not exceed %s characters", fe.Param())
		}
		return fmt.Sprintf("must not exceed %s", fe.Param())

	case "gt":
		return fmt.Sprintf("must be greater than %s", fe.Param())

	default:
		if fe.Param() != "" {
			return fmt.Sprintf("%s:%s", fe.Tag(), fe.Param())
		}
		return fe.Tag()
	}
}
