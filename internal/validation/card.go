package validation

import (
	"bytes"
	"encoding/json"
	"errors"
	"math"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
)

const (
	// DefaultPage and DefaultLimit apply when the query omits them.
	DefaultPage  = 1
	DefaultLimit = 10

	// MaxLimit is the largest page size a client may request.
	MaxLimit = 100
)

// CardFieldNames lists the writable card fields in reporting order.
var CardFieldNames = []string{"suit", "value", "collection"}

var validate = validator.New()

// Result is the outcome of a multi-field validator.
//
// Validators never fail hard: callers branch on Valid and report Errors.
type Result struct {
	Valid  bool
	Errors CustomValidationErrors
}

// Messages returns the human-readable messages in order.
func (r Result) Messages() []string {
	messages := make([]string, 0, len(r.Errors))
	for _, e := range r.Errors {
		messages = append(messages, e.Message)
	}
	return messages
}

func newResult(errors CustomValidationErrors) Result {
	return Result{Valid: len(errors) == 0, Errors: errors}
}

// IDResult is the outcome of ValidateCardID: a single message at most.
type IDResult struct {
	Valid bool
	Error string

	// Unknown marks a positive id too large to be any stored card's.
	Unknown bool
}

// CardData holds the raw members of a card JSON body.
//
// Members are kept as raw JSON so a non-string value is reported against
// its own field instead of failing the whole decode.
type CardData struct {
	Fields    map[string]json.RawMessage
	NotObject bool
}

// UnmarshalJSON accepts any JSON document; anything but an object is
// flagged so validation can reject it with a readable message.
func (d *CardData) UnmarshalJSON(data []byte) error {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil || fields == nil {
		d.Fields = nil
		d.NotObject = true
		return nil
	}

	d.Fields = fields
	d.NotObject = false
	return nil
}

// Has reports whether the body supplied field at all (null included).
func (d CardData) Has(field string) bool {
	_, ok := d.Fields[field]
	return ok
}

// StringValue returns the trimmed string value of field. ok is false when the
// field is absent or not a JSON string.
func (d CardData) StringValue(field string) (value string, ok bool) {
	raw, present := d.Fields[field]
	if !present {
		return "", false
	}

	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || raw[0] != '"' {
		return "", false
	}

	if err := json.Unmarshal(raw, &value); err != nil {
		return "", false
	}

	return strings.TrimSpace(value), true
}

// ValidateCardData checks the shape of a card payload.
//
// On creation every field must be present, a string and non-blank after
// trimming. On update only supplied fields are checked, with the same rule.
func ValidateCardData(data CardData, isCreation bool) Result {
	if data.NotObject {
		return newResult(CustomValidationErrors{{
			Field:   "body",
			Message: "Card data must be a valid object",
		}})
	}

	var errors CustomValidationErrors
	for _, field := range CardFieldNames {
		if !isCreation && !data.Has(field) {
			continue
		}

		if value, ok := data.StringValue(field); ok && value != "" {
			continue
		}

		message := field + " must be a non-empty string"
		if isCreation {
			message = field + " is required and must be a non-empty string"
		}

		errors = append(errors, CustomValidationError{Field: field, Message: message})
	}

	return newResult(errors)
}

// PageParams are the parsed pagination inputs.
type PageParams struct {
	Page  int
	Limit int
}

// ValidatePaginationParams parses and range-checks the raw page and limit
// query values. Empty values take DefaultPage and DefaultLimit.
func ValidatePaginationParams(page, limit string) (PageParams, Result) {
	params := PageParams{Page: DefaultPage, Limit: DefaultLimit}
	var errors CustomValidationErrors

	if p, ok := parsePage(page); !ok || validate.Var(p, "min=1") != nil {
		errors = append(errors, CustomValidationError{
			Field:   "page",
			Message: "page must be a positive integer",
		})
	} else {
		params.Page = p
	}

	if l, ok := parseQueryInt(limit, DefaultLimit); !ok || validate.Var(l, "min=1,max="+strconv.Itoa(MaxLimit)) != nil {
		errors = append(errors, CustomValidationError{
			Field:   "limit",
			Message: "limit must be a positive integer between 1 and 100",
		})
	} else {
		params.Limit = l
	}

	return params, newResult(errors)
}

// parsePage is parseQueryInt, except that a positive page too large for
// int saturates to math.MaxInt and is later clamped to the last page.
func parsePage(raw string) (int, bool) {
	p, ok := parseQueryInt(raw, DefaultPage)
	if !ok && isPositiveOverflow(raw) {
		return math.MaxInt, true
	}
	return p, ok
}

// isPositiveOverflow reports whether raw is an unsigned decimal integer
// that does not fit in 64 bits.
func isPositiveOverflow(raw string) bool {
	raw = strings.TrimSpace(raw)
	if strings.HasPrefix(raw, "-") {
		return false
	}

	_, err := strconv.ParseInt(raw, 10, 64)
	return errors.Is(err, strconv.ErrRange)
}

func parseQueryInt(raw string, fallback int) (int, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return fallback, true
	}

	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false
	}

	return n, true
}

// ValidateCardID parses a path id into a positive integer.
func ValidateCardID(raw string) (int64, IDResult) {
	raw = strings.TrimSpace(raw)

	id, err := strconv.ParseInt(raw, 10, 64)
	if errors.Is(err, strconv.ErrRange) && !strings.HasPrefix(raw, "-") {
		return 0, IDResult{Valid: false, Unknown: true}
	}
	if err != nil || validate.Var(id, "gt=0") != nil {
		return 0, IDResult{Valid: false, Error: "Card ID must be a positive number"}
	}

	return id, IDResult{Valid: true}
}
