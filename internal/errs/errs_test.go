package errs

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
	"time"
)

func TestValidationErrorJoinsMessages(t *testing.T) {
	err := ValidationError([]FieldError{
		{Field: "suit", Error: "suit is required and must be a non-empty string"},
		{Field: "value", Error: "value is required and must be a non-empty string"},
	})

	want := "suit is required and must be a non-empty string; value is required and must be a non-empty string"
	if err.Message != want {
		t.Fatalf("expected message %q, got %q", want, err.Message)
	}
	if err.Status != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", err.Status)
	}
	if err.Code != "BAD_REQUEST" {
		t.Fatalf("expected code BAD_REQUEST, got %q", err.Code)
	}
	if len(err.Errors) != 2 {
		t.Fatalf("expected 2 field errors, got %d", len(err.Errors))
	}
}

func TestHTTPErrorMatchesThroughWrapping(t *testing.T) {
	wrapped := fmt.Errorf("lookup: %w", CardNotFoundError(7))

	var httpErr *HTTPError
	if !errors.As(wrapped, &httpErr) {
		t.Fatal("expected errors.As to find the HTTPError")
	}
	if httpErr.Status != http.StatusNotFound {
		t.Fatalf("expected status 404, got %d", httpErr.Status)
	}
	if httpErr.Message != "Card with ID 7 does not exist" {
		t.Fatalf("unexpected message %q", httpErr.Message)
	}
	if !errors.Is(wrapped, &HTTPError{}) {
		t.Fatal("expected errors.Is to match any *HTTPError")
	}
}

func TestResponseCarriesStatusTextAndTimestamp(t *testing.T) {
	now := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	resp := RouteNotFoundError(http.MethodGet, "/nope").Response(now)

	if resp.Error != "Not Found" {
		t.Errorf("expected error 'Not Found', got %q", resp.Error)
	}
	if resp.Message != "The requested endpoint GET /nope does not exist" {
		t.Errorf("unexpected message %q", resp.Message)
	}
	if !resp.Timestamp.Equal(now) {
		t.Errorf("expected timestamp %v, got %v", now, resp.Timestamp)
	}
}

func TestNewHTTPErrorCode(t *testing.T) {
	err := NewHTTPError(http.StatusRequestEntityTooLarge, "payload too large")
	if err.Code != "REQUEST_ENTITY_TOO_LARGE" {
		t.Fatalf("expected code REQUEST_ENTITY_TOO_LARGE, got %q", err.Code)
	}
	if !NewInternalServerError("boom").Override {
		t.Fatal("expected internal errors to be overridable")
	}
}
