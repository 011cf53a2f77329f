package middleware

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/deppfellow/card-collection-api/internal/config"
	"github.com/deppfellow/card-collection-api/internal/errs"
	"github.com/deppfellow/card-collection-api/internal/server"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/pkgerrors"
)

type errorBody struct {
	Error     string            `json:"error"`
	Code      string            `json:"code"`
	Message   string            `json:"message"`
	Status    int               `json:"status"`
	Errors    []errs.FieldError `json:"errors"`
	Timestamp string            `json:"timestamp"`
}

func newTestServer(t *testing.T, env string, buf *bytes.Buffer) *server.Server {
	t.Helper()

	log := zerolog.New(buf)
	cfg := &config.Config{
		Primary: config.Primary{Env: env},
		Server: config.ServerConfig{
			CORSAllowedOrigins: []string{"*"},
			BodyLimit:          "1K",
		},
	}

	s, err := server.New(cfg, &log, nil)
	if err != nil {
		t.Fatalf("server.New: %v", err)
	}
	return s
}

func newTestEcho(s *server.Server) *echo.Echo {
	m := NewMiddlewares(s)

	e := echo.New()
	e.HTTPErrorHandler = m.Global.GlobalErrorHandler
	e.Use(RequestID())
	e.Use(m.ContextEnhancer.EnhanceContext())
	e.Use(m.Global.Recover())
	e.Use(m.Global.BodyLimit())
	return e
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) errorBody {
	t.Helper()

	var body errorBody
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode error body %q: %v", rec.Body.String(), err)
	}
	return body
}

func TestGlobalErrorHandlerHTTPError(t *testing.T) {
	e := newTestEcho(newTestServer(t, "development", &bytes.Buffer{}))
	e.GET("/cards/:id", func(c echo.Context) error {
		return errs.CardNotFoundError(42)
	})

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/cards/42", nil))

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}

	body := decodeError(t, rec)
	if body.Error != "Not Found" || body.Code != "CARD_NOT_FOUND" {
		t.Errorf("unexpected body %+v", body)
	}
	if body.Message != "Card with ID 42 does not exist" {
		t.Errorf("unexpected message %q", body.Message)
	}
	if body.Timestamp == "" {
		t.Error("expected a timestamp")
	}
}

func TestGlobalErrorHandlerUnknownRoute(t *testing.T) {
	e := newTestEcho(newTestServer(t, "development", &bytes.Buffer{}))
	e.GET("/cards", func(c echo.Context) error { return c.NoContent(http.StatusOK) })

	tests := []struct {
		method string
		path   string
	}{
		{http.MethodGet, "/nope"},
		{http.MethodPatch, "/cards"},
	}

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			rec := httptest.NewRecorder()
			e.ServeHTTP(rec, httptest.NewRequest(tt.method, tt.path, nil))

			if rec.Code != http.StatusNotFound {
				t.Fatalf("expected 404, got %d", rec.Code)
			}

			body := decodeError(t, rec)
			want := "The requested endpoint " + tt.method + " " + tt.path + " does not exist"
			if body.Message != want {
				t.Errorf("expected %q, got %q", want, body.Message)
			}
			if body.Code != "ROUTE_NOT_FOUND" {
				t.Errorf("expected ROUTE_NOT_FOUND, got %q", body.Code)
			}
		})
	}
}

func TestGlobalErrorHandlerLogsStackForServerErrors(t *testing.T) {
	previous := zerolog.ErrorStackMarshaler
	zerolog.ErrorStackMarshaler = pkgerrors.MarshalStack
	t.Cleanup(func() { zerolog.ErrorStackMarshaler = previous })

	var buf bytes.Buffer
	e := newTestEcho(newTestServer(t, "development", &buf))
	e.GET("/boom", func(c echo.Context) error {
		return errors.New("store exploded")
	})
	e.GET("/cards/:id", func(c echo.Context) error {
		return errs.CardNotFoundError(42)
	})

	e.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/boom", nil))
	if !strings.Contains(buf.String(), `"stack":[`) {
		t.Fatalf("expected a stack trace for a 500, got %s", buf.String())
	}

	buf.Reset()
	e.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/cards/42", nil))
	if strings.Contains(buf.String(), `"stack"`) {
		t.Errorf("expected no stack trace for a 404, got %s", buf.String())
	}
}

func TestGlobalErrorHandlerInternalError(t *testing.T) {
	tests := []struct {
		name    string
		env     string
		message string
	}{
		{"development exposes detail", "development", "store exploded"},
		{"production hides detail", "production", genericInternalMessage},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			e := newTestEcho(newTestServer(t, tt.env, &buf))
			e.GET("/boom", func(c echo.Context) error {
				return errors.New("store exploded")
			})

			rec := httptest.NewRecorder()
			e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/boom", nil))

			if rec.Code != http.StatusInternalServerError {
				t.Fatalf("expected 500, got %d", rec.Code)
			}
			if body := decodeError(t, rec); body.Message != tt.message {
				t.Errorf("expected %q, got %q", tt.message, body.Message)
			}
			if !strings.Contains(buf.String(), "store exploded") {
				t.Error("expected the real error to be logged")
			}
		})
	}
}

func TestRecoverTurnsPanicInto500(t *testing.T) {
	e := newTestEcho(newTestServer(t, "production", &bytes.Buffer{}))
	e.GET("/panic", func(c echo.Context) error {
		panic("unexpected")
	})

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/panic", nil))

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}
	if body := decodeError(t, rec); body.Message != genericInternalMessage {
		t.Errorf("expected generic message, got %q", body.Message)
	}
}

func TestBodyLimit(t *testing.T) {
	e := newTestEcho(newTestServer(t, "development", &bytes.Buffer{}))
	e.POST("/cards", func(c echo.Context) error { return c.NoContent(http.StatusCreated) })

	payload := `{"suit":"` + strings.Repeat("x", 2048) + `"}`
	req := httptest.NewRequest(http.MethodPost, "/cards", strings.NewReader(payload))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusRequestEntityTooLarge {
		t.Fatalf("expected 413, got %d", rec.Code)
	}
	if body := decodeError(t, rec); body.Status != http.StatusRequestEntityTooLarge {
		t.Errorf("expected status 413 in body, got %d", body.Status)
	}
}

func TestRequestID(t *testing.T) {
	e := newTestEcho(newTestServer(t, "development", &bytes.Buffer{}))
	e.GET("/id", func(c echo.Context) error {
		return c.String(http.StatusOK, GetRequestID(c))
	})

	tests := []struct {
		name     string
		incoming string
		reuse    bool
	}{
		{"generated when absent", "", false},
		{"reused when valid", "abc-123", true},
		{"replaced when it has spaces", "a b", false},
		{"replaced when too long", strings.Repeat("a", maxRequestIDLength+1), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/id", nil)
			if tt.incoming != "" {
				req.Header.Set(RequestIDHeader, tt.incoming)
			}

			rec := httptest.NewRecorder()
			e.ServeHTTP(rec, req)

			got := rec.Header().Get(RequestIDHeader)
			if got == "" || got != rec.Body.String() {
				t.Fatalf("expected header and context to agree, got %q and %q", got, rec.Body.String())
			}
			if tt.reuse && got != tt.incoming {
				t.Errorf("expected %q to be reused, got %q", tt.incoming, got)
			}
			if !tt.reuse && got == tt.incoming {
				t.Errorf("expected %q to be replaced", tt.incoming)
			}
		})
	}
}

func TestContextEnhancerStoresLogger(t *testing.T) {
	var buf bytes.Buffer
	e := newTestEcho(newTestServer(t, "development", &buf))
	e.GET("/cards/:id", func(c echo.Context) error {
		zerolog.Ctx(c.Request().Context()).Info().Msg("from service")
		return c.NoContent(http.StatusNoContent)
	})

	req := httptest.NewRequest(http.MethodGet, "/cards/7", nil)
	req.Header.Set(RequestIDHeader, "req-42")
	e.ServeHTTP(httptest.NewRecorder(), req)

	out := buf.String()
	for _, want := range []string{`"request_id":"req-42"`, `"path":"/cards/:id"`, "from service"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected log to contain %s, got %q", want, out)
		}
	}
}

func TestRateLimitDisabledByDefault(t *testing.T) {
	s := newTestServer(t, "development", &bytes.Buffer{})
	rl := NewRateLimitMiddleware(s)

	if rl.Enabled() {
		t.Fatal("expected rate limiting to be off with a zero rate")
	}

	e := newTestEcho(s)
	e.Use(rl.Limit())
	e.GET("/ok", func(c echo.Context) error { return c.NoContent(http.StatusOK) })

	for i := 0; i < 20; i++ {
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ok", nil))
		if rec.Code != http.StatusOK {
			t.Fatalf("request %d: expected 200, got %d", i, rec.Code)
		}
	}
}

func TestRateLimitRejectsBurst(t *testing.T) {
	s := newTestServer(t, "development", &bytes.Buffer{})
	s.Config.Server.RateLimit = 1

	m := NewMiddlewares(s)
	e := newTestEcho(s)
	e.Use(m.RateLimit.Limit())
	e.GET("/ok", func(c echo.Context) error { return c.NoContent(http.StatusOK) })

	var limited *httptest.ResponseRecorder
	for i := 0; i < 10; i++ {
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ok", nil))
		if rec.Code == http.StatusTooManyRequests {
			limited = rec
			break
		}
	}

	if limited == nil {
		t.Fatal("expected a 429 within the burst")
	}
	if body := decodeError(t, limited); body.Code != "TOO_MANY_REQUESTS" {
		t.Errorf("expected TOO_MANY_REQUESTS, got %q", body.Code)
	}
}

func TestCORSAllowsCredentials(t *testing.T) {
	s := newTestServer(t, "development", &bytes.Buffer{})
	s.Config.Server.CORSAllowedOrigins = []string{"https://cards.example"}

	e := echo.New()
	e.Use(NewMiddlewares(s).Global.CORS())
	e.GET("/cards", func(c echo.Context) error { return c.NoContent(http.StatusOK) })

	req := httptest.NewRequest(http.MethodGet, "/cards", nil)
	req.Header.Set(echo.HeaderOrigin, "https://cards.example")
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if got := rec.Header().Get(echo.HeaderAccessControlAllowOrigin); got != "https://cards.example" {
		t.Errorf("expected the origin to be allowed, got %q", got)
	}
	if got := rec.Header().Get(echo.HeaderAccessControlAllowCredentials); got != "true" {
		t.Errorf("expected credentials to be allowed, got %q", got)
	}
	if got := rec.Header().Get(echo.HeaderAccessControlExposeHeaders); got != RequestIDHeader {
		t.Errorf("expected %s to be exposed, got %q", RequestIDHeader, got)
	}
}
