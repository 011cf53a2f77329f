package middleware

import (
	"net/http"
	"time"

	"github.com/deppfellow/card-collection-api/internal/errs"
	"github.com/deppfellow/card-collection-api/internal/server"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
)

// genericInternalMessage replaces internal error detail in production.
const genericInternalMessage = "An unexpected error occurred"

// GlobalMiddlewares groups “global” middleware and the global error handler.
//
// Why a struct?
//   - So middleware functions can access shared app dependencies from *server.Server,
//     especially config and observability/logging stuff.
type GlobalMiddlewares struct {
	server *server.Server
}

// NewGlobalMiddlewares constructs the middleware bundle.
func NewGlobalMiddlewares(s *server.Server) *GlobalMiddlewares {
	return &GlobalMiddlewares{
		server: s,
	}
}

// CORS returns Echo’s CORS middleware configured by the server config.
//
// The default origin list is "*", which lets any browser client call the API.
// Credentials are allowed so a configured origin may send cookies.
func (global *GlobalMiddlewares) CORS() echo.MiddlewareFunc {
	return middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: global.server.Config.Server.CORSAllowedOrigins,
		AllowMethods: []string{
			http.MethodGet,
			http.MethodPost,
			http.MethodPut,
			http.MethodDelete,
			http.MethodOptions,
		},
		AllowHeaders: []string{
			echo.HeaderOrigin,
			echo.HeaderContentType,
			echo.HeaderAccept,
			RequestIDHeader,
		},
		ExposeHeaders:    []string{RequestIDHeader},
		AllowCredentials: true,
	})
}

// BodyLimit rejects request bodies above the configured size with a 413.
func (global *GlobalMiddlewares) BodyLimit() echo.MiddlewareFunc {
	return middleware.BodyLimit(global.server.Config.Server.BodyLimit)
}

// RequestLogger returns Echo’s request logger middleware with a custom LogValuesFunc.
//
// It produces one “API” log line per request, with severity based on status.
func (global *GlobalMiddlewares) RequestLogger() echo.MiddlewareFunc {
	return middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogURI:     true,
		LogStatus:  true,
		LogError:   true,
		LogLatency: true,
		LogHost:    true,
		LogMethod:  true,
		LogURIPath: true,

		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			statusCode := v.Status

			// When a handler returns an error the global error handler has not
			// written the response yet, so derive the status from the error.
			// Reference: https://github.com/labstack/echo/issues/2310#issuecomment-1288196898
			if v.Error != nil {
				statusCode = statusFromError(v.Error)
			}

			logger := GetLogger(c)

			var e *zerolog.Event
			switch {
			case statusCode >= 500:
				e = logger.Error().Err(v.Error)
			case statusCode >= 400:
				e = logger.Warn()
			default:
				e = logger.Info()
			}

			if requestID := GetRequestID(c); requestID != "" {
				e = e.Str("request_id", requestID)
			}

			e.
				Dur("latency", v.Latency).
				Int("status", statusCode).
				Str("method", v.Method).
				Str("uri", v.URI).
				Str("host", v.Host).
				Str("ip", c.RealIP()).
				Str("user_agent", c.Request().UserAgent()).
				Msg("API")

			return nil
		},
	})
}

// Recover returns Echo’s panic recovery middleware.
//
// The recovered panic is handed to the global error handler as an error,
// so the client gets the usual 500 body.
func (global *GlobalMiddlewares) Recover() echo.MiddlewareFunc {
	return middleware.RecoverWithConfig(middleware.RecoverConfig{
		LogErrorFunc: func(c echo.Context, err error, stack []byte) error {
			GetLogger(c).Error().
				Err(err).
				Bytes("stack", stack).
				Msg("recovered from panic")
			return err
		},
	})
}

// Secure returns Echo’s secure headers middleware.
func (global *GlobalMiddlewares) Secure() echo.MiddlewareFunc {
	return middleware.Secure()
}

// GlobalErrorHandler is the final error funnel for the entire HTTP server.
//
// Every error returned by a handler or middleware ends up here and is
// written as the standard JSON error body.
func (global *GlobalMiddlewares) GlobalErrorHandler(err error, c echo.Context) {
	httpErr := global.toHTTPError(err, c)

	message := httpErr.Message
	if httpErr.Override && global.server.Config.IsProduction() {
		message = genericInternalMessage
	}

	logger := GetLogger(c)

	var e *zerolog.Event
	logged := err
	if httpErr.Status >= http.StatusInternalServerError {
		e = logger.Error().Stack()
		logged = withStack(err)
	} else {
		e = logger.Warn()
	}

	e.
		Err(logged).
		Int("status", httpErr.Status).
		Str("error_code", httpErr.Code).
		Msg(httpErr.Message)

	// Only write response if it hasn’t already been written.
	if c.Response().Committed {
		return
	}

	body := httpErr.WithMessage(message).Response(time.Now())

	if c.Request().Method == http.MethodHead {
		_ = c.NoContent(httpErr.Status)
		return
	}
	_ = c.JSON(httpErr.Status, body)
}

// toHTTPError classifies any error into an *errs.HTTPError.
func (global *GlobalMiddlewares) toHTTPError(err error, c echo.Context) *errs.HTTPError {
	var httpErr *errs.HTTPError
	if errors.As(err, &httpErr) {
		return httpErr
	}

	var echoErr *echo.HTTPError
	if !errors.As(err, &echoErr) {
		// Anything unclassified is an internal fault.
		return errs.NewInternalServerError(err.Error())
	}

	switch echoErr.Code {
	case http.StatusNotFound, http.StatusMethodNotAllowed:
		// Echo answers 405 for a known path with an unregistered method.
		// Both read as "this endpoint does not exist" to clients.
		return errs.RouteNotFoundError(c.Request().Method, c.Request().URL.Path)

	case http.StatusInternalServerError:
		return errs.NewInternalServerError(echoErrorMessage(echoErr))

	default:
		return errs.NewHTTPError(echoErr.Code, echoErrorMessage(echoErr))
	}
}

type stackTracer interface {
	StackTrace() errors.StackTrace
}

// withStack makes sure a server error carries a stack trace for the log.
// Errors wrapped with pkg/errors keep the trace from where they were made.
func withStack(err error) error {
	if _, ok := err.(stackTracer); ok {
		return err
	}
	return errors.WithStack(err)
}

// echoErrorMessage normalizes echo's message, which may be any type.
func echoErrorMessage(echoErr *echo.HTTPError) string {
	if msg, ok := echoErr.Message.(string); ok && msg != "" {
		return msg
	}
	if echoErr.Internal != nil {
		return echoErr.Internal.Error()
	}
	return http.StatusText(echoErr.Code)
}

// statusFromError returns the status the global error handler will send.
func statusFromError(err error) int {
	var httpErr *errs.HTTPError
	var echoErr *echo.HTTPError

	switch {
	case errors.As(err, &httpErr):
		return httpErr.Status
	case errors.As(err, &echoErr):
		if echoErr.Code == http.StatusMethodNotAllowed {
			return http.StatusNotFound
		}
		return echoErr.Code
	default:
		return http.StatusInternalServerError
	}
}
