// Package middleware stores global and route-specific middleware.
//
// These intercept requests to handle cross-cutting concerns such as
// request IDs, request-scoped logging, New Relic tracing, CORS, body size
// limits, rate limiting, and panic recovery. The global error handler that
// shapes every error response lives here as well.
package middleware
