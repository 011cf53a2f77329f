// Package errs define custom error types and utilities.
//
// Its purpose is to create specific error structures
// (e.g. FieldErrors for validation or HTTPError for API responses)
// to ensure the client receive meaningful, actionable, and consistent
// error messages.
package errs
