// Package handler is the first layer after the router.
//
// It binds requests, runs input validation from the validation package,
// calls the service layer and writes the JSON response. Errors are
// returned, never written, so the global error handler shapes every
// failure the same way.
package handler
