// Package service contains the business logic.
//
// It sits between the handler and repository layers. It receives
// validated data from the handler, applies the card collection rules
// (pagination and page clamping) and calls the repository to read or
// mutate the store.
package service
