package errors

import "errors"

// This package defines a centralized set of sentinel errors for the application.
// Services return these instead of transport-specific errors; the API layer
// checks them with errors.Is() and maps them to HTTP status codes. This keeps
// business logic decoupled from how failures are reported to clients.

var (
	// ErrNotFound signifies that a requested resource could not be located.
	// Typically mapped to 404 Not Found.
	ErrNotFound = errors.New("resource not found")

	// ErrValidation signifies that client-provided input failed business
	// rule validation. Typically mapped to 400 Bad Request.
	ErrValidation = errors.New("validation failed")

	// ErrConflict signifies that an operation conflicts with the current
	// state of a resource. Typically mapped to 409 Conflict.
	ErrConflict = errors.New("resource conflict")

	// ErrInternal signifies an unexpected server-side error. Used to avoid
	// leaking implementation details to the client. Typically mapped to
	// 500 Internal Server Error.
	ErrInternal = errors.New("internal server error")
)
