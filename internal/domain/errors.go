package domain

import "errors"

// ErrNotFound is returned by repo and service functions when the requested
// preset does not exist in the database.
// Handlers should map this to HTTP 404.
var ErrNotFound = errors.New("not found")

// ErrValidation is returned when input fails business rule validation
// (e.g. negative durations, an anchor time that is not on the wedding date).
// Handlers should map this to HTTP 422 Unprocessable Entity.
var ErrValidation = errors.New("validation error")

// ErrConflict is returned when a write would violate a uniqueness rule,
// such as two presets sharing a name.
// Handlers should map this to HTTP 409 Conflict.
var ErrConflict = errors.New("conflict")
