package domain

import "errors"

// ErrNotFound is returned by repo and service functions when the requested
// resource does not exist, or exists but is not visible to the caller.
// Handlers should map this to HTTP 404.
var ErrNotFound = errors.New("not found")

// ErrValidation is returned by service functions when input fails business
// rule validation (e.g. empty destination, end date before start date).
// Handlers should map this to HTTP 422 Unprocessable Entity.
var ErrValidation = errors.New("validation error")

// ErrConflict is returned when a write collides with existing state,
// such as a status change racing another writer.
// Handlers should map this to HTTP 409.
var ErrConflict = errors.New("conflict")

// ErrInvalidTransition is returned when a trip status change skips or
// reverses the lifecycle. Handlers map it to HTTP 409 alongside ErrConflict.
var ErrInvalidTransition = errors.New("invalid status transition")

// ErrUnauthorized is returned when a request carries no valid identity.
// Handlers should map this to HTTP 401.
var ErrUnauthorized = errors.New("unauthorized")

// ErrForbidden is returned when the caller is known but may not act on the
// resource, e.g. a non-owner deleting a trip. Handlers should map this to HTTP 403.
var ErrForbidden = errors.New("forbidden")
