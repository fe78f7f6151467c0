package domain

import "errors"

// ErrNotFound is returned by repo and service functions when the requested
// resource does not exist in the database.
// Handlers should map this to HTTP 404.
var ErrNotFound = errors.New("not found")

// ErrValidation is returned by service functions when input fails business
// rule validation (e.g. missing required field, malformed image URL).
// Handlers should map this to HTTP 422 Unprocessable Entity.
var ErrValidation = errors.New("validation error")

// ErrForbidden is returned when a resource exists but the caller is not
// its owner. It is kept distinct from ErrNotFound on purpose: callers
// must be able to tell a deleted tour from someone else's tour.
// Handlers should map this to HTTP 403.
var ErrForbidden = errors.New("forbidden")

// ErrConflict is returned when a write violates a uniqueness constraint
// (public slug, per-tour step order, user email). Services retry slug
// and order conflicts internally before letting this surface.
// Handlers should map an escaped ErrConflict to HTTP 409.
var ErrConflict = errors.New("conflict")
