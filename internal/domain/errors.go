package domain

import "errors"

// ErrInvalidInput is returned when a computation receives input it is not
// defined for, such as an empty location list.
// Handlers should map this to HTTP 400.
var ErrInvalidInput = errors.New("invalid input")

// ErrNotFound is returned when a requested resource (e.g. a history entry)
// does not exist.
// Handlers should map this to HTTP 404.
var ErrNotFound = errors.New("not found")

// ErrLocationNotFound is returned by geocoders when an address resolves to no
// coordinates.
var ErrLocationNotFound = errors.New("location not found")
