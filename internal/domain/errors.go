package domain

import "errors"

var (
	// ErrNotFound is returned when a point lookup, update or delete
	// addresses an event that does not exist.
	ErrNotFound = errors.New("event not found")

	// ErrValidation marks input the service refuses to persist.
	ErrValidation = errors.New("validation failed")
)
