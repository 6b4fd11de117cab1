// Package apperr defines the sentinel errors shared across repositories
// and handlers. Callers should use errors.Is to match these values.
package apperr

import "errors"

var (
	// ErrNotFound covers both a missing row and a row the caller may not
	// see; the two are deliberately indistinguishable at the boundary.
	ErrNotFound = errors.New("not found")

	// ErrConflict is returned when a uniqueness constraint rejects a write.
	ErrConflict = errors.New("already exists")

	// ErrValidation is returned for malformed or out-of-range input.
	ErrValidation = errors.New("validation error")
)
