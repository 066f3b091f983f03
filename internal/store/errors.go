package store

import "errors"

// Sentinel errors for store operations.
// Use errors.Is() to check for these errors in calling code.
var (
	// ErrValidation indicates a rejected argument: empty content, an empty
	// entry-id list for a summary, or a malformed metadata value.
	ErrValidation = errors.New("validation failed")

	// ErrNotFound indicates the requested entry does not exist.
	ErrNotFound = errors.New("entry not found")
)
