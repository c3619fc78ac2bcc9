package core

import "errors"

// Common errors.
var (
	// ErrNotFound signals that a mutation targeted a missing note or tag.
	// Mutations never create records implicitly.
	ErrNotFound = errors.New("not found")
)
