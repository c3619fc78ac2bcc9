package storage

import (
	"errors"
	"fmt"
)

// ErrorKind classifies persistence failures.
type ErrorKind string

const (
	// KindQuotaExceeded means the backend is out of space. The write was not
	// attempted, or was attempted and refused; durable state is unchanged.
	KindQuotaExceeded ErrorKind = "quota_exceeded"
	// KindParseError means the stored payload is not well-formed.
	KindParseError ErrorKind = "parse_error"
	// KindWriteError covers every other write failure.
	KindWriteError ErrorKind = "write_error"
	// KindReadError covers every other read failure.
	KindReadError ErrorKind = "read_error"
)

// ErrUnavailable signals that the backend cannot be written to at all.
// Operations wrap it rather than panicking or propagating platform errors.
var ErrUnavailable = errors.New("storage unavailable")

// ErrQuotaExceeded is returned by backends that refuse a write for lack of
// space. The adapter translates it to KindQuotaExceeded.
var ErrQuotaExceeded = errors.New("storage quota exceeded")

// Error is the tagged result every adapter operation reports on failure.
// No operation raises past the adapter boundary; callers branch on Kind.
type Error struct {
	Kind ErrorKind
	Key  string
	Err  error
}

func (e *Error) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("storage %s: key %q", e.Kind, e.Key)
	}
	return fmt.Sprintf("storage %s: key %q: %v", e.Kind, e.Key, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// IsQuota reports whether err is a quota_exceeded storage error.
func IsQuota(err error) bool {
	var se *Error
	return errors.As(err, &se) && se.Kind == KindQuotaExceeded
}

func newError(kind ErrorKind, key string, err error) *Error {
	return &Error{Kind: kind, Key: key, Err: err}
}
