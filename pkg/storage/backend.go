// Package storage persists note and tag collections as serialized blobs in a
// key-addressed backend, the way a browser mirrors state into local storage.
// Every operation returns a tagged *Error instead of raising; the in-memory
// store treats the adapter as a durable mirror, never as a cache.
package storage

import (
	"context"

	"inkpad/pkg/core"
)

// KeyEvent is a change to a single backend key observed from outside this
// process. Removed means the key no longer exists (the cross-instance analogue
// of a storage notification with a null new value).
type KeyEvent struct {
	Key       string
	Removed   bool
	Timestamp int64 // Unix timestamp
}

// Type maps the event onto the domain event taxonomy.
func (e KeyEvent) Type() core.EventType {
	if e.Removed {
		return core.EventDelete
	}
	return core.EventModify
}

// Backend is a key-addressed string store: the local-storage contract.
// Implementations must be safe for concurrent use.
type Backend interface {
	// Get returns the value for key and whether it was present.
	Get(key string) (value string, ok bool, err error)

	// Set writes the value for key. Backends with a capacity limit return
	// ErrQuotaExceeded (possibly wrapped) when the write does not fit.
	Set(key, value string) error

	// Remove deletes the key. Removing an absent key is not an error.
	Remove(key string) error
}

// Capacity is implemented by backends that can estimate remaining space,
// allowing the adapter to refuse a write certain to fail.
type Capacity interface {
	// Remaining returns the free space in bytes. ok is false when the
	// backend cannot estimate (treated as unbounded).
	Remaining() (n int64, ok bool)
}

// Watchable is implemented by backends whose keys can be modified by other
// processes. Events surface externally-originated changes so the store can
// rehydrate; a DELETE event means the key is gone and defaults apply.
type Watchable interface {
	// Watch emits change events for keys matching the doublestar pattern
	// until ctx is cancelled. The channel is closed on shutdown.
	Watch(ctx context.Context, pattern string) (<-chan KeyEvent, error)
}
