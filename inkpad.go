package inkpad

import (
	"log/slog"

	"inkpad/internal/platform"
	"inkpad/pkg/core"
	"inkpad/pkg/storage"
	"inkpad/pkg/store"
)

// --- Types ---

// Note is a public alias for the domain note.
type Note = core.Note

// Tag is a public alias for the domain tag.
type Tag = core.Tag

// Store is a public alias for the note/tag store.
type Store = store.Store

// --- Configuration ---

// Option defines a functional option for configuring the store assembly.
type Option = platform.Option

// WithLogger sets the logger for every assembled component.
func WithLogger(logger *slog.Logger) Option {
	return platform.WithLogger(logger)
}

// WithBackend injects a custom storage backend.
func WithBackend(b storage.Backend) Option {
	return platform.WithBackend(b)
}

// WithMemory uses an in-process backend; nothing survives the session.
func WithMemory(enabled bool) Option {
	return platform.WithMemory(enabled)
}

// WithQuota caps the in-memory backend at the given byte budget.
func WithQuota(bytes int64) Option {
	return platform.WithQuota(bytes)
}

// WithCombinedState stores both collections in a single blob.
func WithCombinedState(enabled bool) Option {
	return platform.WithCombinedState(enabled)
}

// WithSeedTags overrides the starter tags used on first run.
func WithSeedTags(tags []core.Tag) Option {
	return platform.WithSeedTags(tags)
}

// --- Factory ---

// New assembles a hydrated store over the given data directory.
func New(path string, opts ...Option) (*store.Store, error) {
	return platform.New(path, opts...)
}

// DefaultDataDir resolves the default location for durable state.
func DefaultDataDir() string {
	return platform.DefaultDataDir()
}
