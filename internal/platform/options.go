package platform

import (
	"log/slog"

	"inkpad/pkg/core"
	"inkpad/pkg/storage"
)

// options holds the internal configuration for assembling a store.
type options struct {
	backend  storage.Backend
	logger   *slog.Logger
	layout   storage.Layout
	seedTags []core.Tag
	quota    int64
	memory   bool
}

// Option defines a functional option for configuring the store assembly.
type Option func(*options)

// defaultOptions returns the default configuration.
func defaultOptions() *options {
	return &options{
		layout: storage.LayoutSplit,
	}
}

// WithLogger sets the logger for every assembled component.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithBackend injects a custom storage backend (e.g. a mock).
// If provided, the default file backend is skipped.
func WithBackend(b storage.Backend) Option {
	return func(o *options) {
		o.backend = b
	}
}

// WithMemory uses an in-process backend instead of the data directory.
// Nothing survives the session; useful for tests and scratch runs.
func WithMemory(enabled bool) Option {
	return func(o *options) {
		o.memory = enabled
	}
}

// WithQuota caps the in-memory backend at the given byte budget.
// Zero means unbounded. Ignored for the file backend, whose limit is the disk.
func WithQuota(bytes int64) Option {
	return func(o *options) {
		o.quota = bytes
	}
}

// WithCombinedState stores both collections in a single blob with a derived
// index, instead of one key per collection.
func WithCombinedState(enabled bool) Option {
	return func(o *options) {
		if enabled {
			o.layout = storage.LayoutCombined
		} else {
			o.layout = storage.LayoutSplit
		}
	}
}

// WithSeedTags overrides the starter tags used on first run.
func WithSeedTags(tags []core.Tag) Option {
	return func(o *options) {
		o.seedTags = tags
	}
}
