package platform

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"inkpad/pkg/storage"
	"inkpad/pkg/store"
)

// New assembles the persistence adapter and a hydrated store over the given
// data directory. The path argument is backend-specific: a directory for the
// default file backend, ignored when a backend is injected.
//
//	st, err := platform.New("~/.inkpad", platform.WithCombinedState(true))
func New(path string, opts ...Option) (*store.Store, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}

	logger := o.logger
	if logger == nil {
		logger = slog.Default()
	}

	backend := o.backend
	if backend == nil {
		if o.memory {
			backend = storage.NewMemoryBackend(o.quota)
		} else {
			fb, err := storage.NewFileBackend(storage.FileConfig{
				Dir:    path,
				Logger: logger,
			})
			if err != nil {
				return nil, fmt.Errorf("failed to open data directory: %w", err)
			}
			backend = fb
		}
	}

	adapter := storage.NewAdapter(storage.Config{
		Backend:  backend,
		Layout:   o.layout,
		SeedTags: o.seedTags,
		Logger:   logger,
	})

	st := store.New(adapter, logger)
	st.Hydrate()

	return st, nil
}

// DefaultDataDir resolves the default location for durable state.
func DefaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".inkpad"
	}
	return filepath.Join(home, ".inkpad")
}
