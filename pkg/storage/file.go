package storage

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"syscall"
)

func isNoSpace(err error) bool {
	return errors.Is(err, syscall.ENOSPC)
}

// FileBackend stores each key as a JSON blob file under a data directory.
// Writes are atomic (temp file + rename), so another instance reading the
// same directory sees either the previous blob or the new one.
type FileBackend struct {
	dir    string
	logger *slog.Logger
}

// FileConfig holds the configuration for the file backend.
type FileConfig struct {
	Dir    string
	Logger *slog.Logger
}

// NewFileBackend creates a file backend rooted at cfg.Dir, creating the
// directory if needed.
func NewFileBackend(cfg FileConfig) (*FileBackend, error) {
	if cfg.Dir == "" {
		return nil, fmt.Errorf("file backend requires a data directory")
	}
	if err := os.MkdirAll(cfg.Dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &FileBackend{dir: cfg.Dir, logger: logger}, nil
}

// Dir returns the backing data directory.
func (f *FileBackend) Dir() string {
	return f.dir
}

func (f *FileBackend) path(key string) string {
	return filepath.Join(f.dir, key+".json")
}

// keyFromPath maps a data file back to its key, or "" if the file is not a
// backend blob (temp files, foreign files).
func (f *FileBackend) keyFromPath(path string) string {
	base := filepath.Base(path)
	if strings.HasPrefix(base, TempFilePrefix) {
		return ""
	}
	if !strings.HasSuffix(base, ".json") {
		return ""
	}
	return strings.TrimSuffix(base, ".json")
}

func (f *FileBackend) Get(key string) (string, bool, error) {
	data, err := os.ReadFile(f.path(key))
	if err != nil {
		if os.IsNotExist(err) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("failed to read %s: %w", key, err)
	}
	return string(data), true, nil
}

func (f *FileBackend) Set(key, value string) error {
	if err := writeFileAtomic(f.path(key), []byte(value), 0644); err != nil {
		// A full disk surfaces as ENOSPC from the temp write or rename.
		if isNoSpace(err) {
			return fmt.Errorf("%w: %v", ErrQuotaExceeded, err)
		}
		return err
	}
	return nil
}

func (f *FileBackend) Remove(key string) error {
	err := os.Remove(f.path(key))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove %s: %w", key, err)
	}
	return nil
}

// Watch implements Watchable via fsnotify on the data directory.
func (f *FileBackend) Watch(ctx context.Context, pattern string) (<-chan KeyEvent, error) {
	events := make(chan KeyEvent, defaultEventBuffer)

	w := newWatchWorker(f, pattern, events)
	if err := w.Start(ctx); err != nil {
		close(events)
		return nil, err
	}

	// Close the channel once the worker winds down so consumers can range.
	go func() {
		<-ctx.Done()
		_ = w.Stop(context.Background())
		close(events)
	}()

	return events, nil
}
