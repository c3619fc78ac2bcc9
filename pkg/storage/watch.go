package storage

import (
	"context"
	"fmt"
	"log/slog"
	"runtime/debug"
	"time"

	"github.com/aretw0/lifecycle/pkg/core/worker"
	"github.com/bmatcuk/doublestar/v4"
	"github.com/fsnotify/fsnotify"
)

const defaultEventBuffer = 100

// watchWorker observes the file backend's data directory and surfaces
// externally-originated key changes. Writes made by this process echo through
// the watcher as well; consumers rehydrate idempotently, so an echo costs a
// redundant read, never corruption.
type watchWorker struct {
	*worker.BaseWorker
	backend   *FileBackend
	pattern   string
	events    chan<- KeyEvent
	watcher   *fsnotify.Watcher
	debouncer *debouncer
	cancel    context.CancelFunc
}

func newWatchWorker(backend *FileBackend, pattern string, events chan<- KeyEvent) *watchWorker {
	return &watchWorker{
		BaseWorker: worker.NewBaseWorker("storage-watcher"),
		backend:    backend,
		pattern:    pattern,
		events:     events,
	}
}

func (w *watchWorker) Start(ctx context.Context) error {
	if ctx.Err() != nil {
		return ctx.Err()
	}

	status := w.State().Status
	if status != worker.StatusCreated && status != worker.StatusPending {
		return fmt.Errorf("watcher already started (status: %s)", status)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}

	if err := watcher.Add(w.backend.dir); err != nil {
		_ = watcher.Close()
		return fmt.Errorf("failed to watch data directory: %w", err)
	}

	w.watcher = watcher
	w.debouncer = newDebouncer(50 * time.Millisecond)

	runCtx, cancel := context.WithCancel(ctx)
	w.cancel = cancel

	w.SetStatus(worker.StatusRunning)
	return w.StartFunc(runCtx, w.run)
}

func (w *watchWorker) Stop(ctx context.Context) error {
	if w.cancel != nil {
		w.StopRequested = true
		w.cancel()
	}

	return w.BaseWorker.Stop(ctx)
}

func (w *watchWorker) State() worker.State {
	return w.ExportState(func(s *worker.State) {
		s.Metadata = map[string]string{
			worker.MetadataType: string(worker.TypeGoroutine),
		}
	})
}

// processEvent filters, maps, and debounces a single filesystem event.
// Returns true if the event was accepted for emission.
func (w *watchWorker) processEvent(ctx context.Context, event fsnotify.Event) bool {
	if w.backend.logger != nil {
		w.backend.logger.Debug("event received", "name", event.Name)
	}

	key := w.backend.keyFromPath(event.Name)
	if key == "" {
		return false
	}

	if w.pattern != "" {
		if ok, err := doublestar.Match(w.pattern, key); err != nil || !ok {
			return false
		}
	}

	removed := event.Has(fsnotify.Remove) || event.Has(fsnotify.Rename)
	if !removed && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) {
		return false
	}

	w.sendEvent(ctx, KeyEvent{
		Key:       key,
		Removed:   removed,
		Timestamp: time.Now().Unix(),
	})

	return true
}

// sendEvent enqueues an event via the debouncer, protecting against channel
// closure during shutdown.
func (w *watchWorker) sendEvent(ctx context.Context, event KeyEvent) {
	w.debouncer.add(event, func(e KeyEvent) {
		defer func() {
			// Recover from panic if channel was closed (worker stopping)
			_ = recover()
		}()
		select {
		case w.events <- e:
		case <-ctx.Done():
		}
	})
}

// run is the main event loop for the watcher worker.
func (w *watchWorker) run(ctx context.Context) (err error) {
	defer func() {
		if recovered := recover(); recovered != nil {
			panicErr := fmt.Errorf("watcher panic: %v", recovered)

			// Stack traces only under debug logging to keep production logs lean.
			var stack string
			if w.backend.logger.Enabled(ctx, slog.LevelDebug) {
				stack = string(debug.Stack())
			}

			if stack != "" {
				w.backend.logger.Error("watcher panic", "error", panicErr, "stack", stack)
			} else {
				w.backend.logger.Error("watcher panic", "error", panicErr)
			}
		}
	}()
	defer w.watcher.Close()

	err = w.mainEventLoop(ctx)

	// Shutdown debouncer: stop accepting new events and wait for all
	// in-flight timers so nothing races the channel close.
	w.debouncer.stopAndWait(5 * time.Second)

	return err
}

// mainEventLoop is the core select loop processing filesystem and watcher events.
func (w *watchWorker) mainEventLoop(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-w.watcher.Events:
			if !ok {
				if w.StopRequested || ctx.Err() != nil {
					return nil
				}
				return fmt.Errorf("watcher events channel closed")
			}
			w.processEvent(ctx, event)

		case wErr, ok := <-w.watcher.Errors:
			if !ok {
				if w.StopRequested || ctx.Err() != nil {
					return nil
				}
				return fmt.Errorf("watcher errors channel closed")
			}
			if w.backend.logger != nil {
				w.backend.logger.Error("fsnotify error", "error", wErr)
			}
		}
	}
}
