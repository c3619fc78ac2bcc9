// Package autosave decouples "user is typing" from "write to store".
//
// The coordinator debounces a stream of edit snapshots, keeping only the
// newest, and commits once the stream goes quiet. The first successful commit
// of a brand-new note creates it and latches the assigned id; every later
// commit updates that id. An explicit timer handle owned by the coordinator
// replaces the usual closure-over-mutable-ref debounce, so cancellation and
// flushing are first-class operations.
package autosave

import (
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"inkpad/pkg/core"
	"inkpad/pkg/storage"
)

// Status is the externally visible save state.
type Status string

const (
	StatusIdle   Status = "idle"
	StatusSaving Status = "saving"
	StatusSaved  Status = "saved"
	StatusError  Status = "error"
)

const (
	// DefaultDelay is the debounce window between the last edit and a commit.
	DefaultDelay = 1000 * time.Millisecond
	// DefaultDisplayWindow is how long "saved" shows before reverting to idle.
	DefaultDisplayWindow = 2000 * time.Millisecond
)

// Snapshot is one in-progress edit of the active note. Later snapshots
// supersede earlier ones; nothing is queued for replay.
type Snapshot struct {
	Title   string
	Content string
	Tags    []string
}

// Saver is the slice of the store the coordinator drives.
type Saver interface {
	AddNote(title, content string, tagIDs []string) core.Note
	UpdateNote(id string, patch core.NotePatch) error
	LastError() *storage.Error
}

// Coordinator debounces edits for a single editing session.
type Coordinator struct {
	saver  Saver
	logger *slog.Logger

	delay         time.Duration
	displayWindow time.Duration

	// navigate asks the UI to replace the current location with the note id
	// assigned on first save, without growing navigation history.
	navigate func(id string)
	onChange func()

	mu           sync.Mutex
	status       Status
	err          error
	pending      *Snapshot
	timer        *time.Timer
	displayTimer *time.Timer
	noteID       string
	created      bool
	committing   bool
	recommit     bool
}

// Option configures a Coordinator.
type Option func(*Coordinator)

// WithDelay overrides the debounce window.
func WithDelay(d time.Duration) Option {
	return func(c *Coordinator) { c.delay = d }
}

// WithDisplayWindow overrides how long "saved" is shown.
func WithDisplayWindow(d time.Duration) Option {
	return func(c *Coordinator) { c.displayWindow = d }
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Coordinator) { c.logger = logger }
}

// WithNavigate registers the replace-location callback fired after the first
// successful save of a new note.
func WithNavigate(fn func(id string)) Option {
	return func(c *Coordinator) { c.navigate = fn }
}

// WithOnChange registers a listener invoked after every status transition.
func WithOnChange(fn func()) Option {
	return func(c *Coordinator) { c.onChange = fn }
}

// New creates a coordinator over the given saver.
func New(saver Saver, opts ...Option) *Coordinator {
	c := &Coordinator{
		saver:         saver,
		logger:        slog.Default(),
		delay:         DefaultDelay,
		displayWindow: DefaultDisplayWindow,
		status:        StatusIdle,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Edit begins an editing session. An empty id means a new note: the first
// commit will create it. A non-empty id means commits update that note.
// Any pending work from a previous session is dropped.
func (c *Coordinator) Edit(id string) {
	c.mu.Lock()
	c.stopTimerLocked()
	c.pending = nil
	c.noteID = id
	c.created = id != ""
	c.status = StatusIdle
	c.err = nil
	c.mu.Unlock()

	c.emitChange()
}

// Status returns the current save status and, in the error state, the cause.
func (c *Coordinator) Status() (Status, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.status, c.err
}

// NoteID returns the id commits are targeting: the session's original id, or
// the id latched by the first successful create. Empty until then.
func (c *Coordinator) NoteID() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.noteID
}

// Push records an edit snapshot and restarts the debounce window. Only the
// latest snapshot survives; the window is reset, not suspended, so the newest
// content always commits once the user pauses for the full delay.
func (c *Coordinator) Push(snap Snapshot) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.pending = &snap
	if c.timer != nil {
		c.timer.Reset(c.delay)
		return
	}
	c.timer = time.AfterFunc(c.delay, c.commitFromTimer)
}

// SaveNow cancels any pending timer and commits immediately, synchronously,
// through the same path a timer-driven commit takes. Used for explicit save
// actions and for flushing before navigating away.
func (c *Coordinator) SaveNow() {
	c.mu.Lock()
	c.stopTimerLocked()
	c.mu.Unlock()
	c.commit()
}

// Cancel clears a pending timer without committing. Used when the editor
// goes away before the debounce fires, so a stale commit cannot race
// unrelated state that follows.
func (c *Coordinator) Cancel() {
	c.mu.Lock()
	c.stopTimerLocked()
	c.pending = nil
	c.mu.Unlock()
}

func (c *Coordinator) commitFromTimer() {
	c.mu.Lock()
	c.timer = nil
	c.mu.Unlock()
	c.commit()
}

// commit commits the latest snapshot. Saver calls run outside c.mu, because
// store subscribers may read coordinator state from their callbacks; an
// in-flight guard keeps concurrent commits from interleaving, and an overlap
// request is honored once the running commit finishes.
func (c *Coordinator) commit() {
	c.mu.Lock()
	if c.committing {
		c.recommit = true
		c.mu.Unlock()
		return
	}

	snap := c.pending
	if snap == nil {
		c.mu.Unlock()
		return
	}

	// An empty-titled draft is never persisted: no mutation, no status
	// transition, and the snapshot is dropped.
	if strings.TrimSpace(snap.Title) == "" {
		c.pending = nil
		c.mu.Unlock()
		return
	}

	c.committing = true
	// Latch before unlocking so a racing commit can never double-create.
	creating := !c.created
	c.created = true
	noteID := c.noteID
	c.status = StatusSaving
	c.err = nil
	c.mu.Unlock()
	c.emitChange()

	var (
		commitErr error
		createdID string
	)

	if creating {
		note := c.saver.AddNote(snap.Title, snap.Content, snap.Tags)
		if serr := c.saver.LastError(); serr != nil {
			commitErr = serr
		}
		// The note exists in memory even if persistence failed; latch the id
		// so a retry updates instead of creating a duplicate.
		createdID = note.ID
		noteID = note.ID
	} else {
		patch := core.NotePatch{
			Title:   &snap.Title,
			Content: &snap.Content,
		}
		if snap.Tags != nil {
			tags := snap.Tags
			patch.Tags = &tags
		}
		if err := c.saver.UpdateNote(noteID, patch); err != nil {
			commitErr = err
		} else if serr := c.saver.LastError(); serr != nil {
			commitErr = serr
		}
	}

	c.mu.Lock()
	c.committing = false
	rerun := c.recommit
	c.recommit = false
	c.noteID = noteID

	if commitErr != nil {
		c.status = StatusError
		c.err = fmt.Errorf("save failed: %w", commitErr)
		c.logger.Warn("autosave failed", "note", noteID, "error", commitErr)
		// Keep the snapshot so SaveNow can retry the same commit.
		c.mu.Unlock()
		c.emitChange()
		return
	}

	if c.pending == snap {
		c.pending = nil
	}
	c.status = StatusSaved
	if c.displayTimer != nil {
		c.displayTimer.Stop()
	}
	c.displayTimer = time.AfterFunc(c.displayWindow, c.displayElapsed)
	c.mu.Unlock()

	if createdID != "" && c.navigate != nil {
		c.navigate(createdID)
	}
	c.emitChange()

	if rerun {
		c.commit()
	}
}

// displayElapsed reverts saved -> idle after the display window, unless a new
// commit has moved the status on in the meantime.
func (c *Coordinator) displayElapsed() {
	c.mu.Lock()
	changed := false
	if c.status == StatusSaved {
		c.status = StatusIdle
		changed = true
	}
	c.mu.Unlock()

	if changed {
		c.emitChange()
	}
}

// stopTimerLocked stops the pending debounce timer, if any. Callers hold c.mu.
func (c *Coordinator) stopTimerLocked() {
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
}

func (c *Coordinator) emitChange() {
	if c.onChange != nil {
		c.onChange()
	}
}
