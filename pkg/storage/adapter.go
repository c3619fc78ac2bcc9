package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"inkpad/pkg/core"
)

// Layout selects how collections map onto backend keys.
type Layout int

const (
	// LayoutSplit stores notes and tags under their own keys.
	LayoutSplit Layout = iota
	// LayoutCombined stores both collections in one blob together with a
	// derived tag index. The index is a cache: it is rebuilt from the tags
	// sequence on every load and never trusted on its own.
	LayoutCombined
)

// Backend keys. The key names are an implementation detail; the blob shapes
// are the durable contract.
const (
	keyNotes = "notes"
	keyTags  = "tags"
	keyState = "state"
	keyProbe = "available-probe"
)

// Snapshot is the bulk import/export shape. A nil collection means "not
// provided": import leaves the corresponding durable collection untouched.
type Snapshot struct {
	Notes []core.Note `json:"notes,omitempty"`
	Tags  []core.Tag  `json:"tags,omitempty"`
}

// stateBlob is the combined-layout payload. TagIndex maps tag ID to its
// position in Tags; it exists to spare a rebuild on hot paths in the original
// layout and is regenerated on every write, ignored on every read.
type stateBlob struct {
	Notes    []core.Note    `json:"notes"`
	Tags     []core.Tag     `json:"tags"`
	TagIndex map[string]int `json:"tagIndex,omitempty"`
}

// Config holds the configuration for the persistence adapter.
type Config struct {
	Backend  Backend
	Layout   Layout
	SeedTags []core.Tag // nil means DefaultTags()
	Logger   *slog.Logger
}

// Adapter mirrors the in-memory collections into a Backend.
// Every operation returns a tagged *Error on failure; nothing is raised past
// this boundary, and no platform-specific error type escapes untranslated.
type Adapter struct {
	backend Backend
	layout  Layout
	seeds   []core.Tag
	logger  *slog.Logger

	mu        sync.Mutex // serializes combined-layout read-modify-write
	probeOnce sync.Once
	available bool
}

// NewAdapter creates a persistence adapter over the given backend.
func NewAdapter(cfg Config) *Adapter {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	seeds := cfg.SeedTags
	if seeds == nil {
		seeds = DefaultTags()
	}
	return &Adapter{
		backend: cfg.Backend,
		layout:  cfg.Layout,
		seeds:   seeds,
		logger:  logger,
	}
}

// IsAvailable probes whether the backend can be written to at all. The result
// is cached; while false, every other operation degrades to a typed failure
// instead of touching the backend.
func (a *Adapter) IsAvailable() bool {
	a.probeOnce.Do(func() {
		a.available = a.probe()
	})
	return a.available
}

func (a *Adapter) probe() bool {
	if a.backend == nil {
		return false
	}
	if err := a.backend.Set(keyProbe, "1"); err != nil {
		a.logger.Warn("storage unavailable", "error", err)
		return false
	}
	_ = a.backend.Remove(keyProbe)
	return true
}

// ReadNotes loads the notes collection. Absence reads as an empty collection;
// a malformed payload reads as a parse_error without raising.
func (a *Adapter) ReadNotes() ([]core.Note, *Error) {
	if !a.IsAvailable() {
		return nil, newError(KindReadError, keyNotes, ErrUnavailable)
	}

	if a.layout == LayoutCombined {
		blob, serr := a.readState()
		if serr != nil {
			return nil, serr
		}
		return blob.Notes, nil
	}

	raw, ok, err := a.backend.Get(keyNotes)
	if err != nil {
		return nil, newError(KindReadError, keyNotes, err)
	}
	if !ok {
		return []core.Note{}, nil
	}

	var notes []core.Note
	if err := json.Unmarshal([]byte(raw), &notes); err != nil {
		return nil, newError(KindParseError, keyNotes, err)
	}
	if notes == nil {
		notes = []core.Note{}
	}
	return notes, nil
}

// WriteNotes serializes and writes the notes collection.
func (a *Adapter) WriteNotes(notes []core.Note) *Error {
	if !a.IsAvailable() {
		return newError(KindWriteError, keyNotes, ErrUnavailable)
	}

	if a.layout == LayoutCombined {
		return a.updateState(func(blob *stateBlob) {
			blob.Notes = notes
		})
	}

	return a.writeJSON(keyNotes, notes)
}

// ReadTags loads the tags collection. On first run (key absent) it returns
// the seed tags, not an empty set, so the app starts with usable categories.
func (a *Adapter) ReadTags() ([]core.Tag, *Error) {
	if !a.IsAvailable() {
		return nil, newError(KindReadError, keyTags, ErrUnavailable)
	}

	if a.layout == LayoutCombined {
		blob, serr := a.readState()
		if serr != nil {
			return nil, serr
		}
		if blob.Tags == nil {
			return cloneTags(a.seeds), nil
		}
		return blob.Tags, nil
	}

	raw, ok, err := a.backend.Get(keyTags)
	if err != nil {
		return nil, newError(KindReadError, keyTags, err)
	}
	if !ok {
		return cloneTags(a.seeds), nil
	}

	var tags []core.Tag
	if err := json.Unmarshal([]byte(raw), &tags); err != nil {
		return nil, newError(KindParseError, keyTags, err)
	}
	if tags == nil {
		tags = []core.Tag{}
	}
	return tags, nil
}

// WriteTags serializes and writes the tags collection.
func (a *Adapter) WriteTags(tags []core.Tag) *Error {
	if !a.IsAvailable() {
		return newError(KindWriteError, keyTags, ErrUnavailable)
	}

	if a.layout == LayoutCombined {
		return a.updateState(func(blob *stateBlob) {
			blob.Tags = tags
		})
	}

	return a.writeJSON(keyTags, tags)
}

// ClearAll removes every collection key. Idempotent.
func (a *Adapter) ClearAll() *Error {
	if !a.IsAvailable() {
		return newError(KindWriteError, keyState, ErrUnavailable)
	}
	for _, key := range []string{keyNotes, keyTags, keyState} {
		if err := a.backend.Remove(key); err != nil {
			return newError(KindWriteError, key, err)
		}
	}
	return nil
}

// ExportAll reads both collections as one structure for backup.
func (a *Adapter) ExportAll() (Snapshot, *Error) {
	notes, serr := a.ReadNotes()
	if serr != nil {
		return Snapshot{}, serr
	}
	tags, serr := a.ReadTags()
	if serr != nil {
		return Snapshot{}, serr
	}
	return Snapshot{Notes: notes, Tags: tags}, nil
}

// ImportAll writes the provided collections. A nil collection in the snapshot
// leaves its durable counterpart untouched (partial restore).
func (a *Adapter) ImportAll(snap Snapshot) *Error {
	if snap.Notes != nil {
		if serr := a.WriteNotes(snap.Notes); serr != nil {
			return serr
		}
	}
	if snap.Tags != nil {
		if serr := a.WriteTags(snap.Tags); serr != nil {
			return serr
		}
	}
	return nil
}

// Watch surfaces externally-originated changes as collection-level events,
// if the backend supports watching. A change to the combined state key fans
// out to one event per collection.
func (a *Adapter) Watch(ctx context.Context, buffer int) (<-chan core.Event, error) {
	w, ok := a.backend.(Watchable)
	if !ok {
		return nil, errors.New("backend does not support watching")
	}

	keyEvents, err := w.Watch(ctx, "*")
	if err != nil {
		return nil, err
	}

	if buffer <= 0 {
		buffer = defaultEventBuffer
	}
	out := make(chan core.Event, buffer)

	go func() {
		defer close(out)
		for e := range keyEvents {
			for _, ev := range a.translate(e) {
				select {
				case out <- ev:
				case <-ctx.Done():
					return
				}
			}
		}
	}()

	return out, nil
}

func (a *Adapter) translate(e KeyEvent) []core.Event {
	switch e.Key {
	case keyNotes:
		return []core.Event{{Type: e.Type(), Collection: core.CollectionNotes, Timestamp: e.Timestamp}}
	case keyTags:
		return []core.Event{{Type: e.Type(), Collection: core.CollectionTags, Timestamp: e.Timestamp}}
	case keyState:
		return []core.Event{
			{Type: e.Type(), Collection: core.CollectionNotes, Timestamp: e.Timestamp},
			{Type: e.Type(), Collection: core.CollectionTags, Timestamp: e.Timestamp},
		}
	default:
		return nil
	}
}

// --- Internal helpers ---

// writeJSON serializes v and writes it under key, pre-checking capacity so a
// write certain to fail is refused before touching the backend.
func (a *Adapter) writeJSON(key string, v any) *Error {
	data, err := json.Marshal(v)
	if err != nil {
		return newError(KindWriteError, key, fmt.Errorf("failed to serialize: %w", err))
	}

	if c, ok := a.backend.(Capacity); ok {
		if remaining, bounded := c.Remaining(); bounded && int64(len(data)) > remaining {
			return newError(KindQuotaExceeded, key,
				fmt.Errorf("need %d bytes, %d remaining", len(data), remaining))
		}
	}

	if err := a.backend.Set(key, string(data)); err != nil {
		if errors.Is(err, ErrQuotaExceeded) {
			return newError(KindQuotaExceeded, key, err)
		}
		return newError(KindWriteError, key, err)
	}
	return nil
}

// readState loads the combined blob, dropping the persisted index. An absent
// key reads as a zero blob (empty notes, nil tags so seeds apply).
func (a *Adapter) readState() (stateBlob, *Error) {
	raw, ok, err := a.backend.Get(keyState)
	if err != nil {
		return stateBlob{}, newError(KindReadError, keyState, err)
	}
	if !ok {
		return stateBlob{Notes: []core.Note{}}, nil
	}

	var blob stateBlob
	if err := json.Unmarshal([]byte(raw), &blob); err != nil {
		return stateBlob{}, newError(KindParseError, keyState, err)
	}
	if blob.Notes == nil {
		blob.Notes = []core.Note{}
	}
	// The persisted index may be stale or hostile; rebuild from the tags
	// sequence, which is the authority.
	blob.TagIndex = nil
	return blob, nil
}

// updateState performs a read-modify-write of the combined blob.
func (a *Adapter) updateState(mutate func(*stateBlob)) *Error {
	a.mu.Lock()
	defer a.mu.Unlock()

	blob, serr := a.readState()
	if serr != nil {
		// A corrupt blob must not block further writes; start over from the
		// seeds rather than wedging every save.
		if serr.Kind != KindParseError {
			return serr
		}
		a.logger.Warn("replacing corrupt state blob", "error", serr)
		blob = stateBlob{Notes: []core.Note{}}
	}

	mutate(&blob)

	if blob.Tags == nil {
		blob.Tags = cloneTags(a.seeds)
	}
	blob.TagIndex = buildTagIndex(blob.Tags)

	return a.writeJSON(keyState, blob)
}

func buildTagIndex(tags []core.Tag) map[string]int {
	idx := make(map[string]int, len(tags))
	for i, t := range tags {
		idx[t.ID] = i
	}
	return idx
}

func cloneTags(tags []core.Tag) []core.Tag {
	out := make([]core.Tag, len(tags))
	copy(out, tags)
	return out
}
