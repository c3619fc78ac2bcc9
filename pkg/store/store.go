// Package store holds the authoritative in-memory note and tag collections
// and mirrors every mutation into the persistence adapter.
//
// The store follows an optimistic-write policy: the in-memory mutation always
// succeeds and is immediately visible to queries; a persistence failure is
// recorded as a side channel (LastError) without rolling the edit back,
// because rolling back would discard the user's work with no recovery path.
// Durability is best effort, availability of the running session is not.
package store

import (
	"log/slog"
	"sync"

	"inkpad/pkg/core"
	"inkpad/pkg/storage"
)

// Store owns the note and tag collections plus the ephemeral filter state.
// Construct one per session with New and inject it; it is never a package
// singleton. Safe for concurrent use.
type Store struct {
	mu      sync.RWMutex
	adapter *storage.Adapter
	logger  *slog.Logger

	notes     []core.Note
	tags      []core.Tag
	noteIndex map[string]int // id -> position in notes
	tagIndex  map[string]int // id -> position in tags

	filter   core.Filter
	activeID string

	lastErr *storage.Error

	subMu   sync.Mutex
	subs    map[int]func()
	nextSub int
}

// New creates a store over the given adapter. The store starts empty; call
// Hydrate to load durable state.
func New(adapter *storage.Adapter, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{
		adapter:   adapter,
		logger:    logger,
		notes:     []core.Note{},
		tags:      []core.Tag{},
		noteIndex: map[string]int{},
		tagIndex:  map[string]int{},
		subs:      map[int]func(){},
	}
}

// Hydrate replaces in-memory state with the durable collections and rebuilds
// the derived lookups. A parse failure falls back to the empty/default
// collection and is recorded, rather than blocking startup.
func (s *Store) Hydrate() {
	notes, nerr := s.adapter.ReadNotes()
	if nerr != nil {
		s.logger.Warn("failed to load notes, starting empty", "error", nerr)
		notes = []core.Note{}
	}
	tags, terr := s.adapter.ReadTags()
	if terr != nil {
		s.logger.Warn("failed to load tags, using defaults", "error", terr)
		tags = storage.DefaultTags()
	}

	s.mu.Lock()
	s.notes = notes
	s.tags = tags
	s.rebuildIndexes()
	if nerr != nil {
		s.lastErr = nerr
	} else if terr != nil {
		s.lastErr = terr
	}
	s.mu.Unlock()

	s.notify()
}

// Adapter exposes the persistence adapter for bulk operations (export,
// import, clear) that work on the durable form directly.
func (s *Store) Adapter() *storage.Adapter {
	return s.adapter
}

// LastError returns the most recent persistence failure, or nil. It is
// cleared by the next successful write.
func (s *Store) LastError() *storage.Error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastErr
}

// Subscribe registers a change listener, invoked after every state change
// (mutation, filter change, rehydration). It returns an unsubscribe func.
// Listeners must not call back into the store synchronously with mutations.
func (s *Store) Subscribe(fn func()) func() {
	s.subMu.Lock()
	id := s.nextSub
	s.nextSub++
	s.subs[id] = fn
	s.subMu.Unlock()

	return func() {
		s.subMu.Lock()
		delete(s.subs, id)
		s.subMu.Unlock()
	}
}

func (s *Store) notify() {
	s.subMu.Lock()
	fns := make([]func(), 0, len(s.subs))
	for _, fn := range s.subs {
		fns = append(fns, fn)
	}
	s.subMu.Unlock()

	for _, fn := range fns {
		fn()
	}
}

// rebuildIndexes recomputes the id-indexed lookups. Callers hold s.mu.
func (s *Store) rebuildIndexes() {
	s.noteIndex = make(map[string]int, len(s.notes))
	for i, n := range s.notes {
		s.noteIndex[n.ID] = i
	}
	s.tagIndex = make(map[string]int, len(s.tags))
	for i, t := range s.tags {
		s.tagIndex[t.ID] = i
	}
}

// persistNotes mirrors the notes collection. Failure is non-fatal: it is
// logged and recorded, and the in-memory edit stands. Callers hold s.mu.
func (s *Store) persistNotes() {
	if serr := s.adapter.WriteNotes(s.notes); serr != nil {
		s.logger.Warn("failed to persist notes", "error", serr)
		s.lastErr = serr
		return
	}
	s.lastErr = nil
}

// persistTags mirrors the tags collection. Same policy as persistNotes.
func (s *Store) persistTags() {
	if serr := s.adapter.WriteTags(s.tags); serr != nil {
		s.logger.Warn("failed to persist tags", "error", serr)
		s.lastErr = serr
		return
	}
	s.lastErr = nil
}
