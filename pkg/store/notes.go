package store

import (
	"time"

	"inkpad/pkg/core"
)

// now is indirected so tests can pin timestamps.
var now = time.Now

// AddNote creates a note and prepends it, so the notes sequence stays
// most-recent-first. The created note is returned so the caller can navigate
// to it. Persistence failure does not undo the creation (see package doc).
func (s *Store) AddNote(title, content string, tagIDs []string) core.Note {
	ts := now()
	note := core.Note{
		ID:        core.NewID(),
		Title:     title,
		Content:   content,
		Tags:      core.NormalizeTags(tagIDs),
		CreatedAt: ts,
		UpdatedAt: ts,
	}

	s.mu.Lock()
	s.notes = append([]core.Note{note}, s.notes...)
	s.rebuildIndexes()
	s.persistNotes()
	s.mu.Unlock()

	s.notify()
	return note
}

// UpdateNote merges the provided fields into an existing note and refreshes
// UpdatedAt. It returns core.ErrNotFound for a missing id; a missing note is
// never created implicitly. The note keeps its position in the sequence.
func (s *Store) UpdateNote(id string, patch core.NotePatch) error {
	s.mu.Lock()
	i, ok := s.noteIndex[id]
	if !ok {
		s.mu.Unlock()
		return core.ErrNotFound
	}

	n := s.notes[i]
	if patch.Title != nil {
		n.Title = *patch.Title
	}
	if patch.Content != nil {
		n.Content = *patch.Content
	}
	if patch.Tags != nil {
		n.Tags = core.NormalizeTags(*patch.Tags)
	}
	n.UpdatedAt = now()
	s.notes[i] = n

	s.persistNotes()
	s.mu.Unlock()

	s.notify()
	return nil
}

// DeleteNote removes a note. Deleting a missing id returns core.ErrNotFound
// and leaves the sequence unchanged. If the note was the active selection,
// the selection is cleared.
func (s *Store) DeleteNote(id string) error {
	s.mu.Lock()
	i, ok := s.noteIndex[id]
	if !ok {
		s.mu.Unlock()
		return core.ErrNotFound
	}

	s.notes = append(s.notes[:i], s.notes[i+1:]...)
	if s.activeID == id {
		s.activeID = ""
	}
	s.rebuildIndexes()
	s.persistNotes()
	s.mu.Unlock()

	s.notify()
	return nil
}

// Notes returns the notes sequence, most-recent-first.
func (s *Store) Notes() []core.Note {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]core.Note, len(s.notes))
	copy(out, s.notes)
	return out
}

// NoteByID looks a note up via the id index.
func (s *Store) NoteByID(id string) (core.Note, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	i, ok := s.noteIndex[id]
	if !ok {
		return core.Note{}, false
	}
	return s.notes[i], true
}

// SelectNote marks a note as the active selection. An unknown id clears the
// selection, matching a route parameter that no longer resolves.
func (s *Store) SelectNote(id string) {
	s.mu.Lock()
	if _, ok := s.noteIndex[id]; ok {
		s.activeID = id
	} else {
		s.activeID = ""
	}
	s.mu.Unlock()

	s.notify()
}

// ActiveNote returns the currently selected note, if any.
func (s *Store) ActiveNote() (core.Note, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.activeID == "" {
		return core.Note{}, false
	}
	i, ok := s.noteIndex[s.activeID]
	if !ok {
		return core.Note{}, false
	}
	return s.notes[i], true
}
