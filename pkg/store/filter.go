package store

import "inkpad/pkg/core"

// Filter mutators touch only ephemeral state; nothing here persists.

// SetQuery replaces the free-text search query.
func (s *Store) SetQuery(q string) {
	s.mu.Lock()
	s.filter.Query = q
	s.mu.Unlock()
	s.notify()
}

// SetTagFilter replaces the selected tag set.
func (s *Store) SetTagFilter(ids []string) {
	s.mu.Lock()
	s.filter.TagIDs = core.NormalizeTags(ids)
	s.mu.Unlock()
	s.notify()
}

// ToggleTagFilter adds the id to the selected set, or removes it if present.
func (s *Store) ToggleTagFilter(id string) {
	s.mu.Lock()
	found := false
	next := make([]string, 0, len(s.filter.TagIDs))
	for _, t := range s.filter.TagIDs {
		if t == id {
			found = true
			continue
		}
		next = append(next, t)
	}
	if !found {
		next = append(next, id)
	}
	s.filter.TagIDs = next
	s.mu.Unlock()
	s.notify()
}

// ClearFilters resets query and tag selection.
func (s *Store) ClearFilters() {
	s.mu.Lock()
	s.filter = core.Filter{}
	s.mu.Unlock()
	s.notify()
}

// Filter returns the current filter state.
func (s *Store) Filter() core.Filter {
	s.mu.RLock()
	defer s.mu.RUnlock()
	f := s.filter
	f.TagIDs = append([]string(nil), s.filter.TagIDs...)
	return f
}

// FilteredNotes applies the current filter to the notes sequence, preserving
// its order. See core.Filter.Matches for the matching rules.
func (s *Store) FilteredNotes() []core.Note {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.filter.IsZero() {
		out := make([]core.Note, len(s.notes))
		copy(out, s.notes)
		return out
	}

	out := make([]core.Note, 0, len(s.notes))
	for _, n := range s.notes {
		if s.filter.Matches(n) {
			out = append(out, n)
		}
	}
	return out
}
