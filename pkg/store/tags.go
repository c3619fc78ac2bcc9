package store

import "inkpad/pkg/core"

// AddTag creates a tag and appends it to the tags sequence.
func (s *Store) AddTag(name, color string) core.Tag {
	tag := core.Tag{
		ID:    core.NewID(),
		Name:  name,
		Color: color,
	}

	s.mu.Lock()
	s.tags = append(s.tags, tag)
	s.tagIndex[tag.ID] = len(s.tags) - 1
	s.persistTags()
	s.mu.Unlock()

	s.notify()
	return tag
}

// DeleteTag removes a tag and strips its id from every note's tag set in the
// same logical operation, so observers never see a half-applied cascade.
// Both collections are persisted. Missing ids return core.ErrNotFound.
func (s *Store) DeleteTag(id string) error {
	s.mu.Lock()
	i, ok := s.tagIndex[id]
	if !ok {
		s.mu.Unlock()
		return core.ErrNotFound
	}

	s.tags = append(s.tags[:i], s.tags[i+1:]...)
	for j, n := range s.notes {
		if n.HasTag(id) {
			s.notes[j].Tags = n.WithoutTag(id)
			s.notes[j].UpdatedAt = now()
		}
	}
	s.rebuildIndexes()
	s.persistTags()
	s.persistNotes()
	s.mu.Unlock()

	s.notify()
	return nil
}

// Tags returns the tags sequence in insertion order.
func (s *Store) Tags() []core.Tag {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]core.Tag, len(s.tags))
	copy(out, s.tags)
	return out
}

// TagByID looks a tag up via the id index.
func (s *Store) TagByID(id string) (core.Tag, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	i, ok := s.tagIndex[id]
	if !ok {
		return core.Tag{}, false
	}
	return s.tags[i], true
}

// TagByName finds a tag by exact name. Handy for CLI lookups.
func (s *Store) TagByName(name string) (core.Tag, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, t := range s.tags {
		if t.Name == name {
			return t, true
		}
	}
	return core.Tag{}, false
}
