package store

import (
	"context"

	"github.com/aretw0/lifecycle"

	"inkpad/pkg/core"
)

// ApplyEvent reacts to an externally-originated storage change by re-reading
// the affected collection and rebuilding the derived lookups. The durable
// state is the authority here: a DELETE (key removed in another instance)
// naturally reads back as the empty/default collection, so the in-memory
// state resets instead of crashing. Conflicts are last-write-wins by design.
func (s *Store) ApplyEvent(e core.Event) {
	switch e.Collection {
	case core.CollectionNotes:
		notes, serr := s.adapter.ReadNotes()
		if serr != nil {
			s.logger.Warn("failed to rehydrate notes", "error", serr)
			return
		}
		s.mu.Lock()
		s.notes = notes
		if s.activeID != "" {
			if _, ok := findNote(notes, s.activeID); !ok {
				s.activeID = ""
			}
		}
		s.rebuildIndexes()
		s.mu.Unlock()

	case core.CollectionTags:
		tags, serr := s.adapter.ReadTags()
		if serr != nil {
			s.logger.Warn("failed to rehydrate tags", "error", serr)
			return
		}
		s.mu.Lock()
		s.tags = tags
		s.rebuildIndexes()
		s.mu.Unlock()

	default:
		return
	}

	s.notify()
}

// WatchExternal pumps adapter change events into ApplyEvent until ctx is
// cancelled. It returns an error if the backend cannot be watched.
func (s *Store) WatchExternal(ctx context.Context) error {
	events, err := s.adapter.Watch(ctx, 0)
	if err != nil {
		return err
	}

	lifecycle.Go(ctx, func(ctx context.Context) error {
		for {
			select {
			case <-ctx.Done():
				return nil
			case e, ok := <-events:
				if !ok {
					return nil
				}
				s.ApplyEvent(e)
			}
		}
	})

	return nil
}

func findNote(notes []core.Note, id string) (core.Note, bool) {
	for _, n := range notes {
		if n.ID == id {
			return n, true
		}
	}
	return core.Note{}, false
}
