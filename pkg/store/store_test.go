package store_test

import (
	"errors"
	"testing"

	"inkpad/pkg/core"
	"inkpad/pkg/storage"
	"inkpad/pkg/store"
)

// newTestStore builds a hydrated store over a fresh in-memory backend.
func newTestStore(t *testing.T) (*store.Store, *storage.MemoryBackend) {
	t.Helper()
	backend := storage.NewMemoryBackend(0)
	adapter := storage.NewAdapter(storage.Config{Backend: backend})
	s := store.New(adapter, nil)
	s.Hydrate()
	return s, backend
}

func TestStore_Hydrate(t *testing.T) {
	s, _ := newTestStore(t)

	if len(s.Notes()) != 0 {
		t.Error("fresh store should have no notes")
	}
	if len(s.Tags()) != len(storage.DefaultTags()) {
		t.Errorf("fresh store should carry the seed tags, got %d", len(s.Tags()))
	}
}

func TestStore_AddNote(t *testing.T) {
	s, _ := newTestStore(t)

	first := s.AddNote("First", "one", nil)
	second := s.AddNote("Second", "two", []string{"t1", "t1", ""})

	t.Run("Newest First", func(t *testing.T) {
		notes := s.Notes()
		if len(notes) != 2 {
			t.Fatalf("expected 2 notes, got %d", len(notes))
		}
		if notes[0].ID != second.ID || notes[1].ID != first.ID {
			t.Error("notes sequence should be most-recent-first")
		}
	})

	t.Run("Tags Are Normalized", func(t *testing.T) {
		if len(second.Tags) != 1 || second.Tags[0] != "t1" {
			t.Errorf("expected deduplicated tags, got %v", second.Tags)
		}
	})

	t.Run("Timestamps Are Set", func(t *testing.T) {
		if first.CreatedAt.IsZero() || !first.CreatedAt.Equal(first.UpdatedAt) {
			t.Errorf("new note should have CreatedAt == UpdatedAt, got %v / %v",
				first.CreatedAt, first.UpdatedAt)
		}
	})

	t.Run("Persisted Through Adapter", func(t *testing.T) {
		persisted, serr := s.Adapter().ReadNotes()
		if serr != nil {
			t.Fatalf("ReadNotes failed: %v", serr)
		}
		if len(persisted) != 2 {
			t.Errorf("expected 2 durable notes, got %d", len(persisted))
		}
	})
}

func TestStore_UpdateNote(t *testing.T) {
	s, _ := newTestStore(t)
	n := s.AddNote("Title", "content", []string{"t1"})

	t.Run("Partial Patch", func(t *testing.T) {
		title := "Renamed"
		if err := s.UpdateNote(n.ID, core.NotePatch{Title: &title}); err != nil {
			t.Fatalf("UpdateNote failed: %v", err)
		}
		got, _ := s.NoteByID(n.ID)
		if got.Title != "Renamed" {
			t.Errorf("title not updated: %q", got.Title)
		}
		if got.Content != "content" || len(got.Tags) != 1 {
			t.Error("untouched fields must survive a partial patch")
		}
		if !got.UpdatedAt.After(n.UpdatedAt) && !got.UpdatedAt.Equal(n.UpdatedAt) {
			t.Error("UpdatedAt should be refreshed")
		}
		if !got.CreatedAt.Equal(n.CreatedAt) {
			t.Error("CreatedAt must never change on update")
		}
	})

	t.Run("Missing ID", func(t *testing.T) {
		title := "x"
		err := s.UpdateNote("no-such-id", core.NotePatch{Title: &title})
		if !errors.Is(err, core.ErrNotFound) {
			t.Errorf("expected ErrNotFound, got %v", err)
		}
		if len(s.Notes()) != 1 {
			t.Error("a failed update must not create a note")
		}
	})
}

func TestStore_DeleteNote(t *testing.T) {
	s, _ := newTestStore(t)
	n := s.AddNote("Doomed", "", nil)
	s.SelectNote(n.ID)

	if err := s.DeleteNote(n.ID); err != nil {
		t.Fatalf("DeleteNote failed: %v", err)
	}
	if len(s.Notes()) != 0 {
		t.Error("note should be gone")
	}
	if _, ok := s.ActiveNote(); ok {
		t.Error("deleting the active note must clear the selection")
	}

	// A second delete of the same id reports not found.
	if err := s.DeleteNote(n.ID); !errors.Is(err, core.ErrNotFound) {
		t.Errorf("expected ErrNotFound on repeat delete, got %v", err)
	}
}

func TestStore_Selection(t *testing.T) {
	s, _ := newTestStore(t)
	n := s.AddNote("Picked", "", nil)

	s.SelectNote(n.ID)
	if got, ok := s.ActiveNote(); !ok || got.ID != n.ID {
		t.Error("selection did not stick")
	}

	// An id that no longer resolves clears the selection.
	s.SelectNote("gone")
	if _, ok := s.ActiveNote(); ok {
		t.Error("unknown id should clear the selection")
	}
}

func TestStore_DeleteTag_Cascades(t *testing.T) {
	s, _ := newTestStore(t)
	tag := s.AddTag("work", "#3B82F6")
	keep := s.AddTag("keep", "#10B981")
	n := s.AddNote("Tagged", "", []string{tag.ID, keep.ID})

	if err := s.DeleteTag(tag.ID); err != nil {
		t.Fatalf("DeleteTag failed: %v", err)
	}

	got, _ := s.NoteByID(n.ID)
	if got.HasTag(tag.ID) {
		t.Error("deleted tag id must be stripped from notes")
	}
	if !got.HasTag(keep.ID) {
		t.Error("other tag ids must survive the cascade")
	}
	if !got.UpdatedAt.After(n.UpdatedAt) && !got.UpdatedAt.Equal(n.UpdatedAt) {
		t.Error("cascade should refresh the note's UpdatedAt")
	}

	// Both collections are durable after the cascade.
	notes, _ := s.Adapter().ReadNotes()
	if notes[0].HasTag(tag.ID) {
		t.Error("cascade must be persisted")
	}

	if err := s.DeleteTag(tag.ID); !errors.Is(err, core.ErrNotFound) {
		t.Errorf("expected ErrNotFound on repeat delete, got %v", err)
	}
}

func TestStore_Filtering(t *testing.T) {
	s, _ := newTestStore(t)
	work := s.AddTag("work", "")
	home := s.AddTag("home", "")

	s.AddNote("Quarterly Report", "numbers", []string{work.ID})
	s.AddNote("Grocery List", "milk and BREAD", []string{home.ID})
	s.AddNote("Team Offsite", "plan the agenda", []string{work.ID, home.ID})

	t.Run("Query Is Case Insensitive", func(t *testing.T) {
		s.SetQuery("bread")
		got := s.FilteredNotes()
		if len(got) != 1 || got[0].Title != "Grocery List" {
			t.Errorf("unexpected result: %+v", got)
		}
	})

	t.Run("Tag Filters Are Conjunctive", func(t *testing.T) {
		s.ClearFilters()
		s.ToggleTagFilter(work.ID)
		s.ToggleTagFilter(home.ID)
		got := s.FilteredNotes()
		if len(got) != 1 || got[0].Title != "Team Offsite" {
			t.Errorf("expected only the note carrying both tags, got %+v", got)
		}
	})

	t.Run("Toggle Removes A Selected Tag", func(t *testing.T) {
		s.ToggleTagFilter(home.ID)
		f := s.Filter()
		if len(f.TagIDs) != 1 || f.TagIDs[0] != work.ID {
			t.Errorf("unexpected filter state: %+v", f)
		}
	})

	t.Run("Order Is Preserved", func(t *testing.T) {
		s.ClearFilters()
		got := s.FilteredNotes()
		if len(got) != 3 {
			t.Fatalf("expected all notes, got %d", len(got))
		}
		if got[0].Title != "Team Offsite" || got[2].Title != "Quarterly Report" {
			t.Error("filtering must not reorder the sequence")
		}
	})

	t.Run("Clear Resets Everything", func(t *testing.T) {
		s.SetQuery("report")
		s.SetTagFilter([]string{work.ID})
		s.ClearFilters()
		if !s.Filter().IsZero() {
			t.Error("ClearFilters should reset to the zero filter")
		}
	})
}

func TestStore_OptimisticWrites(t *testing.T) {
	backend := storage.NewMemoryBackend(0)
	adapter := storage.NewAdapter(storage.Config{Backend: backend})
	s := store.New(adapter, nil)
	s.Hydrate()

	backend.FailWrites = true
	n := s.AddNote("Unpersisted", "still here", nil)

	t.Run("Edit Survives Persistence Failure", func(t *testing.T) {
		if got, ok := s.NoteByID(n.ID); !ok || got.Title != "Unpersisted" {
			t.Error("in-memory state must keep the edit")
		}
	})

	t.Run("Failure Is Recorded", func(t *testing.T) {
		if s.LastError() == nil {
			t.Error("persistence failure should be observable via LastError")
		}
	})

	t.Run("Next Success Clears The Record", func(t *testing.T) {
		backend.FailWrites = false
		s.AddNote("Persisted", "", nil)
		if s.LastError() != nil {
			t.Errorf("LastError should clear on success, got %v", s.LastError())
		}
	})
}

func TestStore_Subscribe(t *testing.T) {
	s, _ := newTestStore(t)

	calls := 0
	unsubscribe := s.Subscribe(func() { calls++ })

	s.AddNote("One", "", nil)
	s.SetQuery("o")
	if calls != 2 {
		t.Errorf("expected 2 notifications, got %d", calls)
	}

	unsubscribe()
	s.AddNote("Two", "", nil)
	if calls != 2 {
		t.Errorf("unsubscribed listener must not fire, got %d calls", calls)
	}
}

func TestStore_ApplyEvent(t *testing.T) {
	backend := storage.NewMemoryBackend(0)
	adapter := storage.NewAdapter(storage.Config{Backend: backend})
	s := store.New(adapter, nil)
	s.Hydrate()

	n := s.AddNote("Mine", "", nil)
	s.SelectNote(n.ID)

	// A second instance sharing the backend rewrites the notes collection.
	other := store.New(storage.NewAdapter(storage.Config{Backend: backend}), nil)
	other.Hydrate()
	_ = other.DeleteNote(n.ID)
	theirs := other.AddNote("Theirs", "", nil)

	t.Run("Modify Rehydrates The Collection", func(t *testing.T) {
		s.ApplyEvent(core.Event{Type: core.EventModify, Collection: core.CollectionNotes})
		notes := s.Notes()
		if len(notes) != 1 || notes[0].ID != theirs.ID {
			t.Errorf("expected the external state, got %+v", notes)
		}
	})

	t.Run("Dangling Selection Is Cleared", func(t *testing.T) {
		if _, ok := s.ActiveNote(); ok {
			t.Error("selection of an externally deleted note must reset")
		}
	})

	t.Run("Key Removal Resets To Defaults", func(t *testing.T) {
		_ = s.Adapter().ClearAll()
		s.ApplyEvent(core.Event{Type: core.EventDelete, Collection: core.CollectionNotes})
		s.ApplyEvent(core.Event{Type: core.EventDelete, Collection: core.CollectionTags})

		if len(s.Notes()) != 0 {
			t.Error("notes should reset to empty")
		}
		if len(s.Tags()) != len(storage.DefaultTags()) {
			t.Error("tags should reset to the seeds")
		}
	})

	t.Run("Filter Survives Rehydration", func(t *testing.T) {
		s.SetQuery("keep me")
		s.ApplyEvent(core.Event{Type: core.EventModify, Collection: core.CollectionNotes})
		if s.Filter().Query != "keep me" {
			t.Error("ephemeral filter state must not be touched by events")
		}
	})
}

func TestStore_Introspection(t *testing.T) {
	s, _ := newTestStore(t)
	s.AddNote("One", "", nil)

	if s.ComponentType() != "store" {
		t.Errorf("unexpected component type %q", s.ComponentType())
	}

	state, ok := s.State().(store.StoreState)
	if !ok {
		t.Fatalf("unexpected state shape %T", s.State())
	}
	if state.Notes != 1 {
		t.Errorf("expected 1 note in state, got %d", state.Notes)
	}
	if state.Tags != len(storage.DefaultTags()) {
		t.Errorf("expected seed tag count, got %d", state.Tags)
	}
}
