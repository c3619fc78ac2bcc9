package storage

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func newTestFileBackend(t *testing.T) *FileBackend {
	t.Helper()
	f, err := NewFileBackend(FileConfig{Dir: t.TempDir()})
	if err != nil {
		t.Fatalf("NewFileBackend failed: %v", err)
	}
	return f
}

func TestFileBackend_RoundTrip(t *testing.T) {
	f := newTestFileBackend(t)

	if _, ok, _ := f.Get("notes"); ok {
		t.Error("missing key should report absence")
	}

	if err := f.Set("notes", `[{"id":"n1"}]`); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	v, ok, err := f.Get("notes")
	if err != nil || !ok {
		t.Fatalf("Get returned (%v, %v)", ok, err)
	}
	if v != `[{"id":"n1"}]` {
		t.Errorf("unexpected value %q", v)
	}

	// The blob lives as a file other instances can read directly.
	if _, err := os.Stat(filepath.Join(f.Dir(), "notes.json")); err != nil {
		t.Errorf("expected notes.json on disk: %v", err)
	}

	if err := f.Remove("notes"); err != nil {
		t.Fatalf("Remove failed: %v", err)
	}
	if _, ok, _ := f.Get("notes"); ok {
		t.Error("removed key should report absence")
	}
	if err := f.Remove("notes"); err != nil {
		t.Errorf("removing an absent key should be a no-op, got %v", err)
	}
}

func TestFileBackend_KeyFromPath(t *testing.T) {
	f := newTestFileBackend(t)

	cases := []struct {
		path string
		want string
	}{
		{filepath.Join(f.Dir(), "notes.json"), "notes"},
		{filepath.Join(f.Dir(), "state.json"), "state"},
		{filepath.Join(f.Dir(), TempFilePrefix+"12345"), ""},
		{filepath.Join(f.Dir(), "README.md"), ""},
	}
	for _, c := range cases {
		if got := f.keyFromPath(c.path); got != c.want {
			t.Errorf("keyFromPath(%q) = %q, want %q", c.path, got, c.want)
		}
	}
}

func TestFileBackend_Watch(t *testing.T) {
	f := newTestFileBackend(t)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	events, err := f.Watch(ctx, "*")
	if err != nil {
		t.Fatalf("Watch failed: %v", err)
	}

	// Give the watcher a moment to attach before writing.
	time.Sleep(100 * time.Millisecond)

	t.Run("Modification Emits Event", func(t *testing.T) {
		if err := f.Set("notes", "[]"); err != nil {
			t.Fatalf("Set failed: %v", err)
		}

		select {
		case e := <-events:
			if e.Key != "notes" {
				t.Errorf("expected key 'notes', got %q", e.Key)
			}
			if e.Removed {
				t.Error("write should not read as removal")
			}
		case <-ctx.Done():
			t.Fatal("timed out waiting for modify event")
		}
	})

	t.Run("Removal Emits Removed Event", func(t *testing.T) {
		if err := f.Remove("notes"); err != nil {
			t.Fatalf("Remove failed: %v", err)
		}

		select {
		case e := <-events:
			if e.Key != "notes" {
				t.Errorf("expected key 'notes', got %q", e.Key)
			}
			if !e.Removed {
				t.Error("deletion should read as removal")
			}
		case <-ctx.Done():
			t.Fatal("timed out waiting for remove event")
		}
	})

	t.Run("Channel Closes On Cancel", func(t *testing.T) {
		cancel()
		deadline := time.After(2 * time.Second)
		for {
			select {
			case _, ok := <-events:
				if !ok {
					return
				}
			case <-deadline:
				t.Fatal("channel did not close after cancel")
			}
		}
	})
}
