package lifecycle

import (
	"context"
	"testing"
	"time"

	"inkpad/pkg/core"
)

func TestSource_BridgesEvents(t *testing.T) {
	in := make(chan core.Event, 1)
	src := NewSource(in)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	if err := src.Start(ctx); err != nil {
		t.Fatalf("Start failed: %v", err)
	}

	want := core.Event{Type: core.EventModify, Collection: core.CollectionNotes, Timestamp: 42}
	in <- want

	select {
	case got := <-src.Events():
		if got.String() != want.String() {
			t.Errorf("expected %q, got %q", want.String(), got.String())
		}
	case <-ctx.Done():
		t.Fatal("timed out waiting for bridged event")
	}

	// Closing the input winds the bridge down and closes the output.
	close(in)
	select {
	case _, ok := <-src.Events():
		if ok {
			t.Error("expected closed output channel")
		}
	case <-ctx.Done():
		t.Fatal("timed out waiting for channel close")
	}
}
