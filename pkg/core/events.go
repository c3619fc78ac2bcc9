package core

import "fmt"

// Collection names the two persisted collections.
type Collection string

const (
	CollectionNotes Collection = "notes"
	CollectionTags  Collection = "tags"
)

// EventType represents the type of an externally observed change.
type EventType string

const (
	EventModify EventType = "MODIFY"
	EventDelete EventType = "DELETE"
)

// Event represents a change to the durable state made outside this process
// (another instance writing to the same storage). A DELETE event means the
// collection's key was removed and readers must fall back to defaults.
type Event struct {
	Type       EventType
	Collection Collection
	Timestamp  int64 // Unix timestamp
}

// String implements fmt.Stringer (and the lifecycle Event contract).
func (e Event) String() string {
	return fmt.Sprintf("%s %s", e.Type, e.Collection)
}
