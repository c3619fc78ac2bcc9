package store

import (
	"github.com/aretw0/introspection"
)

// StoreState exposes internal state for observability.
type StoreState struct {
	Notes       int  `json:"notes"`
	Tags        int  `json:"tags"`
	Filtered    int  `json:"filtered"`
	Subscribers int  `json:"subscribers"`
	Dirty       bool `json:"dirty"` // true while the last persist failed
}

// State implements introspection.Introspectable.
func (s *Store) State() any {
	s.mu.RLock()
	notes := len(s.notes)
	tags := len(s.tags)
	dirty := s.lastErr != nil
	s.mu.RUnlock()

	s.subMu.Lock()
	subs := len(s.subs)
	s.subMu.Unlock()

	return StoreState{
		Notes:       notes,
		Tags:        tags,
		Filtered:    len(s.FilteredNotes()),
		Subscribers: subs,
		Dirty:       dirty,
	}
}

// ComponentType implements introspection.Component.
func (s *Store) ComponentType() string {
	return "store"
}

var _ introspection.Introspectable = (*Store)(nil)
var _ introspection.Component = (*Store)(nil)
