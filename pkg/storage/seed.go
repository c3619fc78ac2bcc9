package storage

import "inkpad/pkg/core"

// DefaultTags returns the fixed starter categories used when no tags have
// ever been persisted. IDs are stable so independent instances pointed at a
// fresh store agree on them.
func DefaultTags() []core.Tag {
	return []core.Tag{
		{ID: "seed-personal", Name: "personal", Color: "#10B981"},
		{ID: "seed-work", Name: "work", Color: "#3B82F6"},
		{ID: "seed-ideas", Name: "ideas", Color: "#F59E0B"},
	}
}
