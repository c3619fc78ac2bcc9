package core

import "strings"

// Filter is the ephemeral search/filter state.
// It is never persisted and resets with the session.
type Filter struct {
	// Query is matched case-insensitively as a substring of title and content.
	Query string
	// TagIDs must ALL be present on a note for it to match (conjunctive).
	// Empty means "no tag filter".
	TagIDs []string
}

// IsZero reports whether the filter would match every note.
func (f Filter) IsZero() bool {
	return f.Query == "" && len(f.TagIDs) == 0
}

// Matches applies the filter to a single note.
//
// A note matches iff:
//  1. Query is empty, OR the lowercased query is a substring of the
//     lowercased title or content, AND
//  2. TagIDs is empty, OR every selected ID is in the note's tag set.
//
// No ranking is applied; callers preserve the notes sequence order.
func (f Filter) Matches(n Note) bool {
	if q := strings.ToLower(strings.TrimSpace(f.Query)); q != "" {
		title := strings.ToLower(n.Title)
		content := strings.ToLower(n.Content)
		if !strings.Contains(title, q) && !strings.Contains(content, q) {
			return false
		}
	}

	for _, id := range f.TagIDs {
		if !n.HasTag(id) {
			return false
		}
	}
	return true
}
