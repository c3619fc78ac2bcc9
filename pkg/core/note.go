// Note is the central entity of the domain.
package core

import (
	"time"

	"github.com/google/uuid"
)

// Note is a single Markdown note.
// Content is raw Markdown source; rendering is a presentation concern.
// Tags holds tag IDs in insertion order without duplicates. An ID that no
// longer resolves to a Tag is inert, not an error.
type Note struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Tags      []string  `json:"tags"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Tag is a named category with a display color.
// Color is displayed, never interpreted; validation of its format happens at
// the edit boundary (see pkg/validate), not here.
type Tag struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Color string `json:"color"`
}

// NotePatch carries a partial update. Nil fields are left untouched.
type NotePatch struct {
	Title   *string
	Content *string
	Tags    *[]string
}

// NewID generates a fresh opaque identifier.
// IDs are never reused, even after deletion.
func NewID() string {
	return uuid.NewString()
}

// HasTag reports whether the note carries the given tag ID.
func (n Note) HasTag(id string) bool {
	for _, t := range n.Tags {
		if t == id {
			return true
		}
	}
	return false
}

// WithoutTag returns the note's tag set minus the given ID.
// The original slice is not modified.
func (n Note) WithoutTag(id string) []string {
	out := make([]string, 0, len(n.Tags))
	for _, t := range n.Tags {
		if t != id {
			out = append(out, t)
		}
	}
	return out
}

// NormalizeTags removes empty and duplicate tag IDs, keeping order.
func NormalizeTags(ids []string) []string {
	seen := make(map[string]bool, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	return out
}
