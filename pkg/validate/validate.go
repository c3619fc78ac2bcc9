// Package validate gates user input before it reaches the store.
//
// Business rules (title length, color format) live here at the edit
// boundary; the store itself enforces only structural invariants. The
// functions are plain and free of any form binding, so both the CLI and the
// TUI consume the same rules.
package validate

import (
	"fmt"
	"regexp"
	"strings"
)

const (
	// MaxTitleLen caps note titles at the edit boundary.
	MaxTitleLen = 120
	// MaxTagNameLen caps tag names.
	MaxTagNameLen = 40
)

var colorPattern = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)

// FieldError describes a single rejected field.
type FieldError struct {
	Field   string
	Message string
}

func (e FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Errors aggregates every rejected field of one input.
type Errors []FieldError

func (e Errors) Error() string {
	parts := make([]string, len(e))
	for i, fe := range e {
		parts[i] = fe.Error()
	}
	return strings.Join(parts, "; ")
}

// NoteInput is a note as entered by the user.
type NoteInput struct {
	Title   string
	Content string
	Tags    []string
}

// TagInput is a tag as entered by the user.
type TagInput struct {
	Name  string
	Color string
}

// Note validates a note input. A nil return means the input is acceptable.
func Note(in NoteInput) Errors {
	var errs Errors
	title := strings.TrimSpace(in.Title)
	if title == "" {
		errs = append(errs, FieldError{Field: "title", Message: "must not be empty"})
	}
	if len(title) > MaxTitleLen {
		errs = append(errs, FieldError{
			Field:   "title",
			Message: fmt.Sprintf("must be at most %d characters", MaxTitleLen),
		})
	}
	return errs
}

// Tag validates a tag input.
func Tag(in TagInput) Errors {
	var errs Errors
	name := strings.TrimSpace(in.Name)
	if name == "" {
		errs = append(errs, FieldError{Field: "name", Message: "must not be empty"})
	}
	if len(name) > MaxTagNameLen {
		errs = append(errs, FieldError{
			Field:   "name",
			Message: fmt.Sprintf("must be at most %d characters", MaxTagNameLen),
		})
	}
	if in.Color != "" && !colorPattern.MatchString(in.Color) {
		errs = append(errs, FieldError{Field: "color", Message: "must match #RRGGBB"})
	}
	return errs
}
