package validate_test

import (
	"strings"
	"testing"

	"inkpad/pkg/validate"
)

func TestNote(t *testing.T) {
	t.Run("Accepts Reasonable Input", func(t *testing.T) {
		errs := validate.Note(validate.NoteInput{Title: "A note", Content: "body"})
		if errs != nil {
			t.Errorf("expected no errors, got %v", errs)
		}
	})

	t.Run("Rejects Empty Title", func(t *testing.T) {
		errs := validate.Note(validate.NoteInput{Title: "   "})
		if len(errs) != 1 || errs[0].Field != "title" {
			t.Errorf("expected one title error, got %v", errs)
		}
	})

	t.Run("Rejects Oversized Title", func(t *testing.T) {
		long := strings.Repeat("x", validate.MaxTitleLen+1)
		errs := validate.Note(validate.NoteInput{Title: long})
		if len(errs) != 1 {
			t.Fatalf("expected one error, got %v", errs)
		}
	})
}

func TestTag(t *testing.T) {
	t.Run("Accepts Name And Color", func(t *testing.T) {
		errs := validate.Tag(validate.TagInput{Name: "work", Color: "#3B82F6"})
		if errs != nil {
			t.Errorf("expected no errors, got %v", errs)
		}
	})

	t.Run("Color Is Optional", func(t *testing.T) {
		errs := validate.Tag(validate.TagInput{Name: "work"})
		if errs != nil {
			t.Errorf("expected no errors, got %v", errs)
		}
	})

	t.Run("Rejects Malformed Color", func(t *testing.T) {
		for _, color := range []string{"3B82F6", "#3B82F", "#GGGGGG", "blue"} {
			errs := validate.Tag(validate.TagInput{Name: "work", Color: color})
			if len(errs) != 1 || errs[0].Field != "color" {
				t.Errorf("color %q: expected one color error, got %v", color, errs)
			}
		}
	})

	t.Run("Collects Multiple Errors", func(t *testing.T) {
		errs := validate.Tag(validate.TagInput{Name: "", Color: "nope"})
		if len(errs) != 2 {
			t.Fatalf("expected two errors, got %v", errs)
		}
		msg := errs.Error()
		if !strings.Contains(msg, ";") {
			t.Errorf("aggregate message should join fields, got %q", msg)
		}
	})
}
