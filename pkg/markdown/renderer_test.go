package markdown_test

import (
	"strings"
	"testing"

	"inkpad/pkg/markdown"
)

func TestNewRenderer_Defaults(t *testing.T) {
	r, err := markdown.NewRenderer(0, "")
	if err != nil {
		t.Fatalf("NewRenderer failed: %v", err)
	}
	out := r.Render("# Heading\n\nbody")
	if out == "" {
		t.Error("expected rendered output")
	}
	if !strings.Contains(out, "Heading") {
		t.Errorf("rendered output should contain the heading text, got %q", out)
	}
}

func TestRenderer_NilIsSafe(t *testing.T) {
	var r *markdown.Renderer
	if got := r.Render("raw"); got != "raw" {
		t.Errorf("nil renderer should pass content through, got %q", got)
	}
}
