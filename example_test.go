package inkpad_test

import (
	"fmt"
	"log"

	"inkpad"
	"inkpad/pkg/core"
)

// Example_basic demonstrates how to open a store, save a note, and read it back.
func Example_basic() {
	// An in-memory store keeps the example self-contained; pass a directory
	// path (and drop WithMemory) for durable state.
	st, err := inkpad.New("", inkpad.WithMemory(true))
	if err != nil {
		log.Fatal(err)
	}

	// 1. Create a note
	note := st.AddNote("Hello World", "This is my first note.", nil)

	// 2. Read it back
	got, ok := st.NoteByID(note.ID)
	if !ok {
		log.Fatal("note not found")
	}

	fmt.Printf("Found note: %s\n", got.Title)
	// Output:
	// Found note: Hello World
}

// Example_search demonstrates filtering with a query and a tag selection.
func Example_search() {
	st, err := inkpad.New("", inkpad.WithMemory(true),
		inkpad.WithSeedTags([]core.Tag{{ID: "t-work", Name: "work", Color: "#3B82F6"}}),
	)
	if err != nil {
		log.Fatal(err)
	}

	st.AddNote("Grocery List", "milk, bread", nil)
	st.AddNote("Standup Notes", "yesterday, today, blockers", []string{"t-work"})

	// Case-insensitive substring search combined with a tag filter.
	st.SetQuery("TODAY")
	st.ToggleTagFilter("t-work")

	for _, n := range st.FilteredNotes() {
		fmt.Println(n.Title)
	}
	// Output:
	// Standup Notes
}
