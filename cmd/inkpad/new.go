package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"inkpad/pkg/validate"
)

var (
	newContent string
	newStdin   bool
	newTags    []string
)

// newCmd represents the new command
var newCmd = &cobra.Command{
	Use:   "new <title>",
	Short: "Create a note",
	Long:  `Create a note with the given title, optional Markdown content, and tag names.`,
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		title := args[0]

		content := newContent
		if newStdin {
			data, err := io.ReadAll(os.Stdin)
			if err != nil {
				fatal("Failed to read stdin", err)
			}
			content = string(data)
		}

		if errs := validate.Note(validate.NoteInput{Title: title, Content: content}); errs != nil {
			fatal("Invalid note", errs)
		}

		st := openStore()

		// Tag names resolve to existing tags; unknown names are created on
		// the fly with no color.
		var tagIDs []string
		for _, name := range newTags {
			name = strings.TrimSpace(name)
			if name == "" {
				continue
			}
			if errs := validate.Tag(validate.TagInput{Name: name}); errs != nil {
				fatal("Invalid tag", errs)
			}
			tag, ok := st.TagByName(name)
			if !ok {
				tag = st.AddTag(name, "")
			}
			tagIDs = append(tagIDs, tag.ID)
		}

		note := st.AddNote(title, content, tagIDs)
		if serr := st.LastError(); serr != nil {
			fmt.Fprintf(os.Stderr, "Warning: note kept in memory but not persisted: %v\n", serr)
		}

		fmt.Printf("Created note %s\n", note.ID)
	},
}

func init() {
	rootCmd.AddCommand(newCmd)
	newCmd.Flags().StringVarP(&newContent, "content", "c", "", "Markdown content")
	newCmd.Flags().BoolVar(&newStdin, "stdin", false, "Read content from stdin")
	newCmd.Flags().StringSliceVarP(&newTags, "tags", "t", nil, "Tag names (created if missing)")
}
