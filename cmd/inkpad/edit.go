package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"inkpad/pkg/core"
	"inkpad/pkg/validate"
)

var (
	editTitle   string
	editContent string
	editStdin   bool
)

var editCmd = &cobra.Command{
	Use:   "edit <id>",
	Short: "Update a note's title or content",
	Long:  `Update only the provided fields of an existing note. Missing notes are never created.`,
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		var patch core.NotePatch

		if cmd.Flags().Changed("title") {
			if errs := validate.Note(validate.NoteInput{Title: editTitle}); errs != nil {
				fatal("Invalid note", errs)
			}
			patch.Title = &editTitle
		}
		if editStdin {
			data, err := io.ReadAll(os.Stdin)
			if err != nil {
				fatal("Failed to read stdin", err)
			}
			content := string(data)
			patch.Content = &content
		} else if cmd.Flags().Changed("content") {
			patch.Content = &editContent
		}

		if patch.Title == nil && patch.Content == nil {
			fmt.Fprintln(os.Stderr, "Nothing to update (pass --title, --content, or --stdin)")
			os.Exit(1)
		}

		st := openStore()
		if err := st.UpdateNote(args[0], patch); err != nil {
			if errors.Is(err, core.ErrNotFound) {
				fmt.Fprintf(os.Stderr, "Note not found: %s\n", args[0])
				os.Exit(1)
			}
			fatal("Failed to update note", err)
		}
		if serr := st.LastError(); serr != nil {
			fmt.Fprintf(os.Stderr, "Warning: edit kept in memory but not persisted: %v\n", serr)
		}

		fmt.Printf("Updated note %s\n", args[0])
	},
}

func init() {
	rootCmd.AddCommand(editCmd)
	editCmd.Flags().StringVar(&editTitle, "title", "", "New title")
	editCmd.Flags().StringVarP(&editContent, "content", "c", "", "New Markdown content")
	editCmd.Flags().BoolVar(&editStdin, "stdin", false, "Read new content from stdin")
}
