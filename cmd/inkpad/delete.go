package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"inkpad/pkg/core"
)

var deleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a note",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		st := openStore()

		if err := st.DeleteNote(args[0]); err != nil {
			if errors.Is(err, core.ErrNotFound) {
				fmt.Fprintf(os.Stderr, "Note not found: %s\n", args[0])
				os.Exit(1)
			}
			fatal("Failed to delete note", err)
		}

		fmt.Printf("Deleted note %s\n", args[0])
	},
}

func init() {
	rootCmd.AddCommand(deleteCmd)
}
