package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"inkpad/pkg/markdown"
)

var (
	showRaw   bool
	showWidth int
)

var showCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Print a note",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		st := openStore()

		note, ok := st.NoteByID(args[0])
		if !ok {
			fmt.Fprintf(os.Stderr, "Note not found: %s\n", args[0])
			os.Exit(1)
		}

		fmt.Printf("# %s\n\n", note.Title)

		if showRaw {
			fmt.Println(note.Content)
			return
		}

		r, err := markdown.NewRenderer(showWidth, cfg.Theme)
		if err != nil {
			// Styling is a nicety; fall back to the source.
			fmt.Println(note.Content)
			return
		}
		fmt.Print(r.Render(note.Content))
	},
}

func init() {
	rootCmd.AddCommand(showCmd)
	showCmd.Flags().BoolVar(&showRaw, "raw", false, "Print raw Markdown without styling")
	showCmd.Flags().IntVar(&showWidth, "width", 80, "Render width")
}
