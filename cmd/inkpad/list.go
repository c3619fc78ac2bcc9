package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	listJSON   bool
	listSearch string
	listTags   []string
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List notes, most recent first",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		st := openStore()

		if listSearch != "" {
			st.SetQuery(listSearch)
		}
		for _, name := range listTags {
			tag, ok := st.TagByName(name)
			if !ok {
				fmt.Fprintf(os.Stderr, "Unknown tag: %s\n", name)
				os.Exit(1)
			}
			st.ToggleTagFilter(tag.ID)
		}

		notes := st.FilteredNotes()

		if listJSON {
			encoder := json.NewEncoder(os.Stdout)
			encoder.SetIndent("", "  ")
			if err := encoder.Encode(notes); err != nil {
				fatal("Failed to encode JSON", err)
			}
			return
		}

		for _, note := range notes {
			tags := ""
			for _, id := range note.Tags {
				if t, ok := st.TagByID(id); ok {
					tags += " #" + t.Name
				}
			}
			fmt.Printf("%s  %s%s\n", note.ID, note.Title, tags)
		}
	},
}

func init() {
	rootCmd.AddCommand(listCmd)
	listCmd.Flags().BoolVar(&listJSON, "json", false, "Output in JSON format")
	listCmd.Flags().StringVarP(&listSearch, "search", "s", "", "Substring search over title and content")
	listCmd.Flags().StringSliceVarP(&listTags, "tag", "t", nil, "Require tag (repeatable; all must match)")
}
