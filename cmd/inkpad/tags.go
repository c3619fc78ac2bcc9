package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"inkpad/pkg/core"
	"inkpad/pkg/validate"
)

var tagColor string

var tagsCmd = &cobra.Command{
	Use:   "tags",
	Short: "Manage tags",
}

var tagsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all tags",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		st := openStore()

		tags := st.Tags()
		if len(tags) == 0 {
			fmt.Println("No tags.")
			return
		}
		for _, t := range tags {
			fmt.Printf("%s  %s  %s\n", t.ID, t.Color, t.Name)
		}
	},
}

var tagsAddCmd = &cobra.Command{
	Use:   "add <name>",
	Short: "Create a tag",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		st := openStore()

		in := validate.TagInput{Name: args[0], Color: tagColor}
		if errs := validate.Tag(in); errs != nil {
			fmt.Fprintf(os.Stderr, "Invalid tag: %s\n", errs.Error())
			os.Exit(1)
		}
		if _, ok := st.TagByName(args[0]); ok {
			fmt.Fprintf(os.Stderr, "Tag already exists: %s\n", args[0])
			os.Exit(1)
		}

		tag := st.AddTag(args[0], tagColor)
		if werr := st.LastError(); werr != nil {
			fmt.Fprintf(os.Stderr, "Warning: tag created but not persisted: %v\n", werr)
		}
		fmt.Printf("Created tag %s (%s)\n", tag.Name, tag.ID)
	},
}

var tagsRmCmd = &cobra.Command{
	Use:   "rm <name-or-id>",
	Short: "Delete a tag and detach it from every note",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		st := openStore()

		id := args[0]
		if tag, ok := st.TagByName(args[0]); ok {
			id = tag.ID
		}

		if err := st.DeleteTag(id); err != nil {
			if errors.Is(err, core.ErrNotFound) {
				fmt.Fprintf(os.Stderr, "Tag not found: %s\n", args[0])
				os.Exit(1)
			}
			fatal("Failed to delete tag", err)
		}

		fmt.Printf("Deleted tag %s\n", args[0])
	},
}

func init() {
	tagsAddCmd.Flags().StringVar(&tagColor, "color", "#6B7280", "Tag color as #RRGGBB")

	tagsCmd.AddCommand(tagsListCmd)
	tagsCmd.AddCommand(tagsAddCmd)
	tagsCmd.AddCommand(tagsRmCmd)
	rootCmd.AddCommand(tagsCmd)
}
