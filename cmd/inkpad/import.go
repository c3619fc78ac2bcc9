package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"inkpad/pkg/storage"
)

var importCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Import a snapshot into the data directory",
	Long: `Import restores notes and tags from a snapshot produced by export.
A snapshot that carries only one collection leaves the other untouched.
The format is detected from the file extension (.json, .yaml, .yml).`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		st := openStore()

		data, err := os.ReadFile(args[0])
		if err != nil {
			fatal("Failed to read snapshot file", err)
		}

		var snap storage.Snapshot
		if strings.HasSuffix(args[0], ".yaml") || strings.HasSuffix(args[0], ".yml") {
			err = yaml.Unmarshal(data, &snap)
		} else {
			err = json.Unmarshal(data, &snap)
		}
		if err != nil {
			fatal("Failed to parse snapshot", err)
		}

		if serr := st.Adapter().ImportAll(snap); serr != nil {
			fatal("Failed to import snapshot", serr)
		}
		st.Hydrate()

		fmt.Printf("Imported %d notes and %d tags\n", len(snap.Notes), len(snap.Tags))
	},
}

func init() {
	rootCmd.AddCommand(importCmd)
}
