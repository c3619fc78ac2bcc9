package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var exportFormat string

var exportCmd = &cobra.Command{
	Use:   "export [file]",
	Short: "Export all notes and tags as a single snapshot",
	Long: `Export writes every note and tag as one document, suitable for backup
or for importing into another data directory. With no file argument the
snapshot goes to stdout.`,
	Args: cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		st := openStore()

		snap, serr := st.Adapter().ExportAll()
		if serr != nil {
			fatal("Failed to export", serr)
		}

		var (
			data []byte
			err  error
		)
		switch exportFormat {
		case "json":
			data, err = json.MarshalIndent(snap, "", "  ")
		case "yaml":
			data, err = yaml.Marshal(snap)
		default:
			fmt.Fprintf(os.Stderr, "Unknown format %q (want json or yaml)\n", exportFormat)
			os.Exit(1)
		}
		if err != nil {
			fatal("Failed to encode snapshot", err)
		}

		if len(args) == 0 {
			fmt.Println(string(data))
			return
		}
		if err := os.WriteFile(args[0], data, 0o644); err != nil {
			fatal("Failed to write snapshot file", err)
		}
		fmt.Printf("Exported %d notes and %d tags to %s\n", len(snap.Notes), len(snap.Tags), args[0])
	},
}

func init() {
	exportCmd.Flags().StringVar(&exportFormat, "format", "json", "Snapshot format (json or yaml)")
	rootCmd.AddCommand(exportCmd)
}
