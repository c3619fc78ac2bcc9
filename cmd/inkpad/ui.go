package main

import (
	"log/slog"

	"github.com/spf13/cobra"

	"inkpad/internal/tui"
)

var uiCmd = &cobra.Command{
	Use:   "ui",
	Short: "Open the interactive note browser and editor",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		st := openStore()

		if err := tui.Run(st, cfg, slog.Default()); err != nil {
			fatal("UI exited with an error", err)
		}
	},
}

func init() {
	rootCmd.AddCommand(uiCmd)
}
