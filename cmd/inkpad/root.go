package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"inkpad/internal/config"
	"inkpad/internal/platform"
	"inkpad/pkg/store"
)

var (
	verbose    bool
	dataDir    string
	configPath string

	cfg config.Config
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "inkpad",
	Short: "A local-first Markdown note store with tags and search",
	Long: `Inkpad keeps Markdown notes and tags in a local data directory.
Notes live in memory while you work and every change is mirrored to disk,
so other inkpad instances pointed at the same directory stay in sync.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level := slog.LevelInfo
		if verbose {
			level = slog.LevelDebug
		}

		opts := &slog.HandlerOptions{
			Level: level,
		}
		logger := slog.New(slog.NewTextHandler(os.Stderr, opts))
		slog.SetDefault(logger)

		var err error
		cfg, err = config.Load(configPath)
		if err != nil {
			fatal("Failed to load config", err)
		}
		if dataDir != "" {
			cfg.DataDir = dataDir
		}
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

// openStore assembles a hydrated store from the resolved configuration.
func openStore() *store.Store {
	st, err := platform.New(cfg.DataDir,
		platform.WithLogger(slog.Default()),
		platform.WithCombinedState(cfg.CombinedState),
	)
	if err != nil {
		fatal("Failed to open note store", err)
	}
	return st
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&dataDir, "data", "", "Data directory (default ~/.inkpad)")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file path")
}
