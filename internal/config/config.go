// Package config loads application settings.
//
// Settings live in ~/.inkpad/config.yaml and can be overridden with
// INKPAD_-prefixed environment variables (e.g. INKPAD_THEME=light).
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"

	"inkpad/internal/platform"
)

// Config is the application configuration.
type Config struct {
	// DataDir is where durable note state lives.
	DataDir string `mapstructure:"data_dir" yaml:"data_dir"`
	// Theme selects the UI palette: "dark" or "light".
	Theme string `mapstructure:"theme" yaml:"theme"`
	// CombinedState stores both collections in a single blob.
	CombinedState bool `mapstructure:"combined_state" yaml:"combined_state"`
	// AutosaveDelayMS is the debounce window in milliseconds.
	AutosaveDelayMS int `mapstructure:"autosave_delay_ms" yaml:"autosave_delay_ms"`
	// WatchExternal enables rehydration on changes from other instances.
	WatchExternal bool `mapstructure:"watch_external" yaml:"watch_external"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		DataDir:         platform.DefaultDataDir(),
		Theme:           "dark",
		CombinedState:   false,
		AutosaveDelayMS: 1000,
		WatchExternal:   true,
	}
}

// AutosaveDelay returns the debounce window as a duration.
func (c Config) AutosaveDelay() time.Duration {
	if c.AutosaveDelayMS <= 0 {
		return time.Second
	}
	return time.Duration(c.AutosaveDelayMS) * time.Millisecond
}

// Load reads configuration from the given path, or the default location when
// path is empty. A missing file yields the defaults, not an error.
func Load(path string) (Config, error) {
	cfg := Default()

	v := viper.New()
	v.SetConfigType("yaml")
	v.SetEnvPrefix("INKPAD")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("data_dir", cfg.DataDir)
	v.SetDefault("theme", cfg.Theme)
	v.SetDefault("combined_state", cfg.CombinedState)
	v.SetDefault("autosave_delay_ms", cfg.AutosaveDelayMS)
	v.SetDefault("watch_external", cfg.WatchExternal)

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.AddConfigPath(platform.DefaultDataDir())
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !os.IsNotExist(err) {
			return cfg, fmt.Errorf("failed to read config: %w", err)
		}
		// No config file: defaults plus environment apply.
	}

	if err := v.Unmarshal(&cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse config: %w", err)
	}

	if cfg.Theme != "dark" && cfg.Theme != "light" {
		return cfg, fmt.Errorf("invalid theme %q (want dark or light)", cfg.Theme)
	}

	return cfg, nil
}

// Save writes the configuration to the default location.
func Save(cfg Config) error {
	dir := platform.DefaultDataDir()
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	v := viper.New()
	v.Set("data_dir", cfg.DataDir)
	v.Set("theme", cfg.Theme)
	v.Set("combined_state", cfg.CombinedState)
	v.Set("autosave_delay_ms", cfg.AutosaveDelayMS)
	v.Set("watch_external", cfg.WatchExternal)

	return v.WriteConfigAs(filepath.Join(dir, "config.yaml"))
}
