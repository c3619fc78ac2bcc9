// Package tui is the interactive split-pane interface: a note list with a
// Markdown preview on one side and a debounced-autosave editor on the other.
package tui

import (
	"context"
	"fmt"
	"log/slog"

	tea "github.com/charmbracelet/bubbletea"

	"inkpad/internal/config"
	"inkpad/pkg/autosave"
	"inkpad/pkg/markdown"
	"inkpad/pkg/store"
)

// Run starts the interactive UI on the given store and blocks until the user
// quits. External changes to the data directory are folded in live when the
// configuration enables watching.
func Run(st *store.Store, cfg config.Config, logger *slog.Logger) error {
	renderer, err := markdown.NewRenderer(80, cfg.Theme)
	if err != nil {
		return fmt.Errorf("failed to build renderer: %w", err)
	}

	// One channel carries every wake-up: store mutations, autosave status
	// transitions, and rehydration after external edits. Sends are
	// non-blocking; a full channel means a refresh is already pending.
	changes := make(chan struct{}, 1)
	notify := func() {
		select {
		case changes <- struct{}{}:
		default:
		}
	}

	unsubscribe := st.Subscribe(notify)
	defer unsubscribe()

	saver := autosave.New(st,
		autosave.WithDelay(cfg.AutosaveDelay()),
		autosave.WithLogger(logger),
		autosave.WithOnChange(notify),
	)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if cfg.WatchExternal {
		if err := st.WatchExternal(ctx); err != nil {
			logger.Warn("external watch unavailable", "error", err)
		}
	}

	model := newModel(st, saver, renderer, changes)
	p := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("failed to run UI: %w", err)
	}

	saver.SaveNow()
	return nil
}
