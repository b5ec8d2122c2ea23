package tui

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/Veraticus/tally/internal/engine"
	"github.com/Veraticus/tally/internal/session"
	tea "github.com/charmbracelet/bubbletea"
)

// Run starts the interactive client and blocks until the user quits or ctx is cancelled.
func Run(ctx context.Context, store *session.Store, eng *engine.Engine, opts ...Option) error {
	if store == nil || eng == nil {
		return fmt.Errorf("session store and engine are required")
	}

	m := NewModel(ctx, store, eng, opts...)
	program := tea.NewProgram(
		m,
		tea.WithContext(ctx),
		tea.WithAltScreen(),
	)

	slog.Info("Starting interactive UI")
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}
	return nil
}
