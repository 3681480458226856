package tui

import (
	"context"
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/xvierd/pomo/internal/logging"
	"github.com/xvierd/pomo/internal/ports"
)

// Timer implements the ports.Timer interface using Bubbletea.
type Timer struct {
	session ports.SessionController
	opts    Options
}

// NewTimer creates a new TUI timer adapter.
func NewTimer(session ports.SessionController, opts Options) *Timer {
	return &Timer{
		session: session,
		opts:    opts,
	}
}

// Ensure Timer implements ports.Timer.
var _ ports.Timer = (*Timer)(nil)

// Run starts the timer interface and blocks until the user quits or ctx
// is cancelled.
func (t *Timer) Run(ctx context.Context) error {
	program := tea.NewProgram(
		NewModel(t.session, t.opts),
		tea.WithAltScreen(),
		tea.WithContext(ctx),
	)

	logging.Logger.Debug("TUI starting")
	if _, err := program.Run(); err != nil {
		if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
			return nil
		}
		return fmt.Errorf("failed to run TUI: %w", err)
	}
	logging.Logger.Debug("TUI exited")
	return nil
}
