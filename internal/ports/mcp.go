package ports

import (
	"context"

	"github.com/xvierd/pomo/internal/domain"
)

// MCPHandler defines the interface for MCP server operations.
// This is a driving port (called by the application layer).
type MCPHandler interface {
	// Start begins serving MCP requests.
	Start(ctx context.Context) error

	// Stop gracefully shuts down the server.
	Stop() error

	// IsRunning returns true if the server is active.
	IsRunning() bool
}

// SessionController is the set of intents a presentation surface may issue.
// Implementations serialise calls, so it is safe to share between a tick
// source and a user-facing surface.
// This is a driven port (implemented by services layer).
type SessionController interface {
	// State returns the current snapshot without changing anything.
	State() domain.State

	Start() domain.Outcome
	Pause() domain.Outcome
	Toggle() domain.Outcome
	Reset() domain.Outcome
	SkipBreak() domain.Outcome

	// Tick advances the countdown by one second when running.
	Tick() domain.Outcome

	UpdateConfig(config domain.SessionConfig) domain.Outcome
	ApplyPreset(preset domain.Preset) domain.Outcome

	Enqueue(content string) domain.Outcome
	Reorder(list domain.TaskList, from, to int) domain.Outcome
	SelectNext() domain.Outcome
	Complete() domain.Outcome
	CompleteAndSelectNext() domain.Outcome
	ReturnToQueue() domain.Outcome

	// FindTasks fuzzy-matches task content across both lists, best first.
	FindTasks(query string) []domain.TaskMatch

	// Subscribe registers an observer channel.
	Subscribe(buffer int) <-chan domain.Event
}
