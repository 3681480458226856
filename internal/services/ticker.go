package services

import (
	"context"
	"time"

	"github.com/xvierd/pomo/internal/domain"
)

// Ticking is anything that advances once per second.
type Ticking interface {
	Tick() domain.Outcome
}

// Ticker drives a session from the wall clock outside the TUI.
type Ticker struct {
	target   Ticking
	interval time.Duration
}

// NewTicker creates a ticker. A non-positive interval means one second.
func NewTicker(target Ticking, interval time.Duration) *Ticker {
	if interval <= 0 {
		interval = time.Second
	}
	return &Ticker{target: target, interval: interval}
}

// Run calls Tick on every interval until ctx is done. It always returns nil
// once ctx is cancelled.
func (t *Ticker) Run(ctx context.Context) error {
	ticker := time.NewTicker(t.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			t.target.Tick()
		}
	}
}
