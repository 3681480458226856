package domain

import "fmt"

// ClockSnapshot is a read-only copy of the clock state.
type ClockSnapshot struct {
	Mode                  IntervalKind  `json:"mode"`
	RemainingSeconds      int           `json:"remaining_seconds"`
	TotalSeconds          int           `json:"total_seconds"`
	Running               bool          `json:"running"`
	CompletedWorkSessions int           `json:"completed_work_sessions"`
	Config                SessionConfig `json:"config"`
}

// QueueSnapshot is a read-only copy of the queue state.
type QueueSnapshot struct {
	Active    []Task `json:"active"`
	Current   *Task  `json:"current"`
	Completed []Task `json:"completed"`
}

// State is what the presentation layer reads after each call.
type State struct {
	Clock ClockSnapshot `json:"clock"`
	Queue QueueSnapshot `json:"queue"`
}

// Progress returns the elapsed fraction of the current interval (0.0 to 1.0).
func (s ClockSnapshot) Progress() float64 {
	if s.TotalSeconds <= 0 {
		return 0
	}
	progress := float64(s.TotalSeconds-s.RemainingSeconds) / float64(s.TotalSeconds)
	if progress < 0 {
		return 0
	}
	if progress > 1 {
		return 1
	}
	return progress
}

// SessionsUntilLongBreak returns how many more work intervals must expire
// before the next long break.
func (s ClockSnapshot) SessionsUntilLongBreak() int {
	every := s.Config.SessionsBeforeLongBreak
	if every < 1 {
		return 0
	}
	return every - s.CompletedWorkSessions%every
}

// Countdown formats the remaining time as MM:SS.
func (s ClockSnapshot) Countdown() string {
	return FormatCountdown(s.RemainingSeconds)
}

// StatusLabel returns "Running" or "Paused".
func (s ClockSnapshot) StatusLabel() string {
	if s.Running {
		return "Running"
	}
	return "Paused"
}

// FormatCountdown formats seconds as MM:SS; minutes may exceed 59.
func FormatCountdown(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%02d:%02d", seconds/60, seconds%60)
}
