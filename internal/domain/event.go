package domain

// EventType identifies what happened to the session.
type EventType string

const (
	// EventStateChanged is published after every mutating intent.
	EventStateChanged EventType = "state_changed"

	// EventIntervalExpired is published when a tick performs an expiry.
	EventIntervalExpired EventType = "interval_expired"
)

// Event is delivered to session observers.
type Event struct {
	Type       EventType   `json:"type"`
	State      State       `json:"state"`
	Transition *Transition `json:"transition,omitempty"`
}

// Outcome is the result of one intent: the state after it ran, whether its
// precondition held, and the task or transition it produced, if any.
type Outcome struct {
	State      State       `json:"state"`
	Applied    bool        `json:"applied"`
	Task       *Task       `json:"task,omitempty"`
	Next       *Task       `json:"next,omitempty"`
	Transition *Transition `json:"transition,omitempty"`
}

// TaskMatch locates a task found by a content search.
type TaskMatch struct {
	List  TaskList `json:"list"`
	Index int      `json:"index"`
	Task  Task     `json:"task"`
	Score int      `json:"score"`
}
