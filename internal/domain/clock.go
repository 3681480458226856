package domain

// Transition describes the mode change performed at an interval expiry.
type Transition struct {
	From                  IntervalKind `json:"from"`
	To                    IntervalKind `json:"to"`
	CompletedWorkSessions int          `json:"completed_work_sessions"`
	RemainingSeconds      int          `json:"remaining_seconds"`
}

// EndedWork returns true if the expired interval was a work interval.
func (t Transition) EndedWork() bool {
	return t.From == IntervalWork
}

// SessionClock counts down one interval at a time and cycles
// Work -> break -> Work indefinitely. It is not safe for concurrent use;
// callers serialise access.
type SessionClock struct {
	config                SessionConfig
	mode                  IntervalKind
	remainingSeconds      int
	running               bool
	completedWorkSessions int
}

// NewSessionClock creates a paused clock at the start of a work interval.
func NewSessionClock(config SessionConfig) *SessionClock {
	config = config.Clamp()
	return &SessionClock{
		config:           config,
		mode:             IntervalWork,
		remainingSeconds: config.Seconds(IntervalWork),
	}
}

// Start lets the countdown advance on the next tick.
func (c *SessionClock) Start() {
	c.running = true
}

// Pause stops the countdown. Pausing a paused clock does nothing.
func (c *SessionClock) Pause() {
	c.running = false
}

// Reset pauses the clock and restores the full duration of the current mode.
// The mode and the completed-session count are kept.
func (c *SessionClock) Reset() {
	c.running = false
	c.remainingSeconds = c.config.Seconds(c.mode)
}

// Tick advances the countdown by one second. A tick that finds the countdown
// already at zero performs the expiry: the mode changes, the clock pauses and
// the new mode's full duration is loaded. The zero value is therefore visible
// for exactly one tick before the transition.
//
// Tick does nothing on a paused clock.
func (c *SessionClock) Tick() (Transition, bool) {
	if !c.running {
		return Transition{}, false
	}
	if c.remainingSeconds > 0 {
		c.remainingSeconds--
		return Transition{}, false
	}
	return c.expire(), true
}

func (c *SessionClock) expire() Transition {
	from := c.mode
	next := IntervalWork
	if from == IntervalWork {
		c.completedWorkSessions++
		next = IntervalShortBreak
		if c.completedWorkSessions%c.config.SessionsBeforeLongBreak == 0 {
			next = IntervalLongBreak
		}
	}

	c.mode = next
	c.running = false
	c.remainingSeconds = c.config.Seconds(next)

	return Transition{
		From:                  from,
		To:                    next,
		CompletedWorkSessions: c.completedWorkSessions,
		RemainingSeconds:      c.remainingSeconds,
	}
}

// SkipBreak abandons the current break and loads a paused work interval.
// It returns false, changing nothing, when the clock is in a work interval.
func (c *SessionClock) SkipBreak() bool {
	if !c.mode.IsBreak() {
		return false
	}
	c.mode = IntervalWork
	c.running = false
	c.remainingSeconds = c.config.Seconds(IntervalWork)
	return true
}

// UpdateConfig replaces all four configured values at once; values below 1
// are raised to 1. A paused clock whose current mode's length changed is
// retargeted to the new length immediately. A running countdown is left
// alone until the next reset or expiry.
func (c *SessionClock) UpdateConfig(config SessionConfig) {
	config = config.Clamp()
	changed := config.Minutes(c.mode) != c.config.Minutes(c.mode)
	c.config = config
	if changed && !c.running {
		c.remainingSeconds = config.Seconds(c.mode)
	}
}

// Config returns the current configuration.
func (c *SessionClock) Config() SessionConfig {
	return c.config
}

// Mode returns the current interval kind.
func (c *SessionClock) Mode() IntervalKind {
	return c.mode
}

// RemainingSeconds returns the seconds left in the current interval.
func (c *SessionClock) RemainingSeconds() int {
	return c.remainingSeconds
}

// Running reports whether the countdown is advancing.
func (c *SessionClock) Running() bool {
	return c.running
}

// CompletedWorkSessions returns how many work intervals have expired.
func (c *SessionClock) CompletedWorkSessions() int {
	return c.completedWorkSessions
}

// Snapshot captures the clock state.
func (c *SessionClock) Snapshot() ClockSnapshot {
	return ClockSnapshot{
		Mode:                  c.mode,
		RemainingSeconds:      c.remainingSeconds,
		TotalSeconds:          c.config.Seconds(c.mode),
		Running:               c.running,
		CompletedWorkSessions: c.completedWorkSessions,
		Config:                c.config,
	}
}
