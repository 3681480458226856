package domain

import "time"

// SessionConfig holds the interval lengths and the long-break cadence.
// All four values are kept at 1 or above.
type SessionConfig struct {
	WorkMinutes             int `json:"work_minutes"`
	ShortBreakMinutes       int `json:"short_break_minutes"`
	LongBreakMinutes        int `json:"long_break_minutes"`
	SessionsBeforeLongBreak int `json:"sessions_before_long_break"`
}

// DefaultSessionConfig returns the standard 25/5/10 cadence with a long break every 4 sessions.
func DefaultSessionConfig() SessionConfig {
	return SessionConfig{
		WorkMinutes:             25,
		ShortBreakMinutes:       5,
		LongBreakMinutes:        10,
		SessionsBeforeLongBreak: 4,
	}
}

// Clamp returns a copy with every value below 1 raised to 1.
func (c SessionConfig) Clamp() SessionConfig {
	return SessionConfig{
		WorkMinutes:             atLeastOne(c.WorkMinutes),
		ShortBreakMinutes:       atLeastOne(c.ShortBreakMinutes),
		LongBreakMinutes:        atLeastOne(c.LongBreakMinutes),
		SessionsBeforeLongBreak: atLeastOne(c.SessionsBeforeLongBreak),
	}
}

// Minutes returns the configured length of the given interval kind.
func (c SessionConfig) Minutes(kind IntervalKind) int {
	switch kind {
	case IntervalShortBreak:
		return c.ShortBreakMinutes
	case IntervalLongBreak:
		return c.LongBreakMinutes
	default:
		return c.WorkMinutes
	}
}

// Seconds returns the configured length of the given interval kind in seconds.
func (c SessionConfig) Seconds(kind IntervalKind) int {
	return c.Minutes(kind) * 60
}

// Duration returns the configured length of the given interval kind.
func (c SessionConfig) Duration(kind IntervalKind) time.Duration {
	return time.Duration(c.Minutes(kind)) * time.Minute
}

func atLeastOne(v int) int {
	if v < 1 {
		return 1
	}
	return v
}
