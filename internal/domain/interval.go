package domain

import "fmt"

// IntervalKind represents the kind of countdown interval.
type IntervalKind string

const (
	IntervalWork       IntervalKind = "work"
	IntervalShortBreak IntervalKind = "short_break"
	IntervalLongBreak  IntervalKind = "long_break"
)

// ValidIntervalKinds lists all interval kinds in cycle order.
var ValidIntervalKinds = []IntervalKind{
	IntervalWork,
	IntervalShortBreak,
	IntervalLongBreak,
}

// ParseIntervalKind checks if a string names a valid interval kind.
func ParseIntervalKind(s string) (IntervalKind, error) {
	k := IntervalKind(s)
	for _, valid := range ValidIntervalKinds {
		if k == valid {
			return k, nil
		}
	}
	return "", fmt.Errorf("%w %q: must be one of work, short_break, long_break", ErrInvalidIntervalKind, s)
}

// IsBreak returns true for short and long breaks.
func (k IntervalKind) IsBreak() bool {
	return k == IntervalShortBreak || k == IntervalLongBreak
}

// Label returns a human-readable label.
func (k IntervalKind) Label() string {
	switch k {
	case IntervalWork:
		return "Work"
	case IntervalShortBreak:
		return "Short Break"
	case IntervalLongBreak:
		return "Long Break"
	default:
		return "Unknown"
	}
}
