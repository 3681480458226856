package domain

import "fmt"

// Preset names a built-in SessionConfig.
type Preset string

const (
	PresetClassic  Preset = "classic"
	PresetExtended Preset = "extended"
	PresetSprint   Preset = "sprint"
)

// ValidPresets lists all supported preset values.
var ValidPresets = []Preset{
	PresetClassic,
	PresetExtended,
	PresetSprint,
}

// ValidatePreset checks if a string is a valid preset.
func ValidatePreset(s string) (Preset, error) {
	p := Preset(s)
	for _, valid := range ValidPresets {
		if p == valid {
			return p, nil
		}
	}
	return "", fmt.Errorf("%w %q: must be one of classic, extended, sprint", ErrInvalidPreset, s)
}

// Config returns the session lengths for the preset.
func (p Preset) Config() SessionConfig {
	switch p {
	case PresetExtended:
		return SessionConfig{WorkMinutes: 50, ShortBreakMinutes: 10, LongBreakMinutes: 30, SessionsBeforeLongBreak: 3}
	case PresetSprint:
		return SessionConfig{WorkMinutes: 15, ShortBreakMinutes: 3, LongBreakMinutes: 10, SessionsBeforeLongBreak: 4}
	default:
		return DefaultSessionConfig()
	}
}

// Label returns a human-readable label.
func (p Preset) Label() string {
	switch p {
	case PresetClassic:
		return "Classic"
	case PresetExtended:
		return "Extended"
	case PresetSprint:
		return "Sprint"
	default:
		return "Unknown"
	}
}
