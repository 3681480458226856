package tui

import (
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/xvierd/pomo/internal/domain"
	"github.com/xvierd/pomo/internal/logging"
)

// SettingsFormResult contains the edited configuration.
type SettingsFormResult struct {
	Cancelled bool
	Config    domain.SessionConfig
}

// SettingsForm is a Bubble Tea component for editing the four interval
// settings. All four are submitted together.
type SettingsForm struct {
	Completed bool
	form      *huh.Form
	result    SettingsFormResult

	work       string
	shortBreak string
	longBreak  string
	sessions   string
}

// NewSettingsForm creates a form prefilled with current.
func NewSettingsForm(current domain.SessionConfig) *SettingsForm {
	sf := &SettingsForm{
		result:     SettingsFormResult{Config: current},
		work:       strconv.Itoa(current.WorkMinutes),
		shortBreak: strconv.Itoa(current.ShortBreakMinutes),
		longBreak:  strconv.Itoa(current.LongBreakMinutes),
		sessions:   strconv.Itoa(current.SessionsBeforeLongBreak),
	}

	sf.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Work minutes").
				Value(&sf.work).
				CharLimit(4).
				Validate(validateWholeNumber),
			huh.NewInput().
				Title("Short break minutes").
				Value(&sf.shortBreak).
				CharLimit(4).
				Validate(validateWholeNumber),
			huh.NewInput().
				Title("Long break minutes").
				Value(&sf.longBreak).
				CharLimit(4).
				Validate(validateWholeNumber),
			huh.NewInput().
				Title("Work sessions before a long break").
				Description("Values below 1 are saved as 1").
				Value(&sf.sessions).
				CharLimit(3).
				Validate(validateWholeNumber),
		),
	)

	return sf
}

func validateWholeNumber(s string) error {
	if _, err := strconv.Atoi(strings.TrimSpace(s)); err != nil {
		return fmt.Errorf("enter a whole number")
	}
	return nil
}

func (sf *SettingsForm) Init() tea.Cmd {
	return sf.form.Init()
}

func (sf *SettingsForm) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		if keyMsg.String() == "esc" || keyMsg.String() == "ctrl+c" {
			sf.result.Cancelled = true
			sf.Completed = true
			return sf, nil
		}
	}

	form, cmd := sf.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		sf.form = f
	}

	if sf.form.State == huh.StateCompleted {
		sf.Completed = true
		sf.result.Config = sf.parse()
		logging.Logger.Debug("Settings submitted", "config", sf.result.Config)
		return sf, nil
	}

	return sf, cmd
}

func (sf *SettingsForm) View() string {
	if sf.form != nil {
		return sf.form.View()
	}
	return ""
}

// Result returns the form result. The config is clamped.
func (sf *SettingsForm) Result() SettingsFormResult {
	return sf.result
}

func (sf *SettingsForm) parse() domain.SessionConfig {
	number := func(s string, fallback int) int {
		n, err := strconv.Atoi(strings.TrimSpace(s))
		if err != nil {
			return fallback
		}
		return n
	}
	current := sf.result.Config
	return domain.SessionConfig{
		WorkMinutes:             number(sf.work, current.WorkMinutes),
		ShortBreakMinutes:       number(sf.shortBreak, current.ShortBreakMinutes),
		LongBreakMinutes:        number(sf.longBreak, current.LongBreakMinutes),
		SessionsBeforeLongBreak: number(sf.sessions, current.SessionsBeforeLongBreak),
	}.Clamp()
}
