package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"

	"github.com/xvierd/pomo/internal/domain"
)

func TestNewSettingsForm_Prefilled(t *testing.T) {
	sf := NewSettingsForm(domain.SessionConfig{WorkMinutes: 30, ShortBreakMinutes: 6, LongBreakMinutes: 20, SessionsBeforeLongBreak: 3})

	assert.Equal(t, "30", sf.work)
	assert.Equal(t, "6", sf.shortBreak)
	assert.Equal(t, "20", sf.longBreak)
	assert.Equal(t, "3", sf.sessions)
	assert.False(t, sf.Completed)
}

func TestSettingsForm_Parse(t *testing.T) {
	sf := NewSettingsForm(domain.DefaultSessionConfig())
	sf.work = " 45 "
	sf.shortBreak = "0"
	sf.longBreak = "-3"
	sf.sessions = "oops"

	assert.Equal(t, domain.SessionConfig{
		WorkMinutes:             45,
		ShortBreakMinutes:       1,
		LongBreakMinutes:        1,
		SessionsBeforeLongBreak: 4,
	}, sf.parse())
}

func TestSettingsForm_Escape(t *testing.T) {
	sf := NewSettingsForm(domain.DefaultSessionConfig())

	sf.Update(tea.KeyMsg{Type: tea.KeyEsc})

	assert.True(t, sf.Completed)
	assert.True(t, sf.Result().Cancelled)
	assert.Equal(t, domain.DefaultSessionConfig(), sf.Result().Config)
}

func TestValidateWholeNumber(t *testing.T) {
	assert.NoError(t, validateWholeNumber("25"))
	assert.NoError(t, validateWholeNumber(" 0 "))
	assert.Error(t, validateWholeNumber(""))
	assert.Error(t, validateWholeNumber("2.5"))
}
