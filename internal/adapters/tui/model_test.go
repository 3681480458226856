package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xvierd/pomo/internal/config"
	"github.com/xvierd/pomo/internal/domain"
	"github.com/xvierd/pomo/internal/services"
)

func keyMsg(s string) tea.Msg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "space":
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
	}
}

func newTestModel(t *testing.T, tasks ...string) (Model, *services.SessionService) {
	t.Helper()
	session := services.NewSessionService(domain.SessionConfig{
		WorkMinutes: 1, ShortBreakMinutes: 1, LongBreakMinutes: 2, SessionsBeforeLongBreak: 2,
	}, services.SessionOptions{})
	for _, content := range tasks {
		session.Enqueue(content)
	}
	m := NewModel(session, Options{GitLabel: "main@1a2b3c4"})
	m.width = 100
	m.height = 40
	return m, session
}

// press sends each key in order and returns the resulting model.
func press(t *testing.T, m Model, keys ...string) Model {
	t.Helper()
	for _, k := range keys {
		result, _ := m.Update(keyMsg(k))
		var ok bool
		m, ok = result.(Model)
		require.True(t, ok)
	}
	return m
}

func typeText(t *testing.T, m Model, text string) Model {
	t.Helper()
	result, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(text)})
	return result.(Model)
}

func tick(t *testing.T, m Model, n int) Model {
	t.Helper()
	for i := 0; i < n; i++ {
		result, cmd := m.Update(tickMsg{gen: m.tickGen})
		require.NotNil(t, cmd, "every tick schedules the next one")
		m = result.(Model)
	}
	return m
}

func TestNewModel(t *testing.T) {
	m, session := newTestModel(t, "first")

	assert.Equal(t, session.State(), m.state)
	assert.Equal(t, domain.ListActive, m.focus)
	assert.Equal(t, screenMain, m.screen)
	assert.Equal(t, config.DefaultThemeConfig(), m.theme)
}

func TestResolveTheme(t *testing.T) {
	theme := &config.ThemeConfig{ColorWork: "#FF0000"}
	resolved := resolveTheme(theme)

	assert.Equal(t, "#FF0000", resolved.ColorWork)
	assert.Equal(t, config.DefaultThemeConfig().ColorBreak, resolved.ColorBreak)
}

func TestModel_View(t *testing.T) {
	m, _ := newTestModel(t, "write docs")

	m.width = 0
	assert.Equal(t, "Loading...", m.View())

	m.width = 100
	view := m.View()
	assert.Contains(t, view, "pomo")
	assert.Contains(t, view, "main@1a2b3c4")
	assert.Contains(t, view, "Work (Paused)")
	assert.Contains(t, view, "PAUSED")
	assert.Contains(t, view, "write docs")
	assert.Contains(t, view, "No task in progress")
	assert.Contains(t, view, "0 completed")
}

func TestModel_ToggleAndTick(t *testing.T) {
	m, _ := newTestModel(t)

	m = tick(t, m, 3)
	assert.Equal(t, 60, m.state.Clock.RemainingSeconds, "paused clock ignores ticks")

	m = press(t, m, "space")
	assert.True(t, m.state.Clock.Running)

	m = tick(t, m, 3)
	assert.Equal(t, 57, m.state.Clock.RemainingSeconds)

	m = press(t, m, "space")
	assert.False(t, m.state.Clock.Running)

	m = press(t, m, "r")
	assert.Equal(t, 60, m.state.Clock.RemainingSeconds)
}

func TestModel_StartRearmsTick(t *testing.T) {
	m, _ := newTestModel(t)
	require.NotNil(t, m.Init())

	result, cmd := m.Update(keyMsg("space"))
	m = result.(Model)
	require.True(t, m.state.Clock.Running)
	require.NotNil(t, cmd, "starting schedules a fresh tick")
	assert.Equal(t, 1, m.tickGen)

	result, cmd = m.Update(tickMsg{gen: 0})
	m = result.(Model)
	assert.Nil(t, cmd, "a tick scheduled before the start is dropped")
	assert.Equal(t, 60, m.state.Clock.RemainingSeconds)

	m = tick(t, m, 1)
	assert.Equal(t, 59, m.state.Clock.RemainingSeconds)

	result, cmd = m.Update(keyMsg("space"))
	m = result.(Model)
	assert.False(t, m.state.Clock.Running)
	assert.Nil(t, cmd, "pausing keeps the current tick")
	assert.Equal(t, 1, m.tickGen)
}

func TestModel_ExpiryShowsTransition(t *testing.T) {
	m, _ := newTestModel(t)
	m = press(t, m, "space")
	m = tick(t, m, 61)

	assert.Equal(t, domain.IntervalShortBreak, m.state.Clock.Mode)
	assert.False(t, m.state.Clock.Running)
	assert.Contains(t, m.status, "Work session 1 done")
	assert.Contains(t, m.View(), "Short Break (Paused)")

	m = press(t, m, "s")
	assert.Equal(t, domain.IntervalWork, m.state.Clock.Mode)
	assert.Equal(t, 1, m.state.Clock.CompletedWorkSessions)
}

func TestModel_SkipDuringWork(t *testing.T) {
	m, _ := newTestModel(t)
	m = press(t, m, "s")

	assert.Equal(t, domain.IntervalWork, m.state.Clock.Mode)
	assert.Equal(t, "Nothing to skip during work", m.status)
}

func TestModel_AddTask(t *testing.T) {
	m, _ := newTestModel(t)

	m = press(t, m, "a")
	require.Equal(t, screenAdding, m.screen)
	assert.Contains(t, m.View(), "New task:")

	m = typeText(t, m, "review PR")
	m = press(t, m, "enter")

	assert.Equal(t, screenMain, m.screen)
	require.Len(t, m.state.Queue.Active, 1)
	assert.Equal(t, "review PR", m.state.Queue.Active[0].Content)
	assert.Equal(t, `Added "review PR"`, m.status)
}

func TestModel_AddBlankTask(t *testing.T) {
	m, _ := newTestModel(t)

	m = press(t, m, "a")
	m = typeText(t, m, "   ")
	m = press(t, m, "enter")

	assert.Empty(t, m.state.Queue.Active)
	assert.Equal(t, "Task text cannot be empty", m.status)
}

func TestModel_AddTaskCancelled(t *testing.T) {
	m, _ := newTestModel(t)

	m = press(t, m, "a")
	m = typeText(t, m, "never mind")
	m = press(t, m, "esc")

	assert.Equal(t, screenMain, m.screen)
	assert.Empty(t, m.state.Queue.Active)
}

func TestModel_TaskKeys(t *testing.T) {
	m, _ := newTestModel(t, "one", "two", "three")

	m = press(t, m, "c")
	assert.Equal(t, "No task in progress", m.status)

	m = press(t, m, "n")
	require.NotNil(t, m.state.Queue.Current)
	assert.Equal(t, "one", m.state.Queue.Current.Content)
	assert.Contains(t, m.View(), "Now: one")

	m = press(t, m, "n")
	assert.Equal(t, "Finish or return the current task first", m.status)

	m = press(t, m, "u")
	assert.Nil(t, m.state.Queue.Current)
	assert.Equal(t, "one", m.state.Queue.Active[0].Content)

	m = press(t, m, "n", "C")
	require.NotNil(t, m.state.Queue.Current)
	assert.Equal(t, "two", m.state.Queue.Current.Content)
	require.Len(t, m.state.Queue.Completed, 1)
	assert.Equal(t, "one", m.state.Queue.Completed[0].Content)

	m = press(t, m, "c")
	assert.Nil(t, m.state.Queue.Current)
	assert.Equal(t, "two", m.state.Queue.Completed[0].Content)

	m = press(t, m, "n", "c", "n")
	assert.Equal(t, "No tasks queued", m.status)
}

func TestModel_ReorderKeys(t *testing.T) {
	m, _ := newTestModel(t, "a", "b", "c")

	m = press(t, m, "J")
	assert.Equal(t, []string{"b", "a", "c"}, activeContents(m))
	assert.Equal(t, 1, m.activeCursor, "cursor follows the moved task")

	m = press(t, m, "J", "J")
	assert.Equal(t, []string{"b", "c", "a"}, activeContents(m))
	assert.Equal(t, 2, m.activeCursor)

	m = press(t, m, "k", "K")
	assert.Equal(t, []string{"c", "b", "a"}, activeContents(m))
	assert.Equal(t, 0, m.activeCursor)

	m = press(t, m, "K")
	assert.Equal(t, []string{"c", "b", "a"}, activeContents(m), "cannot move above the top")
}

func TestModel_SwitchListAndReorderCompleted(t *testing.T) {
	m, _ := newTestModel(t, "a", "b")
	m = press(t, m, "n", "c", "n", "c")
	require.Len(t, m.state.Queue.Completed, 2)
	assert.Equal(t, "b", m.state.Queue.Completed[0].Content)

	m = press(t, m, "tab")
	assert.Equal(t, domain.ListCompleted, m.focus)

	m = press(t, m, "J")
	assert.Equal(t, "a", m.state.Queue.Completed[0].Content)
	assert.Equal(t, 1, m.completedCursor)

	m = press(t, m, "tab")
	assert.Equal(t, domain.ListActive, m.focus)
}

func TestModel_Filter(t *testing.T) {
	m, _ := newTestModel(t, "write release notes", "review pull request", "fix flaky test")
	m = press(t, m, "/")
	require.Equal(t, screenFilter, m.screen)

	m = typeText(t, m, "flaky")
	require.Len(t, m.matches, 1)
	assert.Contains(t, m.View(), "fix flaky test")

	m = press(t, m, "enter")
	assert.Equal(t, screenMain, m.screen)
	assert.Equal(t, domain.ListActive, m.focus)
	assert.Equal(t, 2, m.activeCursor)
}

func TestModel_FilterNoMatches(t *testing.T) {
	m, _ := newTestModel(t, "one")
	m = press(t, m, "/")
	m = typeText(t, m, "zzz")

	assert.Empty(t, m.matches)
	assert.Contains(t, m.View(), "no matches")

	m = press(t, m, "esc")
	assert.Equal(t, screenMain, m.screen)
}

func TestModel_SettingsCancelled(t *testing.T) {
	m, _ := newTestModel(t)

	m = press(t, m, "e")
	require.Equal(t, screenSettings, m.screen)
	require.NotNil(t, m.settings)

	m = press(t, m, "esc")
	assert.Equal(t, screenMain, m.screen)
	assert.Nil(t, m.settings)
	assert.Equal(t, 1, m.state.Clock.Config.WorkMinutes)
}

func TestModel_PresetPicker(t *testing.T) {
	m, _ := newTestModel(t)

	m = press(t, m, "p")
	require.Equal(t, screenPresets, m.screen)
	assert.Contains(t, m.View(), "Apply a preset")

	m = press(t, m, "2")
	assert.Equal(t, screenMain, m.screen)
	assert.Equal(t, domain.PresetExtended.Config(), m.state.Clock.Config)
	assert.Equal(t, 50*60, m.state.Clock.RemainingSeconds)
	assert.Equal(t, "Extended preset applied", m.status)
}

func TestModel_PresetPickerCancelled(t *testing.T) {
	m, _ := newTestModel(t)

	m = press(t, m, "p", "j", "esc")
	assert.Equal(t, screenMain, m.screen)
	assert.Equal(t, 1, m.state.Clock.Config.WorkMinutes)
}

func TestModel_HelpToggle(t *testing.T) {
	m, _ := newTestModel(t)

	m = press(t, m, "?")
	assert.True(t, m.help.ShowAll)
	assert.Contains(t, m.View(), "complete + next")
}

func TestModel_Quit(t *testing.T) {
	m, _ := newTestModel(t)

	_, cmd := m.Update(keyMsg("q"))
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestModel_WindowSize(t *testing.T) {
	m, _ := newTestModel(t)

	result, _ := m.Update(tea.WindowSizeMsg{Width: 20, Height: 20})
	m = result.(Model)
	assert.Equal(t, 20, m.width)

	view := m.View()
	assert.Contains(t, view, "01:00", "narrow terminals show the plain countdown")
}

func TestVisibleWindow(t *testing.T) {
	tests := []struct {
		n, cursor, size int
		start, end      int
	}{
		{3, 0, 6, 0, 3},
		{10, 0, 6, 0, 6},
		{10, 5, 6, 2, 8},
		{10, 9, 6, 4, 10},
	}

	for _, tt := range tests {
		start, end := visibleWindow(tt.n, tt.cursor, tt.size)
		assert.Equal(t, tt.start, start)
		assert.Equal(t, tt.end, end)
	}
}

func TestTransitionMessage(t *testing.T) {
	msg := transitionMessage(domain.Transition{From: domain.IntervalWork, To: domain.IntervalLongBreak, CompletedWorkSessions: 4})
	assert.Equal(t, "Work session 4 done. Time for a Long Break", msg)

	msg = transitionMessage(domain.Transition{From: domain.IntervalShortBreak, To: domain.IntervalWork})
	assert.True(t, strings.HasPrefix(msg, "Break over"))
}

func activeContents(m Model) []string {
	out := make([]string, len(m.state.Queue.Active))
	for i, task := range m.state.Queue.Active {
		out[i] = task.Content
	}
	return out
}
