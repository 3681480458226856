// Package tui provides the terminal user interface implementation
// using the Bubbletea framework.
package tui

import (
	"fmt"
	"reflect"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/xvierd/pomo/internal/config"
	"github.com/xvierd/pomo/internal/domain"
	"github.com/xvierd/pomo/internal/ports"
)

// resolveTheme fills any empty string fields in the given ThemeConfig with defaults.
// If theme is nil, returns the full default theme.
func resolveTheme(theme *config.ThemeConfig) config.ThemeConfig {
	defaults := config.DefaultThemeConfig()
	if theme == nil {
		return defaults
	}
	resolved := *theme
	rv := reflect.ValueOf(&resolved).Elem()
	dv := reflect.ValueOf(defaults)
	for i := 0; i < rv.NumField(); i++ {
		f := rv.Field(i)
		if f.Kind() == reflect.String && f.String() == "" {
			f.SetString(dv.Field(i).String())
		}
	}
	return resolved
}

// tickMsg is sent once per second. Ticks from an older generation are
// dropped so a freshly started clock gets a full first second.
type tickMsg struct {
	gen int
}

// screen selects what the lower half of the view is doing.
type screen int

const (
	screenMain screen = iota
	screenAdding
	screenFilter
	screenSettings
	screenPresets
)

// Options configures the model.
type Options struct {
	Theme *config.ThemeConfig
	// GitLabel is shown in the header when non-empty.
	GitLabel string
}

// Model represents the TUI state.
type Model struct {
	session  ports.SessionController
	state    domain.State
	keys     KeyMap
	help     help.Model
	theme    config.ThemeConfig
	gitLabel string
	width    int
	height   int

	screen screen
	status string

	// Task list navigation.
	focus           domain.TaskList
	activeCursor    int
	completedCursor int

	input       textinput.Model
	filter      textinput.Model
	matches     []domain.TaskMatch
	matchCursor int

	settings *SettingsForm
	picker   *pickerModel

	tickGen int
}

// NewModel creates a new TUI model over session.
func NewModel(session ports.SessionController, opts Options) Model {
	input := textinput.New()
	input.Placeholder = "What are you working on?"
	input.CharLimit = 200
	input.Width = 50

	filter := textinput.New()
	filter.Placeholder = "find a task"
	filter.CharLimit = 100
	filter.Width = 30

	return Model{
		session:  session,
		state:    session.State(),
		keys:     NewKeyMap(),
		help:     help.New(),
		theme:    resolveTheme(opts.Theme),
		gitLabel: opts.GitLabel,
		focus:    domain.ListActive,
		input:    input,
		filter:   filter,
	}
}

// Init initializes the TUI.
func (m Model) Init() tea.Cmd {
	return tickCmd(m.tickGen)
}

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tickMsg:
		if msg.gen != m.tickGen {
			return m, nil
		}
		m.tick()
		return m, tickCmd(m.tickGen)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
	}

	switch m.screen {
	case screenAdding:
		return m.updateAdding(msg)
	case screenFilter:
		return m.updateFilter(msg)
	case screenSettings:
		return m.updateSettings(msg)
	case screenPresets:
		return m.updatePresets(msg)
	}

	if msg, ok := msg.(tea.KeyMsg); ok {
		return m.handleKey(msg)
	}
	return m, nil
}

func (m *Model) tick() {
	out := m.session.Tick()
	m.setState(out.State)
	if out.Transition == nil {
		return
	}
	m.status = transitionMessage(*out.Transition)
	if out.Task != nil {
		m.status += fmt.Sprintf(" · now on %q", out.Task.Content)
	}
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.status = ""

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Toggle):
		wasRunning := m.state.Clock.Running
		m.apply(m.command(ports.CmdToggle), "")
		if !wasRunning && m.state.Clock.Running {
			m.tickGen++
			return m, tickCmd(m.tickGen)
		}
	case key.Matches(msg, m.keys.Reset):
		m.apply(m.command(ports.CmdReset), "")
	case key.Matches(msg, m.keys.Skip):
		m.apply(m.command(ports.CmdSkip), "Nothing to skip during work")

	case key.Matches(msg, m.keys.Add):
		m.screen = screenAdding
		m.input.Reset()
		return m, m.input.Focus()
	case key.Matches(msg, m.keys.SelectNext):
		m.apply(m.command(ports.CmdSelectNext), m.selectNextReason())
	case key.Matches(msg, m.keys.Complete):
		m.apply(m.command(ports.CmdComplete), "No task in progress")
	case key.Matches(msg, m.keys.CompleteNext):
		m.apply(m.command(ports.CmdCompleteNext), "No task in progress")
	case key.Matches(msg, m.keys.Return):
		m.apply(m.command(ports.CmdReturn), "No task in progress")

	case key.Matches(msg, m.keys.Up):
		m.moveCursor(-1)
	case key.Matches(msg, m.keys.Down):
		m.moveCursor(1)
	case key.Matches(msg, m.keys.MoveUp):
		m.moveTask(-1)
	case key.Matches(msg, m.keys.MoveDown):
		m.moveTask(1)
	case key.Matches(msg, m.keys.SwitchList):
		if m.focus == domain.ListActive {
			m.focus = domain.ListCompleted
		} else {
			m.focus = domain.ListActive
		}

	case key.Matches(msg, m.keys.Filter):
		m.screen = screenFilter
		m.filter.Reset()
		m.matches = nil
		m.matchCursor = 0
		return m, m.filter.Focus()
	case key.Matches(msg, m.keys.Settings):
		m.settings = NewSettingsForm(m.state.Clock.Config)
		m.screen = screenSettings
		return m, m.settings.Init()
	case key.Matches(msg, m.keys.Presets):
		m.picker = newPresetPicker(m.theme, m.state.Clock.Config)
		m.screen = screenPresets
		return m, m.picker.Init()
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	}

	return m, nil
}

func (m Model) updateAdding(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "esc", "ctrl+c":
			m.input.Blur()
			m.screen = screenMain
			return m, nil
		case "enter":
			out := m.session.Enqueue(m.input.Value())
			m.apply(out, "Task text cannot be empty")
			if out.Applied {
				m.status = fmt.Sprintf("Added %q", out.Task.Content)
			}
			m.input.Blur()
			m.screen = screenMain
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) updateFilter(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "esc", "ctrl+c":
			m.filter.Blur()
			m.screen = screenMain
			return m, nil
		case "up":
			if m.matchCursor > 0 {
				m.matchCursor--
			}
			return m, nil
		case "down":
			if m.matchCursor < len(m.matches)-1 {
				m.matchCursor++
			}
			return m, nil
		case "enter":
			if len(m.matches) > 0 {
				match := m.matches[m.matchCursor]
				m.focus = match.List
				m.setCursor(match.Index)
			}
			m.filter.Blur()
			m.screen = screenMain
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.filter, cmd = m.filter.Update(msg)
	m.matches = m.session.FindTasks(m.filter.Value())
	if m.matchCursor >= len(m.matches) {
		m.matchCursor = 0
	}
	return m, cmd
}

func (m Model) updateSettings(msg tea.Msg) (tea.Model, tea.Cmd) {
	_, cmd := m.settings.Update(msg)
	if !m.settings.Completed {
		return m, cmd
	}

	result := m.settings.Result()
	if !result.Cancelled {
		m.apply(m.session.UpdateConfig(result.Config), "")
		m.status = "Settings saved"
	}
	m.settings = nil
	m.screen = screenMain
	return m, nil
}

func (m Model) updatePresets(msg tea.Msg) (tea.Model, tea.Cmd) {
	_, cmd := m.picker.Update(msg)
	if !m.picker.Completed {
		return m, cmd
	}

	if preset, ok := m.picker.Preset(); ok {
		m.apply(m.session.ApplyPreset(preset), "")
		m.status = fmt.Sprintf("%s preset applied", preset.Label())
	}
	m.picker = nil
	m.screen = screenMain
	return m, nil
}

func (m Model) command(cmd ports.Command) domain.Outcome {
	out, ok := cmd.Apply(m.session)
	if !ok {
		return domain.Outcome{State: m.state}
	}
	return out
}

// apply stores the outcome's state and reports reason when it was a no-op.
func (m *Model) apply(out domain.Outcome, reason string) {
	m.setState(out.State)
	if !out.Applied && reason != "" {
		m.status = reason
	}
}

func (m *Model) setState(state domain.State) {
	m.state = state
	m.setCursor(m.cursor())
}

func (m Model) selectNextReason() string {
	if m.state.Queue.Current != nil {
		return "Finish or return the current task first"
	}
	return "No tasks queued"
}

func (m Model) focusedList() []domain.Task {
	if m.focus == domain.ListCompleted {
		return m.state.Queue.Completed
	}
	return m.state.Queue.Active
}

func (m Model) cursor() int {
	if m.focus == domain.ListCompleted {
		return m.completedCursor
	}
	return m.activeCursor
}

// setCursor moves the focused list's cursor, clamped to the list.
func (m *Model) setCursor(i int) {
	n := len(m.focusedList())
	if i >= n {
		i = n - 1
	}
	if i < 0 {
		i = 0
	}
	if m.focus == domain.ListCompleted {
		m.completedCursor = i
	} else {
		m.activeCursor = i
	}
}

func (m *Model) moveCursor(delta int) {
	m.setCursor(m.cursor() + delta)
}

func (m *Model) moveTask(delta int) {
	from := m.cursor()
	out := m.session.Reorder(m.focus, from, from+delta)
	m.setState(out.State)
	if out.Applied {
		m.setCursor(from + delta)
	}
}

func transitionMessage(t domain.Transition) string {
	if t.EndedWork() {
		return fmt.Sprintf("Work session %d done. Time for a %s", t.CompletedWorkSessions, t.To.Label())
	}
	return "Break over. Back to work"
}

// tickCmd creates a command that sends a tick message of generation gen.
func tickCmd(gen int) tea.Cmd {
	return tea.Tick(time.Second, func(time.Time) tea.Msg {
		return tickMsg{gen: gen}
	})
}
