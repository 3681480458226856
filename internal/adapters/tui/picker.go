package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/xvierd/pomo/internal/config"
	"github.com/xvierd/pomo/internal/domain"
)

// PickerItem represents one option in the picker.
type PickerItem struct {
	Label string
	Desc  string
}

// presetItems describes every preset for the picker.
func presetItems() []PickerItem {
	items := make([]PickerItem, len(domain.ValidPresets))
	for i, p := range domain.ValidPresets {
		c := p.Config()
		items[i] = PickerItem{
			Label: p.Label(),
			Desc: fmt.Sprintf("%dm work · %dm short · %dm long · long break every %d",
				c.WorkMinutes, c.ShortBreakMinutes, c.LongBreakMinutes, c.SessionsBeforeLongBreak),
		}
	}
	return items
}

// pickerModel is a vertical arrow-key list embedded in the main screen.
// Completed is set once the user chooses or backs out.
type pickerModel struct {
	title     string
	items     []PickerItem
	cursor    int
	Completed bool
	aborted   bool
	theme     config.ThemeConfig
}

func newPresetPicker(theme config.ThemeConfig, current domain.SessionConfig) *pickerModel {
	m := &pickerModel{
		title: "Apply a preset",
		items: presetItems(),
		theme: theme,
	}
	for i, p := range domain.ValidPresets {
		if p.Config() == current {
			m.cursor = i
		}
	}
	return m
}

func (m *pickerModel) Init() tea.Cmd { return nil }

func (m *pickerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch keyMsg.String() {
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.items)-1 {
			m.cursor++
		}
	case "1", "2", "3":
		if i := int(keyMsg.String()[0] - '1'); i < len(m.items) {
			m.cursor = i
			m.Completed = true
		}
	case "enter":
		m.Completed = true
	case "ctrl+c", "esc", "q":
		m.aborted = true
		m.Completed = true
	}
	return m, nil
}

// Preset returns the chosen preset, or false if the user backed out.
func (m *pickerModel) Preset() (domain.Preset, bool) {
	if m.aborted || !m.Completed {
		return "", false
	}
	return domain.ValidPresets[m.cursor], true
}

func (m *pickerModel) View() string {
	var b strings.Builder

	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(m.theme.ColorTitle))
	activeStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(m.theme.ColorWork)).Bold(true)
	dimStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(m.theme.ColorHelp))

	b.WriteString(titleStyle.Render(m.title) + "\n\n")

	for i, item := range m.items {
		line := fmt.Sprintf("%d %-9s %s", i+1, item.Label, item.Desc)
		if i == m.cursor {
			b.WriteString(activeStyle.Render("▸ "+line) + "\n")
		} else {
			b.WriteString(dimStyle.Render("  "+line) + "\n")
		}
	}

	b.WriteString("\n")
	b.WriteString(dimStyle.Render("↑/↓ navigate · enter apply · esc back"))

	return b.String()
}
