package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/lipgloss"

	"github.com/xvierd/pomo/internal/domain"
)

// maxVisibleTasks bounds each list so the countdown stays on screen.
const maxVisibleTasks = 6

// getThemeColor returns the color for the current interval kind.
func (m Model) getThemeColor() lipgloss.Color {
	if m.state.Clock.Mode.IsBreak() {
		return lipgloss.Color(m.theme.ColorBreak)
	}
	return lipgloss.Color(m.theme.ColorWork)
}

// getTimerColor returns the color for the timer, accounting for pause state.
func (m Model) getTimerColor() lipgloss.Color {
	if !m.state.Clock.Running {
		return lipgloss.Color(m.theme.ColorPaused)
	}
	return m.getThemeColor()
}

// View renders the TUI.
func (m Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	var sections []string
	sections = append(sections, m.viewHeader())
	sections = append(sections, m.viewClock()...)
	sections = append(sections, m.viewCurrentTask())

	if m.status != "" {
		statusStyle := lipgloss.NewStyle().Foreground(m.getThemeColor()).Italic(true)
		sections = append(sections, "", statusStyle.Render(m.status))
	}

	sections = append(sections, "")
	switch m.screen {
	case screenSettings:
		sections = append(sections, m.settings.View())
	case screenPresets:
		sections = append(sections, m.picker.View())
	default:
		sections = append(sections, m.viewTaskLists())
		sections = append(sections, m.viewPrompt()...)
	}

	sections = append(sections, "", m.help.View(m.keys))

	content := lipgloss.JoinVertical(lipgloss.Center, sections...)
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, content)
}

func (m Model) viewHeader() string {
	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(m.theme.ColorTitle))
	header := titleStyle.Render(fmt.Sprintf("%s pomo", m.theme.IconApp))
	if m.gitLabel != "" {
		gitStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(m.theme.ColorHelp))
		header += "  " + gitStyle.Render(fmt.Sprintf("%s %s", m.theme.IconGit, m.gitLabel))
	}
	return lipgloss.NewStyle().MarginBottom(1).Render(header)
}

func (m Model) viewClock() []string {
	clock := m.state.Clock
	modeStyle := lipgloss.NewStyle().Bold(true).Foreground(m.getThemeColor())
	helpStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(m.theme.ColorHelp))

	sections := []string{
		modeStyle.Render(fmt.Sprintf("%s (%s)", clock.Mode.Label(), clock.StatusLabel())),
		"",
		renderBigTime(clock.Countdown(), m.getTimerColor(), m.width),
	}

	if !clock.Running {
		pauseBadge := lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FFFFFF")).
			Background(lipgloss.Color(m.theme.ColorPaused)).
			Padding(0, 1).
			Render(fmt.Sprintf("%s PAUSED", m.theme.IconPaused))
		sections = append(sections, "", pauseBadge)
	}

	var pbar progress.Model
	switch {
	case !clock.Running:
		pbar = progress.New(progress.WithGradient(m.theme.PausedGradientStart, m.theme.PausedGradientEnd))
	case clock.Mode.IsBreak():
		pbar = progress.New(progress.WithGradient(m.theme.BreakGradientStart, m.theme.BreakGradientEnd))
	default:
		pbar = progress.New(progress.WithGradient(m.theme.WorkGradientStart, m.theme.WorkGradientEnd))
	}
	pbar.Width = m.width - 4
	sections = append(sections, "", pbar.ViewAs(clock.Progress()))

	sections = append(sections, helpStyle.Render(fmt.Sprintf("%d completed · %d until long break",
		clock.CompletedWorkSessions, clock.SessionsUntilLongBreak())))
	return sections
}

func (m Model) viewCurrentTask() string {
	taskStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(m.theme.ColorTask))
	if current := m.state.Queue.Current; current != nil {
		return taskStyle.Bold(true).Render(fmt.Sprintf("%s Now: %s", m.theme.IconTask, current.Content))
	}
	return taskStyle.Faint(true).Render("No task in progress")
}

func (m Model) viewTaskLists() string {
	active := m.viewList("Up next", domain.ListActive, m.state.Queue.Active, m.activeCursor)
	completed := m.viewList("Done", domain.ListCompleted, m.state.Queue.Completed, m.completedCursor)

	colWidth := (m.width - 6) / 2
	if colWidth < 24 {
		return lipgloss.JoinVertical(lipgloss.Left, active, "", completed)
	}
	col := lipgloss.NewStyle().Width(colWidth).PaddingRight(2)
	return lipgloss.JoinHorizontal(lipgloss.Top, col.Render(active), col.Render(completed))
}

func (m Model) viewList(title string, list domain.TaskList, tasks []domain.Task, cursor int) string {
	focused := m.focus == list && m.screen == screenMain
	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(m.theme.ColorTitle))
	if focused {
		titleStyle = titleStyle.Foreground(m.getThemeColor()).Underline(true)
	}
	itemStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(m.theme.ColorTask))
	selectedStyle := lipgloss.NewStyle().Foreground(m.getThemeColor()).Bold(true)
	dimStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(m.theme.ColorHelp))

	lines := []string{titleStyle.Render(fmt.Sprintf("%s (%d)", title, len(tasks)))}
	if len(tasks) == 0 {
		return strings.Join(append(lines, dimStyle.Render("  empty")), "\n")
	}

	start, end := visibleWindow(len(tasks), cursor, maxVisibleTasks)
	if start > 0 {
		lines = append(lines, dimStyle.Render(fmt.Sprintf("  ↑ %d more", start)))
	}
	for i := start; i < end; i++ {
		content := tasks[i].Content
		if list == domain.ListCompleted {
			content = lipgloss.NewStyle().Strikethrough(true).Render(content)
		}
		if focused && i == cursor {
			lines = append(lines, selectedStyle.Render("▸ "+content))
		} else {
			lines = append(lines, itemStyle.Render("  "+content))
		}
	}
	if end < len(tasks) {
		lines = append(lines, dimStyle.Render(fmt.Sprintf("  ↓ %d more", len(tasks)-end)))
	}
	return strings.Join(lines, "\n")
}

// visibleWindow returns the [start, end) range of n items that keeps cursor
// in view while showing at most size items.
func visibleWindow(n, cursor, size int) (int, int) {
	if n <= size {
		return 0, n
	}
	start := cursor - size/2
	if start < 0 {
		start = 0
	}
	if start+size > n {
		start = n - size
	}
	return start, start + size
}

func (m Model) viewPrompt() []string {
	helpStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(m.theme.ColorHelp))

	switch m.screen {
	case screenAdding:
		return []string{
			"",
			helpStyle.Render("New task: ") + m.input.View(),
			helpStyle.Render("enter add · esc cancel"),
		}
	case screenFilter:
		lines := []string{"", helpStyle.Render("Find: ") + m.filter.View()}
		selectedStyle := lipgloss.NewStyle().Foreground(m.getThemeColor()).Bold(true)
		for i, match := range m.matches {
			if i == maxVisibleTasks {
				break
			}
			line := fmt.Sprintf("%s #%d  %s", match.List, match.Index+1, match.Task.Content)
			if i == m.matchCursor {
				lines = append(lines, selectedStyle.Render("▸ "+line))
			} else {
				lines = append(lines, helpStyle.Render("  "+line))
			}
		}
		if m.filter.Value() != "" && len(m.matches) == 0 {
			lines = append(lines, helpStyle.Render("no matches"))
		}
		lines = append(lines, helpStyle.Render("↑/↓ choose · enter jump · esc cancel"))
		return lines
	}
	return nil
}
