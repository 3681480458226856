package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

const glyphHeight = 5

// glyphs holds a 5-row block rendering of each countdown character.
var glyphs = map[rune][glyphHeight]string{
	'0': {"████", "█  █", "█  █", "█  █", "████"},
	'1': {" █ ", "██ ", " █ ", " █ ", "███"},
	'2': {"████", "   █", "████", "█   ", "████"},
	'3': {"████", "   █", "████", "   █", "████"},
	'4': {"█  █", "█  █", "████", "   █", "   █"},
	'5': {"████", "█   ", "████", "   █", "████"},
	'6': {"████", "█   ", "████", "█  █", "████"},
	'7': {"████", "   █", "  █ ", " █  ", " █  "},
	'8': {"████", "█  █", "████", "█  █", "████"},
	'9': {"████", "█  █", "████", "   █", "████"},
	':': {" ", "█", " ", "█", " "},
}

// bigText lays out the glyphs of s side by side with one column between
// them. Characters without a glyph are skipped.
func bigText(s string) [glyphHeight]string {
	var rows [glyphHeight]string
	for _, ch := range s {
		glyph, ok := glyphs[ch]
		if !ok {
			continue
		}
		for i := range rows {
			if rows[i] != "" {
				rows[i] += " "
			}
			rows[i] += glyph[i]
		}
	}
	return rows
}

// renderBigTime renders a countdown such as "24:59" in block digits. When
// the block form does not fit in width it falls back to a single bold line.
func renderBigTime(countdown string, color lipgloss.Color, width int) string {
	style := lipgloss.NewStyle().Bold(true).Foreground(color)

	rows := bigText(countdown)
	if lipgloss.Width(rows[0])+4 > width {
		return style.Render(countdown)
	}

	styled := make([]string, glyphHeight)
	for i, row := range rows {
		styled[i] = style.Render(row)
	}
	return strings.Join(styled, "\n")
}
