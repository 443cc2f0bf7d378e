package components

import (
	"charm.land/lipgloss/v2"

	"github.com/justinav/pamoka/internal/ui/theme"
)

// Toggle is a labeled on/off checkbox row, optionally carrying a value
// label on the right (used for cycling settings like font size).
type Toggle struct {
	Label   string
	On      bool
	Value   string
	Focused bool
}

// View renders the toggle row.
func (t Toggle) View() string {
	box := "[ ]"
	if t.On {
		box = "[x]"
	}

	line := box + " " + t.Label
	if t.Value != "" {
		line += "  (" + t.Value + ")"
	}

	style := lipgloss.NewStyle().Foreground(theme.Text)
	if t.Focused {
		style = lipgloss.NewStyle().Foreground(theme.Primary).Bold(true)
		line = "▸ " + line
	} else {
		line = "  " + line
	}
	return style.Render(line)
}
