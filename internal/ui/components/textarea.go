package components

import (
	"charm.land/bubbles/v2/textarea"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/justinav/pamoka/internal/ui/theme"
)

// TextArea wraps bubbles/textarea with Pamoka styling for multi-line
// form fields.
type TextArea struct {
	Model   textarea.Model
	Label   string
	focused bool
}

// NewTextArea creates a styled multi-line input.
func NewTextArea(label, placeholder string, height int) TextArea {
	ta := textarea.New()
	ta.Placeholder = placeholder
	ta.ShowLineNumbers = false
	if height > 0 {
		ta.SetHeight(height)
	}

	return TextArea{
		Model: ta,
		Label: label,
	}
}

// Init returns the initial command.
func (t TextArea) Init() tea.Cmd {
	return nil
}

// Focus gives the area keyboard focus.
func (t *TextArea) Focus() tea.Cmd {
	t.focused = true
	return t.Model.Focus()
}

// Blur removes keyboard focus.
func (t *TextArea) Blur() {
	t.focused = false
	t.Model.Blur()
}

// Focused reports whether the area has focus.
func (t TextArea) Focused() bool {
	return t.focused
}

// SetWidth sets the rendered width.
func (t *TextArea) SetWidth(w int) {
	t.Model.SetWidth(w)
}

// Update handles messages.
func (t TextArea) Update(msg tea.Msg) (TextArea, tea.Cmd) {
	var cmd tea.Cmd
	t.Model, cmd = t.Model.Update(msg)
	return t, cmd
}

// View renders the label and area.
func (t TextArea) View() string {
	style := lipgloss.NewStyle().Foreground(theme.TextDim)
	if t.focused {
		style = lipgloss.NewStyle().Foreground(theme.Primary).Bold(true)
	}
	return style.Render(t.Label) + "\n" + t.Model.View()
}

// Value returns the current text.
func (t TextArea) Value() string {
	return t.Model.Value()
}

// SetValue replaces the text.
func (t *TextArea) SetValue(v string) {
	t.Model.SetValue(v)
}
