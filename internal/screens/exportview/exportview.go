// Package exportview implements the PDF export screen: per-section
// inclusion and font size choices, compact layout, and running the export.
package exportview

import (
	"fmt"
	"path/filepath"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/justinav/pamoka/internal/export"
	"github.com/justinav/pamoka/internal/plan"
	"github.com/justinav/pamoka/internal/router"
	"github.com/justinav/pamoka/internal/screen"
	"github.com/justinav/pamoka/internal/ui/components"
	"github.com/justinav/pamoka/internal/ui/layout"
	"github.com/justinav/pamoka/internal/ui/theme"
)

// DoneMsg reports a finished export to the screen beneath.
type DoneMsg struct {
	Status string
}

type exportDoneMsg struct {
	Result *export.Result
	Err    error
}

// ExportScreen configures and runs a PDF export of one plan.
type ExportScreen struct {
	plan     *plan.LessonPlan
	sections []export.Section
	cfg      export.Config

	// rows: one per present section, then compact, then the run button.
	selected  int
	running   bool
	statusMsg string
	done      bool
}

var _ screen.Screen = (*ExportScreen)(nil)
var _ screen.KeyHintProvider = (*ExportScreen)(nil)

// New creates the export screen for p.
func New(p *plan.LessonPlan) *ExportScreen {
	return &ExportScreen{
		plan:     p,
		sections: export.SectionsFromPlan(p),
		cfg:      export.DefaultConfig(),
	}
}

func (s *ExportScreen) rowCount() int {
	return len(s.sections) + 2 // sections + compact + run
}

func (s *ExportScreen) compactRow() int { return len(s.sections) }
func (s *ExportScreen) runRow() int     { return len(s.sections) + 1 }

func (s *ExportScreen) Title() string {
	return "PDF eksportas"
}

func (s *ExportScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Space", Description: "Įjungti/išjungti"},
		{Key: "F", Description: "Šriftas"},
		{Key: "Enter", Description: "Eksportuoti"},
		{Key: "Esc", Description: "Atgal"},
	}
}

func (s *ExportScreen) Init() tea.Cmd {
	return nil
}

func (s *ExportScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case exportDoneMsg:
		s.running = false
		if msg.Err != nil {
			s.statusMsg = "Eksportas nepavyko: " + msg.Err.Error()
			return s, nil
		}
		s.done = true
		s.statusMsg = fmt.Sprintf("Išsaugota %s (%d psl.)", msg.Result.Path, msg.Result.Pages)
		status := s.statusMsg
		// Pop back and let the plan screen show the confirmation.
		return s, tea.Batch(
			func() tea.Msg { return router.PopScreenMsg{} },
			func() tea.Msg { return DoneMsg{Status: status} },
		)

	case tea.KeyMsg:
		return s.handleKey(msg)
	}
	return s, nil
}

func (s *ExportScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	if s.running {
		return s, nil
	}

	switch msg.String() {
	case "esc":
		return s, func() tea.Msg { return router.PopScreenMsg{} }
	case "up", "k":
		if s.selected > 0 {
			s.selected--
		}
	case "down", "j":
		if s.selected < s.rowCount()-1 {
			s.selected++
		}
	case "space":
		if s.selected < len(s.sections) {
			id := s.sections[s.selected].ID
			s.cfg.Include[id] = !s.cfg.Include[id]
		} else if s.selected == s.compactRow() {
			s.cfg.Compact = !s.cfg.Compact
		}
	case "f":
		if s.selected < len(s.sections) {
			id := s.sections[s.selected].ID
			s.cfg.FontSizes[id] = nextFontSize(s.cfg.FontSizeFor(id))
		}
	case "enter":
		if s.selected == s.runRow() {
			return s.runExport()
		}
		if s.selected == s.compactRow() {
			s.cfg.Compact = !s.cfg.Compact
			return s, nil
		}
		if s.selected < len(s.sections) {
			id := s.sections[s.selected].ID
			s.cfg.Include[id] = !s.cfg.Include[id]
		}
	}
	return s, nil
}

func nextFontSize(fs export.FontSize) export.FontSize {
	switch fs {
	case export.FontSmall:
		return export.FontMedium
	case export.FontMedium:
		return export.FontLarge
	default:
		return export.FontSmall
	}
}

func fontLabel(fs export.FontSize) string {
	switch fs {
	case export.FontSmall:
		return "mažas"
	case export.FontLarge:
		return "didelis"
	default:
		return "vidutinis"
	}
}

func (s *ExportScreen) runExport() (screen.Screen, tea.Cmd) {
	if s.cfg.IncludedCount() == 0 {
		s.statusMsg = "Pasirinkite bent vieną sekciją."
		return s, nil
	}
	s.running = true
	s.statusMsg = ""

	sections := s.sections
	cfg := s.cfg
	path := filepath.Join(".", export.Filename(s.plan.Topic()))
	return s, func() tea.Msg {
		res, err := export.Export(sections, cfg, path)
		return exportDoneMsg{Result: res, Err: err}
	}
}

func (s *ExportScreen) View(width, height int) string {
	var b strings.Builder

	b.WriteString(theme.Title.Render("PDF eksportas") + "\n\n")

	for i, sec := range s.sections {
		t := components.Toggle{
			Label:   sec.Title,
			On:      s.cfg.Include[sec.ID],
			Value:   fontLabel(s.cfg.FontSizeFor(sec.ID)),
			Focused: i == s.selected,
		}
		b.WriteString(t.View() + "\n")
	}

	b.WriteString("\n")
	compact := components.Toggle{
		Label:   "Kompaktiškas išdėstymas",
		On:      s.cfg.Compact,
		Focused: s.selected == s.compactRow(),
	}
	b.WriteString(compact.View() + "\n\n")

	label := "Eksportuoti"
	if s.running {
		label = "Eksportuojama..."
	}
	btn := components.NewButton(label, s.selected == s.runRow(), nil)
	b.WriteString(btn.View() + "\n")

	if s.statusMsg != "" {
		style := lipgloss.NewStyle().Foreground(theme.Error)
		if s.done {
			style = lipgloss.NewStyle().Foreground(theme.Success)
		}
		b.WriteString("\n" + style.Render(s.statusMsg) + "\n")
	}

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, b.String())
}
