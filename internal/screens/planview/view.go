package planview

import (
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/justinav/pamoka/internal/export"
	"github.com/justinav/pamoka/internal/glossary"
	"github.com/justinav/pamoka/internal/ui/theme"
	"github.com/justinav/pamoka/internal/view"
)

var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧"}

func (s *PlanScreen) View(width, height int) string {
	switch s.state.Phase() {
	case view.PhaseLoading:
		// A refinement keeps the previous plan on screen under the
		// loading line; the first generation has nothing to keep.
		if s.state.Plan() == nil {
			return s.renderLoading(width, height)
		}
		return s.renderLoadingBanner(width) + "\n" + s.renderPlan(width)
	case view.PhaseError:
		out := s.renderError(width)
		if s.state.Plan() != nil {
			out += "\n" + s.renderPlan(width)
		}
		return out
	case view.PhaseReady:
		return s.renderPlan(width)
	default:
		return ""
	}
}

func (s *PlanScreen) renderLoading(width, height int) string {
	frame := spinnerFrames[s.spinFrame%len(spinnerFrames)]
	msg := lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).
		Render(frame+" Generuojama...") + "\n\n" +
		lipgloss.NewStyle().Foreground(theme.TextDim).Italic(true).
			Render("Asistentas rengia pamokos planą")
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, msg)
}

func (s *PlanScreen) renderLoadingBanner(width int) string {
	frame := spinnerFrames[s.spinFrame%len(spinnerFrames)]
	return lipgloss.PlaceHorizontal(width, lipgloss.Center,
		lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).
			Render(frame+" Tikslinama..."))
}

func (s *PlanScreen) renderError(width int) string {
	return lipgloss.PlaceHorizontal(width, lipgloss.Center,
		lipgloss.NewStyle().Foreground(theme.Error).Bold(true).
			Render("Klaida: "+s.state.ErrMsg()))
}

func (s *PlanScreen) renderPlan(width int) string {
	p := s.state.Plan()
	if p == nil {
		return ""
	}

	cw := width - 8
	if cw > 90 {
		cw = 90
	}
	if cw < 30 {
		cw = 30
	}

	var b strings.Builder

	title := p.Topic()
	if title == "" {
		title = "Pamokos planas"
	}
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
		theme.Title.Render(title)))
	b.WriteString("\n")

	if s.state.Saved() {
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
			lipgloss.NewStyle().Foreground(theme.Success).Render("● archyve")))
		b.WriteString("\n")
	}

	sections := export.SectionsFromPlan(p)
	for i, sec := range sections {
		b.WriteString(s.renderCard(sec, i == s.focusSection, cw, width))
		b.WriteString("\n")
	}

	if s.refine.Focused() {
		b.WriteString("\n" + lipgloss.PlaceHorizontal(width, lipgloss.Center,
			lipgloss.NewStyle().Width(cw).Render(s.refine.View())))
		b.WriteString("\n")
	}

	if s.statusMsg != "" {
		b.WriteString("\n" + lipgloss.PlaceHorizontal(width, lipgloss.Center,
			lipgloss.NewStyle().Foreground(theme.Accent).Render(s.statusMsg)))
	}
	if st := s.state.ExportStatus(); st != "" {
		b.WriteString("\n" + lipgloss.PlaceHorizontal(width, lipgloss.Center,
			lipgloss.NewStyle().Foreground(theme.Success).Render(st)))
	}

	return b.String()
}

// renderCard draws one section card. Recognized pedagogy terms in the
// body are emphasized in place; the text itself is never altered.
func (s *PlanScreen) renderCard(sec export.Section, focused bool, cw, width int) string {
	titleStyle := lipgloss.NewStyle().Foreground(theme.Secondary).Bold(true)
	header := titleStyle.Render(sec.Title)
	if s.state.CopiedField() == string(sec.ID) {
		header += "  " + lipgloss.NewStyle().Foreground(theme.Success).Render("✓ nukopijuota")
	}

	body := renderHighlighted(sec.Body)

	card := theme.Card
	if focused {
		card = theme.CardFocused
	}

	return lipgloss.PlaceHorizontal(width, lipgloss.Center,
		card.Width(cw).Render(header+"\n\n"+body))
}

// renderHighlighted styles glossary terms within body text.
func renderHighlighted(text string) string {
	spans := glossary.Highlight(text)
	if spans == nil {
		return text
	}
	var b strings.Builder
	for _, sp := range spans {
		if sp.IsTerm {
			b.WriteString(theme.GlossaryTerm.Render(sp.Text))
		} else {
			b.WriteString(sp.Text)
		}
	}
	return b.String()
}
