// Package archiveview implements the saved-plans screen: browse, load
// and delete archived lesson plans.
package archiveview

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/justinav/pamoka/internal/archive"
	"github.com/justinav/pamoka/internal/router"
	"github.com/justinav/pamoka/internal/screen"
	"github.com/justinav/pamoka/internal/ui/layout"
	"github.com/justinav/pamoka/internal/ui/theme"
	"github.com/justinav/pamoka/internal/view"
)

type plansLoadedMsg struct {
	Plans []*archive.SavedPlan
	Err   error
}

type deleteDoneMsg struct {
	ID  string
	Err error
}

// ArchiveScreen lists archived plans.
type ArchiveScreen struct {
	planRepo archive.PlanRepo

	// parentState, when set, belongs to the plan screen beneath this
	// one; deleting the entry it displays clears that view.
	parentState *view.State

	// loadFactory builds the screen that shows a loaded snapshot.
	loadFactory func(*archive.SavedPlan) screen.Screen

	plans      []*archive.SavedPlan
	selected   int
	confirming bool
	loaded     bool
	errMsg     string
}

var _ screen.Screen = (*ArchiveScreen)(nil)
var _ screen.KeyHintProvider = (*ArchiveScreen)(nil)

// New creates the archive screen.
func New(planRepo archive.PlanRepo, parentState *view.State, loadFactory func(*archive.SavedPlan) screen.Screen) *ArchiveScreen {
	return &ArchiveScreen{
		planRepo:    planRepo,
		parentState: parentState,
		loadFactory: loadFactory,
	}
}

func (s *ArchiveScreen) Title() string {
	return "Archyvas"
}

func (s *ArchiveScreen) KeyHints() []layout.KeyHint {
	if s.confirming {
		return []layout.KeyHint{
			{Key: "Y", Description: "Ištrinti"},
			{Key: "N", Description: "Atšaukti"},
		}
	}
	return []layout.KeyHint{
		{Key: "Enter", Description: "Atidaryti"},
		{Key: "D", Description: "Ištrinti"},
		{Key: "↑↓", Description: "Naviguoti"},
		{Key: "Esc", Description: "Atgal"},
	}
}

// HandlesEsc claims esc while the delete confirmation is showing.
func (s *ArchiveScreen) HandlesEsc() bool {
	return s.confirming
}

func (s *ArchiveScreen) Init() tea.Cmd {
	return s.load()
}

func (s *ArchiveScreen) load() tea.Cmd {
	return func() tea.Msg {
		plans, err := s.planRepo.List(context.Background())
		return plansLoadedMsg{Plans: plans, Err: err}
	}
}

func (s *ArchiveScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case plansLoadedMsg:
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
		} else {
			s.plans = msg.Plans
			if s.selected >= len(s.plans) {
				s.selected = len(s.plans) - 1
			}
			if s.selected < 0 {
				s.selected = 0
			}
		}
		s.loaded = true
		return s, nil

	case deleteDoneMsg:
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
			return s, nil
		}
		if s.parentState != nil {
			s.parentState.DropIfActive(msg.ID)
		}
		return s, s.load()

	case tea.KeyMsg:
		return s.handleKey(msg)
	}
	return s, nil
}

func (s *ArchiveScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	key := msg.String()

	if s.confirming {
		switch key {
		case "y", "Y":
			s.confirming = false
			return s, s.deleteSelected()
		case "n", "N", "esc":
			s.confirming = false
		}
		return s, nil
	}

	switch key {
	case "esc":
		return s, func() tea.Msg { return router.PopScreenMsg{} }
	case "up", "k":
		if s.selected > 0 {
			s.selected--
		}
	case "down", "j":
		if s.selected < len(s.plans)-1 {
			s.selected++
		}
	case "d":
		if len(s.plans) > 0 {
			s.confirming = true
		}
	case "enter":
		if s.selected >= 0 && s.selected < len(s.plans) && s.loadFactory != nil {
			loaded := s.loadFactory(s.plans[s.selected])
			return s, func() tea.Msg {
				return router.ReplaceScreenMsg{Screen: loaded}
			}
		}
	}
	return s, nil
}

func (s *ArchiveScreen) deleteSelected() tea.Cmd {
	if s.selected < 0 || s.selected >= len(s.plans) {
		return nil
	}
	id := s.plans[s.selected].ID
	return func() tea.Msg {
		err := s.planRepo.Delete(context.Background(), id)
		return deleteDoneMsg{ID: id, Err: err}
	}
}

func (s *ArchiveScreen) View(width, height int) string {
	if s.errMsg != "" {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.Error).
			Render(fmt.Sprintf("\n\nKlaida: %s", s.errMsg))
	}
	if !s.loaded {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).
			Render("\n\n  Kraunamas archyvas...")
	}
	if len(s.plans) == 0 {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).Italic(true).
			Render("\n\n  Archyvas tuščias. Išsaugokite planą klavišu S.")
	}

	var b strings.Builder
	b.WriteString("\n")

	for i, sp := range s.plans {
		prefix := "  "
		if i == s.selected {
			prefix = "> "
		}

		line := fmt.Sprintf("%s%s", prefix, sp.Title)

		style := lipgloss.NewStyle().Foreground(theme.Text)
		if i == s.selected {
			style = style.Foreground(theme.Primary).Bold(true)
		}
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
			style.Render(line)))
		b.WriteString("\n")
	}

	if s.confirming && s.selected < len(s.plans) {
		b.WriteString("\n")
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
			lipgloss.NewStyle().Foreground(theme.Error).Bold(true).
				Render(fmt.Sprintf("Ištrinti „%s“? (y/n)", s.plans[s.selected].Title))))
	}

	return b.String()
}
