// Package planview implements the generated-plan screen: section cards,
// refinement turns, clipboard copy, archiving and the export entry point.
package planview

import (
	"context"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/atotto/clipboard"

	"github.com/justinav/pamoka/internal/archive"
	"github.com/justinav/pamoka/internal/export"
	"github.com/justinav/pamoka/internal/plan"
	"github.com/justinav/pamoka/internal/router"
	"github.com/justinav/pamoka/internal/screen"
	"github.com/justinav/pamoka/internal/screens/archiveview"
	"github.com/justinav/pamoka/internal/screens/exportview"
	"github.com/justinav/pamoka/internal/ui/components"
	"github.com/justinav/pamoka/internal/ui/layout"
	"github.com/justinav/pamoka/internal/view"
)

const (
	copyConfirmDur  = 2 * time.Second
	spinnerInterval = 250 * time.Millisecond
)

// PlanScreen displays the generated lesson plan.
type PlanScreen struct {
	session  *plan.Session
	planRepo archive.PlanRepo
	state    *view.State

	// input is the form submission that opened this screen; empty topic
	// when the screen shows an archived plan instead.
	input plan.PromptInput

	refine       components.TextInput
	focusSection int
	spinFrame    int
	statusMsg    string
}

var _ screen.Screen = (*PlanScreen)(nil)
var _ screen.KeyHintProvider = (*PlanScreen)(nil)

// New creates a PlanScreen that runs the initial generation for in.
func New(session *plan.Session, planRepo archive.PlanRepo, in plan.PromptInput) *PlanScreen {
	return &PlanScreen{
		session:  session,
		planRepo: planRepo,
		state:    view.New(),
		input:    in,
		refine:   components.NewTextInput("Patikslinti planą", "pvz. sutrumpink namų darbus", false, 500),
	}
}

// NewArchived creates a PlanScreen showing an archived snapshot. The
// generation session is discarded: an archived plan has no conversation
// behind it, so refinement requires a fresh generation first.
func NewArchived(session *plan.Session, planRepo archive.PlanRepo, saved *archive.SavedPlan) *PlanScreen {
	s := &PlanScreen{
		session:  session,
		planRepo: planRepo,
		state:    view.New(),
		refine:   components.NewTextInput("Patikslinti planą", "pvz. sutrumpink namų darbus", false, 500),
	}
	session.Reset()
	p := saved.Plan
	s.state.ShowArchived(&p, saved.ID)
	return s
}

func (s *PlanScreen) Title() string {
	return "Pamokos planas"
}

func (s *PlanScreen) KeyHints() []layout.KeyHint {
	if s.state.Busy() {
		return []layout.KeyHint{{Key: "Esc", Description: "Atgal"}}
	}
	if s.state.Phase() == view.PhaseError {
		return []layout.KeyHint{{Key: "Enter", Description: "Uždaryti klaidą"}}
	}
	if s.refine.Focused() {
		return []layout.KeyHint{
			{Key: "Enter", Description: "Siųsti"},
			{Key: "Esc", Description: "Atšaukti"},
		}
	}
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Sekcija"},
		{Key: "C", Description: "Kopijuoti"},
		{Key: "R", Description: "Tikslinti"},
		{Key: "S", Description: "Išsaugoti"},
		{Key: "E", Description: "PDF"},
		{Key: "Esc", Description: "Atgal"},
	}
}

// HandlesEsc claims the esc key while the refinement input is open or
// an error banner is showing, so esc dismisses those instead of
// navigating back.
func (s *PlanScreen) HandlesEsc() bool {
	return s.refine.Focused() || s.state.Phase() == view.PhaseError
}

func (s *PlanScreen) Init() tea.Cmd {
	// Archived plans arrive already in Ready; only form submissions
	// trigger a generation here.
	if s.state.Phase() == view.PhaseReady {
		return nil
	}
	s.state.StartGeneration(true)
	return tea.Batch(s.generate(true, ""), s.spinTick())
}

func (s *PlanScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case planReadyMsg:
		return s.handlePlanReady(msg)

	case savedMsg:
		if msg.Err != nil {
			s.statusMsg = "Nepavyko išsaugoti: " + msg.Err.Error()
			return s, nil
		}
		s.state.MarkSaved(msg.Saved.ID)
		s.statusMsg = "Išsaugota archyve: " + msg.Saved.Title
		return s, nil

	case copyExpireMsg:
		s.state.ClearCopied(msg.Field)
		return s, nil

	case spinnerTickMsg:
		if !s.state.Busy() {
			return s, nil
		}
		s.spinFrame++
		return s, s.spinTick()

	case exportview.DoneMsg:
		s.state.SetExportStatus(msg.Status)
		return s, nil

	case tea.KeyMsg:
		return s.handleKey(msg)
	}

	if s.refine.Focused() {
		var cmd tea.Cmd
		s.refine, cmd = s.refine.Update(msg)
		return s, cmd
	}
	return s, nil
}

func (s *PlanScreen) handlePlanReady(msg planReadyMsg) (screen.Screen, tea.Cmd) {
	if msg.Err != nil {
		s.state.FailGeneration(msg.Err.Error())
		return s, nil
	}
	s.state.FinishGeneration(msg.Plan)
	s.focusSection = 0
	return s, nil
}

func (s *PlanScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	key := msg.String()

	// While a generation is in flight every submission control is
	// disabled; only navigation out is allowed (handled by the app).
	if s.state.Busy() {
		return s, nil
	}

	if s.state.Phase() == view.PhaseError {
		switch key {
		case "enter", "esc":
			s.state.DismissError()
			// A failed initial generation leaves nothing to show; fall
			// back to the form below.
			if s.state.Phase() == view.PhaseIdle {
				return s, func() tea.Msg { return router.PopScreenMsg{} }
			}
		}
		return s, nil
	}

	if s.refine.Focused() {
		switch key {
		case "esc":
			s.refine.Blur()
			return s, nil
		case "enter":
			return s.submitRefinement()
		}
		var cmd tea.Cmd
		s.refine, cmd = s.refine.Update(msg)
		return s, cmd
	}

	if s.state.Phase() != view.PhaseReady {
		return s, nil
	}

	sections := export.SectionsFromPlan(s.state.Plan())

	switch key {
	case "up", "k":
		if s.focusSection > 0 {
			s.focusSection--
		}
	case "down", "j":
		if s.focusSection < len(sections)-1 {
			s.focusSection++
		}
	case "c":
		return s.copySection(sections)
	case "r":
		// An archived snapshot has no conversation behind it.
		if !s.session.IsOpen() {
			s.statusMsg = "Archyvuoto plano tikslinti negalima: sugeneruokite naują planą."
			return s, nil
		}
		return s, s.refine.Focus()
	case "s":
		return s, s.save()
	case "e":
		p := s.state.Plan()
		return s, func() tea.Msg {
			return router.PushScreenMsg{Screen: exportview.New(p)}
		}
	case "a":
		st := s.state
		return s, func() tea.Msg {
			return router.PushScreenMsg{
				Screen: archiveview.New(s.planRepo, st, func(saved *archive.SavedPlan) screen.Screen {
					return NewArchived(s.session, s.planRepo, saved)
				}),
			}
		}
	}
	return s, nil
}

// copySection writes the focused section's text to the system clipboard
// and shows a short-lived confirmation on that section only.
func (s *PlanScreen) copySection(sections []export.Section) (screen.Screen, tea.Cmd) {
	if s.focusSection < 0 || s.focusSection >= len(sections) {
		return s, nil
	}
	sec := sections[s.focusSection]
	if err := clipboard.WriteAll(sec.Body); err != nil {
		s.statusMsg = "Nepavyko nukopijuoti: " + err.Error()
		return s, nil
	}
	field := string(sec.ID)
	s.state.SetCopied(field)
	return s, tea.Tick(copyConfirmDur, func(time.Time) tea.Msg {
		return copyExpireMsg{Field: field}
	})
}

// save archives the displayed plan as a new snapshot.
func (s *PlanScreen) save() tea.Cmd {
	p := s.state.Plan()
	return func() tea.Msg {
		saved, err := s.planRepo.Save(context.Background(), p)
		return savedMsg{Saved: saved, Err: err}
	}
}

func (s *PlanScreen) submitRefinement() (screen.Screen, tea.Cmd) {
	text, err := plan.BuildRefinementPrompt(s.refine.Value())
	if err != nil {
		s.statusMsg = err.Error()
		return s, nil
	}
	s.refine.SetValue("")
	s.refine.Blur()
	s.statusMsg = ""
	s.state.StartGeneration(false)
	return s, tea.Batch(s.generate(false, text), s.spinTick())
}

// generate runs one session turn asynchronously and parses the reply.
func (s *PlanScreen) generate(initial bool, refinement string) tea.Cmd {
	session := s.session
	in := s.input
	return func() tea.Msg {
		prompt := refinement
		if initial {
			var err error
			prompt, err = plan.BuildPrompt(in)
			if err != nil {
				return planReadyMsg{Err: err}
			}
		}

		raw, err := session.Generate(context.Background(), prompt, initial)
		if err != nil {
			return planReadyMsg{Err: err}
		}

		p, err := plan.Parse(raw)
		if err != nil {
			return planReadyMsg{Err: err}
		}
		return planReadyMsg{Plan: p}
	}
}

func (s *PlanScreen) spinTick() tea.Cmd {
	return tea.Tick(spinnerInterval, func(t time.Time) tea.Msg {
		return spinnerTickMsg(t)
	})
}
