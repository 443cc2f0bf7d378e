// Package view holds the plan view-state machine.
//
// The displayed plan, the loading/error condition and the transient
// copy/export feedback are modeled as one explicit state value with named
// phases instead of a pile of independent booleans, so every transition
// is a method and the whole thing is testable without a terminal.
package view

import "github.com/justinav/pamoka/internal/plan"

// Phase enumerates the mutually exclusive display phases.
type Phase int

const (
	// PhaseIdle: no plan yet, nothing in flight.
	PhaseIdle Phase = iota
	// PhaseLoading: a generation is in flight. Submission controls are
	// disabled while in this phase — that is the only guard against
	// overlapping generation calls.
	PhaseLoading
	// PhaseReady: a plan is displayed.
	PhaseReady
	// PhaseError: the last generation failed and no plan is displayed
	// from it (a prior plan may still be shown after a failed refinement).
	PhaseError
)

// State is the plan view state.
type State struct {
	phase Phase

	// plan is the currently displayed plan, nil in Idle.
	plan *plan.LessonPlan

	// errMsg is the dismissable error message for PhaseError.
	errMsg string

	// activeID is the archive entry the displayed plan corresponds to.
	// Empty means unsaved. Refining always produces an unsaved
	// derivative, so any successful generation resets it.
	activeID string

	// initialLoad records whether the in-flight generation was initial;
	// a failed initial generation clears the displayed plan, a failed
	// refinement keeps it.
	initialLoad bool

	// copiedField names the field whose copy confirmation is showing.
	// Cleared by a timer message after a short delay.
	copiedField string

	// exportStatus is the transient export feedback line.
	exportStatus string
}

// New returns the initial (idle) state.
func New() *State {
	return &State{phase: PhaseIdle}
}

func (s *State) Phase() Phase           { return s.phase }
func (s *State) Plan() *plan.LessonPlan { return s.plan }
func (s *State) ErrMsg() string         { return s.errMsg }
func (s *State) ActiveID() string       { return s.activeID }
func (s *State) CopiedField() string    { return s.copiedField }
func (s *State) ExportStatus() string   { return s.exportStatus }

// Saved reports whether the displayed plan corresponds to an archive entry.
func (s *State) Saved() bool { return s.activeID != "" }

// Busy reports whether a generation is in flight. Submit controls stay
// disabled while Busy.
func (s *State) Busy() bool { return s.phase == PhaseLoading }

// StartGeneration enters Loading. Any prior error is cleared. The prior
// plan, if any, stays displayed under a soft loading affordance; the very
// first generation therefore shows a full-screen loading state.
func (s *State) StartGeneration(initial bool) {
	s.phase = PhaseLoading
	s.errMsg = ""
	s.initialLoad = initial
}

// FinishGeneration installs a freshly generated plan. The plan is always
// an unsaved derivative, even if the previous one was loaded from the
// archive.
func (s *State) FinishGeneration(p *plan.LessonPlan) {
	s.phase = PhaseReady
	s.plan = p
	s.errMsg = ""
	s.activeID = ""
}

// FailGeneration records a generation or parse failure. A failed initial
// generation does not leave a stale plan displayed; a failed refinement
// keeps the previous plan visible alongside the error.
func (s *State) FailGeneration(msg string) {
	s.phase = PhaseError
	s.errMsg = msg
	if s.initialLoad {
		s.plan = nil
		s.activeID = ""
	}
}

// DismissError returns from PhaseError to whatever the plan implies.
func (s *State) DismissError() {
	s.errMsg = ""
	if s.plan != nil {
		s.phase = PhaseReady
	} else {
		s.phase = PhaseIdle
	}
}

// MarkSaved records that the displayed plan was archived under id.
func (s *State) MarkSaved(id string) {
	s.activeID = id
}

// ShowArchived replaces the displayed plan with an archived snapshot.
func (s *State) ShowArchived(p *plan.LessonPlan, id string) {
	s.phase = PhaseReady
	s.plan = p
	s.errMsg = ""
	s.activeID = id
}

// DropIfActive clears the view when the archive entry it was loaded from
// is deleted. Returns true when the view was cleared.
func (s *State) DropIfActive(id string) bool {
	if s.activeID != id || id == "" {
		return false
	}
	s.plan = nil
	s.activeID = ""
	s.phase = PhaseIdle
	return true
}

// SetCopied records a field-copy confirmation. The UI schedules a
// ClearCopied after a fixed short delay.
func (s *State) SetCopied(field string) {
	s.copiedField = field
}

// ClearCopied expires the copy confirmation; stale timers for a field
// that is no longer showing are ignored.
func (s *State) ClearCopied(field string) {
	if s.copiedField == field {
		s.copiedField = ""
	}
}

// SetExportStatus records transient export feedback, cleared the same way.
func (s *State) SetExportStatus(msg string) {
	s.exportStatus = msg
}

// ClearExportStatus expires the export feedback.
func (s *State) ClearExportStatus() {
	s.exportStatus = ""
}
