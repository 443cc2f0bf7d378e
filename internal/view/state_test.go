package view

import (
	"testing"

	"github.com/justinav/pamoka/internal/plan"
)

func samplePlan(topic string) *plan.LessonPlan {
	return &plan.LessonPlan{
		LessonOverview: plan.LessonOverview{Topic: topic, Goal: "g", Competencies: "c", Evaluation: "e"},
		Motivation:     "m",
	}
}

func TestInitialState(t *testing.T) {
	s := New()
	if s.Phase() != PhaseIdle {
		t.Errorf("phase = %v, want Idle", s.Phase())
	}
	if s.Plan() != nil {
		t.Error("plan set in initial state")
	}
	if s.Busy() {
		t.Error("busy in initial state")
	}
}

func TestGenerationLifecycle(t *testing.T) {
	s := New()

	s.StartGeneration(true)
	if !s.Busy() {
		t.Fatal("not busy while loading")
	}

	p := samplePlan("Trupmenos")
	s.FinishGeneration(p)
	if s.Phase() != PhaseReady {
		t.Errorf("phase = %v, want Ready", s.Phase())
	}
	if s.Plan() != p {
		t.Error("plan not installed")
	}
	if s.Saved() {
		t.Error("fresh plan must be unsaved")
	}
}

func TestFailedInitialClearsPlan(t *testing.T) {
	s := New()
	s.StartGeneration(true)
	s.FailGeneration("tinklo klaida")

	if s.Phase() != PhaseError {
		t.Errorf("phase = %v, want Error", s.Phase())
	}
	if s.Plan() != nil {
		t.Error("failed initial generation left a plan displayed")
	}

	s.DismissError()
	if s.Phase() != PhaseIdle {
		t.Errorf("phase after dismiss = %v, want Idle", s.Phase())
	}
}

func TestFailedRefinementKeepsPlan(t *testing.T) {
	s := New()
	s.StartGeneration(true)
	p := samplePlan("Trupmenos")
	s.FinishGeneration(p)

	s.StartGeneration(false)
	s.FailGeneration("tinklo klaida")

	if s.Plan() != p {
		t.Error("failed refinement dropped the previous plan")
	}

	s.DismissError()
	if s.Phase() != PhaseReady {
		t.Errorf("phase after dismiss = %v, want Ready", s.Phase())
	}
}

func TestRefinementResetsSavedFlag(t *testing.T) {
	s := New()
	s.StartGeneration(true)
	s.FinishGeneration(samplePlan("a"))
	s.MarkSaved("id-1")
	if !s.Saved() {
		t.Fatal("not saved after MarkSaved")
	}

	s.StartGeneration(false)
	s.FinishGeneration(samplePlan("b"))
	if s.Saved() {
		t.Error("refined plan still marked saved")
	}
}

func TestShowArchived(t *testing.T) {
	s := New()
	p := samplePlan("Archyvuotas")
	s.ShowArchived(p, "id-9")

	if s.Phase() != PhaseReady {
		t.Errorf("phase = %v, want Ready", s.Phase())
	}
	if !s.Saved() || s.ActiveID() != "id-9" {
		t.Errorf("activeID = %q, want id-9", s.ActiveID())
	}
}

func TestDropIfActive(t *testing.T) {
	s := New()
	s.ShowArchived(samplePlan("a"), "id-1")

	if s.DropIfActive("id-2") {
		t.Error("dropped for a different id")
	}
	if !s.DropIfActive("id-1") {
		t.Fatal("did not drop for the active id")
	}
	if s.Plan() != nil || s.Phase() != PhaseIdle {
		t.Error("view not cleared after drop")
	}

	// Unsaved plans are never dropped by id.
	s.FinishGeneration(samplePlan("b"))
	if s.DropIfActive("") {
		t.Error("dropped an unsaved plan")
	}
}

func TestCopyConfirmationPerField(t *testing.T) {
	s := New()
	s.SetCopied("ediary")

	// A stale timer for another field must not clear the confirmation.
	s.ClearCopied("overview")
	if s.CopiedField() != "ediary" {
		t.Errorf("copiedField = %q, want ediary", s.CopiedField())
	}

	s.ClearCopied("ediary")
	if s.CopiedField() != "" {
		t.Errorf("copiedField = %q, want empty", s.CopiedField())
	}
}

func TestStartGenerationClearsError(t *testing.T) {
	s := New()
	s.StartGeneration(true)
	s.FailGeneration("klaida")

	s.StartGeneration(true)
	if s.ErrMsg() != "" {
		t.Error("error not cleared when a new generation starts")
	}
	if !s.Busy() {
		t.Error("not busy after StartGeneration")
	}
}
