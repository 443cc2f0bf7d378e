package planview

import (
	"time"

	"github.com/justinav/pamoka/internal/archive"
	"github.com/justinav/pamoka/internal/plan"
)

// planReadyMsg is sent when a generation turn finishes, successfully
// or not.
type planReadyMsg struct {
	Plan *plan.LessonPlan
	Err  error
}

// savedMsg is sent when archiving the displayed plan completes.
type savedMsg struct {
	Saved *archive.SavedPlan
	Err   error
}

// copyExpireMsg clears the copy confirmation for one section.
type copyExpireMsg struct {
	Field string
}

// spinnerTickMsg animates the loading indicator.
type spinnerTickMsg time.Time
