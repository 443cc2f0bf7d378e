package plan

// LessonPlan is the structured record produced by the generation service
// for one teaching unit. Field names and JSON tags mirror the contract the
// system instruction dictates to the model.
type LessonPlan struct {
	// GeneralNotes carries teacher-supplied context echoed back by the
	// model. Empty string means "none".
	GeneralNotes     string           `json:"generalNotes,omitempty"`
	LessonOverview   LessonOverview   `json:"lessonOverview"`
	LessonActivities LessonActivities `json:"lessonActivities"`
	Homework         Homework         `json:"homework"`
	EDiaryEntry      EDiaryEntry      `json:"eDiaryEntry"`
	Motivation       string           `json:"motivation"`
}

// LessonOverview summarizes the lesson: topic, goal, competencies per the
// national curriculum, and the evaluation approach.
type LessonOverview struct {
	Topic        string `json:"topic"`
	Goal         string `json:"goal"`
	Competencies string `json:"competencies"`
	Evaluation   string `json:"evaluation"`
}

// LessonActivities holds differentiated in-class activities across three
// difficulty tiers.
type LessonActivities struct {
	Gifted     string `json:"gifted"`
	General    string `json:"general"`
	Struggling string `json:"struggling"`
}

// Homework holds differentiated homework with a motivating purpose line.
type Homework struct {
	Purpose    string `json:"purpose"`
	Gifted     string `json:"gifted"`
	General    string `json:"general"`
	Struggling string `json:"struggling"`
}

// EDiaryEntry holds fields formatted for copy-paste into the school's
// electronic diary system.
type EDiaryEntry struct {
	Classwork        string `json:"classwork"`
	Homework         string `json:"homework"`
	Notes            string `json:"notes"`
	ThematicPlanning string `json:"thematicPlanning"`
	IndividualWork   string `json:"individualWork"`
}

// Topic returns the plan's topic, the display handle used for archive
// titles and export filenames.
func (p *LessonPlan) Topic() string {
	return p.LessonOverview.Topic
}
