// Package export turns a lesson plan into a paginated PDF document.
//
// It is deliberately decoupled from the UI: callers hand it an ordered
// list of sections derived from the plan, plus an Config describing
// which sections to include and how to present them. Nothing here reads
// widget state.
package export

import (
	"fmt"
	"strings"

	"github.com/justinav/pamoka/internal/plan"
)

// SectionID identifies one exportable plan section.
type SectionID string

const (
	SectionGeneralNotes SectionID = "general-notes"
	SectionOverview     SectionID = "overview"
	SectionActivities   SectionID = "activities"
	SectionHomework     SectionID = "homework"
	SectionEDiary       SectionID = "ediary"
	SectionMotivation   SectionID = "motivation"
)

// SectionOrder is the fixed canonical order sections appear in.
var SectionOrder = []SectionID{
	SectionGeneralNotes,
	SectionOverview,
	SectionActivities,
	SectionHomework,
	SectionEDiary,
	SectionMotivation,
}

// Section is one renderable unit: a titled block of text.
type Section struct {
	ID    SectionID
	Title string
	Body  string
}

// FontSize is the per-section font size choice.
type FontSize string

const (
	FontSmall  FontSize = "small"
	FontMedium FontSize = "medium"
	FontLarge  FontSize = "large"
)

// Config is the export configuration: inclusion flags plus presentation
// options. Pure user input; excluded sections are never rasterized.
type Config struct {
	// Include maps section IDs to inclusion. Missing keys mean excluded.
	Include map[SectionID]bool

	// FontSizes maps section IDs to a font size. Missing keys mean medium.
	FontSizes map[SectionID]FontSize

	// Compact reduces page margins and section padding.
	Compact bool
}

// DefaultConfig includes every section at medium size.
func DefaultConfig() Config {
	include := make(map[SectionID]bool, len(SectionOrder))
	for _, id := range SectionOrder {
		include[id] = true
	}
	return Config{
		Include:   include,
		FontSizes: make(map[SectionID]FontSize),
	}
}

// FontSizeFor returns the configured size for a section, medium by default.
func (c Config) FontSizeFor(id SectionID) FontSize {
	if s, ok := c.FontSizes[id]; ok && s != "" {
		return s
	}
	return FontMedium
}

// IncludedCount returns how many sections are switched on.
func (c Config) IncludedCount() int {
	n := 0
	for _, id := range SectionOrder {
		if c.Include[id] {
			n++
		}
	}
	return n
}

// SectionsFromPlan flattens a lesson plan into the canonical section list.
// Sections whose content is entirely empty are omitted (there is nothing
// to rasterize).
func SectionsFromPlan(p *plan.LessonPlan) []Section {
	var out []Section

	add := func(id SectionID, title, body string) {
		if strings.TrimSpace(body) == "" {
			return
		}
		out = append(out, Section{ID: id, Title: title, Body: body})
	}

	add(SectionGeneralNotes, "Bendros pastabos", p.GeneralNotes)

	add(SectionOverview, "Pamokos apžvalga", joinFields(
		field("Tema", p.LessonOverview.Topic),
		field("Tikslas ir uždaviniai", p.LessonOverview.Goal),
		field("Pagrindiniai gebėjimai", p.LessonOverview.Competencies),
		field("Vertinimas", p.LessonOverview.Evaluation),
	))

	add(SectionActivities, "Diferencijuotos pamokos veiklos", joinFields(
		field("Gabesniems mokiniams", p.LessonActivities.Gifted),
		field("Bendro lygio mokiniams", p.LessonActivities.General),
		field("Pagalbos reikalingiems mokiniams", p.LessonActivities.Struggling),
	))

	add(SectionHomework, "Diferencijuoti namų darbai", joinFields(
		field("Tikslas ir sąsajos", p.Homework.Purpose),
		field("Gabesniems mokiniams", p.Homework.Gifted),
		field("Bendro lygio mokiniams", p.Homework.General),
		field("Pagalbos reikalingiems mokiniams", p.Homework.Struggling),
	))

	add(SectionEDiary, "Įrašas el. dienynui", joinFields(
		field("Klasės darbas", p.EDiaryEntry.Classwork),
		field("Namų darbai", p.EDiaryEntry.Homework),
		field("Pastabos apie pamoką", p.EDiaryEntry.Notes),
		field("Teminis planavimas", p.EDiaryEntry.ThematicPlanning),
		field("Individualus darbas", p.EDiaryEntry.IndividualWork),
	))

	add(SectionMotivation, "Ačiū tau, mokytojau!", p.Motivation)

	return out
}

func field(label, value string) string {
	value = strings.TrimSpace(value)
	if value == "" {
		return ""
	}
	return fmt.Sprintf("%s: %s", label, value)
}

func joinFields(fields ...string) string {
	var kept []string
	for _, f := range fields {
		if f != "" {
			kept = append(kept, f)
		}
	}
	return strings.Join(kept, "\n\n")
}
