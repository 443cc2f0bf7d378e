// Package form implements the lesson-information form screen: the entry
// point where the teacher describes the lesson before generation.
package form

import (
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/justinav/pamoka/internal/archive"
	"github.com/justinav/pamoka/internal/plan"
	"github.com/justinav/pamoka/internal/router"
	"github.com/justinav/pamoka/internal/screen"
	"github.com/justinav/pamoka/internal/screens/archiveview"
	"github.com/justinav/pamoka/internal/screens/planview"
	"github.com/justinav/pamoka/internal/ui/components"
	"github.com/justinav/pamoka/internal/ui/layout"
	"github.com/justinav/pamoka/internal/ui/theme"
)

// Field indices in tab order. The custom evaluation input only takes
// part when type "kita" is selected.
const (
	fieldGrade = iota
	fieldSubject
	fieldTopic
	fieldGoal
	fieldActivities
	fieldNotes
	fieldEvalType
	fieldEvalCustom
	fieldEvalDescription
	fieldGenerate
	fieldCount
)

// FormScreen collects lesson information and launches generation.
type FormScreen struct {
	session  *plan.Session
	planRepo archive.PlanRepo

	grade    components.TextInput
	subject  components.TextInput
	topic    components.TextInput
	goal     components.TextArea
	acts     components.TextArea
	notes    components.TextArea
	evalIdx  int
	evalCust components.TextInput
	evalDesc components.TextArea

	focus  int
	errMsg string
}

var _ screen.Screen = (*FormScreen)(nil)
var _ screen.KeyHintProvider = (*FormScreen)(nil)

// New creates the form screen with injected dependencies.
func New(session *plan.Session, planRepo archive.PlanRepo) *FormScreen {
	f := &FormScreen{
		session:  session,
		planRepo: planRepo,
		grade:    components.NewTextInput("Klasė", "pvz. 7a", true, 40),
		subject:  components.NewTextInput("Dalykas", "pvz. Matematika", true, 80),
		topic:    components.NewTextInput("Pamokos tema", "pvz. Trupmenų sudėtis", true, 200),
		goal:     components.NewTextArea("Pamokos tikslas", "ko mokiniai turėtų išmokti", 2),
		acts:     components.NewTextArea("Papildomos idėjos ar veiklos", "neprivaloma", 2),
		notes:    components.NewTextArea("Bendros pastabos", "pvz. klasėje yra mokinių su skaitymo sunkumais", 2),
		evalCust: components.NewTextInput("Kitas vertinimo tipas", "įrašykite savo", false, 80),
		evalDesc: components.NewTextArea("Vertinimo aprašymas", "neprivaloma", 2),
	}
	return f
}

func (f *FormScreen) Title() string {
	return "Nauja pamoka"
}

func (f *FormScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Tab", Description: "Kitas laukas"},
		{Key: "Enter", Description: "Generuoti"},
		{Key: "Ctrl+A", Description: "Archyvas"},
		{Key: "Ctrl+C", Description: "Išeiti"},
	}
}

func (f *FormScreen) Init() tea.Cmd {
	return f.setFocus(fieldGrade)
}

func (f *FormScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyMsg); ok {
		switch kmsg.String() {
		case "tab":
			return f, f.setFocus(f.nextField(1))
		case "shift+tab":
			return f, f.setFocus(f.nextField(-1))
		case "ctrl+a":
			return f, func() tea.Msg {
				return router.PushScreenMsg{
					Screen: archiveview.New(f.planRepo, nil, func(saved *archive.SavedPlan) screen.Screen {
						return planview.NewArchived(f.session, f.planRepo, saved)
					}),
				}
			}
		}

		switch f.focus {
		case fieldEvalType:
			switch kmsg.String() {
			case "left", "h":
				f.evalIdx = (f.evalIdx + len(plan.EvaluationTypes) - 1) % len(plan.EvaluationTypes)
				return f, nil
			case "right", "l", "enter", "space":
				f.evalIdx = (f.evalIdx + 1) % len(plan.EvaluationTypes)
				return f, nil
			}
		case fieldGenerate:
			if kmsg.String() == "enter" {
				return f.submit()
			}
		default:
			// Enter in single-line inputs advances; textareas keep it
			// for newlines.
			if kmsg.String() == "enter" && f.isSingleLine(f.focus) {
				return f, f.setFocus(f.nextField(1))
			}
		}
	}

	return f, f.updateFocused(msg)
}

// isSingleLine reports whether the field is a one-line text input.
func (f *FormScreen) isSingleLine(field int) bool {
	switch field {
	case fieldGrade, fieldSubject, fieldTopic, fieldEvalCustom:
		return true
	}
	return false
}

// nextField steps the focus index, skipping the custom evaluation input
// unless type "kita" is active.
func (f *FormScreen) nextField(dir int) int {
	next := f.focus
	for {
		next = (next + dir + fieldCount) % fieldCount
		if next == fieldEvalCustom && plan.EvaluationTypes[f.evalIdx] != plan.EvaluationOther {
			continue
		}
		return next
	}
}

func (f *FormScreen) setFocus(field int) tea.Cmd {
	f.grade.Blur()
	f.subject.Blur()
	f.topic.Blur()
	f.goal.Blur()
	f.acts.Blur()
	f.notes.Blur()
	f.evalCust.Blur()
	f.evalDesc.Blur()

	f.focus = field
	switch field {
	case fieldGrade:
		return f.grade.Focus()
	case fieldSubject:
		return f.subject.Focus()
	case fieldTopic:
		return f.topic.Focus()
	case fieldGoal:
		return f.goal.Focus()
	case fieldActivities:
		return f.acts.Focus()
	case fieldNotes:
		return f.notes.Focus()
	case fieldEvalCustom:
		return f.evalCust.Focus()
	case fieldEvalDescription:
		return f.evalDesc.Focus()
	}
	return nil
}

func (f *FormScreen) updateFocused(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	switch f.focus {
	case fieldGrade:
		f.grade, cmd = f.grade.Update(msg)
	case fieldSubject:
		f.subject, cmd = f.subject.Update(msg)
	case fieldTopic:
		f.topic, cmd = f.topic.Update(msg)
	case fieldGoal:
		f.goal, cmd = f.goal.Update(msg)
	case fieldActivities:
		f.acts, cmd = f.acts.Update(msg)
	case fieldNotes:
		f.notes, cmd = f.notes.Update(msg)
	case fieldEvalCustom:
		f.evalCust, cmd = f.evalCust.Update(msg)
	case fieldEvalDescription:
		f.evalDesc, cmd = f.evalDesc.Update(msg)
	}
	return cmd
}

// input assembles the prompt input from the current field values.
func (f *FormScreen) input() plan.PromptInput {
	return plan.PromptInput{
		Grade:                 f.grade.Value(),
		Subject:               f.subject.Value(),
		Topic:                 f.topic.Value(),
		Goal:                  f.goal.Value(),
		Activities:            f.acts.Value(),
		GeneralNotes:          f.notes.Value(),
		EvaluationType:        plan.EvaluationTypes[f.evalIdx],
		CustomEvaluationType:  f.evalCust.Value(),
		EvaluationDescription: f.evalDesc.Value(),
	}
}

// submit validates the form and, when valid, opens the plan screen
// which runs the generation.
func (f *FormScreen) submit() (screen.Screen, tea.Cmd) {
	in := f.input()
	if _, err := plan.BuildPrompt(in); err != nil {
		f.errMsg = err.Error()
		return f, nil
	}
	f.errMsg = ""

	planScreen := planview.New(f.session, f.planRepo, in)
	return f, func() tea.Msg {
		return router.PushScreenMsg{Screen: planScreen}
	}
}

func (f *FormScreen) View(width, height int) string {
	cw := width - 8
	if cw > 76 {
		cw = 76
	}
	if cw < 20 {
		cw = 20
	}
	f.goal.SetWidth(cw)
	f.acts.SetWidth(cw)
	f.notes.SetWidth(cw)
	f.evalDesc.SetWidth(cw)

	var b strings.Builder
	b.WriteString(f.grade.View() + "\n\n")
	b.WriteString(f.subject.View() + "\n\n")
	b.WriteString(f.topic.View() + "\n\n")
	b.WriteString(f.goal.View() + "\n\n")
	b.WriteString(f.acts.View() + "\n\n")
	b.WriteString(f.notes.View() + "\n\n")
	b.WriteString(f.renderEvalType() + "\n")
	if plan.EvaluationTypes[f.evalIdx] == plan.EvaluationOther {
		b.WriteString("\n" + f.evalCust.View() + "\n")
	}
	b.WriteString("\n" + f.evalDesc.View() + "\n\n")

	btn := components.NewButton("Generuoti planą", f.focus == fieldGenerate, nil)
	b.WriteString(btn.View() + "\n")

	if f.errMsg != "" {
		b.WriteString("\n" + lipgloss.NewStyle().Foreground(theme.Error).Render(f.errMsg) + "\n")
	}

	content := lipgloss.NewStyle().Width(cw).Render(b.String())
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Top, content)
}

// renderEvalType draws the evaluation type selector row.
func (f *FormScreen) renderEvalType() string {
	label := "Vertinimo tipas"
	labelStyle := lipgloss.NewStyle().Foreground(theme.TextDim)
	if f.focus == fieldEvalType {
		labelStyle = lipgloss.NewStyle().Foreground(theme.Primary).Bold(true)
	}

	var opts []string
	for i, t := range plan.EvaluationTypes {
		if i == f.evalIdx {
			opts = append(opts, theme.Selected.Render("["+t+"]"))
		} else {
			opts = append(opts, theme.Unselected.Render(" "+t+" "))
		}
	}
	return labelStyle.Render(label) + "\n" + strings.Join(opts, " ")
}
