package plan

import (
	"errors"
	"fmt"
	"strings"
)

// EvaluationOther is the enumerated evaluation type meaning "other":
// the teacher supplies their own wording in CustomEvaluationType.
const EvaluationOther = "kita"

// EvaluationTypes lists the enumerated evaluation types offered in the form.
var EvaluationTypes = []string{
	"formuojamasis",
	"kaupiamasis",
	"diagnostinis",
	"apibendrinamasis",
	EvaluationOther,
}

// ErrMissingFields is returned when a required form field is empty.
// It is a validation error: no prompt is built and nothing is sent.
var ErrMissingFields = errors.New("būtina nurodyti klasę, dalyką ir temą")

// PromptInput holds the lesson-information form fields.
// Grade, Subject and Topic are required; the rest are optional.
type PromptInput struct {
	Grade   string
	Subject string
	Topic   string

	Goal                  string
	Activities            string
	GeneralNotes          string
	EvaluationType        string
	CustomEvaluationType  string
	EvaluationDescription string
}

// EffectiveEvaluationType resolves the evaluation type the prompt embeds:
// the custom text when the type is "kita" and custom text is non-empty,
// otherwise the selected enumerated type.
func (in PromptInput) EffectiveEvaluationType() string {
	if in.EvaluationType == EvaluationOther && strings.TrimSpace(in.CustomEvaluationType) != "" {
		return strings.TrimSpace(in.CustomEvaluationType)
	}
	return in.EvaluationType
}

// BuildPrompt converts the form input into the instruction sent to the
// generation session. The output is deterministic: one labeled line per
// supplied field, in fixed order; empty optional fields contribute no line.
func BuildPrompt(in PromptInput) (string, error) {
	if strings.TrimSpace(in.Grade) == "" ||
		strings.TrimSpace(in.Subject) == "" ||
		strings.TrimSpace(in.Topic) == "" {
		return "", ErrMissingFields
	}

	var b strings.Builder
	b.WriteString("Sukurk pamokos planą.\n")

	writeLine := func(label, value string) {
		value = strings.TrimSpace(value)
		if value == "" {
			return
		}
		b.WriteString(fmt.Sprintf("- %s: %s\n", label, value))
	}

	writeLine("Klasė", in.Grade)
	writeLine("Dalykas", in.Subject)
	writeLine("Pamokos tema", in.Topic)
	writeLine("Pamokos tikslas", in.Goal)
	writeLine("Papildomos idėjos ar veiklos", in.Activities)
	writeLine("Bendros pastabos", in.GeneralNotes)
	writeLine("Vertinimo tipas", in.EffectiveEvaluationType())
	writeLine("Vertinimo aprašymas", in.EvaluationDescription)

	b.WriteString("Sugeneruok planą.")
	return b.String(), nil
}

// BuildRefinementPrompt validates refinement text before it is sent into
// the open session. Refinements bypass BuildPrompt entirely.
func BuildRefinementPrompt(text string) (string, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return "", errors.New("įveskite patikslinimo tekstą")
	}
	return text, nil
}
