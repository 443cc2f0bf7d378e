package plan

import (
	"errors"
	"strings"
	"testing"
)

func TestBuildPrompt_RequiredOnly(t *testing.T) {
	in := PromptInput{Grade: "7a", Subject: "Matematika", Topic: "Trupmenos"}

	got, err := BuildPrompt(in)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !strings.HasPrefix(got, "Sukurk pamokos planą.\n") {
		t.Errorf("missing preamble: %q", got)
	}
	if !strings.HasSuffix(got, "Sugeneruok planą.") {
		t.Errorf("missing closing line: %q", got)
	}

	// Exactly one labeled line per supplied field.
	labeled := 0
	for _, line := range strings.Split(got, "\n") {
		if strings.HasPrefix(line, "- ") {
			labeled++
		}
	}
	if labeled != 3 {
		t.Errorf("labeled lines = %d, want 3\n%s", labeled, got)
	}

	for _, want := range []string{"- Klasė: 7a", "- Dalykas: Matematika", "- Pamokos tema: Trupmenos"} {
		if !strings.Contains(got, want) {
			t.Errorf("missing %q in:\n%s", want, got)
		}
	}
}

func TestBuildPrompt_MissingRequired(t *testing.T) {
	tests := []struct {
		name string
		in   PromptInput
	}{
		{"empty", PromptInput{}},
		{"no grade", PromptInput{Subject: "Biologija", Topic: "Ląstelė"}},
		{"no subject", PromptInput{Grade: "5b", Topic: "Ląstelė"}},
		{"no topic", PromptInput{Grade: "5b", Subject: "Biologija"}},
		{"whitespace only", PromptInput{Grade: "  ", Subject: "Biologija", Topic: "Ląstelė"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := BuildPrompt(tt.in)
			if !errors.Is(err, ErrMissingFields) {
				t.Fatalf("err = %v, want ErrMissingFields", err)
			}
		})
	}
}

func TestBuildPrompt_OptionalFieldsInOrder(t *testing.T) {
	in := PromptInput{
		Grade:                 "8c",
		Subject:               "Istorija",
		Topic:                 "LDK",
		Goal:                  "suprasti unijos priežastis",
		GeneralNotes:          "klasė triukšminga",
		EvaluationType:        "kaupiamasis",
		EvaluationDescription: "taškai už aktyvumą",
	}

	got, err := BuildPrompt(in)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	order := []string{
		"- Klasė:",
		"- Dalykas:",
		"- Pamokos tema:",
		"- Pamokos tikslas:",
		"- Bendros pastabos:",
		"- Vertinimo tipas: kaupiamasis",
		"- Vertinimo aprašymas:",
	}
	last := -1
	for _, label := range order {
		idx := strings.Index(got, label)
		if idx < 0 {
			t.Fatalf("missing %q in:\n%s", label, got)
		}
		if idx < last {
			t.Fatalf("%q out of order in:\n%s", label, got)
		}
		last = idx
	}

	// Empty Activities must contribute no line.
	if strings.Contains(got, "Papildomos idėjos") {
		t.Errorf("empty optional field leaked a line:\n%s", got)
	}
}

func TestBuildPrompt_Deterministic(t *testing.T) {
	in := PromptInput{Grade: "6a", Subject: "Fizika", Topic: "Jėga", Goal: "II Niutono dėsnis"}
	a, err := BuildPrompt(in)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	b, err := BuildPrompt(in)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if a != b {
		t.Error("same input produced different prompts")
	}
}

func TestEffectiveEvaluationType(t *testing.T) {
	tests := []struct {
		name string
		in   PromptInput
		want string
	}{
		{"enumerated", PromptInput{EvaluationType: "formuojamasis"}, "formuojamasis"},
		{"kita with custom", PromptInput{EvaluationType: EvaluationOther, CustomEvaluationType: "savitarpio"}, "savitarpio"},
		{"kita custom blank", PromptInput{EvaluationType: EvaluationOther, CustomEvaluationType: "   "}, EvaluationOther},
		{"custom ignored for enumerated", PromptInput{EvaluationType: "diagnostinis", CustomEvaluationType: "savitarpio"}, "diagnostinis"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.in.EffectiveEvaluationType(); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestBuildRefinementPrompt(t *testing.T) {
	if _, err := BuildRefinementPrompt("   "); err == nil {
		t.Error("expected error for blank refinement")
	}

	got, err := BuildRefinementPrompt("  sutrumpink namų darbus  ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "sutrumpink namų darbus" {
		t.Errorf("got %q", got)
	}
}
