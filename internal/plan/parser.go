package plan

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/justinav/pamoka/internal/llm"
)

// ParseError wraps any failure to turn a raw reply into a LessonPlan.
// Callers treat it like a service error: the reply is discarded.
type ParseError struct {
	Raw string
	Err error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("nepavyko apdoroti atsakymo: %v", e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// StripFences removes Markdown code-fence markers from a raw reply.
// Models sometimes wrap JSON in ```json ... ``` even when asked not to;
// every fence marker is removed, wherever it appears, then the result is
// trimmed.
func StripFences(raw string) string {
	s := strings.TrimSpace(raw)
	s = strings.ReplaceAll(s, "```json", "")
	s = strings.ReplaceAll(s, "```", "")
	return strings.TrimSpace(s)
}

// Parse decodes a raw session reply into a LessonPlan.
// The reply is fence-stripped, validated against PlanSchema, and decoded.
// A reply that is not valid JSON or does not match the plan shape fails
// with a ParseError.
func Parse(raw string) (*LessonPlan, error) {
	body := StripFences(raw)

	if err := llm.ValidateAgainst(PlanSchema, json.RawMessage(body)); err != nil {
		return nil, &ParseError{Raw: raw, Err: err}
	}

	var p LessonPlan
	if err := json.Unmarshal([]byte(body), &p); err != nil {
		return nil, &ParseError{Raw: raw, Err: err}
	}

	return &p, nil
}
