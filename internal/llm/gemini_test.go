package llm

import (
	"testing"
)

func TestGeminiModelMapping(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"gemini-flash", "gemini-2.5-flash"},
		{"gemini-flash-lite", "gemini-2.5-flash-lite"},
		{"gemini-pro", "gemini-2.5-pro"},
		{"gemini-2.5-flash", "gemini-2.5-flash"}, // Pass-through
	}
	for _, tt := range tests {
		got := resolveModel(tt.input, geminiModels)
		if got != tt.expected {
			t.Errorf("resolveModel(%q) = %q, want %q", tt.input, got, tt.expected)
		}
	}
}

func TestBuildGeminiSchema(t *testing.T) {
	def := map[string]any{
		"type": "object",
		"properties": map[string]any{
			"topic": map[string]any{"type": "string"},
			"count": map[string]any{"type": "integer"},
			"tier":  map[string]any{"type": "string", "enum": []any{"gifted", "general", "struggling"}},
			"steps": map[string]any{
				"type":  "array",
				"items": map[string]any{"type": "string"},
			},
		},
		"required": []any{"topic", "count"},
	}

	schema := buildGeminiSchema(def)

	if schema.Type != "OBJECT" {
		t.Fatalf("expected OBJECT type, got %s", schema.Type)
	}
	if len(schema.Properties) != 4 {
		t.Fatalf("expected 4 properties, got %d", len(schema.Properties))
	}
	if schema.Properties["topic"].Type != "STRING" {
		t.Fatalf("expected STRING for topic, got %s", schema.Properties["topic"].Type)
	}
	if schema.Properties["count"].Type != "INTEGER" {
		t.Fatalf("expected INTEGER for count, got %s", schema.Properties["count"].Type)
	}
	if len(schema.Properties["tier"].Enum) != 3 {
		t.Fatalf("expected 3 enum values, got %d", len(schema.Properties["tier"].Enum))
	}
	if schema.Properties["steps"].Type != "ARRAY" {
		t.Fatalf("expected ARRAY for steps, got %s", schema.Properties["steps"].Type)
	}
	if schema.Properties["steps"].Items.Type != "STRING" {
		t.Fatalf("expected STRING for steps items, got %s", schema.Properties["steps"].Items.Type)
	}
	if len(schema.Required) != 2 {
		t.Fatalf("expected 2 required fields, got %d", len(schema.Required))
	}
}
