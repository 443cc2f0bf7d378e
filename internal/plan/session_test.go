package plan

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/justinav/pamoka/internal/llm"
)

func TestSession_RefineBeforeInitial(t *testing.T) {
	mock := llm.NewMockProvider()
	s := NewSession(mock, DefaultConfig())

	_, err := s.Generate(context.Background(), "patikslink", false)
	if !errors.Is(err, ErrNoSession) {
		t.Fatalf("err = %v, want ErrNoSession", err)
	}
	if mock.CallCount() != 0 {
		t.Fatalf("provider was contacted %d times, want 0", mock.CallCount())
	}
}

func TestSession_InitialOpensAndAccumulates(t *testing.T) {
	mock := llm.NewMockProvider(
		llm.MockResponse{Content: json.RawMessage(`{"v":1}`)},
		llm.MockResponse{Content: json.RawMessage(`{"v":2}`)},
	)
	s := NewSession(mock, DefaultConfig())

	if s.IsOpen() {
		t.Fatal("session open before any generation")
	}

	reply, err := s.Generate(context.Background(), "sukurk planą", true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if reply != `{"v":1}` {
		t.Errorf("reply = %q", reply)
	}
	if !s.IsOpen() {
		t.Fatal("session not open after initial generation")
	}
	if s.Turns() != 2 {
		t.Errorf("turns = %d, want 2", s.Turns())
	}

	// Refinement sends the accumulated transcript.
	_, err = s.Generate(context.Background(), "sutrumpink", false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.Turns() != 4 {
		t.Errorf("turns = %d, want 4", s.Turns())
	}

	second := mock.Calls[1]
	if len(second.Messages) != 3 {
		t.Fatalf("refinement sent %d messages, want 3", len(second.Messages))
	}
	if second.Messages[0].Content != "sukurk planą" {
		t.Errorf("first message = %q", second.Messages[0].Content)
	}
	if second.Messages[1].Role != llm.RoleAssistant {
		t.Errorf("second message role = %q", second.Messages[1].Role)
	}
	if second.Messages[2].Content != "sutrumpink" {
		t.Errorf("third message = %q", second.Messages[2].Content)
	}
}

func TestSession_InitialDiscardsHistory(t *testing.T) {
	mock := llm.NewMockProvider(
		llm.MockResponse{Content: json.RawMessage(`{"v":1}`)},
		llm.MockResponse{Content: json.RawMessage(`{"v":2}`)},
	)
	s := NewSession(mock, DefaultConfig())

	if _, err := s.Generate(context.Background(), "pirmas", true); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := s.Generate(context.Background(), "antras", true); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	second := mock.Calls[1]
	if len(second.Messages) != 1 {
		t.Fatalf("new initial generation sent %d messages, want 1", len(second.Messages))
	}
	if s.Turns() != 2 {
		t.Errorf("turns = %d, want 2", s.Turns())
	}
}

func TestSession_FailedTurnLeavesNoTrace(t *testing.T) {
	mock := llm.NewMockProvider(
		llm.MockResponse{Content: json.RawMessage(`{"v":1}`)},
		llm.MockResponse{Err: &llm.ErrProviderUnavailable{Err: errors.New("down")}},
		llm.MockResponse{Content: json.RawMessage(`{"v":2}`)},
	)
	s := NewSession(mock, DefaultConfig())

	if _, err := s.Generate(context.Background(), "sukurk", true); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	_, err := s.Generate(context.Background(), "patikslink", false)
	var genErr *GenerationError
	if !errors.As(err, &genErr) {
		t.Fatalf("err = %v, want GenerationError", err)
	}
	if s.Turns() != 2 {
		t.Errorf("failed turn polluted history: turns = %d, want 2", s.Turns())
	}

	// Next refinement must not include the failed turn.
	if _, err := s.Generate(context.Background(), "dar kartą", false); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	third := mock.Calls[2]
	if len(third.Messages) != 3 {
		t.Fatalf("sent %d messages, want 3", len(third.Messages))
	}
	if third.Messages[2].Content != "dar kartą" {
		t.Errorf("last message = %q", third.Messages[2].Content)
	}
}

func TestSession_ResetClosesSession(t *testing.T) {
	mock := llm.NewMockProvider(
		llm.MockResponse{Content: json.RawMessage(`{"v":1}`)},
	)
	s := NewSession(mock, DefaultConfig())

	if _, err := s.Generate(context.Background(), "sukurk", true); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	s.Reset()

	if s.IsOpen() {
		t.Error("session still open after Reset")
	}
	if _, err := s.Generate(context.Background(), "patikslink", false); !errors.Is(err, ErrNoSession) {
		t.Errorf("err = %v, want ErrNoSession", err)
	}
}

func TestSession_RequestCarriesContract(t *testing.T) {
	mock := llm.NewMockProvider(
		llm.MockResponse{Content: json.RawMessage(`{"v":1}`)},
	)
	s := NewSession(mock, DefaultConfig())

	if _, err := s.Generate(context.Background(), "sukurk", true); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	req := mock.Calls[0]
	if req.System != SystemInstruction {
		t.Error("system instruction not sent")
	}
	if req.Schema != PlanSchema {
		t.Error("plan schema not sent")
	}
}
