package plan

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/justinav/pamoka/internal/llm"
)

// ErrNoSession is returned when a refinement is attempted before any
// initial generation has opened a session. No request is sent.
var ErrNoSession = errors.New("pokalbis nepradėtas: pirmiausia sugeneruokite planą")

// GenerationError wraps a transport or service failure during generation.
type GenerationError struct {
	Err error
}

func (e *GenerationError) Error() string {
	return fmt.Sprintf("įvyko klaida generuojant planą: %v", e.Err)
}

func (e *GenerationError) Unwrap() error { return e.Err }

// Session owns one logical conversation with the generation service.
//
// It has two states: unopened, and open. Opening seeds the conversation
// with the fixed system instruction and the plan schema; after that the
// accumulated transcript is the session identity, so refinements are
// interpreted in context of earlier turns. A new initial generation
// discards the transcript wholesale and starts over.
//
// Session does not serialize concurrent calls. The UI's loading guard is
// the only thing preventing overlap; if two calls race, the later reply
// wins downstream.
type Session struct {
	provider llm.Provider
	cfg      Config

	mu      sync.Mutex
	open    bool
	history []llm.Message
}

// NewSession creates an unopened session bound to a provider.
func NewSession(provider llm.Provider, cfg Config) *Session {
	return &Session{provider: provider, cfg: cfg}
}

// IsOpen reports whether an initial generation has opened the session.
func (s *Session) IsOpen() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.open
}

// Reset discards the conversation, returning the session to unopened.
// Loading an archived plan calls this: no session handle is archived, so
// a loaded plan cannot be refined until a fresh initial generation.
func (s *Session) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.open = false
	s.history = nil
}

// Generate sends prompt into the session and returns the raw reply text.
//
// When initial is true (or no session is open yet for an initial call),
// the previous conversation is discarded and a fresh session is opened.
// When initial is false the session must already be open, otherwise
// ErrNoSession is returned without contacting the provider.
func (s *Session) Generate(ctx context.Context, prompt string, initial bool) (string, error) {
	s.mu.Lock()
	if !initial && !s.open {
		s.mu.Unlock()
		return "", ErrNoSession
	}
	if initial || !s.open {
		s.history = nil
		s.open = true
	}
	// Snapshot the transcript for this request; history is only extended
	// once the reply arrives, so a failed turn leaves no trace.
	msgs := make([]llm.Message, len(s.history), len(s.history)+1)
	copy(msgs, s.history)
	msgs = append(msgs, llm.Message{Role: llm.RoleUser, Content: prompt})
	s.mu.Unlock()

	purpose := "plan"
	if !initial {
		purpose = "refine"
	}
	ctx = llm.WithPurpose(ctx, purpose)

	resp, err := s.provider.Generate(ctx, llm.Request{
		System:      SystemInstruction,
		Messages:    msgs,
		Schema:      PlanSchema,
		MaxTokens:   s.cfg.MaxTokens,
		Temperature: s.cfg.Temperature,
	})
	if err != nil {
		return "", &GenerationError{Err: err}
	}

	reply := string(resp.Content)

	s.mu.Lock()
	s.history = append(msgs, llm.Message{Role: llm.RoleAssistant, Content: reply})
	s.mu.Unlock()

	return reply, nil
}

// Turns returns the number of messages in the current conversation.
func (s *Session) Turns() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.history)
}
