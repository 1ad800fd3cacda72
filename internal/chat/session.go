// Package chat keeps the role-tagged transcript of one conversation with the
// generation service and enforces one outstanding call per conversation.
package chat

import (
	"context"
	"errors"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"mindcheck-service/internal/domain"
)

// SystemInstruction is sent as the first user turn of every transcript.
const SystemInstruction = "You are a friendly and supportive AI assistant for a mental health awareness portal. " +
	"Your purpose is to provide general information, resources, and encouragement related to mental well-being. " +
	"You are NOT a licensed medical professional, therapist, or crisis counselor. " +
	"You cannot diagnose, treat, or provide medical advice. " +
	"If a user expresses distress or asks for direct medical help, you must gently redirect them to professional resources or emergency services, and provide a disclaimer. " +
	"Only discuss topics directly related to mental health awareness, coping strategies, self-care, and understanding common mental health conditions. " +
	"Decline to answer questions outside this scope or any question seeking medical diagnosis or treatment. " +
	"Start by saying '" + Greeting + "'"

// Greeting is the seeded model turn shown when a chat opens.
const Greeting = "Hello! I am here to provide general information and support related to mental health awareness. " +
	"How can I help you understand more about mental well-being today?"

// Request is what a Generator receives: the full transcript in order plus the
// content policy.
type Request struct {
	Turns  []domain.ChatTurn
	Safety []domain.SafetySetting
}

// Generator produces the next model turn. Implementations report failures as
// *domain.TransportError, *domain.SafetyBlockedError or *domain.EmptyResponseError.
type Generator interface {
	Generate(ctx context.Context, req Request) (string, error)
}

// SessionOption configures a Session.
type SessionOption func(*Session)

// WithCallTimeout bounds every generation call. Zero means no bound.
func WithCallTimeout(d time.Duration) SessionOption {
	return func(s *Session) { s.timeout = d }
}

// Session is one conversation. The transcript is append-only.
type Session struct {
	generator Generator
	timeout   time.Duration
	inFlight  atomic.Bool

	mu         sync.RWMutex
	transcript []domain.ChatTurn
}

// NewSession seeds a transcript with the system instruction and the greeting.
func NewSession(g Generator, opts ...SessionOption) *Session {
	s := &Session{
		generator: g,
		transcript: []domain.ChatTurn{
			{Role: domain.RoleUser, Text: SystemInstruction},
			{Role: domain.RoleModel, Text: Greeting},
		},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Send appends the user turn, asks the generator for a reply and appends it on
// success. A call made while another is outstanding fails with
// domain.ErrChatBusy without touching the transcript. Failed calls leave the
// user turn in place without a reply.
func (s *Session) Send(ctx context.Context, text string) (domain.ChatTurn, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return domain.ChatTurn{}, domain.ErrEmptyMessage
	}
	if !s.inFlight.CompareAndSwap(false, true) {
		return domain.ChatTurn{}, domain.ErrChatBusy
	}
	defer s.inFlight.Store(false)

	s.mu.Lock()
	s.transcript = append(s.transcript, domain.ChatTurn{Role: domain.RoleUser, Text: text})
	turns := s.copyLocked()
	s.mu.Unlock()

	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	safety := make([]domain.SafetySetting, len(domain.DefaultSafetyPolicy))
	copy(safety, domain.DefaultSafetyPolicy)

	reply, err := s.generator.Generate(ctx, Request{Turns: turns, Safety: safety})
	if err != nil {
		return domain.ChatTurn{}, classify(err)
	}
	if strings.TrimSpace(reply) == "" {
		return domain.ChatTurn{}, &domain.EmptyResponseError{}
	}

	turn := domain.ChatTurn{Role: domain.RoleModel, Text: reply}
	s.mu.Lock()
	s.transcript = append(s.transcript, turn)
	s.mu.Unlock()
	return turn, nil
}

// Busy reports whether a call is outstanding.
func (s *Session) Busy() bool {
	return s.inFlight.Load()
}

// Transcript returns a copy of every turn, including the seeded instruction.
func (s *Session) Transcript() []domain.ChatTurn {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.copyLocked()
}

// Visible returns the turns meant for display, skipping the seeded instruction.
func (s *Session) Visible() []domain.ChatTurn {
	turns := s.Transcript()
	return turns[1:]
}

// Len is the number of turns in the transcript.
func (s *Session) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.transcript)
}

func (s *Session) copyLocked() []domain.ChatTurn {
	out := make([]domain.ChatTurn, len(s.transcript))
	copy(out, s.transcript)
	return out
}

// classify folds untyped generator failures into a TransportError.
func classify(err error) error {
	var (
		transport *domain.TransportError
		blocked   *domain.SafetyBlockedError
		empty     *domain.EmptyResponseError
	)
	switch {
	case errors.As(err, &transport), errors.As(err, &blocked), errors.As(err, &empty):
		return err
	default:
		return &domain.TransportError{Err: err}
	}
}
