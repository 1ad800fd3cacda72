package memory

import (
	"context"
	"sync"
	"time"

	"mindcheck-service/internal/domain"
	"mindcheck-service/internal/quiz"
)

// HandoffStore keeps one-shot quiz results until they are read or expire.
type HandoffStore struct {
	ttl   time.Duration
	clock func() time.Time

	mu        sync.Mutex
	handoffs  map[string]storedHandoff
	lastSweep time.Time
}

type storedHandoff struct {
	handoff   quiz.Handoff
	expiresAt time.Time
}

func NewHandoffStore(ttl time.Duration) *HandoffStore {
	return &HandoffStore{
		ttl:      ttl,
		clock:    time.Now,
		handoffs: make(map[string]storedHandoff),
	}
}

func (s *HandoffStore) PutHandoff(_ context.Context, token string, h quiz.Handoff) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.clock()
	s.sweep(now)
	entry := storedHandoff{handoff: h}
	if s.ttl > 0 {
		entry.expiresAt = now.Add(s.ttl)
	}
	s.handoffs[token] = entry
	return nil
}

// TakeHandoff reads and removes the payload under one lock.
func (s *HandoffStore) TakeHandoff(_ context.Context, token string) (quiz.Handoff, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	entry, ok := s.handoffs[token]
	if !ok {
		return quiz.Handoff{}, domain.ErrHandoffNotFound
	}
	delete(s.handoffs, token)
	if entry.expired(s.clock()) {
		return quiz.Handoff{}, domain.ErrHandoffNotFound
	}
	return entry.handoff, nil
}

// Len is the number of results held, including expired ones not yet swept.
func (s *HandoffStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.handoffs)
}

func (e storedHandoff) expired(now time.Time) bool {
	return !e.expiresAt.IsZero() && !e.expiresAt.After(now)
}

// sweep drops unread expired results at most once per ttl. Callers hold mu.
func (s *HandoffStore) sweep(now time.Time) {
	if s.ttl <= 0 || now.Sub(s.lastSweep) < s.ttl {
		return
	}
	s.lastSweep = now
	for token, entry := range s.handoffs {
		if entry.expired(now) {
			delete(s.handoffs, token)
		}
	}
}
