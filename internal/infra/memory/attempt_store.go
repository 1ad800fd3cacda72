package memory

import (
	"context"
	"sync"
	"time"

	"mindcheck-service/internal/app"
	"mindcheck-service/internal/domain"
)

// AttemptStore is an in-memory implementation of app.AttemptRepository.
// Attempts idle for longer than ttl are treated as gone.
type AttemptStore struct {
	ttl   time.Duration
	clock func() time.Time

	mu        sync.Mutex
	attempts  map[string]storedAttempt
	lastSweep time.Time
}

type storedAttempt struct {
	attempt  app.Attempt
	lastSeen time.Time
}

func NewAttemptStore(ttl time.Duration) *AttemptStore {
	return &AttemptStore{
		ttl:      ttl,
		clock:    time.Now,
		attempts: make(map[string]storedAttempt),
	}
}

func (s *AttemptStore) SaveAttempt(_ context.Context, a app.Attempt) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.clock()
	s.sweep(now)
	a.Snapshot.Answers = append([]int(nil), a.Snapshot.Answers...)
	s.attempts[a.ID] = storedAttempt{attempt: a, lastSeen: now}
	return nil
}

func (s *AttemptStore) LoadAttempt(_ context.Context, id string) (app.Attempt, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	stored, ok := s.attempts[id]
	if !ok {
		return app.Attempt{}, domain.ErrAttemptNotFound
	}
	now := s.clock()
	if s.expired(stored.lastSeen, now) {
		delete(s.attempts, id)
		return app.Attempt{}, domain.ErrAttemptNotFound
	}
	stored.lastSeen = now
	s.attempts[id] = stored

	a := stored.attempt
	a.Snapshot.Answers = append([]int(nil), a.Snapshot.Answers...)
	return a, nil
}

// Len is the number of attempts held, including expired ones not yet swept.
func (s *AttemptStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.attempts)
}

func (s *AttemptStore) expired(lastSeen, now time.Time) bool {
	return s.ttl > 0 && now.Sub(lastSeen) > s.ttl
}

// sweep drops expired attempts at most once per ttl. Callers hold mu.
func (s *AttemptStore) sweep(now time.Time) {
	if s.ttl <= 0 || now.Sub(s.lastSweep) < s.ttl {
		return
	}
	s.lastSweep = now
	for id, stored := range s.attempts {
		if s.expired(stored.lastSeen, now) {
			delete(s.attempts, id)
		}
	}
}
