package memory

import (
	"sync"
	"time"

	"mindcheck-service/internal/chat"
)

// ChatStore is an in-memory implementation of app.ChatStore. Sessions unused
// for longer than idle are dropped; a zero idle keeps them until deleted.
type ChatStore struct {
	idle  time.Duration
	clock func() time.Time

	mu        sync.Mutex
	sessions  map[string]storedSession
	lastSweep time.Time
}

type storedSession struct {
	session  *chat.Session
	lastUsed time.Time
}

func NewChatStore(idle time.Duration) *ChatStore {
	return &ChatStore{
		idle:     idle,
		clock:    time.Now,
		sessions: make(map[string]storedSession),
	}
}

func (s *ChatStore) Put(id string, session *chat.Session) {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.clock()
	s.sweep(now)
	s.sessions[id] = storedSession{session: session, lastUsed: now}
}

func (s *ChatStore) Get(id string) (*chat.Session, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	stored, ok := s.sessions[id]
	if !ok {
		return nil, false
	}
	now := s.clock()
	if s.expired(stored.lastUsed, now) {
		delete(s.sessions, id)
		return nil, false
	}
	stored.lastUsed = now
	s.sessions[id] = stored
	return stored.session, true
}

func (s *ChatStore) Delete(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, id)
}

// Len is the number of sessions held, including idle ones not yet swept.
func (s *ChatStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

func (s *ChatStore) expired(lastUsed, now time.Time) bool {
	return s.idle > 0 && now.Sub(lastUsed) > s.idle
}

// sweep runs at most once per idle period. Callers hold mu.
func (s *ChatStore) sweep(now time.Time) {
	if s.idle <= 0 || now.Sub(s.lastSweep) < s.idle {
		return
	}
	s.lastSweep = now
	for id, stored := range s.sessions {
		if s.expired(stored.lastUsed, now) {
			delete(s.sessions, id)
		}
	}
}
