package memory

import (
	"context"
	"sync"

	"mindcheck-service/internal/domain"
)

// StoryStore keeps stories for the lifetime of the process.
type StoryStore struct {
	mu      sync.RWMutex
	stories map[string]domain.Story
}

func NewStoryStore() *StoryStore {
	return &StoryStore{stories: make(map[string]domain.Story)}
}

func (s *StoryStore) SaveStory(_ context.Context, story domain.Story) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stories[story.VisitorID] = story
	return nil
}

func (s *StoryStore) LoadStory(_ context.Context, visitorID string) (domain.Story, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	story, ok := s.stories[visitorID]
	if !ok {
		return domain.Story{}, domain.ErrStoryNotFound
	}
	return story, nil
}
