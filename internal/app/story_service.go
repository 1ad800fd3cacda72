package app

import (
	"context"
	"strings"
	"time"

	"mindcheck-service/internal/domain"
)

// StoryService saves the single free-text story each visitor may keep.
type StoryService struct {
	store StoryStore
	now   func() time.Time
}

func NewStoryService(store StoryStore) *StoryService {
	return &StoryService{store: store, now: time.Now}
}

// NewStoryServiceWithClock is test-only for deterministic timestamps.
func NewStoryServiceWithClock(store StoryStore, now func() time.Time) *StoryService {
	return &StoryService{store: store, now: now}
}

// Save replaces the visitor's story. Blank text is rejected.
func (s *StoryService) Save(ctx context.Context, visitorID, text string) (domain.Story, error) {
	if strings.TrimSpace(text) == "" {
		return domain.Story{}, domain.ErrEmptyStory
	}
	story := domain.Story{VisitorID: visitorID, Text: text, UpdatedAt: s.now().UTC()}
	if err := s.store.SaveStory(ctx, story); err != nil {
		return domain.Story{}, err
	}
	return story, nil
}

// Load returns the visitor's story or domain.ErrStoryNotFound.
func (s *StoryService) Load(ctx context.Context, visitorID string) (domain.Story, error) {
	return s.store.LoadStory(ctx, visitorID)
}
