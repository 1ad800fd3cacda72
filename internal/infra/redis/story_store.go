package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"mindcheck-service/internal/domain"
)

// StoryStore keeps one hash per visitor: HSET story:{visitor} text ... updatedAt ...
type StoryStore struct {
	client *redis.Client
}

func NewStoryStore(client *redis.Client) *StoryStore {
	return &StoryStore{client: client}
}

func (s *StoryStore) SaveStory(ctx context.Context, story domain.Story) error {
	err := s.client.HSet(ctx, storyKey(story.VisitorID),
		"text", story.Text,
		"updatedAt", story.UpdatedAt.UTC().Format(time.RFC3339Nano),
	).Err()
	if err != nil {
		return fmt.Errorf("save story: %w", err)
	}
	return nil
}

func (s *StoryStore) LoadStory(ctx context.Context, visitorID string) (domain.Story, error) {
	fields, err := s.client.HGetAll(ctx, storyKey(visitorID)).Result()
	if err != nil {
		return domain.Story{}, fmt.Errorf("load story: %w", err)
	}
	text, ok := fields["text"]
	if !ok {
		return domain.Story{}, domain.ErrStoryNotFound
	}
	story := domain.Story{VisitorID: visitorID, Text: text}
	if ts, err := time.Parse(time.RFC3339Nano, fields["updatedAt"]); err == nil {
		story.UpdatedAt = ts
	}
	return story, nil
}

func storyKey(visitorID string) string {
	return "story:" + visitorID
}
