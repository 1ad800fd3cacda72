package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"mindcheck-service/internal/app"
	"mindcheck-service/internal/domain"
)

// AttemptStore keeps quiz attempts as JSON under attempt:{id}. Every read
// refreshes the TTL so active attempts never expire mid-quiz.
type AttemptStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewAttemptStore(client *redis.Client, ttl time.Duration) *AttemptStore {
	return &AttemptStore{client: client, ttl: ttl}
}

func (s *AttemptStore) SaveAttempt(ctx context.Context, a app.Attempt) error {
	raw, err := json.Marshal(a)
	if err != nil {
		return fmt.Errorf("marshal attempt: %w", err)
	}
	if err := s.client.Set(ctx, attemptKey(a.ID), raw, s.ttl).Err(); err != nil {
		return fmt.Errorf("save attempt: %w", err)
	}
	return nil
}

func (s *AttemptStore) LoadAttempt(ctx context.Context, id string) (app.Attempt, error) {
	var cmd *redis.StringCmd
	if s.ttl > 0 {
		cmd = s.client.GetEx(ctx, attemptKey(id), s.ttl)
	} else {
		cmd = s.client.Get(ctx, attemptKey(id))
	}
	raw, err := cmd.Bytes()
	if errors.Is(err, redis.Nil) {
		return app.Attempt{}, domain.ErrAttemptNotFound
	}
	if err != nil {
		return app.Attempt{}, fmt.Errorf("load attempt: %w", err)
	}
	var a app.Attempt
	if err := json.Unmarshal(raw, &a); err != nil {
		return app.Attempt{}, fmt.Errorf("unmarshal attempt: %w", err)
	}
	return a, nil
}

func attemptKey(id string) string {
	return "attempt:" + id
}
