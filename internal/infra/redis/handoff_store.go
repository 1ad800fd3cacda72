package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"mindcheck-service/internal/domain"
	"mindcheck-service/internal/quiz"
)

// HandoffStore writes quiz results under the two keys the results page reads:
//
//	handoff:{token}:quizScores       JSON tally
//	handoff:{token}:quizMaxCategory  dominant category
//
// Both are taken with GETDEL inside one MULTI so a result is read at most once.
type HandoffStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewHandoffStore(client *redis.Client, ttl time.Duration) *HandoffStore {
	return &HandoffStore{client: client, ttl: ttl}
}

func (s *HandoffStore) PutHandoff(ctx context.Context, token string, h quiz.Handoff) error {
	pipe := s.client.TxPipeline()
	pipe.Set(ctx, handoffKey(token, quiz.HandoffScoresKey), h.Scores, s.ttl)
	pipe.Set(ctx, handoffKey(token, quiz.HandoffMaxCategoryKey), h.MaxCategory, s.ttl)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("write handoff: %w", err)
	}
	return nil
}

func (s *HandoffStore) TakeHandoff(ctx context.Context, token string) (quiz.Handoff, error) {
	var scores, maxCategory *redis.StringCmd
	_, err := s.client.TxPipelined(ctx, func(p redis.Pipeliner) error {
		scores = p.GetDel(ctx, handoffKey(token, quiz.HandoffScoresKey))
		maxCategory = p.GetDel(ctx, handoffKey(token, quiz.HandoffMaxCategoryKey))
		return nil
	})
	if errors.Is(err, redis.Nil) {
		return quiz.Handoff{}, domain.ErrHandoffNotFound
	}
	if err != nil {
		return quiz.Handoff{}, fmt.Errorf("take handoff: %w", err)
	}
	return quiz.Handoff{Scores: scores.Val(), MaxCategory: maxCategory.Val()}, nil
}

func handoffKey(token, field string) string {
	return "handoff:" + token + ":" + field
}
