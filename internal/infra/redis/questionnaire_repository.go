package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/singleflight"

	"mindcheck-service/internal/domain"
	"mindcheck-service/internal/infra/memory"
)

// QuestionnaireRepository caches questionnaires in Redis as a JSON blob and
// falls back to a loader on cache miss.
//
//	SET questionnaire:{id} {json} EX ttl+jitter
type QuestionnaireRepository struct {
	client *redis.Client
	loader memory.QuestionnaireLoader
	ttl    time.Duration
	sf     singleflight.Group

	mu  sync.Mutex
	rnd *rand.Rand
}

func NewQuestionnaireRepository(client *redis.Client, loader memory.QuestionnaireLoader, ttl time.Duration) *QuestionnaireRepository {
	return &QuestionnaireRepository{
		client: client,
		loader: loader,
		ttl:    ttl,
		rnd:    rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

func (r *QuestionnaireRepository) GetQuestionnaire(ctx context.Context, id string) (domain.Questionnaire, error) {
	if q, ok := r.cached(ctx, id); ok {
		return q, nil
	}

	result, err, _ := r.sf.Do(id, func() (interface{}, error) {
		// Re-check cache in case another caller filled it.
		if q, ok := r.cached(ctx, id); ok {
			return q, nil
		}
		q, err := r.loader.LoadQuestionnaire(ctx, id)
		if err != nil {
			return domain.Questionnaire{}, err
		}
		if ttl := r.ttlWithJitter(); ttl > 0 {
			if raw, err := json.Marshal(q); err == nil {
				_ = r.client.Set(ctx, questionnaireKey(id), raw, ttl).Err()
			}
		}
		return q, nil
	})
	if err != nil {
		return domain.Questionnaire{}, err
	}
	return result.(domain.Questionnaire), nil
}

// cached treats unreadable entries as misses so a bad blob is overwritten on reload.
func (r *QuestionnaireRepository) cached(ctx context.Context, id string) (domain.Questionnaire, bool) {
	raw, err := r.client.Get(ctx, questionnaireKey(id)).Bytes()
	if err != nil {
		return domain.Questionnaire{}, false
	}
	var q domain.Questionnaire
	if err := json.Unmarshal(raw, &q); err != nil || len(q.Questions) == 0 {
		return domain.Questionnaire{}, false
	}
	return q, true
}

// Invalidate drops the cached blob, e.g. after reseeding.
func (r *QuestionnaireRepository) Invalidate(ctx context.Context, id string) error {
	if err := r.client.Del(ctx, questionnaireKey(id)).Err(); err != nil {
		return fmt.Errorf("invalidate questionnaire %s: %w", id, err)
	}
	return nil
}

func questionnaireKey(id string) string {
	return "questionnaire:" + id
}

func (r *QuestionnaireRepository) ttlWithJitter() time.Duration {
	if r.ttl <= 0 {
		return 0
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	jitterMax := int64(r.ttl) / 10
	return r.ttl + time.Duration(r.rnd.Int63n(jitterMax+1))
}
