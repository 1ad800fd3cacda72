package memory

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"mindcheck-service/internal/domain"
)

// QuestionnaireLoader fetches questionnaire content from a backing store.
type QuestionnaireLoader interface {
	LoadQuestionnaire(ctx context.Context, id string) (domain.Questionnaire, error)
}

// QuestionnaireRepository caches questionnaires with TTL to avoid repeated loads.
type QuestionnaireRepository struct {
	loader QuestionnaireLoader
	ttl    time.Duration
	clock  func() time.Time
	sf     singleflight.Group

	mu    sync.Mutex
	rnd   *rand.Rand
	cache map[string]cachedQuestionnaire
}

type cachedQuestionnaire struct {
	questionnaire domain.Questionnaire
	expiresAt     time.Time
}

func NewQuestionnaireRepository(loader QuestionnaireLoader, ttl time.Duration) *QuestionnaireRepository {
	return &QuestionnaireRepository{
		loader: loader,
		ttl:    ttl,
		clock:  time.Now,
		rnd:    rand.New(rand.NewSource(time.Now().UnixNano())),
		cache:  make(map[string]cachedQuestionnaire),
	}
}

func (r *QuestionnaireRepository) GetQuestionnaire(ctx context.Context, id string) (domain.Questionnaire, error) {
	if q, ok := r.lookup(id); ok {
		return q, nil
	}

	result, err, _ := r.sf.Do(id, func() (interface{}, error) {
		if q, ok := r.lookup(id); ok {
			return q, nil
		}
		q, err := r.loader.LoadQuestionnaire(ctx, id)
		if err != nil {
			return domain.Questionnaire{}, err
		}

		r.mu.Lock()
		r.cache[id] = cachedQuestionnaire{
			questionnaire: q,
			expiresAt:     r.clock().Add(r.ttlWithJitterLocked()),
		}
		r.mu.Unlock()
		return q, nil
	})
	if err != nil {
		return domain.Questionnaire{}, err
	}
	return result.(domain.Questionnaire), nil
}

func (r *QuestionnaireRepository) lookup(id string) (domain.Questionnaire, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	entry, ok := r.cache[id]
	if !ok || !entry.expiresAt.After(r.clock()) {
		return domain.Questionnaire{}, false
	}
	return entry.questionnaire, true
}

// ttlWithJitterLocked adds up to 10% to spread expirations. A zero TTL caches
// nothing.
func (r *QuestionnaireRepository) ttlWithJitterLocked() time.Duration {
	if r.ttl <= 0 {
		return 0
	}
	jitterMax := int64(r.ttl) / 10
	return r.ttl + time.Duration(r.rnd.Int63n(jitterMax+1))
}

// StaticLoader serves questionnaires from a fixed map (bundled content, tests).
type StaticLoader struct {
	questionnaires map[string]domain.Questionnaire
}

func NewStaticLoader(questionnaires map[string]domain.Questionnaire) *StaticLoader {
	return &StaticLoader{questionnaires: questionnaires}
}

func (l *StaticLoader) LoadQuestionnaire(_ context.Context, id string) (domain.Questionnaire, error) {
	if q, ok := l.questionnaires[id]; ok {
		return q, nil
	}
	return domain.Questionnaire{}, domain.ErrQuizNotFound
}
