package redis

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"mindcheck-service/internal/app"
	"mindcheck-service/internal/domain"
	"mindcheck-service/internal/infra/memory"
	"mindcheck-service/internal/quiz"
)

type countingLoader struct {
	memory.QuestionnaireLoader
	mu    sync.Mutex
	calls int
}

func (l *countingLoader) LoadQuestionnaire(ctx context.Context, id string) (domain.Questionnaire, error) {
	l.mu.Lock()
	l.calls++
	l.mu.Unlock()
	return l.QuestionnaireLoader.LoadQuestionnaire(ctx, id)
}

func newClient(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("run miniredis: %v", err)
	}
	t.Cleanup(mr.Close)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return mr, client
}

func TestQuestionnaireRepositoryCachesInRedis(t *testing.T) {
	mr, client := newClient(t)
	loader := &countingLoader{QuestionnaireLoader: memory.NewStaticLoader(quiz.Bundled())}
	repo := NewQuestionnaireRepository(client, loader, time.Minute)
	ctx := context.Background()

	q, err := repo.GetQuestionnaire(ctx, quiz.CheckupID)
	if err != nil {
		t.Fatalf("get questionnaire: %v", err)
	}
	if loader.calls != 1 {
		t.Fatalf("expected loader called once, got %d", loader.calls)
	}
	if !mr.Exists("questionnaire:checkup") {
		t.Fatalf("expected cached blob")
	}
	if ttl := mr.TTL("questionnaire:checkup"); ttl < time.Minute || ttl > 66*time.Second {
		t.Fatalf("ttl %v outside jitter window", ttl)
	}

	// Second call should hit cache, loader not incremented.
	again, err := repo.GetQuestionnaire(ctx, quiz.CheckupID)
	if err != nil {
		t.Fatalf("get questionnaire 2: %v", err)
	}
	if loader.calls != 1 {
		t.Fatalf("expected cache hit, loader calls=%d", loader.calls)
	}
	if len(again.Questions) != len(q.Questions) || again.Questions[0].Options[0] != q.Questions[0].Options[0] {
		t.Fatalf("cached questionnaire differs from loaded one")
	}

	if err := repo.Invalidate(ctx, quiz.CheckupID); err != nil {
		t.Fatalf("invalidate: %v", err)
	}
	_, _ = repo.GetQuestionnaire(ctx, quiz.CheckupID)
	if loader.calls != 2 {
		t.Fatalf("expected reload after invalidate, loader calls=%d", loader.calls)
	}
}

func TestQuestionnaireRepositoryIgnoresCorruptBlob(t *testing.T) {
	mr, client := newClient(t)
	_ = mr.Set("questionnaire:wellbeing", "{not json")
	loader := &countingLoader{QuestionnaireLoader: memory.NewStaticLoader(quiz.Bundled())}
	repo := NewQuestionnaireRepository(client, loader, time.Minute)

	if _, err := repo.GetQuestionnaire(context.Background(), quiz.WellbeingID); err != nil {
		t.Fatalf("get questionnaire: %v", err)
	}
	if loader.calls != 1 {
		t.Fatalf("expected fallback to loader, calls=%d", loader.calls)
	}
}

func TestAttemptStoreSlidingTTL(t *testing.T) {
	mr, client := newClient(t)
	store := NewAttemptStore(client, time.Minute)
	ctx := context.Background()

	a := app.Attempt{ID: "a1", Snapshot: quiz.Snapshot{QuestionnaireID: "checkup", Current: 1, Answers: []int{2, -1}}}
	if err := store.SaveAttempt(ctx, a); err != nil {
		t.Fatalf("save: %v", err)
	}

	mr.FastForward(50 * time.Second)
	got, err := store.LoadAttempt(ctx, "a1")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got.Snapshot.Current != 1 || got.Snapshot.Answers[0] != 2 {
		t.Fatalf("unexpected attempt %+v", got)
	}
	if ttl := mr.TTL("attempt:a1"); ttl != time.Minute {
		t.Fatalf("expected ttl refreshed to 1m, got %v", ttl)
	}

	mr.FastForward(2 * time.Minute)
	if _, err := store.LoadAttempt(ctx, "a1"); !errors.Is(err, domain.ErrAttemptNotFound) {
		t.Fatalf("expected ErrAttemptNotFound, got %v", err)
	}
}

func TestHandoffStoreWritesBothKeysAndTakesOnce(t *testing.T) {
	mr, client := newClient(t)
	store := NewHandoffStore(client, time.Hour)
	ctx := context.Background()

	result := domain.Result{Tally: domain.Tally{domain.CategoryGood: 1, domain.CategoryMedium: 2, domain.CategoryAverage: 0, domain.CategoryBad: 0}, Dominant: domain.CategoryMedium}
	h, err := quiz.EncodeHandoff(result)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	if err := store.PutHandoff(ctx, "tok", h); err != nil {
		t.Fatalf("put: %v", err)
	}

	if got, _ := mr.Get("handoff:tok:quizMaxCategory"); got != "medium" {
		t.Fatalf("unexpected max category %q", got)
	}
	if !mr.Exists("handoff:tok:quizScores") {
		t.Fatalf("expected scores key")
	}

	got, err := store.TakeHandoff(ctx, "tok")
	if err != nil {
		t.Fatalf("take: %v", err)
	}
	decoded, err := quiz.DecodeHandoff(got)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if decoded.Dominant != domain.CategoryMedium || decoded.Tally[domain.CategoryMedium] != 2 {
		t.Fatalf("unexpected result %+v", decoded)
	}
	if mr.Exists("handoff:tok:quizScores") || mr.Exists("handoff:tok:quizMaxCategory") {
		t.Fatalf("expected keys deleted after take")
	}
	if _, err := store.TakeHandoff(ctx, "tok"); !errors.Is(err, domain.ErrHandoffNotFound) {
		t.Fatalf("expected ErrHandoffNotFound, got %v", err)
	}
}

func TestStoryStore(t *testing.T) {
	_, client := newClient(t)
	store := NewStoryStore(client)
	ctx := context.Background()

	if _, err := store.LoadStory(ctx, "v1"); !errors.Is(err, domain.ErrStoryNotFound) {
		t.Fatalf("expected ErrStoryNotFound, got %v", err)
	}
	at := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	if err := store.SaveStory(ctx, domain.Story{VisitorID: "v1", Text: "today was better", UpdatedAt: at}); err != nil {
		t.Fatalf("save: %v", err)
	}
	got, err := store.LoadStory(ctx, "v1")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got.Text != "today was better" || !got.UpdatedAt.Equal(at) {
		t.Fatalf("unexpected story %+v", got)
	}
}
