package app

import (
	"context"
	"fmt"
	"hash/fnv"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"mindcheck-service/internal/domain"
	"mindcheck-service/internal/quiz"
)

const attemptLockStripes = 64

// QuestionnaireInfo is the public description of a questionnaire. Option
// categories stay on the server.
type QuestionnaireInfo struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Questions int    `json:"questions"`
}

// AttemptView is what clients see after every quiz operation.
type AttemptView struct {
	AttemptID string `json:"attemptId"`
	quiz.View
	ResultToken string        `json:"resultToken,omitempty"`
	Summary     *quiz.Summary `json:"summary,omitempty"`
}

// QuizService contains the questionnaire use cases.
type QuizService struct {
	questionnaires QuestionnaireRepository
	attempts       AttemptRepository
	handoffs       HandoffStore
	policy         quiz.RetreatPolicy
	newID          func() string
	logger         *zap.Logger

	locks [attemptLockStripes]sync.Mutex
}

// QuizOption configures a QuizService.
type QuizOption func(*QuizService)

// WithDefaultRetreatPolicy sets the back-navigation behaviour of new attempts.
func WithDefaultRetreatPolicy(p quiz.RetreatPolicy) QuizOption {
	return func(s *QuizService) { s.policy = p }
}

// WithIDGenerator is test-only for deterministic ids.
func WithIDGenerator(f func() string) QuizOption {
	return func(s *QuizService) { s.newID = f }
}

func NewQuizService(questionnaires QuestionnaireRepository, attempts AttemptRepository, handoffs HandoffStore, logger *zap.Logger, opts ...QuizOption) *QuizService {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &QuizService{
		questionnaires: questionnaires,
		attempts:       attempts,
		handoffs:       handoffs,
		newID:          uuid.NewString,
		logger:         logger.Named("quiz"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Questionnaire describes a questionnaire without exposing its scoring.
func (s *QuizService) Questionnaire(ctx context.Context, id string) (QuestionnaireInfo, error) {
	q, err := s.questionnaires.GetQuestionnaire(ctx, id)
	if err != nil {
		return QuestionnaireInfo{}, err
	}
	return QuestionnaireInfo{ID: q.ID, Title: q.Title, Questions: len(q.Questions)}, nil
}

// Start opens a new attempt at the first question.
func (s *QuizService) Start(ctx context.Context, questionnaireID string) (AttemptView, error) {
	q, err := s.questionnaires.GetQuestionnaire(ctx, questionnaireID)
	if err != nil {
		return AttemptView{}, err
	}
	engine, err := quiz.New(q, quiz.WithRetreatPolicy(s.policy))
	if err != nil {
		return AttemptView{}, err
	}
	a := Attempt{ID: s.newID(), Snapshot: engine.Snapshot()}
	if err := s.attempts.SaveAttempt(ctx, a); err != nil {
		return AttemptView{}, fmt.Errorf("save attempt: %w", err)
	}
	s.logger.Debug("attempt started", zap.String("attempt", a.ID), zap.String("questionnaire", q.ID))
	return s.view(a, engine), nil
}

// View returns the current state of an attempt.
func (s *QuizService) View(ctx context.Context, attemptID string) (AttemptView, error) {
	return s.apply(ctx, attemptID, nil)
}

// Select records the chosen option for a question.
func (s *QuizService) Select(ctx context.Context, attemptID string, index, option int) (AttemptView, error) {
	return s.apply(ctx, attemptID, func(e *quiz.Engine) error {
		return e.SelectAnswer(index, option)
	})
}

// Advance moves to the next question, completing the attempt on the last one.
func (s *QuizService) Advance(ctx context.Context, attemptID string) (AttemptView, error) {
	return s.apply(ctx, attemptID, (*quiz.Engine).Advance)
}

// Retreat moves back one question.
func (s *QuizService) Retreat(ctx context.Context, attemptID string) (AttemptView, error) {
	return s.apply(ctx, attemptID, (*quiz.Engine).Retreat)
}

// Submit completes the attempt from the last question.
func (s *QuizService) Submit(ctx context.Context, attemptID string) (AttemptView, error) {
	return s.apply(ctx, attemptID, func(e *quiz.Engine) error {
		_, err := e.Submit()
		return err
	})
}

// Restart clears every answer and returns to the first question.
func (s *QuizService) Restart(ctx context.Context, attemptID string) (AttemptView, error) {
	return s.apply(ctx, attemptID, func(e *quiz.Engine) error {
		e.Restart()
		return nil
	})
}

// TakeResult reads the one-shot result written when an attempt completed.
func (s *QuizService) TakeResult(ctx context.Context, token string) (quiz.Summary, error) {
	h, err := s.handoffs.TakeHandoff(ctx, token)
	if err != nil {
		return quiz.Summary{}, err
	}
	summary, ok := quiz.PresentHandoff(h, true)
	if !ok {
		s.logger.Warn("discarding unreadable result", zap.String("token", token))
		return quiz.Summary{}, domain.ErrHandoffNotFound
	}
	return summary, nil
}

// apply runs op against the restored engine and persists the outcome. A nil op
// only reads.
func (s *QuizService) apply(ctx context.Context, attemptID string, op func(*quiz.Engine) error) (AttemptView, error) {
	mu := s.lockFor(attemptID)
	mu.Lock()
	defer mu.Unlock()

	a, err := s.attempts.LoadAttempt(ctx, attemptID)
	if err != nil {
		return AttemptView{}, err
	}
	q, err := s.questionnaires.GetQuestionnaire(ctx, a.Snapshot.QuestionnaireID)
	if err != nil {
		return AttemptView{}, err
	}
	engine, err := quiz.Restore(q, a.Snapshot)
	if err != nil {
		return AttemptView{}, fmt.Errorf("restore attempt %s: %w", attemptID, err)
	}
	if op == nil {
		return s.view(a, engine), nil
	}

	wasCompleted := engine.Completed()
	if err := op(engine); err != nil {
		return AttemptView{}, err
	}

	switch {
	case engine.Completed() && !wasCompleted:
		result, _ := engine.Result()
		token, err := s.writeHandoff(ctx, result)
		if err != nil {
			return AttemptView{}, err
		}
		a.ResultToken = token
		s.logger.Info("attempt completed",
			zap.String("attempt", a.ID),
			zap.String("questionnaire", q.ID),
			zap.String("dominant", string(result.Dominant)))
	case !engine.Completed():
		a.ResultToken = ""
	}

	a.Snapshot = engine.Snapshot()
	if err := s.attempts.SaveAttempt(ctx, a); err != nil {
		return AttemptView{}, fmt.Errorf("save attempt: %w", err)
	}
	return s.view(a, engine), nil
}

func (s *QuizService) writeHandoff(ctx context.Context, r domain.Result) (string, error) {
	h, err := quiz.EncodeHandoff(r)
	if err != nil {
		return "", err
	}
	token := s.newID()
	if err := s.handoffs.PutHandoff(ctx, token, h); err != nil {
		return "", fmt.Errorf("write result: %w", err)
	}
	return token, nil
}

func (s *QuizService) view(a Attempt, e *quiz.Engine) AttemptView {
	v := AttemptView{AttemptID: a.ID, View: e.View(), ResultToken: a.ResultToken}
	if r, ok := e.Result(); ok {
		summary := quiz.Present(r)
		v.Summary = &summary
	}
	return v
}

func (s *QuizService) lockFor(attemptID string) *sync.Mutex {
	h := fnv.New32a()
	_, _ = h.Write([]byte(attemptID))
	return &s.locks[h.Sum32()%attemptLockStripes]
}
