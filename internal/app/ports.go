package app

import (
	"context"

	"mindcheck-service/internal/chat"
	"mindcheck-service/internal/domain"
	"mindcheck-service/internal/quiz"
)

// QuestionnaireRepository loads questionnaire content (from cache/backing store).
type QuestionnaireRepository interface {
	GetQuestionnaire(ctx context.Context, id string) (domain.Questionnaire, error)
}

// Attempt is the persisted state of one user's walk through a questionnaire.
type Attempt struct {
	ID          string        `json:"id"`
	Snapshot    quiz.Snapshot `json:"snapshot"`
	ResultToken string        `json:"resultToken,omitempty"`
}

// AttemptRepository abstracts how quiz attempts are stored (in-memory, Redis, etc).
// Load returns domain.ErrAttemptNotFound for unknown or expired attempts.
type AttemptRepository interface {
	SaveAttempt(ctx context.Context, a Attempt) error
	LoadAttempt(ctx context.Context, id string) (Attempt, error)
}

// HandoffStore is transient storage for the result shown on the results page.
// Take returns the payload and removes it; a second Take for the same token
// returns domain.ErrHandoffNotFound.
type HandoffStore interface {
	PutHandoff(ctx context.Context, token string, h quiz.Handoff) error
	TakeHandoff(ctx context.Context, token string) (quiz.Handoff, error)
}

// ChatStore keeps live chat sessions.
type ChatStore interface {
	Put(id string, s *chat.Session)
	Get(id string) (*chat.Session, bool)
	Delete(id string)
}

// StoryStore persists one story per visitor.
type StoryStore interface {
	SaveStory(ctx context.Context, s domain.Story) error
	LoadStory(ctx context.Context, visitorID string) (domain.Story, error)
}
