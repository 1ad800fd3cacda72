package app

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"mindcheck-service/internal/chat"
	"mindcheck-service/internal/domain"
)

// ChatService opens and drives chat sessions.
type ChatService struct {
	store     ChatStore
	generator chat.Generator
	opts      []chat.SessionOption
	logger    *zap.Logger
}

func NewChatService(store ChatStore, generator chat.Generator, logger *zap.Logger, opts ...chat.SessionOption) *ChatService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ChatService{store: store, generator: generator, opts: opts, logger: logger.Named("chat")}
}

// Open starts a session and returns its id with the greeting turn.
func (s *ChatService) Open() (string, domain.ChatTurn) {
	id := uuid.NewString()
	session := chat.NewSession(s.generator, s.opts...)
	s.store.Put(id, session)
	visible := session.Visible()
	return id, visible[0]
}

// Send forwards one user message. See chat.Session.Send for failure semantics.
func (s *ChatService) Send(ctx context.Context, id, text string) (domain.ChatTurn, error) {
	session, ok := s.store.Get(id)
	if !ok {
		return domain.ChatTurn{}, domain.ErrChatNotFound
	}
	turn, err := session.Send(ctx, text)
	if err != nil {
		s.logger.Debug("message not answered", zap.String("session", id), zap.String("outcome", chat.Kind(err)))
	}
	return turn, err
}

// Transcript returns the displayable turns of a session.
func (s *ChatService) Transcript(id string) ([]domain.ChatTurn, error) {
	session, ok := s.store.Get(id)
	if !ok {
		return nil, domain.ErrChatNotFound
	}
	return session.Visible(), nil
}

// Close drops a session.
func (s *ChatService) Close(id string) {
	s.store.Delete(id)
}
