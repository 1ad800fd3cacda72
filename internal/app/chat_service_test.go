package app_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"mindcheck-service/internal/app"
	"mindcheck-service/internal/chat"
	"mindcheck-service/internal/domain"
	"mindcheck-service/internal/infra/memory"
)

type echoGenerator struct{}

func (echoGenerator) Generate(_ context.Context, req chat.Request) (string, error) {
	return "you said: " + req.Turns[len(req.Turns)-1].Text, nil
}

func TestChatServiceLifecycle(t *testing.T) {
	ctx := context.Background()
	svc := app.NewChatService(memory.NewChatStore(time.Hour), echoGenerator{}, nil)

	id, greeting := svc.Open()
	if greeting.Role != domain.RoleModel || greeting.Text != chat.Greeting {
		t.Fatalf("unexpected greeting %+v", greeting)
	}

	turn, err := svc.Send(ctx, id, "hello")
	if err != nil {
		t.Fatalf("send: %v", err)
	}
	if turn.Text != "you said: hello" {
		t.Fatalf("unexpected reply %q", turn.Text)
	}

	visible, err := svc.Transcript(id)
	if err != nil {
		t.Fatalf("transcript: %v", err)
	}
	if len(visible) != 3 {
		t.Fatalf("expected greeting, question and reply, got %d turns", len(visible))
	}

	svc.Close(id)
	if _, err := svc.Send(ctx, id, "again"); !errors.Is(err, domain.ErrChatNotFound) {
		t.Fatalf("expected ErrChatNotFound, got %v", err)
	}
	if _, err := svc.Transcript(id); !errors.Is(err, domain.ErrChatNotFound) {
		t.Fatalf("expected ErrChatNotFound, got %v", err)
	}
}

func TestStoryService(t *testing.T) {
	ctx := context.Background()
	fixed := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	svc := app.NewStoryServiceWithClock(memory.NewStoryStore(), func() time.Time { return fixed })

	if _, err := svc.Save(ctx, "v1", "   "); !errors.Is(err, domain.ErrEmptyStory) {
		t.Fatalf("expected ErrEmptyStory, got %v", err)
	}
	if _, err := svc.Load(ctx, "v1"); !errors.Is(err, domain.ErrStoryNotFound) {
		t.Fatalf("expected ErrStoryNotFound, got %v", err)
	}

	saved, err := svc.Save(ctx, "v1", "I reached out to a friend today.")
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	if !saved.UpdatedAt.Equal(fixed) {
		t.Fatalf("unexpected timestamp %v", saved.UpdatedAt)
	}
	got, err := svc.Load(ctx, "v1")
	if err != nil || got.Text != saved.Text {
		t.Fatalf("load: %+v %v", got, err)
	}
}
