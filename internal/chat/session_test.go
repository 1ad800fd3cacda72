package chat

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"mindcheck-service/internal/domain"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type scriptedGenerator struct {
	mu      sync.Mutex
	replies []reply
	calls   []Request
	gate    chan struct{}
	entered chan struct{}
}

type reply struct {
	text string
	err  error
}

func (g *scriptedGenerator) Generate(ctx context.Context, req Request) (string, error) {
	g.mu.Lock()
	g.calls = append(g.calls, req)
	var next reply
	if len(g.replies) > 0 {
		next = g.replies[0]
		g.replies = g.replies[1:]
	}
	gate, entered := g.gate, g.entered
	g.mu.Unlock()

	if entered != nil {
		entered <- struct{}{}
	}
	if gate != nil {
		select {
		case <-gate:
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}
	return next.text, next.err
}

func (g *scriptedGenerator) lastCall() Request {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.calls[len(g.calls)-1]
}

func TestNewSessionSeedsTranscript(t *testing.T) {
	s := NewSession(&scriptedGenerator{})

	turns := s.Transcript()
	require.Len(t, turns, 2)
	require.Equal(t, domain.RoleUser, turns[0].Role)
	require.Equal(t, SystemInstruction, turns[0].Text)
	require.Equal(t, domain.ChatTurn{Role: domain.RoleModel, Text: Greeting}, turns[1])

	visible := s.Visible()
	require.Len(t, visible, 1)
	require.Equal(t, Greeting, visible[0].Text)
}

func TestSendAppendsUserAndModelTurns(t *testing.T) {
	g := &scriptedGenerator{replies: []reply{{text: "Try a short walk."}}}
	s := NewSession(g)

	turn, err := s.Send(context.Background(), "  How do I relax?  ")
	require.NoError(t, err)
	require.Equal(t, domain.ChatTurn{Role: domain.RoleModel, Text: "Try a short walk."}, turn)
	require.Equal(t, 4, s.Len())

	call := g.lastCall()
	require.Len(t, call.Turns, 3)
	require.Equal(t, domain.ChatTurn{Role: domain.RoleUser, Text: "How do I relax?"}, call.Turns[2])
	require.Equal(t, domain.DefaultSafetyPolicy, call.Safety)
}

func TestSendResendsWholeTranscriptEveryTurn(t *testing.T) {
	g := &scriptedGenerator{}
	for i := 0; i < 5; i++ {
		g.replies = append(g.replies, reply{text: "ok"})
	}
	s := NewSession(g)

	for i := 0; i < 5; i++ {
		_, err := s.Send(context.Background(), "hello")
		require.NoError(t, err)
		require.Len(t, g.lastCall().Turns, 3+2*i, "payload grows with every turn")
	}
	require.Equal(t, 12, s.Len())
}

func TestFailuresLeaveDanglingUserTurn(t *testing.T) {
	cases := []struct {
		name string
		err  error
		kind string
	}{
		{"blocked", &domain.SafetyBlockedError{Reason: "SAFETY"}, KindBlocked},
		{"status", &domain.TransportError{Status: 500, Message: "boom"}, KindTransport},
		{"untyped", errors.New("connection reset"), KindTransport},
		{"empty", &domain.EmptyResponseError{}, KindEmpty},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			s := NewSession(&scriptedGenerator{replies: []reply{{err: tc.err}}})

			_, err := s.Send(context.Background(), "question")
			require.Error(t, err)
			require.Equal(t, tc.kind, Kind(err))
			require.NotEmpty(t, DisplayMessage(err))

			turns := s.Transcript()
			require.Len(t, turns, 3)
			require.Equal(t, domain.RoleUser, turns[2].Role)
			require.False(t, s.Busy(), "flag released on failure")
		})
	}
}

func TestBlankReplyIsEmptyResponse(t *testing.T) {
	s := NewSession(&scriptedGenerator{replies: []reply{{text: "   "}}})

	_, err := s.Send(context.Background(), "question")
	var empty *domain.EmptyResponseError
	require.ErrorAs(t, err, &empty)
	require.Equal(t, 3, s.Len())
}

func TestConsecutiveFailuresProduceConsecutiveUserTurns(t *testing.T) {
	g := &scriptedGenerator{replies: []reply{
		{err: &domain.SafetyBlockedError{Reason: "SAFETY"}},
		{text: "Here are some ideas."},
	}}
	s := NewSession(g)

	_, err := s.Send(context.Background(), "first")
	require.Error(t, err)
	_, err = s.Send(context.Background(), "second")
	require.NoError(t, err)

	turns := s.Transcript()
	require.Len(t, turns, 5)
	require.Equal(t, domain.RoleUser, turns[2].Role)
	require.Equal(t, domain.RoleUser, turns[3].Role)
	require.Equal(t, domain.RoleModel, turns[4].Role)
}

func TestSendRejectsEmptyInput(t *testing.T) {
	g := &scriptedGenerator{}
	s := NewSession(g)

	_, err := s.Send(context.Background(), "   ")
	require.ErrorIs(t, err, domain.ErrEmptyMessage)
	require.Equal(t, 2, s.Len())
	require.Empty(t, g.calls)
}

func TestConcurrentSendIsDropped(t *testing.T) {
	g := &scriptedGenerator{
		replies: []reply{{text: "first reply"}},
		gate:    make(chan struct{}),
		entered: make(chan struct{}, 1),
	}
	s := NewSession(g)

	done := make(chan error, 1)
	go func() {
		_, err := s.Send(context.Background(), "first")
		done <- err
	}()
	<-g.entered
	require.True(t, s.Busy())

	_, err := s.Send(context.Background(), "second")
	require.ErrorIs(t, err, domain.ErrChatBusy)
	require.Equal(t, 3, s.Len(), "dropped call must not touch the transcript")

	close(g.gate)
	require.NoError(t, <-done)
	require.False(t, s.Busy())

	turns := s.Transcript()
	require.Len(t, turns, 4)
	require.Equal(t, "first", turns[2].Text)
	require.Equal(t, "first reply", turns[3].Text)
}

func TestCallTimeoutReleasesSession(t *testing.T) {
	g := &scriptedGenerator{gate: make(chan struct{})}
	s := NewSession(g, WithCallTimeout(20*time.Millisecond))

	_, err := s.Send(context.Background(), "slow")
	var transport *domain.TransportError
	require.ErrorAs(t, err, &transport)
	require.ErrorIs(t, err, context.DeadlineExceeded)
	require.False(t, s.Busy())
}

func TestKindOfSessionErrors(t *testing.T) {
	require.Equal(t, KindReply, Kind(nil))
	require.Equal(t, KindBusy, Kind(domain.ErrChatBusy))
	require.Equal(t, KindInvalid, Kind(domain.ErrEmptyMessage))
	require.Equal(t, KindMissing, Kind(domain.ErrChatNotFound))
	require.Equal(t, "", DisplayMessage(nil))
	require.Equal(t, "a reply is still being generated", DisplayMessage(domain.ErrChatBusy))
}
