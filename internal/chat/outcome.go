package chat

import (
	"errors"

	"mindcheck-service/internal/domain"
)

// Outcome kinds reported to clients alongside the display message.
const (
	KindReply     = "reply"
	KindBlocked   = "blocked"
	KindTransport = "transport"
	KindEmpty     = "empty"
	KindBusy      = "busy"
	KindInvalid   = "invalid"
	KindMissing   = "missing"
)

// Kind names the outcome of a Send call.
func Kind(err error) string {
	var (
		transport *domain.TransportError
		blocked   *domain.SafetyBlockedError
		empty     *domain.EmptyResponseError
	)
	switch {
	case err == nil:
		return KindReply
	case errors.As(err, &blocked):
		return KindBlocked
	case errors.As(err, &empty):
		return KindEmpty
	case errors.Is(err, domain.ErrChatBusy):
		return KindBusy
	case errors.Is(err, domain.ErrEmptyMessage):
		return KindInvalid
	case errors.Is(err, domain.ErrChatNotFound):
		return KindMissing
	case errors.As(err, &transport):
		return KindTransport
	default:
		return KindTransport
	}
}

// DisplayMessage is the inline text shown for a failed Send. It is never
// stored in the transcript.
func DisplayMessage(err error) string {
	if err == nil {
		return ""
	}
	if msg := err.Error(); msg != "" {
		return msg
	}
	return "Unknown error occurred."
}
