package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"mindcheck-service/internal/domain"
)

type errorBody struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError maps domain errors onto statuses. Unmapped errors are logged and
// reported without detail.
func writeError(w http.ResponseWriter, logger *zap.Logger, err error) {
	status := statusFor(err)
	msg := err.Error()
	if status == http.StatusInternalServerError {
		logger.Error("request failed", zap.Error(err))
		msg = "internal error"
	}
	writeJSON(w, status, errorBody{Error: msg})
}

func statusFor(err error) int {
	var (
		transport *domain.TransportError
		empty     *domain.EmptyResponseError
	)
	switch {
	case errors.Is(err, domain.ErrNoSelection),
		errors.Is(err, domain.ErrBoundary),
		errors.Is(err, domain.ErrQuestionOutOfRange),
		errors.Is(err, domain.ErrOptionOutOfRange),
		errors.Is(err, domain.ErrEmptyMessage),
		errors.Is(err, domain.ErrEmptyStory):
		return http.StatusUnprocessableEntity
	case errors.Is(err, domain.ErrQuizCompleted),
		errors.Is(err, domain.ErrChatBusy):
		return http.StatusConflict
	case errors.Is(err, domain.ErrQuizNotFound),
		errors.Is(err, domain.ErrAttemptNotFound),
		errors.Is(err, domain.ErrHandoffNotFound),
		errors.Is(err, domain.ErrChatNotFound),
		errors.Is(err, domain.ErrStoryNotFound):
		return http.StatusNotFound
	case errors.As(err, &transport), errors.As(err, &empty):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func decodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	return json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<20)).Decode(v)
}
