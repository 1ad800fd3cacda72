package http

import (
	"context"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"mindcheck-service/internal/app"
)

type quizHandler struct {
	service *app.QuizService
	logger  *zap.Logger
}

type startRequest struct {
	QuestionnaireID string `json:"questionnaireId"`
}

type selectRequest struct {
	Option *int `json:"option"`
}

func (h *quizHandler) questionnaire(w http.ResponseWriter, r *http.Request) {
	info, err := h.service.Questionnaire(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, info)
}

func (h *quizHandler) start(w http.ResponseWriter, r *http.Request) {
	var req startRequest
	if err := decodeJSON(w, r, &req); err != nil || req.QuestionnaireID == "" {
		writeJSON(w, http.StatusBadRequest, errorBody{Error: "questionnaireId is required"})
		return
	}
	v, err := h.service.Start(r.Context(), req.QuestionnaireID)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusCreated, v)
}

func (h *quizHandler) view(w http.ResponseWriter, r *http.Request) {
	h.respond(w, r, h.service.View)
}

func (h *quizHandler) selectAnswer(w http.ResponseWriter, r *http.Request) {
	index, err := strconv.Atoi(chi.URLParam(r, "index"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody{Error: "question index must be a number"})
		return
	}
	var req selectRequest
	if err := decodeJSON(w, r, &req); err != nil || req.Option == nil {
		writeJSON(w, http.StatusBadRequest, errorBody{Error: "option is required"})
		return
	}
	h.respond(w, r, func(ctx context.Context, id string) (app.AttemptView, error) {
		return h.service.Select(ctx, id, index, *req.Option)
	})
}

func (h *quizHandler) advance(w http.ResponseWriter, r *http.Request) {
	h.respond(w, r, h.service.Advance)
}

func (h *quizHandler) retreat(w http.ResponseWriter, r *http.Request) {
	h.respond(w, r, h.service.Retreat)
}

func (h *quizHandler) submit(w http.ResponseWriter, r *http.Request) {
	h.respond(w, r, h.service.Submit)
}

func (h *quizHandler) restart(w http.ResponseWriter, r *http.Request) {
	h.respond(w, r, h.service.Restart)
}

// result serves the one-shot summary; the token is spent on first read.
func (h *quizHandler) result(w http.ResponseWriter, r *http.Request) {
	summary, err := h.service.TakeResult(r.Context(), chi.URLParam(r, "token"))
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	w.Header().Set("Cache-Control", "no-store")
	writeJSON(w, http.StatusOK, summary)
}

func (h *quizHandler) respond(w http.ResponseWriter, r *http.Request, op func(context.Context, string) (app.AttemptView, error)) {
	v, err := op(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, v)
}
