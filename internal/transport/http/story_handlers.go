package http

import (
	"net/http"

	"go.uber.org/zap"

	"mindcheck-service/internal/app"
)

type storyHandler struct {
	service *app.StoryService
	logger  *zap.Logger
}

type storyRequest struct {
	Text string `json:"text"`
}

func (h *storyHandler) save(w http.ResponseWriter, r *http.Request) {
	var req storyRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody{Error: "invalid story payload"})
		return
	}
	story, err := h.service.Save(r.Context(), visitorID(r.Context()), req.Text)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, story)
}

func (h *storyHandler) load(w http.ResponseWriter, r *http.Request) {
	story, err := h.service.Load(r.Context(), visitorID(r.Context()))
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, story)
}

type insightsHandler struct {
	data Insights
}

func (h *insightsHandler) diagnoses(w http.ResponseWriter, r *http.Request) {
	if h.data.Diagnoses == nil {
		writeJSON(w, http.StatusNotFound, errorBody{Error: "dataset not configured"})
		return
	}
	writeJSON(w, http.StatusOK, h.data.Diagnoses)
}

func (h *insightsHandler) prevalence(w http.ResponseWriter, r *http.Request) {
	if h.data.Prevalence == nil {
		writeJSON(w, http.StatusNotFound, errorBody{Error: "dataset not configured"})
		return
	}
	writeJSON(w, http.StatusOK, h.data.Prevalence)
}
