package http

import (
	"context"
	"html/template"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"mindcheck-service/internal/app"
	"mindcheck-service/internal/chat"
	"mindcheck-service/internal/domain"
	"mindcheck-service/internal/render"
)

type chatHandler struct {
	service  *app.ChatService
	renderer *render.Renderer
	logger   *zap.Logger
}

type renderedTurn struct {
	Turn domain.ChatTurn `json:"turn"`
	HTML template.HTML   `json:"html"`
}

type openResponse struct {
	SessionID string       `json:"sessionId"`
	Greeting  renderedTurn `json:"greeting"`
}

type sendRequest struct {
	Text string `json:"text"`
}

type sendResponse struct {
	Kind  string           `json:"kind"`
	Turn  *domain.ChatTurn `json:"turn,omitempty"`
	Error string           `json:"error,omitempty"`
	HTML  template.HTML    `json:"html"`
}

func (h *chatHandler) open(w http.ResponseWriter, r *http.Request) {
	id, greeting := h.service.Open()
	html, err := h.renderer.Turn(greeting)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusCreated, openResponse{SessionID: id, Greeting: renderedTurn{Turn: greeting, HTML: html}})
}

func (h *chatHandler) transcript(w http.ResponseWriter, r *http.Request) {
	turns, err := h.service.Transcript(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	out := make([]renderedTurn, 0, len(turns))
	for _, t := range turns {
		html, err := h.renderer.Turn(t)
		if err != nil {
			writeError(w, h.logger, err)
			return
		}
		out = append(out, renderedTurn{Turn: t, HTML: html})
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *chatHandler) close(w http.ResponseWriter, r *http.Request) {
	h.service.Close(chi.URLParam(r, "id"))
	w.WriteHeader(http.StatusNoContent)
}

func (h *chatHandler) send(w http.ResponseWriter, r *http.Request) {
	var req sendRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody{Error: "invalid message payload"})
		return
	}
	status, body := exchange(r.Context(), h.service, h.renderer, chi.URLParam(r, "id"), req.Text)
	writeJSON(w, status, body)
}

// exchange runs one Send and shapes the outcome for both REST and websocket
// clients. A safety block is an answer to show, not a failure.
func exchange(ctx context.Context, service *app.ChatService, renderer *render.Renderer, id, text string) (int, sendResponse) {
	turn, err := service.Send(ctx, id, text)
	if err == nil {
		html, rerr := renderer.Turn(turn)
		if rerr != nil {
			return http.StatusInternalServerError, sendResponse{Kind: chat.KindTransport, Error: "internal error", HTML: renderer.Error("internal error")}
		}
		return http.StatusOK, sendResponse{Kind: chat.KindReply, Turn: &turn, HTML: html}
	}

	kind := chat.Kind(err)
	msg := chat.DisplayMessage(err)
	status := statusFor(err)
	if kind == chat.KindBlocked {
		status = http.StatusOK
	}
	return status, sendResponse{Kind: kind, Error: msg, HTML: renderer.Error(msg)}
}
