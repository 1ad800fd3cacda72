package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strings"
	"sync"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"mindcheck-service/internal/app"
	"mindcheck-service/internal/chat"
	"mindcheck-service/internal/render"
)

// WSHandler serves chat over a websocket. Each inbound message is answered
// with a "reply" or "error" frame.
type WSHandler struct {
	service  *app.ChatService
	renderer *render.Renderer
	logger   *zap.Logger
	upgrader websocket.Upgrader
}

// NewWSHandler accepts upgrades from origins listed in allowedOrigins and from
// the server's own host. A "*" entry does not open the socket to every site.
func NewWSHandler(service *app.ChatService, renderer *render.Renderer, logger *zap.Logger, allowedOrigins []string) *WSHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &WSHandler{
		service:  service,
		renderer: renderer,
		logger:   logger.Named("ws"),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     checkOrigin(allowedOrigins),
		},
	}
}

func checkOrigin(allowed []string) func(*http.Request) bool {
	return func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		if origin == "" {
			return true
		}
		for _, o := range allowed {
			if o != "*" && o == origin {
				return true
			}
		}
		u, err := url.Parse(origin)
		return err == nil && strings.EqualFold(u.Host, r.Host)
	}
}

type inboundMessage struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

type messagePayload struct {
	Text string `json:"text"`
}

type outboundMessage struct {
	Type    string `json:"type"`
	Payload any    `json:"payload"`
}

// ServeWS upgrades the request and relays messages for one chat session. A
// missing ?session= opens a new one and announces it with an "opened" frame.
func (h *WSHandler) ServeWS(w http.ResponseWriter, r *http.Request) {
	sessionID := r.URL.Query().Get("session")
	owned := false
	if sessionID != "" {
		if _, err := h.service.Transcript(sessionID); err != nil {
			http.Error(w, "unknown chat session", http.StatusNotFound)
			return
		}
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn("ws upgrade failed", zap.Error(err))
		return
	}
	defer conn.Close()

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	send := make(chan outboundMessage, 16)
	writerDone := make(chan struct{})
	go func() {
		defer close(writerDone)
		for msg := range send {
			if err := conn.WriteJSON(msg); err != nil {
				h.logger.Debug("ws write error", zap.Error(err))
				return
			}
		}
	}()
	emit := func(msg outboundMessage) {
		select {
		case send <- msg:
		case <-writerDone:
		}
	}

	if sessionID == "" {
		id, greeting := h.service.Open()
		sessionID, owned = id, true
		html, _ := h.renderer.Turn(greeting)
		emit(outboundMessage{Type: "opened", Payload: openResponse{SessionID: id, Greeting: renderedTurn{Turn: greeting, HTML: html}}})
	}

	// Replies run concurrently so a message sent while one is pending is
	// reported busy instead of queued.
	var inflight sync.WaitGroup
	for {
		var inbound inboundMessage
		if err := conn.ReadJSON(&inbound); err != nil {
			break
		}
		switch inbound.Type {
		case "message":
			var payload messagePayload
			if err := json.Unmarshal(inbound.Payload, &payload); err != nil {
				emit(errorFrame(h.renderer, chat.KindInvalid, "invalid message payload"))
				continue
			}
			inflight.Add(1)
			go func(text string) {
				defer inflight.Done()
				_, res := exchange(ctx, h.service, h.renderer, sessionID, text)
				if res.Kind == chat.KindReply {
					emit(outboundMessage{Type: "reply", Payload: renderedTurn{Turn: *res.Turn, HTML: res.HTML}})
					return
				}
				emit(outboundMessage{Type: "error", Payload: res})
			}(payload.Text)
		default:
			emit(errorFrame(h.renderer, chat.KindInvalid, "unsupported message type"))
		}
	}

	cancel()
	inflight.Wait()
	close(send)
	<-writerDone
	if owned {
		h.service.Close(sessionID)
	}
}

func errorFrame(renderer *render.Renderer, kind, msg string) outboundMessage {
	return outboundMessage{Type: "error", Payload: sendResponse{Kind: kind, Error: msg, HTML: renderer.Error(msg)}}
}
