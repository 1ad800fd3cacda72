// Package http exposes the quiz, chat, story and insight use cases over REST
// and a websocket chat channel.
package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"mindcheck-service/internal/app"
	"mindcheck-service/internal/insights"
	"mindcheck-service/internal/render"
)

// Insights holds the precomputed chart series. Nil fields are served as 404.
type Insights struct {
	Diagnoses  *insights.Series
	Prevalence *insights.GenderSeries
}

// Deps are the use cases and helpers the router serves.
type Deps struct {
	Quiz     *app.QuizService
	Chat     *app.ChatService
	Stories  *app.StoryService
	Insights Insights
	Renderer *render.Renderer
	Logger   *zap.Logger

	AllowedOrigins []string
	SecureCookies  bool
}

// NewRouter wires every route onto a chi router.
func NewRouter(d Deps) http.Handler {
	if d.Logger == nil {
		d.Logger = zap.NewNop()
	}
	if d.Renderer == nil {
		d.Renderer = render.New()
	}
	if len(d.AllowedOrigins) == 0 {
		d.AllowedOrigins = []string{"*"}
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger(d.Logger.Named("http")))
	r.Use(middleware.Recoverer)
	r.Use(middleware.Heartbeat("/healthz"))
	r.Use(cors(d.AllowedOrigins))

	if d.Quiz != nil {
		q := &quizHandler{service: d.Quiz, logger: d.Logger}
		r.Get("/api/questionnaires/{id}", q.questionnaire)
		r.Route("/api/quiz/attempts", func(r chi.Router) {
			r.Post("/", q.start)
			r.Get("/{id}", q.view)
			r.Put("/{id}/answers/{index}", q.selectAnswer)
			r.Post("/{id}/advance", q.advance)
			r.Post("/{id}/retreat", q.retreat)
			r.Post("/{id}/submit", q.submit)
			r.Post("/{id}/restart", q.restart)
		})
		r.Get("/api/results/{token}", q.result)
	}

	if d.Chat != nil {
		c := &chatHandler{service: d.Chat, renderer: d.Renderer, logger: d.Logger}
		r.Route("/api/chat/sessions", func(r chi.Router) {
			r.Post("/", c.open)
			r.Get("/{id}", c.transcript)
			r.Delete("/{id}", c.close)
			r.Post("/{id}/messages", c.send)
		})
		r.Get("/ws/chat", NewWSHandler(d.Chat, d.Renderer, d.Logger, d.AllowedOrigins).ServeWS)
	}

	if d.Stories != nil {
		s := &storyHandler{service: d.Stories, logger: d.Logger}
		r.Group(func(r chi.Router) {
			r.Use(visitor(d.SecureCookies))
			r.Put("/api/stories/me", s.save)
			r.Get("/api/stories/me", s.load)
		})
	}

	ih := &insightsHandler{data: d.Insights}
	r.Get("/api/insights/diagnoses", ih.diagnoses)
	r.Get("/api/insights/prevalence", ih.prevalence)

	return r
}
