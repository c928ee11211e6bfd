package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger"
)

// NewRouter builds the HTTP surface: request id → real ip → recoverer →
// access log → CORS → routes.
func NewRouter(h *Handler, logger *slog.Logger, allowedOrigins []string) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.RealIP, middleware.Recoverer)
	r.Use(Logging(logger))
	r.Use(CORS(allowedOrigins))

	r.Get("/health", h.health)
	r.Get("/swagger/*", httpSwagger.WrapHandler)

	r.Route("/api/v1/quiz", func(qr chi.Router) {
		qr.Get("/topics", h.listTopics)
		qr.Post("/sessions", h.createSession)
		qr.Get("/sessions", h.listSessions)
		qr.Get("/sessions/{sessionID}/summary", h.getSummary)
		qr.Post("/sessions/{sessionID}/questions/{questionID}/answer", h.submitAnswer)
	})

	return r
}
