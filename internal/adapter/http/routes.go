package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
)

// MountRoutes registers all API routes on the given chi router. wsHandler
// serves the WebSocket upgrade endpoint. The request timeout applies to the
// REST surface only; /ws connections are long-lived.
func MountRoutes(r chi.Router, h *Handlers, wsHandler http.HandlerFunc) {
	r.Get("/health", h.Health)
	r.Get("/ws", wsHandler)

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(chimw.Timeout(30 * time.Second))

		r.Get("/agents", h.ListAgents)

		r.Route("/policy", func(r chi.Router) {
			r.Post("/create", h.CreatePolicy)
			r.Post("/start/{id}", h.StartDeliberation)
			r.Get("/session/{id}", h.GetSession)
			r.Get("/sessions", h.ListSessions)
			r.Get("/report/{id}", h.GetReport)
		})
	})
}
