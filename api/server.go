/*
server.go - HTTP router and middleware configuration

PURPOSE:
  Configures the chi router, middleware stack, and route definitions. This
  is the wiring layer that connects URLs to handlers.

MIDDLEWARE STACK:
  1. Logger:     Request logging
  2. Recoverer:  Panic recovery (500 instead of crash)
  3. RequestID:  Unique ID per request for tracing
  4. CORS:       Cross-origin requests for a local frontend

SEE ALSO:
  - handlers.go: Handler implementations
  - cmd/server/main.go: Server startup
*/
package api

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// NewRouter creates a new router with all routes configured.
func NewRouter(h *Handler) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:5173", "http://localhost:8080"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
	}))

	r.Route("/api", func(r chi.Router) {
		r.Route("/days", func(r chi.Router) {
			r.Get("/", h.ListDays)
			r.Post("/", h.CreateDay)
			r.Patch("/{id}", h.UpdateDay)
			r.Delete("/{id}", h.DeleteDay)
		})

		r.Get("/summary", h.GetSummary)
		r.Get("/distribution", h.GetDistribution)
		r.Get("/forecast", h.GetForecast)

		r.Get("/config", h.GetConfig)
		r.Put("/config", h.PutConfig)
		r.Put("/month", h.SelectMonth)

		r.Get("/export", h.Export)
		r.Post("/import", h.Import)
		r.Post("/reset", h.Reset)

		r.Route("/reports", func(r chi.Router) {
			r.Get("/month", h.GetMonthReport)
			r.Get("/general", h.GetGeneralReport)
		})
	})

	return r
}
