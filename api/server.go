/*
server.go - HTTP router and middleware configuration

PURPOSE:
  Configures the HTTP router (chi), middleware stack, and route definitions.
  This is the wiring layer that connects URLs to handlers.

ROUTER: chi
  Chi was chosen for:
  - Lightweight and fast
  - Context-based
  - Middleware support
  - RESTful route patterns

MIDDLEWARE STACK:
  1. Logger:     Request logging
  2. Recoverer:  Panic recovery (500 instead of crash)
  3. RequestID:  Unique ID per request for tracing
  4. CORS:       Cross-origin requests for frontend

ROUTE GROUPS:
  /api/categories/*      Target group catalog
  /api/questionnaires/*  Screening questionnaire definitions
  /api/screenings/*      Screening evaluation and certification
  /api/credits/*         Stateless credit calculation
  /api/scenarios/*       Demo scenarios
  /api/reset             Database reset (dev only)

SECURITY NOTE:
  No authentication middleware currently. All endpoints are public.

SEE ALSO:
  - handlers.go: Handler implementations
  - cmd/server/main.go: Server startup
*/
package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// NewRouter creates a new router with all routes configured.
func NewRouter(h *Handler) *chi.Mux {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:5173", "http://localhost:8080"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
	}))

	// API routes
	r.Route("/api", func(r chi.Router) {
		// Target group catalog routes
		r.Route("/categories", func(r chi.Router) {
			r.Get("/", h.ListCategories)
			r.Post("/normalize", h.NormalizeCategory)
			r.Get("/{code}", h.GetCategory)
		})

		// Questionnaire routes
		r.Route("/questionnaires", func(r chi.Router) {
			r.Get("/", h.ListQuestionnaires)
			r.Post("/", h.CreateQuestionnaire)
			r.Get("/{id}", h.GetQuestionnaire)
		})

		// Screening routes
		r.Route("/screenings", func(r chi.Router) {
			r.Post("/", h.SubmitScreening)
			r.Get("/{id}", h.GetScreening)
			r.Post("/{id}/certify", h.CertifyScreening)
			r.Post("/{id}/credit", h.CalculateScreeningCredit)
			r.Get("/{id}/credits", h.ListScreeningCredits)
		})

		// Credit routes
		r.Route("/credits", func(r chi.Router) {
			r.Post("/calculate", h.CalculateCredit)
		})

		// Scenario routes
		r.Route("/scenarios", func(r chi.Router) {
			r.Get("/", h.ListScenarios)
			r.Get("/current", h.GetCurrentScenario)
			r.Post("/load", h.LoadScenario)
			r.Post("/reset", h.ResetDatabase)
		})
	})

	// Simple landing page listing the API surface.
	r.Get("/*", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.Write([]byte(`<!DOCTYPE html>
<html>
<head><title>Incentive Screening Engine</title></head>
<body style="font-family: system-ui; max-width: 800px; margin: 50px auto; padding: 20px;">
<h1>Incentive Screening Engine API</h1>
<h2>API Endpoints</h2>
<ul>
<li><a href="/api/categories">/api/categories</a> - List target groups</li>
<li><a href="/api/questionnaires">/api/questionnaires</a> - List questionnaires</li>
<li><a href="/api/scenarios">/api/scenarios</a> - List demo scenarios</li>
</ul>
</body>
</html>`))
	})

	return r
}
