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
  /api/engine/*   Stateless amortization and scenario computations
  /api/loans/*    Stored loan management and stored runs
  /api/reset      Database reset (dev only)

SECURITY NOTE:
  No authentication middleware currently. All endpoints are public.

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

	r.Route("/api", func(r chi.Router) {
		// Stateless engine routes
		r.Route("/engine", func(r chi.Router) {
			r.Post("/payment", h.ComputePayment)
			r.Post("/baseline", h.ComputeBaseline)
			r.Post("/actual", h.ComputeActual)
			r.Post("/compare", h.CompareSchedules)
			r.Post("/rate", h.SolveRate)
			r.Post("/scenarios", h.RunScenarios)
		})

		// Stored loan routes
		r.Route("/loans", func(r chi.Router) {
			r.Get("/", h.ListLoans)
			r.Post("/", h.CreateLoan)
			r.Get("/{id}", h.GetLoan)
			r.Delete("/{id}", h.DeleteLoan)
			r.Get("/{id}/prepayments", h.ListLoanPrepayments)
			r.Post("/{id}/prepayments", h.CreateLoanPrepayment)
			r.Get("/{id}/scenarios", h.ListLoanScenarios)
			r.Post("/{id}/scenarios", h.CreateLoanScenario)
			r.Post("/{id}/run", h.RunStoredLoan)
		})

		r.Delete("/prepayments/{id}", h.DeletePrepayment)
		r.Delete("/scenarios/{id}", h.DeleteScenario)

		r.Post("/reset", h.ResetDatabase)
	})

	return r
}
