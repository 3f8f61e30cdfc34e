package httpapi

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/charleschow/hoops-analyst/internal/telemetry"
)

// NewRouter mounts the API routes. ws, when non-nil, is served at /ws
// outside the request timeout.
func NewRouter(h *Handler, ws http.HandlerFunc, allowedOrigins []string) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(countRequests)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	if ws != nil {
		r.Get("/ws", ws)
	}

	r.Group(func(r chi.Router) {
		r.Use(middleware.Timeout(30 * time.Second))

		r.Get("/health", h.HealthCheck)
		r.Get("/metrics", h.Metrics)

		r.Route("/v1", func(r chi.Router) {
			r.Get("/constants", h.Constants)
			r.Post("/projections", h.Project)
			r.Get("/projections/recent", h.Recent)
			r.Get("/games/{gameID}/projections", h.GameProjections)
		})
	})

	return r
}

// countRequests feeds the request counters.
func countRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		telemetry.Metrics.Requests.Inc()
		if ww.Status() >= http.StatusBadRequest {
			telemetry.Metrics.RequestErrors.Inc()
		}
	})
}
