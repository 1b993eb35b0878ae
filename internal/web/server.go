// Package web serves the dashboard pages, the JSON API and the filtered exports.
package web

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rs/zerolog"

	"wallet-dashboard/internal/logger"
)

// NewRouter creates a new router with all routes configured.
func NewRouter(h *Handler, log zerolog.Logger) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(logger.Middleware(log))
	r.Use(middleware.Recoverer)

	r.Get("/", h.Dashboard)
	r.Get("/filter", h.FilterPage)
	r.Get("/export.csv", h.ExportCSV)
	r.Get("/export.xlsx", h.ExportXLSX)
	r.Get("/healthz", h.Health)

	r.Route("/api", func(r chi.Router) {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins: []string{"http://localhost:*", "http://127.0.0.1:*"},
			AllowedMethods: []string{"GET", "OPTIONS"},
			AllowedHeaders: []string{"Accept", "Content-Type"},
		}))
		r.Get("/overview", h.GetOverview)
		r.Route("/transactions", func(r chi.Router) {
			r.Get("/filter", h.FilterTransactions)
			r.Get("/options", h.GetFilterOptions)
		})
	})

	return r
}

// NewServer wraps the router in an http.Server with conservative timeouts.
func NewServer(addr string, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
}
