// Pick - Streaming Title Recommendation Service
// Copyright 2026 Ashlight (ashlight2510)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/ashlight2510/pick

package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// RouterConfig bundles the middleware settings for router assembly.
type RouterConfig struct {
	Middleware *MiddlewareConfig
}

// NewRouter assembles the chi router: recovery, request IDs, security
// headers, CORS, rate limiting and metrics around the versioned API.
func NewRouter(h *Handlers, cfg *RouterConfig) *chi.Mux {
	if cfg == nil {
		cfg = &RouterConfig{}
	}
	mw := NewMiddleware(cfg.Middleware)

	r := chi.NewRouter()
	r.Use(chimiddleware.RealIP)
	r.Use(RequestIDWithLogging())
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.Timeout(30 * time.Second))
	r.Use(SecurityHeaders())
	r.Use(mw.CORS())
	r.Use(RequestMetrics())

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(mw.RateLimit())

		r.Post("/recommendations", h.HandleRecommendations)

		r.Route("/titles", func(r chi.Router) {
			r.Get("/", h.HandleTitles)
			r.Get("/{mediaType}/{id}", h.HandleTitle)
			r.Get("/{mediaType}/{id}/similar", h.HandleSimilar)
		})

		r.Get("/picks", h.HandleQuickPickIndex)
		r.Get("/picks/{slug}", h.HandleQuickPick)
		r.Post("/dataset/reload", h.HandleDatasetReload)
		r.Get("/health", h.HandleHealth)
	})

	r.Handle("/metrics", promhttp.Handler())

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		NewResponseWriter(w, r).NotFound("Route not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		NewResponseWriter(w, r).Error(http.StatusMethodNotAllowed,
			"METHOD_NOT_ALLOWED", "Method not allowed")
	})

	return r
}
