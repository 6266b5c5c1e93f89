// Warelay - WhatsApp Ingestion Relay and Live Dashboard
// Copyright 2026 Warelay Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/warelay/warelay

package api

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/warelay/warelay/internal/metrics"
	"github.com/warelay/warelay/internal/middleware"
)

// chiMiddleware adapts http.HandlerFunc middleware to Chi's func(http.Handler) http.Handler.
func chiMiddleware(mw func(http.HandlerFunc) http.HandlerFunc) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return mw(next.ServeHTTP)
	}
}

// Routes wires all HTTP endpoints onto a Chi router.
func (h *Handler) Routes() http.Handler {
	r := chi.NewRouter()

	// Global middleware, applied to every route in order.
	r.Use(chiMiddleware(middleware.RequestID))
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: h.config.Security.CORSOrigins,
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Signature", "X-Request-ID"},
		MaxAge:         300,
	}))
	r.Use(chiMiddleware(middleware.PrometheusMetrics))

	// Write endpoints are rate limited per client IP; reads stay open
	// so the dashboard can poll freely.
	r.Group(func(r chi.Router) {
		r.Use(h.rateLimit())
		r.Post("/ingesta", h.Ingest)
		r.Post("/qr", h.QRSet)
	})

	r.Get("/health", h.Health)
	r.Get("/messages/recent", h.RecentMessages)
	r.Get("/media/list", h.MediaList)
	r.Get("/qr", h.QRGet)
	r.Get("/dashboard", h.Dashboard)
	r.Handle("/metrics", promhttp.Handler())

	// Locally stored media, served verbatim. Directory listings are
	// not exposed, only the files themselves.
	r.Handle("/media/*", http.StripPrefix("/media/", h.mediaFiles()))

	return r
}

// mediaFiles serves individual files from the local media directory,
// rejecting directory requests that http.FileServer would otherwise
// answer with an auto-generated index.
func (h *Handler) mediaFiles() http.Handler {
	fileServer := http.FileServer(http.Dir(h.localDir))
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "" || strings.HasSuffix(r.URL.Path, "/") {
			http.NotFound(w, r)
			return
		}
		fileServer.ServeHTTP(w, r)
	})
}

// rateLimit builds the per-IP limiter for write endpoints, or a no-op
// when disabled in config.
func (h *Handler) rateLimit() func(http.Handler) http.Handler {
	if h.config.Security.RateLimitDisabled {
		return func(next http.Handler) http.Handler {
			return next
		}
	}
	return httprate.Limit(
		h.config.Security.RateLimitReqs,
		h.config.Security.RateLimitWindow,
		httprate.WithKeyFuncs(httprate.KeyByIP),
		httprate.WithLimitHandler(func(w http.ResponseWriter, r *http.Request) {
			metrics.APIRateLimitHits.WithLabelValues(r.URL.Path).Inc()
			respondError(w, r, http.StatusTooManyRequests, ErrCodeTooManyRequests, "Rate limit exceeded")
		}),
	)
}
