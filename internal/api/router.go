// Churnscope - Customer Churn Prediction and Retention Analytics
// Copyright 2026 Churnscope Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/churnscope/churnscope

package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// NewRouter assembles the full HTTP routing tree. Health probes and the
// metrics endpoint sit outside the rate-limited API group so operational
// traffic is never throttled.
func NewRouter(h *Handler, mw MiddlewareConfig) http.Handler {
	r := chi.NewRouter()

	// Global middleware, applied to every route.
	r.Use(RequestIDWithLogging())
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(mw.CORS())

	// Operational endpoints.
	r.Get("/healthz", h.Healthz)
	r.Get("/readyz", h.Readyz)
	r.Handle("/metrics", promhttp.Handler())

	// Scoring and history API.
	r.Route("/api/v1", func(r chi.Router) {
		r.Use(mw.RateLimit())
		r.Use(SecurityHeaders())
		r.Use(RequestMetrics())

		r.Post("/predict", h.Predict)
		r.Post("/explain", h.Explain)
		r.Post("/recommend", h.Recommend)
		r.Post("/batch", h.BatchScore)

		r.Get("/history", h.HistoryList)
		r.Get("/history/{id}", h.HistoryGet)
		r.Delete("/history/{id}", h.HistoryDelete)
	})

	return r
}
