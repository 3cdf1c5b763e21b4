// Churnscope - Customer Churn Prediction and Retention Analytics
// Copyright 2026 Churnscope Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/churnscope/churnscope

// Package api provides the HTTP surface over the prediction pipeline using
// the Chi router.
//
// Scoring endpoints accept a customer record as JSON and return the
// prediction, optionally with the feature attribution and the retention
// recommendation:
//
//	POST /api/v1/predict
//	POST /api/v1/explain
//	POST /api/v1/recommend
//	POST /api/v1/batch
//
// The batch endpoint accepts either a JSON record list or an uploaded CSV
// file (Content-Type text/csv), returning the result in the matching
// format. The recommend endpoint returns a plain-text retention report
// when the request asks for Accept: text/plain.
//
// Past results are served from the history store:
//
//	GET    /api/v1/history
//	GET    /api/v1/history/{id}
//	DELETE /api/v1/history/{id}
//
// Liveness, readiness, and Prometheus metrics are exposed at /healthz,
// /readyz, and /metrics.
package api
