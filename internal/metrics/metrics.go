// Churnscope - Customer Churn Prediction and Retention Analytics
// Copyright 2026 Churnscope Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/churnscope/churnscope

package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Prediction Metrics
	PredictionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "churnscope_predictions_total",
			Help: "Total number of scored predictions",
		},
		[]string{"risk_level"},
	)

	PredictionErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "churnscope_prediction_errors_total",
			Help: "Total number of failed predictions",
		},
		[]string{"error_type"}, // "validation", "model_not_loaded", "internal"
	)

	PredictionDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "churnscope_prediction_duration_seconds",
			Help:    "Duration of single-record scoring operations",
			Buckets: []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1},
		},
		[]string{"operation"}, // "predict", "explain", "recommend"
	)

	// Explanation Metrics
	DegradedExplanations = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "churnscope_degraded_explanations_total",
			Help: "Total number of explanations served by the raw-value fallback",
		},
	)

	// Batch Metrics
	BatchRuns = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "churnscope_batch_runs_total",
			Help: "Total number of batch scoring runs",
		},
	)

	BatchRecords = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "churnscope_batch_records_total",
			Help: "Total number of records scored in batch runs",
		},
		[]string{"outcome"}, // "succeeded", "failed"
	)

	BatchDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "churnscope_batch_duration_seconds",
			Help:    "Duration of batch scoring runs",
			Buckets: []float64{0.01, 0.05, 0.1, 0.5, 1, 5, 10, 30, 60},
		},
	)

	BatchSize = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "churnscope_batch_size",
			Help:    "Number of records per batch run",
			Buckets: []float64{1, 10, 50, 100, 250, 500, 1000, 5000},
		},
	)

	// API Endpoint Metrics
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "churnscope_api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "endpoint", "status_code"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "churnscope_api_request_duration_seconds",
			Help:    "API request duration in seconds",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"method", "endpoint"},
	)

	APIActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "churnscope_api_active_requests",
			Help: "Current number of active API requests",
		},
	)

	// History Metrics
	HistoryEntriesSaved = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "churnscope_history_entries_saved_total",
			Help: "Total number of prediction history entries persisted",
		},
	)

	HistoryErrors = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "churnscope_history_errors_total",
			Help: "Total number of history store failures",
		},
	)
)

// RecordPrediction records one scored prediction by risk tier.
func RecordPrediction(riskLevel, operation string, duration time.Duration) {
	PredictionsTotal.WithLabelValues(riskLevel).Inc()
	PredictionDuration.WithLabelValues(operation).Observe(duration.Seconds())
}

// RecordPredictionError records a failed prediction by error category.
func RecordPredictionError(errorType string) {
	PredictionErrors.WithLabelValues(errorType).Inc()
}

// RecordBatchRun records an entire batch scoring run.
func RecordBatchRun(size, succeeded, failed int, duration time.Duration) {
	BatchRuns.Inc()
	BatchSize.Observe(float64(size))
	BatchDuration.Observe(duration.Seconds())
	BatchRecords.WithLabelValues("succeeded").Add(float64(succeeded))
	BatchRecords.WithLabelValues("failed").Add(float64(failed))
}

// RecordAPIRequest records an API request metric.
func RecordAPIRequest(method, endpoint, statusCode string, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, endpoint, statusCode).Inc()
	APIRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// TrackActiveRequest tracks active API requests.
func TrackActiveRequest(inc bool) {
	if inc {
		APIActiveRequests.Inc()
	} else {
		APIActiveRequests.Dec()
	}
}
