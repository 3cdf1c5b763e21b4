// Churnscope - Customer Churn Prediction and Retention Analytics
// Copyright 2026 Churnscope Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/churnscope/churnscope

/*
Package metrics provides Prometheus metrics collection and export for observability.

Metrics are registered at package load through promauto and exposed at the
/metrics endpoint in Prometheus text format.

# Available Metrics

Prediction Metrics:
  - churnscope_predictions_total: Scored predictions (counter)
    Labels: risk_level (LOW, MODERATE, HIGH)
  - churnscope_prediction_errors_total: Failed predictions (counter)
    Labels: error_type (validation, model_not_loaded, internal)
  - churnscope_prediction_duration_seconds: Scoring latency (histogram)
    Labels: operation (predict, explain, recommend)
  - churnscope_degraded_explanations_total: Raw-value fallback explanations (counter)

Batch Metrics:
  - churnscope_batch_runs_total: Batch scoring runs (counter)
  - churnscope_batch_records_total: Records scored in batches (counter)
    Labels: outcome (succeeded, failed)
  - churnscope_batch_duration_seconds: Batch run duration (histogram)
  - churnscope_batch_size: Records per batch run (histogram)

HTTP Metrics:
  - churnscope_api_requests_total: API requests (counter)
    Labels: method, endpoint, status_code
  - churnscope_api_request_duration_seconds: Request latency (histogram)
    Labels: method, endpoint
  - churnscope_api_active_requests: In-flight requests (gauge)

History Metrics:
  - churnscope_history_entries_saved_total: Persisted history entries (counter)
  - churnscope_history_errors_total: History store failures (counter)

# Thread Safety

All metric recording functions are safe for concurrent use; the Prometheus
client library handles synchronization internally.

# Cardinality Management

Endpoint labels use the route pattern, never the raw request path, and
error types are limited to a fixed set of constants.
*/
package metrics
