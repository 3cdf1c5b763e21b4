// Churnscope - Customer Churn Prediction and Retention Analytics
// Copyright 2026 Churnscope Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/churnscope/churnscope

/*
Package main is the entry point for the Churnscope server.

Churnscope scores customer records against trained churn model artifacts and
serves predictions, feature attributions, and retention recommendations over
a REST API, with an optional BadgerDB-backed prediction history.

Component initialization order:

 1. Configuration: Koanf v2 with defaults, config file, and environment
 2. Logging: zerolog, configured from the logging section
 3. Model artifacts: JSON bundle loaded from model.artifact_path
 4. History store: BadgerDB, opened only when history.enabled
 5. Batch processor: worker pool with optional rate limiting
 6. HTTP server: chi router with CORS, rate limiting, and Prometheus metrics

The server shuts down gracefully on SIGINT or SIGTERM, draining in-flight
requests within server.shutdown_timeout.
*/
package main
