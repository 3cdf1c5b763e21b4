// Churnscope - Customer Churn Prediction and Retention Analytics
// Copyright 2026 Churnscope Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/churnscope/churnscope

// Package batch scores many customer records concurrently through the
// prediction pipeline.
//
// Records are fanned out to a bounded worker pool and results are returned
// in input order. A failing record never aborts the run: its row carries
// the error and the remaining records are still scored. An optional rate
// limiter spreads large runs out so batch scoring cannot starve
// interactive requests.
package batch
