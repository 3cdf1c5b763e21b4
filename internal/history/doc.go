// Churnscope - Customer Churn Prediction and Retention Analytics
// Copyright 2026 Churnscope Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/churnscope/churnscope

// Package history persists scored predictions in BadgerDB so past results
// can be reviewed after the fact.
//
// Entries are keyed by timestamp so listing newest-first is a reverse
// prefix scan, with a secondary id key for direct lookup.
package history
