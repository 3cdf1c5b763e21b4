// Churnscope - Customer Churn Prediction and Retention Analytics
// Copyright 2026 Churnscope Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/churnscope/churnscope

// Package pipeline assembles the prediction stack from a serialized
// artifact bundle and exposes the three top-level operations: predict,
// explain, and full recommendation.
//
// The bundle is a single JSON document carrying the fitted classifier
// (discriminated by a "kind" field), the categorical encoders, the
// standard scaler, and the ordered feature-name list. Decoding validates
// shape agreement between the parts before any prediction runs.
package pipeline
