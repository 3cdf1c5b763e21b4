// Churnscope - Customer Churn Prediction and Retention Analytics
// Copyright 2026 Churnscope Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/churnscope/churnscope

// Package churn defines the domain model shared by the prediction pipeline.
//
// # Data Flow
//
// A single prediction is a one-way pass with no feedback loop:
//
//	CustomerRecord -> encoded feature vector -> PredictionResult
//	              -> ExplanationResult (signed per-feature attributions)
//	              -> Recommendation (prioritized retention actions)
//
// Every call is independent and stateless; the only shared state is the
// read-only bundle of trained model artifacts loaded once at process start.
//
// # Risk Tiers
//
// Churn probability is bucketed into three tiers by TierFor. The predictor
// and the recommender both call TierFor so their tiers can never disagree;
// the thresholds live here and nowhere else.
//
// # Errors
//
// The package defines the error taxonomy used across the pipeline:
//
//   - ValidationError: malformed or out-of-domain input, surfaced to the
//     caller and never silently defaulted
//   - ErrModelNotLoaded: pipeline invoked before artifacts are available
//   - ShapeMismatchError: feature-order length and vector length disagree,
//     indicating a packaging bug in the artifacts rather than bad input
package churn
