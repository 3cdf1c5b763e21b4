// Churnscope - Customer Churn Prediction and Retention Analytics
// Copyright 2026 Churnscope Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/churnscope/churnscope

// Package explain decomposes a churn prediction into signed per-feature
// contributions and renders them as natural-language statements.
//
// # Attribution Strategies
//
// The strategy is selected once when artifacts are loaded, based on the
// capabilities the model exposes, instead of re-inspecting the model type
// on every call:
//
//   - LinearModel: contribution[i] = coefficient[i] * encoded[i], with the
//     intercept as base value. The contributions sum exactly to the model's
//     raw linear score.
//   - TreeEnsemble: exact Shapley values for the churn class computed with
//     the polynomial-time Tree SHAP algorithm (Lundberg, Erion & Lee 2018,
//     Algorithm 2), averaged over the ensemble. The contributions plus the
//     cover-weighted baseline expectation sum exactly to the predicted
//     churn probability.
//   - Anything else: the raw encoded values become pseudo-contributions.
//     This is a low-fidelity degraded mode and the result is tagged as
//     such rather than presented with the same confidence.
//
// # Ranking
//
// Attributions are sorted by absolute contribution descending with a
// stable sort, so ties preserve the original feature order. The first
// three entries are the top factors.
package explain
