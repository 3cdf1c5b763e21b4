// Churnscope - Customer Churn Prediction and Retention Analytics
// Copyright 2026 Churnscope Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/churnscope/churnscope

// Package model defines the classifier capability interfaces and the two
// concrete model families the artifact bundle can carry.
//
// # Capability Interfaces
//
// Rather than inspecting a runtime type name on every call, downstream code
// asserts capabilities once when artifacts are loaded:
//
//   - Classifier: every model predicts a discrete class
//   - ProbabilityEstimator: models that produce class-probability vectors
//   - LinearModel: models exposing per-feature coefficients and an intercept
//   - TreeEnsemble: models exposing their decision-tree structure for
//     Shapley-value attribution
//
// # Implementations
//
// Logistic is a fitted logistic regression (coefficients, intercept,
// sigmoid probabilities). Forest is a fitted random forest whose trees are
// stored in the flat array layout scikit-learn serializes: per-node child
// indices, split feature, threshold, leaf class distribution, and cover
// (training sample weight), which is exactly what Tree SHAP needs.
package model
