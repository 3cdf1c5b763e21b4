// Churnscope - Customer Churn Prediction and Retention Analytics
// Copyright 2026 Churnscope Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/churnscope/churnscope

package model

// Class indices for the binary churn problem.
const (
	ClassStay  = 0
	ClassChurn = 1
)

// Model kind identifiers as stored in the artifact bundle.
const (
	KindLogisticRegression = "logistic_regression"
	KindRandomForest       = "random_forest"
)

// Classifier is the minimal capability every model provides: map an
// encoded, scaled feature vector to a discrete class.
type Classifier interface {
	// Predict returns the predicted class index (0 = stay, 1 = churn).
	Predict(x []float64) int

	// Kind returns the model kind identifier.
	Kind() string

	// NumFeatures returns the feature count the model was fit on.
	NumFeatures() int
}

// ProbabilityEstimator is implemented by models that can produce a
// class-probability vector. Models lacking this capability degrade the
// predictor to using the discrete label as the probability.
type ProbabilityEstimator interface {
	// PredictProba returns per-class probabilities summing to 1.
	PredictProba(x []float64) []float64
}

// LinearModel is implemented by models with per-feature coefficients and an
// intercept, enabling coefficient-based attribution.
type LinearModel interface {
	// Coefficients returns the per-feature weights for the churn class.
	Coefficients() []float64

	// Intercept returns the bias term.
	Intercept() float64

	// RawScore returns the linear score (dot product plus intercept)
	// before the sigmoid link.
	RawScore(x []float64) float64
}

// TreeEnsemble is implemented by tree-ensemble models that expose their
// tree structure for Shapley-value attribution.
type TreeEnsemble interface {
	// Trees returns the fitted decision trees.
	Trees() []*Tree

	// NumClasses returns the number of target classes.
	NumClasses() int
}
