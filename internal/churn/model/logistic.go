// Churnscope - Customer Churn Prediction and Retention Analytics
// Copyright 2026 Churnscope Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/churnscope/churnscope

package model

import "math"

// Logistic is a fitted binary logistic regression. The coefficient vector
// and intercept are for the churn class; probability comes from the
// standard sigmoid link.
type Logistic struct {
	// Coef is the per-feature weight vector.
	Coef []float64 `json:"coefficients"`

	// Bias is the intercept term.
	Bias float64 `json:"intercept"`
}

// Kind returns the model kind identifier.
func (m *Logistic) Kind() string { return KindLogisticRegression }

// NumFeatures returns the feature count the model was fit on.
func (m *Logistic) NumFeatures() int { return len(m.Coef) }

// RawScore returns the linear score before the sigmoid link.
func (m *Logistic) RawScore(x []float64) float64 {
	s := m.Bias
	n := len(m.Coef)
	if len(x) < n {
		n = len(x)
	}
	for i := 0; i < n; i++ {
		s += m.Coef[i] * x[i]
	}
	return s
}

// Predict returns 1 (churn) when the churn probability is at least 0.5.
func (m *Logistic) Predict(x []float64) int {
	if m.RawScore(x) >= 0 {
		return ClassChurn
	}
	return ClassStay
}

// PredictProba returns [P(stay), P(churn)] via the sigmoid link.
func (m *Logistic) PredictProba(x []float64) []float64 {
	p := sigmoid(m.RawScore(x))
	return []float64{1 - p, p}
}

// Coefficients returns the per-feature weights for the churn class.
func (m *Logistic) Coefficients() []float64 {
	return append([]float64(nil), m.Coef...)
}

// Intercept returns the bias term.
func (m *Logistic) Intercept() float64 { return m.Bias }

// sigmoid is the logistic link function, guarded against overflow for
// large negative scores.
func sigmoid(z float64) float64 {
	if z >= 0 {
		return 1 / (1 + math.Exp(-z))
	}
	e := math.Exp(z)
	return e / (1 + e)
}

// Interface compliance.
var (
	_ Classifier           = (*Logistic)(nil)
	_ ProbabilityEstimator = (*Logistic)(nil)
	_ LinearModel          = (*Logistic)(nil)
)
