// Churnscope - Customer Churn Prediction and Retention Analytics
// Copyright 2026 Churnscope Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/churnscope/churnscope

package explain

import "github.com/churnscope/churnscope/internal/churn/model"

// Strategy computes signed per-feature contributions for one encoded
// vector. Implementations are stateless and safe for concurrent use.
type Strategy interface {
	// Name identifies the attribution method.
	Name() string

	// Attribute returns one signed contribution per feature and the base
	// value the contributions are measured against.
	Attribute(encoded []float64) (contributions []float64, baseValue float64)

	// Degraded reports whether this is the low-fidelity fallback.
	Degraded() bool
}

// NewStrategy selects the attribution strategy for a classifier based on
// the capabilities it exposes. Called once at artifact load time.
func NewStrategy(c model.Classifier) Strategy {
	if lm, ok := c.(model.LinearModel); ok {
		return &linearStrategy{model: lm}
	}
	if te, ok := c.(model.TreeEnsemble); ok {
		return &treeStrategy{ensemble: te}
	}
	return &fallbackStrategy{}
}

// linearStrategy attributes via coefficient * encoded value, the exact
// additive decomposition of a linear score.
type linearStrategy struct {
	model model.LinearModel
}

func (s *linearStrategy) Name() string { return "coefficients" }

func (s *linearStrategy) Degraded() bool { return false }

func (s *linearStrategy) Attribute(encoded []float64) ([]float64, float64) {
	coef := s.model.Coefficients()
	out := make([]float64, len(encoded))
	for i := range encoded {
		if i < len(coef) {
			out[i] = coef[i] * encoded[i]
		}
	}
	return out, s.model.Intercept()
}

// treeStrategy attributes via Tree SHAP over the ensemble, averaging the
// per-tree Shapley values and baselines for the churn class.
type treeStrategy struct {
	ensemble model.TreeEnsemble
}

func (s *treeStrategy) Name() string { return "tree_shap" }

func (s *treeStrategy) Degraded() bool { return false }

func (s *treeStrategy) Attribute(encoded []float64) ([]float64, float64) {
	trees := s.ensemble.Trees()
	out := make([]float64, len(encoded))
	if len(trees) == 0 {
		return out, 0
	}

	var base float64
	for _, t := range trees {
		phi := treeShap(t, encoded, model.ClassChurn)
		for i := range out {
			out[i] += phi[i]
		}
		base += t.ExpectedValue(model.ClassChurn)
	}

	inv := 1 / float64(len(trees))
	for i := range out {
		out[i] *= inv
	}
	return out, base * inv
}

// fallbackStrategy treats the encoded values themselves as
// pseudo-contributions. Low fidelity: it reflects how unusual each feature
// is, not its marginal effect on the prediction.
type fallbackStrategy struct{}

func (s *fallbackStrategy) Name() string { return "raw_values" }

func (s *fallbackStrategy) Degraded() bool { return true }

func (s *fallbackStrategy) Attribute(encoded []float64) ([]float64, float64) {
	return append([]float64(nil), encoded...), fallbackBaseValue
}

// fallbackBaseValue is the neutral baseline reported by the degraded
// strategy, where no additive contract holds.
const fallbackBaseValue = 0.5
