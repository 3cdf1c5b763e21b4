// Churnscope - Customer Churn Prediction and Retention Analytics
// Copyright 2026 Churnscope Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/churnscope/churnscope

package preprocess

import "github.com/churnscope/churnscope/internal/churn"

// StandardScaler applies the zero-mean, unit-variance rescaling fit at
// training time: (x - mean) / scale per feature.
type StandardScaler struct {
	// Mean is the per-feature mean captured during fitting.
	Mean []float64 `json:"mean"`

	// Scale is the per-feature standard deviation captured during fitting.
	Scale []float64 `json:"scale"`
}

// NumFeatures returns the feature count the scaler was fit on.
func (s *StandardScaler) NumFeatures() int { return len(s.Mean) }

// Transform standardizes a raw vector. The input length must match the
// fitted feature count.
func (s *StandardScaler) Transform(raw []float64) ([]float64, error) {
	if len(raw) != len(s.Mean) || len(s.Mean) != len(s.Scale) {
		return nil, &churn.ShapeMismatchError{Want: len(s.Mean), Got: len(raw), Context: "scaler input"}
	}

	out := make([]float64, len(raw))
	for i, v := range raw {
		sd := s.Scale[i]
		if sd == 0 {
			// A zero-variance feature carries no signal; standardize to 0
			// the way scikit-learn's StandardScaler does.
			out[i] = 0
			continue
		}
		out[i] = (v - s.Mean[i]) / sd
	}
	return out, nil
}

// Inverse recovers the raw value of one feature from its scaled value.
func (s *StandardScaler) Inverse(i int, scaled float64) float64 {
	if i < 0 || i >= len(s.Mean) {
		return scaled
	}
	return scaled*s.Scale[i] + s.Mean[i]
}
