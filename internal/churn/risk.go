// Churnscope - Customer Churn Prediction and Retention Analytics
// Copyright 2026 Churnscope Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/churnscope/churnscope

package churn

// RiskTier is a coarse bucketing of churn probability.
type RiskTier string

// Risk tiers in ascending severity.
const (
	RiskLow      RiskTier = "LOW"
	RiskModerate RiskTier = "MODERATE"
	RiskHigh     RiskTier = "HIGH"
)

// Tier thresholds. Both the predictor and the recommender derive their tier
// through TierFor, so the boundaries are defined exactly once. Boundaries
// are inclusive on the upper tier: probability 0.70 is HIGH, 0.40 is
// MODERATE.
const (
	HighRiskThreshold     = 0.70
	ModerateRiskThreshold = 0.40
)

// TierFor buckets a churn probability into a risk tier.
func TierFor(churnProbability float64) RiskTier {
	switch {
	case churnProbability >= HighRiskThreshold:
		return RiskHigh
	case churnProbability >= ModerateRiskThreshold:
		return RiskModerate
	default:
		return RiskLow
	}
}
