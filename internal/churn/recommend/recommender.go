// Churnscope - Customer Churn Prediction and Retention Analytics
// Copyright 2026 Churnscope Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/churnscope/churnscope

// Package recommend maps a churn probability and raw customer attributes
// to a deduplicated, priority-ordered list of retention actions.
//
// Two static tables drive the output: a three-entry tier table keyed by
// risk tier, and a factor-rule table keyed by feature. The tier is derived
// through the same churn.TierFor function the predictor uses, so the two
// components can never disagree on tier boundaries.
//
// Action priority: actions for features among the explanation's top
// factors come first (preserving the top-factor order), then other
// triggered factor actions, then the tier's base list. The merged sequence
// is deduplicated first-occurrence-wins and capped at ActionCap for the
// primary display; the full deduplicated list is also returned.
package recommend

import (
	"fmt"
	"sort"

	"github.com/churnscope/churnscope/internal/churn"
)

// ActionCap is the fixed display cap for RankedActions.
const ActionCap = 5

// Recommend derives the full recommendation for one customer. topFactors
// may be nil when no explanation is available; factor actions then keep
// their rule-table order.
func Recommend(churnProbability float64, rec churn.CustomerRecord, topFactors []churn.FeatureAttribution) *churn.Recommendation {
	tier := churn.TierFor(churnProbability)
	plan := tierPlans[tier]

	insights := factorInsights(rec, topFactors)

	// Factor actions: top-factor ones first in top-factor order, the
	// rest in insight order.
	var topActions, otherActions []string
	for _, in := range insights {
		if in.IsTopFactor {
			topActions = append(topActions, in.Action)
		} else {
			otherActions = append(otherActions, in.Action)
		}
	}

	merged := make([]string, 0, len(topActions)+len(otherActions)+len(plan.Actions))
	merged = append(merged, topActions...)
	merged = append(merged, otherActions...)
	merged = append(merged, plan.Actions...)

	unique := dedupe(merged)
	ranked := unique
	if len(ranked) > ActionCap {
		ranked = ranked[:ActionCap]
	}

	return &churn.Recommendation{
		Summary:          summaryFor(tier, churnProbability),
		RiskTier:         tier,
		Urgency:          plan.Urgency,
		ChurnProbability: churnProbability,
		PrimaryAction:    plan.PrimaryAction,
		RankedActions:    ranked,
		FactorInsights:   insights,
		AllActions:       unique,
	}
}

// factorInsights evaluates every factor rule against the record. Insights
// for top factors sort first, ordered by their top-factor rank; the rest
// follow ordered by raw value descending (bigger deviations first).
func factorInsights(rec churn.CustomerRecord, topFactors []churn.FeatureAttribution) []churn.FactorInsight {
	rank := make(map[string]int, len(topFactors))
	for i, f := range topFactors {
		rank[f.Feature] = i
	}

	var insights []churn.FactorInsight
	for _, rule := range factorRules {
		v, ok := rec.NumericValue(rule.Feature)
		if !ok {
			// Rule does not fire when the record lacks the feature.
			continue
		}
		if !rule.Triggered(v) {
			continue
		}
		_, isTop := rank[rule.Feature]
		insights = append(insights, churn.FactorInsight{
			Feature:     rule.Feature,
			Value:       v,
			Reason:      rule.Reason,
			Action:      rule.Action,
			IsTopFactor: isTop,
		})
	}

	sort.SliceStable(insights, func(i, j int) bool {
		a, b := insights[i], insights[j]
		if a.IsTopFactor != b.IsTopFactor {
			return a.IsTopFactor
		}
		if a.IsTopFactor {
			return rank[a.Feature] < rank[b.Feature]
		}
		return a.Value > b.Value
	})
	return insights
}

// dedupe removes duplicates preserving first occurrence.
func dedupe(actions []string) []string {
	seen := make(map[string]struct{}, len(actions))
	out := make([]string, 0, len(actions))
	for _, a := range actions {
		if _, ok := seen[a]; ok {
			continue
		}
		seen[a] = struct{}{}
		out = append(out, a)
	}
	return out
}

// summaryFor renders the tier-specific summary with the probability as a
// whole percentage.
func summaryFor(tier churn.RiskTier, p float64) string {
	switch tier {
	case churn.RiskHigh:
		return fmt.Sprintf("ALERT: This customer has a %.0f%% probability of churning. Immediate action required!", p*100)
	case churn.RiskModerate:
		return fmt.Sprintf("CAUTION: This customer has a %.0f%% probability of churning. Proactive engagement recommended.", p*100)
	default:
		return fmt.Sprintf("OK: This customer has a low churn risk (%.0f%%). Continue standard engagement.", p*100)
	}
}
