// Churnscope - Customer Churn Prediction and Retention Analytics
// Copyright 2026 Churnscope Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/churnscope/churnscope

package recommend

import "github.com/churnscope/churnscope/internal/churn"

// tierPlan is the fixed response for one risk tier.
type tierPlan struct {
	// Urgency is the tier's urgency label.
	Urgency string

	// PrimaryAction is the headline action.
	PrimaryAction string

	// Actions is the tier's base action list, appended after any
	// factor-specific actions.
	Actions []string
}

// tierPlans maps each risk tier to its static plan.
var tierPlans = map[churn.RiskTier]tierPlan{
	churn.RiskHigh: {
		Urgency:       "URGENT",
		PrimaryAction: "Immediate retention intervention required",
		Actions: []string{
			"Offer personalized discount (20-30% off)",
			"Assign dedicated account manager",
			"Send personalized re-engagement email",
			"Offer free premium features trial",
		},
	},
	churn.RiskModerate: {
		Urgency:       "MODERATE",
		PrimaryAction: "Proactive engagement recommended",
		Actions: []string{
			"Send re-engagement notification",
			"Offer limited-time discount (10-15% off)",
			"Highlight new features via email",
			"Invite to customer feedback survey",
		},
	},
	churn.RiskLow: {
		Urgency:       "LOW",
		PrimaryAction: "Standard customer maintenance",
		Actions: []string{
			"Continue regular engagement",
			"Include in loyalty rewards program",
			"Send monthly newsletter",
			"No immediate action required",
		},
	},
}

// factorRule maps one feature to a retention action, gated by a predicate
// on the raw (unscaled) value. A rule only evaluates when the record
// carries the feature; a missing key means the rule does not fire.
type factorRule struct {
	// Feature is the raw feature the predicate reads.
	Feature string

	// Triggered reports whether the value warrants the action.
	Triggered func(v float64) bool

	// Reason explains the trigger in business terms.
	Reason string

	// Action is the suggested intervention.
	Action string
}

// factorRules is an ordered list so rule evaluation is deterministic;
// relative order matters when several non-top-factor rules fire.
var factorRules = []factorRule{
	{
		Feature:   churn.FeatureLastLoginDays,
		Triggered: func(v float64) bool { return v > 14 },
		Reason:    "Customer has not logged in recently",
		Action:    `Send "We miss you" email with exclusive content`,
	},
	{
		Feature:   churn.FeatureLoginFrequency,
		Triggered: func(v float64) bool { return v < 5 },
		Reason:    "Low engagement - customer rarely logs in",
		Action:    "Recommend personalized content based on past preferences",
	},
	{
		Feature:   churn.FeatureWatchTime,
		Triggered: func(v float64) bool { return v < 10 },
		Reason:    "Low content consumption",
		Action:    "Send curated content recommendations to boost engagement",
	},
	{
		Feature:   churn.FeaturePaymentFailures,
		Triggered: func(v float64) bool { return v > 0 },
		Reason:    "Payment problems detected",
		Action:    "Reach out to resolve payment issues and offer alternative payment methods",
	},
	{
		Feature:   churn.FeatureCustomerSupportCalls,
		Triggered: func(v float64) bool { return v > 3 },
		Reason:    "Multiple support interactions indicate frustration",
		Action:    "Proactive outreach to resolve ongoing issues",
	},
	{
		Feature:   churn.FeatureTenureInMonths,
		Triggered: func(v float64) bool { return v < 6 },
		Reason:    "New customer - critical retention period",
		Action:    "Onboarding follow-up to ensure customer is getting value",
	},
	{
		Feature:   churn.FeatureMonthlyCharges,
		Triggered: func(v float64) bool { return v > 30 },
		Reason:    "High subscription cost may affect retention",
		Action:    "Highlight value proposition and premium benefits",
	},
}
