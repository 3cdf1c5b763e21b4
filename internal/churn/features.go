// Churnscope - Customer Churn Prediction and Retention Analytics
// Copyright 2026 Churnscope Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/churnscope/churnscope

package churn

// FeatureMeta is the static display metadata for one feature, used to build
// natural-language explanation sentences.
type FeatureMeta struct {
	// DisplayName is the human-readable feature name.
	DisplayName string

	// Unit is the optional measurement unit appended to raw values.
	Unit string

	// Insight is a one-line description of how the feature relates to churn.
	Insight string
}

// featureMeta keys display metadata by feature identifier.
var featureMeta = map[string]FeatureMeta{
	FeatureAge: {
		DisplayName: "Age",
		Unit:        "years",
		Insight:     "Customer age affects engagement patterns",
	},
	FeatureGender: {
		DisplayName: "Gender",
		Insight:     "Gender influences subscription preferences",
	},
	FeatureSubscriptionType: {
		DisplayName: "Subscription Type",
		Insight:     "Subscription tier correlates with commitment level",
	},
	FeatureMonthlyCharges: {
		DisplayName: "Monthly Charges",
		Unit:        "$",
		Insight:     "Higher charges may affect retention",
	},
	FeatureTenureInMonths: {
		DisplayName: "Account Tenure",
		Unit:        "months",
		Insight:     "Longer tenure indicates customer loyalty",
	},
	FeatureLoginFrequency: {
		DisplayName: "Login Frequency",
		Unit:        "logins/month",
		Insight:     "Low login frequency suggests disengagement",
	},
	FeatureLastLoginDays: {
		DisplayName: "Days Since Last Login",
		Unit:        "days",
		Insight:     "Many days since last login indicates potential churn",
	},
	FeatureWatchTime: {
		DisplayName: "Watch Time",
		Unit:        "hours/month",
		Insight:     "Low watch time indicates reduced engagement",
	},
	FeaturePaymentFailures: {
		DisplayName: "Payment Failures",
		Unit:        "failures",
		Insight:     "Payment issues strongly predict churn",
	},
	FeatureCustomerSupportCalls: {
		DisplayName: "Support Calls",
		Unit:        "calls",
		Insight:     "Many support calls may indicate frustration",
	},
}

// MetaFor returns display metadata for the named feature. Unknown features
// fall back to the identifier itself as the display name so a model trained
// with extra features still renders.
func MetaFor(name string) FeatureMeta {
	if m, ok := featureMeta[name]; ok {
		return m
	}
	return FeatureMeta{DisplayName: name}
}
