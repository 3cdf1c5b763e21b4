// Churnscope - Customer Churn Prediction and Retention Analytics
// Copyright 2026 Churnscope Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/churnscope/churnscope

package churn

import "fmt"

// Canonical feature identifiers. The vector layout used at prediction time
// comes from the artifact bundle's feature-name list, not from these
// constants; they exist so call sites never spell a feature name inline.
const (
	FeatureAge                  = "age"
	FeatureGender               = "gender"
	FeatureSubscriptionType     = "subscription_type"
	FeatureMonthlyCharges       = "monthly_charges"
	FeatureTenureInMonths       = "tenure_in_months"
	FeatureLoginFrequency       = "login_frequency"
	FeatureLastLoginDays        = "last_login_days"
	FeatureWatchTime            = "watch_time"
	FeaturePaymentFailures      = "payment_failures"
	FeatureCustomerSupportCalls = "customer_support_calls"
)

// Prediction labels for the binary churn classifier.
const (
	LabelStay  = "Stay"
	LabelChurn = "Churn"
)

// CustomerRecord holds the raw attributes of one customer. It is created by
// the caller, treated as immutable by the pipeline, and exists only for the
// duration of one prediction call.
type CustomerRecord struct {
	// Age is the customer age in years.
	Age int `json:"age"`

	// Gender is a categorical attribute (the category set is fixed by the
	// trained encoder, typically Male|Female).
	Gender string `json:"gender"`

	// SubscriptionType is the plan tier (Basic|Standard|Premium).
	SubscriptionType string `json:"subscription_type"`

	// MonthlyCharges is the subscription price in dollars.
	MonthlyCharges float64 `json:"monthly_charges"`

	// TenureInMonths is how long the customer has been subscribed.
	TenureInMonths int `json:"tenure_in_months"`

	// LoginFrequency is the number of logins per month.
	LoginFrequency int `json:"login_frequency"`

	// LastLoginDays is the number of days since the last login.
	LastLoginDays int `json:"last_login_days"`

	// WatchTime is the content consumption in hours per month.
	WatchTime float64 `json:"watch_time"`

	// PaymentFailures is the count of failed payment attempts.
	PaymentFailures int `json:"payment_failures"`

	// CustomerSupportCalls is the count of support interactions.
	CustomerSupportCalls int `json:"customer_support_calls"`
}

// NumericValue returns the numeric value of the named feature. The second
// return is false for unknown names and for categorical features, which
// have no numeric raw value before encoding.
func (r CustomerRecord) NumericValue(name string) (float64, bool) {
	switch name {
	case FeatureAge:
		return float64(r.Age), true
	case FeatureMonthlyCharges:
		return r.MonthlyCharges, true
	case FeatureTenureInMonths:
		return float64(r.TenureInMonths), true
	case FeatureLoginFrequency:
		return float64(r.LoginFrequency), true
	case FeatureLastLoginDays:
		return float64(r.LastLoginDays), true
	case FeatureWatchTime:
		return r.WatchTime, true
	case FeaturePaymentFailures:
		return float64(r.PaymentFailures), true
	case FeatureCustomerSupportCalls:
		return float64(r.CustomerSupportCalls), true
	default:
		return 0, false
	}
}

// CategoricalValue returns the label of the named categorical feature.
func (r CustomerRecord) CategoricalValue(name string) (string, bool) {
	switch name {
	case FeatureGender:
		return r.Gender, true
	case FeatureSubscriptionType:
		return r.SubscriptionType, true
	default:
		return "", false
	}
}

// DisplayValue renders the raw value of the named feature for narratives.
func (r CustomerRecord) DisplayValue(name string) string {
	if label, ok := r.CategoricalValue(name); ok {
		return label
	}
	v, ok := r.NumericValue(name)
	if !ok {
		return ""
	}
	if v == float64(int64(v)) {
		return fmt.Sprintf("%d", int64(v))
	}
	return fmt.Sprintf("%g", v)
}

// PredictionResult is the output of one churn prediction. Created fresh per
// call and never mutated.
type PredictionResult struct {
	// Prediction is the discrete class: 0 = stay, 1 = churn.
	Prediction int `json:"prediction"`

	// PredictedLabel is the human-readable class (Stay or Churn).
	PredictedLabel string `json:"prediction_label"`

	// ChurnProbability is the probability mass assigned to the churn class.
	ChurnProbability float64 `json:"churn_probability"`

	// StayProbability is 1 - ChurnProbability.
	StayProbability float64 `json:"stay_probability"`

	// RiskTier buckets ChurnProbability via TierFor.
	RiskTier RiskTier `json:"risk_level"`
}

// Direction of a feature's influence on churn risk.
const (
	DirectionIncreases = "increases"
	DirectionDecreases = "decreases"
)

// FeatureAttribution is the portion of a prediction explained by one input
// feature, signed by direction of influence.
type FeatureAttribution struct {
	// Feature is the feature identifier.
	Feature string `json:"feature"`

	// DisplayName is the human-readable feature name.
	DisplayName string `json:"display_name"`

	// Contribution is the signed contribution to the churn score.
	Contribution float64 `json:"signed_contribution"`

	// AbsContribution is the magnitude used for ranking.
	AbsContribution float64 `json:"abs_contribution"`

	// Direction is "increases" or "decreases".
	Direction string `json:"direction"`

	// RawValue is the original, unscaled value for display.
	RawValue string `json:"value"`

	// Narrative is the generated natural-language statement.
	Narrative string `json:"explanation"`
}

// ExplanationResult decomposes a prediction into per-feature contributions.
//
// Additive decomposition contract: the sum of all signed contributions plus
// BaseValue reproduces the model output that was explained (the raw linear
// score for coefficient-based models, the churn-class probability for tree
// ensembles), up to the explainer's own approximation error.
type ExplanationResult struct {
	// AllFeatures is sorted descending by AbsContribution; ties preserve
	// the original feature order.
	AllFeatures []FeatureAttribution `json:"all_features"`

	// TopFactors is the first three entries of AllFeatures.
	TopFactors []FeatureAttribution `json:"top_factors"`

	// Narratives summarizes TopFactors, one sentence each.
	Narratives []string `json:"explanations"`

	// BaseValue is the explainer's baseline before adding contributions.
	BaseValue float64 `json:"base_value"`

	// Degraded is true when the low-fidelity fallback attribution was used
	// because the model exposes neither coefficients nor tree structure.
	Degraded bool `json:"degraded,omitempty"`
}

// FactorInsight is one triggered factor rule with its justification.
type FactorInsight struct {
	// Feature is the feature whose rule fired.
	Feature string `json:"feature"`

	// Value is the raw value that satisfied the rule's predicate.
	Value float64 `json:"value"`

	// Reason explains why the rule fired.
	Reason string `json:"reason"`

	// Action is the suggested business action.
	Action string `json:"action"`

	// IsTopFactor is true when the feature is among the explanation's
	// top contributing factors.
	IsTopFactor bool `json:"is_top_factor"`
}

// Recommendation is a prioritized set of retention actions derived from a
// churn probability and the customer's raw attributes.
type Recommendation struct {
	// Summary is a tier-specific sentence embedding the probability.
	Summary string `json:"summary"`

	// RiskTier matches the predictor's tier for the same probability.
	RiskTier RiskTier `json:"risk_level"`

	// Urgency is the tier's urgency label.
	Urgency string `json:"urgency"`

	// ChurnProbability is the probability the recommendation is based on.
	ChurnProbability float64 `json:"churn_probability"`

	// PrimaryAction is the tier's headline action.
	PrimaryAction string `json:"primary_action"`

	// RankedActions is the deduplicated action list capped for display:
	// top-factor actions first, other triggered factor actions, then the
	// tier's base actions.
	RankedActions []string `json:"recommended_actions"`

	// FactorInsights lists every factor rule that fired.
	FactorInsights []FactorInsight `json:"factor_insights"`

	// AllActions is the full deduplicated action list without the cap.
	AllActions []string `json:"all_suggested_actions"`
}
