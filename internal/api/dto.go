// Churnscope - Customer Churn Prediction and Retention Analytics
// Copyright 2026 Churnscope Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/churnscope/churnscope

package api

import (
	"github.com/go-playground/validator/v10"

	"github.com/churnscope/churnscope/internal/churn"
)

// validate is the shared validator instance. Validators are safe for
// concurrent use and cache struct metadata, so one instance serves all
// handlers.
var validate = validator.New(validator.WithRequiredStructEnabled())

// recordPayload is the wire form of a customer record. Categorical values
// are validated against the trained encoders inside the pipeline, not
// here; the tags only reject structurally impossible input.
type recordPayload struct {
	Age                  int     `json:"age" validate:"gte=0,lte=130"`
	Gender               string  `json:"gender" validate:"required"`
	SubscriptionType     string  `json:"subscription_type" validate:"required"`
	MonthlyCharges       float64 `json:"monthly_charges" validate:"gte=0"`
	TenureInMonths       int     `json:"tenure_in_months" validate:"gte=0"`
	LoginFrequency       int     `json:"login_frequency" validate:"gte=0"`
	LastLoginDays        int     `json:"last_login_days" validate:"gte=0"`
	WatchTime            float64 `json:"watch_time" validate:"gte=0"`
	PaymentFailures      int     `json:"payment_failures" validate:"gte=0"`
	CustomerSupportCalls int     `json:"customer_support_calls" validate:"gte=0"`
}

func (p recordPayload) toRecord() churn.CustomerRecord {
	return churn.CustomerRecord{
		Age:                  p.Age,
		Gender:               p.Gender,
		SubscriptionType:     p.SubscriptionType,
		MonthlyCharges:       p.MonthlyCharges,
		TenureInMonths:       p.TenureInMonths,
		LoginFrequency:       p.LoginFrequency,
		LastLoginDays:        p.LastLoginDays,
		WatchTime:            p.WatchTime,
		PaymentFailures:      p.PaymentFailures,
		CustomerSupportCalls: p.CustomerSupportCalls,
	}
}

// batchRequest carries the records for one batch scoring run.
type batchRequest struct {
	Records []recordPayload `json:"records" validate:"required,min=1,dive"`
}

// explainResponse pairs a prediction with its attribution.
type explainResponse struct {
	Prediction  *churn.PredictionResult  `json:"prediction"`
	Explanation *churn.ExplanationResult `json:"explanation"`
}

// recommendResponse is the full scoring chain for one record.
type recommendResponse struct {
	Prediction     *churn.PredictionResult  `json:"prediction"`
	Explanation    *churn.ExplanationResult `json:"explanation"`
	Recommendation *churn.Recommendation    `json:"recommendation"`
}

// healthResponse reports service health.
type healthResponse struct {
	Status          string `json:"status"`
	ModelLoaded     bool   `json:"model_loaded"`
	ExplainStrategy string `json:"explain_strategy,omitempty"`
}
