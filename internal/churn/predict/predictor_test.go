// Churnscope - Customer Churn Prediction and Retention Analytics
// Copyright 2026 Churnscope Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/churnscope/churnscope

package predict

import (
	"errors"
	"testing"

	"github.com/churnscope/churnscope/internal/churn"
	"github.com/churnscope/churnscope/internal/churn/model"
	"github.com/churnscope/churnscope/internal/churn/preprocess"
)

// labelOnlyClassifier predicts a fixed class and offers no probabilities.
type labelOnlyClassifier struct {
	label int
}

func (c labelOnlyClassifier) Predict(x []float64) int { return c.label }
func (c labelOnlyClassifier) Kind() string            { return "label_only" }
func (c labelOnlyClassifier) NumFeatures() int        { return 10 }

func testEncoders() preprocess.Encoders {
	return preprocess.Encoders{
		churn.FeatureGender:           preprocess.NewCategoryEncoder(churn.FeatureGender, []string{"Female", "Male"}),
		churn.FeatureSubscriptionType: preprocess.NewCategoryEncoder(churn.FeatureSubscriptionType, []string{"Basic", "Premium", "Standard"}),
	}
}

func testFeatureOrder() []string {
	return []string{
		churn.FeatureAge,
		churn.FeatureGender,
		churn.FeatureSubscriptionType,
		churn.FeatureMonthlyCharges,
		churn.FeatureTenureInMonths,
		churn.FeatureLoginFrequency,
		churn.FeatureLastLoginDays,
		churn.FeatureWatchTime,
		churn.FeaturePaymentFailures,
		churn.FeatureCustomerSupportCalls,
	}
}

func testScaler() *preprocess.StandardScaler {
	return &preprocess.StandardScaler{
		Mean:  []float64{40, 0.5, 1.0, 20, 24, 14, 10, 20, 0.3, 1.5},
		Scale: []float64{15, 0.5, 0.8, 8, 16, 8, 10, 12, 0.6, 1.5},
	}
}

// testModel is a logistic regression with plausible churn-direction
// weights over the standard feature order.
func testModel() *model.Logistic {
	return &model.Logistic{
		Coef: []float64{-0.2, 0.05, -0.3, 0.15, -0.6, -0.5, 0.9, -0.4, 1.0, 0.45},
		Bias: -0.8,
	}
}

func highRiskRecord() churn.CustomerRecord {
	return churn.CustomerRecord{
		Age: 25, Gender: "Male", SubscriptionType: "Basic",
		MonthlyCharges: 12.99, TenureInMonths: 2, LoginFrequency: 3,
		LastLoginDays: 45, WatchTime: 2.5, PaymentFailures: 2,
		CustomerSupportCalls: 4,
	}
}

func lowRiskRecord() churn.CustomerRecord {
	return churn.CustomerRecord{
		Age: 45, Gender: "Female", SubscriptionType: "Premium",
		MonthlyCharges: 29.99, TenureInMonths: 48, LoginFrequency: 25,
		LastLoginDays: 1, WatchTime: 45.0, PaymentFailures: 0,
		CustomerSupportCalls: 1,
	}
}

func TestPredictHighRisk(t *testing.T) {
	p := New(testModel(), testEncoders(), testScaler(), testFeatureOrder())

	res, err := p.Predict(highRiskRecord())
	if err != nil {
		t.Fatalf("Predict: %v", err)
	}
	if res.RiskTier != churn.RiskHigh {
		t.Errorf("risk tier = %v, want HIGH (p=%v)", res.RiskTier, res.ChurnProbability)
	}
	if res.PredictedLabel != churn.LabelChurn {
		t.Errorf("label = %q, want Churn", res.PredictedLabel)
	}
	if res.ChurnProbability < churn.HighRiskThreshold {
		t.Errorf("churn probability = %v, want >= %v", res.ChurnProbability, churn.HighRiskThreshold)
	}
}

func TestPredictLowRisk(t *testing.T) {
	p := New(testModel(), testEncoders(), testScaler(), testFeatureOrder())

	res, err := p.Predict(lowRiskRecord())
	if err != nil {
		t.Fatalf("Predict: %v", err)
	}
	if res.RiskTier != churn.RiskLow {
		t.Errorf("risk tier = %v, want LOW (p=%v)", res.RiskTier, res.ChurnProbability)
	}
	if res.PredictedLabel != churn.LabelStay {
		t.Errorf("label = %q, want Stay", res.PredictedLabel)
	}
}

func TestPredictStayProbabilityComplement(t *testing.T) {
	p := New(testModel(), testEncoders(), testScaler(), testFeatureOrder())

	res, err := p.Predict(highRiskRecord())
	if err != nil {
		t.Fatalf("Predict: %v", err)
	}
	if got := res.ChurnProbability + res.StayProbability; got != 1 {
		t.Errorf("probabilities sum to %v", got)
	}
}

func TestPredictDeterminism(t *testing.T) {
	p := New(testModel(), testEncoders(), testScaler(), testFeatureOrder())
	rec := highRiskRecord()

	first, err := p.Predict(rec)
	if err != nil {
		t.Fatalf("Predict: %v", err)
	}
	for i := 0; i < 50; i++ {
		res, err := p.Predict(rec)
		if err != nil {
			t.Fatalf("Predict: %v", err)
		}
		if res.ChurnProbability != first.ChurnProbability {
			t.Fatalf("probability drifted on call %d: %v vs %v", i, res.ChurnProbability, first.ChurnProbability)
		}
	}
}

func TestPredictLabelFallbackWithoutProba(t *testing.T) {
	p := New(labelOnlyClassifier{label: model.ClassChurn}, testEncoders(), testScaler(), testFeatureOrder())

	res, err := p.Predict(highRiskRecord())
	if err != nil {
		t.Fatalf("Predict: %v", err)
	}
	// The discrete label doubles as the probability in the degraded path.
	if res.ChurnProbability != 1 {
		t.Errorf("fallback probability = %v, want 1", res.ChurnProbability)
	}
	if res.RiskTier != churn.RiskHigh {
		t.Errorf("fallback tier = %v, want HIGH", res.RiskTier)
	}

	p = New(labelOnlyClassifier{label: model.ClassStay}, testEncoders(), testScaler(), testFeatureOrder())
	res, err = p.Predict(highRiskRecord())
	if err != nil {
		t.Fatalf("Predict: %v", err)
	}
	if res.ChurnProbability != 0 || res.RiskTier != churn.RiskLow {
		t.Errorf("fallback stay = %v/%v", res.ChurnProbability, res.RiskTier)
	}
}

func TestPredictUnknownCategory(t *testing.T) {
	p := New(testModel(), testEncoders(), testScaler(), testFeatureOrder())

	rec := highRiskRecord()
	rec.Gender = "Other"
	_, err := p.Predict(rec)
	var ve *churn.ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected *churn.ValidationError, got %v", err)
	}
}
