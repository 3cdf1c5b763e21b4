// Churnscope - Customer Churn Prediction and Retention Analytics
// Copyright 2026 Churnscope Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/churnscope/churnscope

package churn

import (
	"errors"
	"strings"
	"testing"
)

func sampleRecord() CustomerRecord {
	return CustomerRecord{
		Age:                  25,
		Gender:               "Male",
		SubscriptionType:     "Basic",
		MonthlyCharges:       12.99,
		TenureInMonths:       2,
		LoginFrequency:       3,
		LastLoginDays:        45,
		WatchTime:            2.5,
		PaymentFailures:      2,
		CustomerSupportCalls: 4,
	}
}

func TestCustomerRecordNumericValue(t *testing.T) {
	rec := sampleRecord()

	tests := []struct {
		feature string
		want    float64
		ok      bool
	}{
		{FeatureAge, 25, true},
		{FeatureMonthlyCharges, 12.99, true},
		{FeatureTenureInMonths, 2, true},
		{FeatureLoginFrequency, 3, true},
		{FeatureLastLoginDays, 45, true},
		{FeatureWatchTime, 2.5, true},
		{FeaturePaymentFailures, 2, true},
		{FeatureCustomerSupportCalls, 4, true},
		{FeatureGender, 0, false},
		{FeatureSubscriptionType, 0, false},
		{"unknown_feature", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.feature, func(t *testing.T) {
			got, ok := rec.NumericValue(tt.feature)
			if ok != tt.ok {
				t.Fatalf("NumericValue(%q) ok = %v, want %v", tt.feature, ok, tt.ok)
			}
			if ok && got != tt.want {
				t.Errorf("NumericValue(%q) = %v, want %v", tt.feature, got, tt.want)
			}
		})
	}
}

func TestCustomerRecordDisplayValue(t *testing.T) {
	rec := sampleRecord()

	tests := []struct {
		feature string
		want    string
	}{
		{FeatureGender, "Male"},
		{FeatureSubscriptionType, "Basic"},
		{FeatureAge, "25"},
		{FeatureMonthlyCharges, "12.99"},
		{FeatureWatchTime, "2.5"},
		{"unknown_feature", ""},
	}

	for _, tt := range tests {
		if got := rec.DisplayValue(tt.feature); got != tt.want {
			t.Errorf("DisplayValue(%q) = %q, want %q", tt.feature, got, tt.want)
		}
	}
}

func TestValidationErrorMessage(t *testing.T) {
	err := NewValidationError("gender", "Other", "was not seen during training")
	if !strings.Contains(err.Error(), "gender") || !strings.Contains(err.Error(), "Other") {
		t.Errorf("unexpected message: %s", err.Error())
	}

	var ve *ValidationError
	if !errors.As(error(err), &ve) {
		t.Error("errors.As failed to match *ValidationError")
	}
}

func TestShapeMismatchErrorMessage(t *testing.T) {
	err := &ShapeMismatchError{Want: 10, Got: 7, Context: "encoded vector"}
	msg := err.Error()
	if !strings.Contains(msg, "10") || !strings.Contains(msg, "7") {
		t.Errorf("unexpected message: %s", msg)
	}
}

func TestMetaForFallback(t *testing.T) {
	m := MetaFor("brand_new_feature")
	if m.DisplayName != "brand_new_feature" {
		t.Errorf("MetaFor fallback display name = %q", m.DisplayName)
	}
	if m := MetaFor(FeaturePaymentFailures); m.DisplayName != "Payment Failures" || m.Unit != "failures" {
		t.Errorf("unexpected metadata for payment_failures: %+v", m)
	}
}
