// Churnscope - Customer Churn Prediction and Retention Analytics
// Copyright 2026 Churnscope Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/churnscope/churnscope

package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestRecordPrediction(t *testing.T) {
	before := testutil.ToFloat64(PredictionsTotal.WithLabelValues("HIGH"))

	RecordPrediction("HIGH", "predict", 2*time.Millisecond)
	RecordPrediction("HIGH", "recommend", 5*time.Millisecond)

	after := testutil.ToFloat64(PredictionsTotal.WithLabelValues("HIGH"))
	if after-before != 2 {
		t.Errorf("predictions delta = %v, want 2", after-before)
	}
}

func TestRecordPredictionError(t *testing.T) {
	before := testutil.ToFloat64(PredictionErrors.WithLabelValues("validation"))

	RecordPredictionError("validation")

	after := testutil.ToFloat64(PredictionErrors.WithLabelValues("validation"))
	if after-before != 1 {
		t.Errorf("errors delta = %v, want 1", after-before)
	}
}

func TestRecordBatchRun(t *testing.T) {
	beforeRuns := testutil.ToFloat64(BatchRuns)
	beforeOK := testutil.ToFloat64(BatchRecords.WithLabelValues("succeeded"))
	beforeFail := testutil.ToFloat64(BatchRecords.WithLabelValues("failed"))

	RecordBatchRun(10, 8, 2, 120*time.Millisecond)

	if d := testutil.ToFloat64(BatchRuns) - beforeRuns; d != 1 {
		t.Errorf("runs delta = %v, want 1", d)
	}
	if d := testutil.ToFloat64(BatchRecords.WithLabelValues("succeeded")) - beforeOK; d != 8 {
		t.Errorf("succeeded delta = %v, want 8", d)
	}
	if d := testutil.ToFloat64(BatchRecords.WithLabelValues("failed")) - beforeFail; d != 2 {
		t.Errorf("failed delta = %v, want 2", d)
	}
}

func TestRecordAPIRequest(t *testing.T) {
	before := testutil.ToFloat64(APIRequestsTotal.WithLabelValues("POST", "/api/v1/predict", "200"))

	RecordAPIRequest("POST", "/api/v1/predict", "200", 15*time.Millisecond)

	after := testutil.ToFloat64(APIRequestsTotal.WithLabelValues("POST", "/api/v1/predict", "200"))
	if after-before != 1 {
		t.Errorf("requests delta = %v, want 1", after-before)
	}
}

func TestTrackActiveRequest(t *testing.T) {
	before := testutil.ToFloat64(APIActiveRequests)

	TrackActiveRequest(true)
	if got := testutil.ToFloat64(APIActiveRequests); got != before+1 {
		t.Errorf("active = %v, want %v", got, before+1)
	}
	TrackActiveRequest(false)
	if got := testutil.ToFloat64(APIActiveRequests); got != before {
		t.Errorf("active = %v, want %v", got, before)
	}
}
