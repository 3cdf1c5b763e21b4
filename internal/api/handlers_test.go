// Churnscope - Customer Churn Prediction and Retention Analytics
// Copyright 2026 Churnscope Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/churnscope/churnscope

package api

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/goccy/go-json"

	"github.com/churnscope/churnscope/internal/batch"
	"github.com/churnscope/churnscope/internal/churn"
	"github.com/churnscope/churnscope/internal/churn/pipeline"
	"github.com/churnscope/churnscope/internal/history"
)

const testBundle = `{
  "model": {
    "kind": "logistic_regression",
    "coefficients": [-0.2, 0.05, -0.3, 0.15, -0.6, -0.5, 0.9, -0.4, 1.0, 0.45],
    "intercept": -0.8
  },
  "encoders": {
    "gender": {"classes": ["Female", "Male"]},
    "subscription_type": {"classes": ["Basic", "Premium", "Standard"]}
  },
  "scaler": {
    "mean":  [40, 0.5, 1.0, 20, 24, 14, 10, 20, 0.3, 1.5],
    "scale": [15, 0.5, 0.8, 8, 16, 8, 10, 12, 0.6, 1.5]
  },
  "feature_names": [
    "age", "gender", "subscription_type", "monthly_charges",
    "tenure_in_months", "login_frequency", "last_login_days",
    "watch_time", "payment_failures", "customer_support_calls"
  ]
}`

const highRiskBody = `{
  "age": 25, "gender": "Male", "subscription_type": "Basic",
  "monthly_charges": 12.99, "tenure_in_months": 2, "login_frequency": 3,
  "last_login_days": 45, "watch_time": 2.5, "payment_failures": 2,
  "customer_support_calls": 4
}`

func testPipeline(t *testing.T) *pipeline.Pipeline {
	t.Helper()
	a, err := pipeline.DecodeArtifacts(strings.NewReader(testBundle))
	if err != nil {
		t.Fatalf("DecodeArtifacts: %v", err)
	}
	return pipeline.New(a)
}

func testStore(t *testing.T) *history.Store {
	t.Helper()
	opts := badger.DefaultOptions(t.TempDir())
	opts.Logger = nil
	db, err := badger.Open(opts)
	if err != nil {
		t.Fatalf("badger.Open: %v", err)
	}
	t.Cleanup(func() {
		if err := db.Close(); err != nil {
			t.Errorf("close badger: %v", err)
		}
	})
	return history.NewStore(db)
}

func testServer(t *testing.T, pipe *pipeline.Pipeline, store *history.Store) http.Handler {
	t.Helper()
	h := NewHandler(HandlerConfig{
		Pipeline:        pipe,
		Store:           store,
		Processor:       batch.NewProcessor(pipe, batch.WithWorkers(2)),
		HistoryLimit:    100,
		MaxBatchRecords: 5,
	})
	return NewRouter(h, MiddlewareConfig{})
}

func doJSON(t *testing.T, srv http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var rd *strings.Reader
	if body == "" {
		rd = strings.NewReader("")
	} else {
		rd = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, rd)
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	srv.ServeHTTP(rr, req)
	return rr
}

func decodeBody(t *testing.T, rr *httptest.ResponseRecorder, dst interface{}) {
	t.Helper()
	if err := json.Unmarshal(rr.Body.Bytes(), dst); err != nil {
		t.Fatalf("decode response: %v\nbody: %s", err, rr.Body.String())
	}
}

func TestPredictEndpoint(t *testing.T) {
	srv := testServer(t, testPipeline(t), nil)

	rr := doJSON(t, srv, http.MethodPost, "/api/v1/predict", highRiskBody)
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200\nbody: %s", rr.Code, rr.Body.String())
	}
	if got := rr.Header().Get("X-Request-ID"); got == "" {
		t.Error("missing X-Request-ID header")
	}

	var pred churn.PredictionResult
	decodeBody(t, rr, &pred)
	if pred.RiskTier != churn.RiskHigh {
		t.Errorf("risk tier = %s, want %s", pred.RiskTier, churn.RiskHigh)
	}
	if pred.ChurnProbability < churn.HighRiskThreshold {
		t.Errorf("churn probability = %.3f, below the high tier boundary", pred.ChurnProbability)
	}
}

func TestPredictMalformedJSON(t *testing.T) {
	srv := testServer(t, testPipeline(t), nil)

	rr := doJSON(t, srv, http.MethodPost, "/api/v1/predict", `{"age": `)
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rr.Code)
	}
	var resp errorResponse
	decodeBody(t, rr, &resp)
	if resp.Error.Code != "malformed_request" {
		t.Errorf("error code = %q, want malformed_request", resp.Error.Code)
	}
}

func TestPredictValidationFailure(t *testing.T) {
	srv := testServer(t, testPipeline(t), nil)

	// Negative age fails struct validation before the pipeline runs.
	body := strings.Replace(highRiskBody, `"age": 25`, `"age": -3`, 1)
	rr := doJSON(t, srv, http.MethodPost, "/api/v1/predict", body)
	if rr.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d, want 422\nbody: %s", rr.Code, rr.Body.String())
	}
}

func TestPredictUnknownCategory(t *testing.T) {
	srv := testServer(t, testPipeline(t), nil)

	body := strings.Replace(highRiskBody, `"gender": "Male"`, `"gender": "Other"`, 1)
	rr := doJSON(t, srv, http.MethodPost, "/api/v1/predict", body)
	if rr.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d, want 422\nbody: %s", rr.Code, rr.Body.String())
	}
	var resp errorResponse
	decodeBody(t, rr, &resp)
	if resp.Error.Code != "validation_failed" {
		t.Errorf("error code = %q, want validation_failed", resp.Error.Code)
	}
}

func TestPredictModelNotLoaded(t *testing.T) {
	srv := testServer(t, pipeline.New(nil), nil)

	rr := doJSON(t, srv, http.MethodPost, "/api/v1/predict", highRiskBody)
	if rr.Code != http.StatusServiceUnavailable {
		t.Fatalf("status = %d, want 503", rr.Code)
	}
}

func TestExplainEndpoint(t *testing.T) {
	srv := testServer(t, testPipeline(t), nil)

	rr := doJSON(t, srv, http.MethodPost, "/api/v1/explain", highRiskBody)
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200\nbody: %s", rr.Code, rr.Body.String())
	}

	var resp explainResponse
	decodeBody(t, rr, &resp)
	if resp.Prediction == nil || resp.Explanation == nil {
		t.Fatal("expected both prediction and explanation")
	}
	if len(resp.Explanation.TopFactors) == 0 {
		t.Error("expected top factors in explanation")
	}
	if resp.Explanation.Degraded {
		t.Error("linear model explanation should not be degraded")
	}
}

func TestRecommendEndpoint(t *testing.T) {
	srv := testServer(t, testPipeline(t), nil)

	rr := doJSON(t, srv, http.MethodPost, "/api/v1/recommend", highRiskBody)
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200\nbody: %s", rr.Code, rr.Body.String())
	}

	var resp recommendResponse
	decodeBody(t, rr, &resp)
	if resp.Recommendation == nil {
		t.Fatal("expected a recommendation")
	}
	if resp.Recommendation.RiskTier != resp.Prediction.RiskTier {
		t.Errorf("recommendation tier %s disagrees with prediction tier %s",
			resp.Recommendation.RiskTier, resp.Prediction.RiskTier)
	}
}

func TestRecommendPlainTextReport(t *testing.T) {
	srv := testServer(t, testPipeline(t), nil)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/recommend", strings.NewReader(highRiskBody))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "text/plain")
	rr := httptest.NewRecorder()
	srv.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200\nbody: %s", rr.Code, rr.Body.String())
	}
	if ct := rr.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/plain") {
		t.Errorf("content type = %q, want text/plain", ct)
	}
	if !strings.Contains(rr.Body.String(), string(churn.RiskHigh)) {
		t.Errorf("report does not mention the %s tier:\n%s", churn.RiskHigh, rr.Body.String())
	}
}

func TestBatchEndpoint(t *testing.T) {
	srv := testServer(t, testPipeline(t), nil)

	body := `{"records": [` + highRiskBody + `,` + highRiskBody + `]}`
	rr := doJSON(t, srv, http.MethodPost, "/api/v1/batch", body)
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200\nbody: %s", rr.Code, rr.Body.String())
	}

	var result batch.Result
	decodeBody(t, rr, &result)
	if result.Summary.Total != 2 || result.Summary.Succeeded != 2 {
		t.Errorf("summary = %+v, want 2 total, 2 succeeded", result.Summary)
	}
}

func TestBatchCSVUpload(t *testing.T) {
	srv := testServer(t, testPipeline(t), nil)

	csvBody := "age,gender,subscription_type,monthly_charges,tenure_in_months," +
		"login_frequency,last_login_days,watch_time,payment_failures,customer_support_calls\n" +
		"25,Male,Basic,12.99,2,3,45,2.5,2,4\n" +
		"45,Female,Premium,29.99,48,25,1,45.0,0,1\n"

	req := httptest.NewRequest(http.MethodPost, "/api/v1/batch", strings.NewReader(csvBody))
	req.Header.Set("Content-Type", "text/csv")
	rr := httptest.NewRecorder()
	srv.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200\nbody: %s", rr.Code, rr.Body.String())
	}
	if got := rr.Header().Get("Content-Type"); got != "text/csv" {
		t.Errorf("content type = %q, want text/csv", got)
	}
	lines := strings.Split(strings.TrimSpace(rr.Body.String()), "\n")
	if len(lines) != 3 {
		t.Fatalf("output lines = %d, want header plus 2 rows", len(lines))
	}
	if !strings.Contains(lines[1], string(churn.RiskHigh)) {
		t.Errorf("first row %q missing %s tier", lines[1], churn.RiskHigh)
	}
}

func TestBatchCSVMissingColumn(t *testing.T) {
	srv := testServer(t, testPipeline(t), nil)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/batch",
		strings.NewReader("age,gender\n25,Male\n"))
	req.Header.Set("Content-Type", "text/csv")
	rr := httptest.NewRecorder()
	srv.ServeHTTP(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rr.Code)
	}
}

func TestBatchEmptyRecords(t *testing.T) {
	srv := testServer(t, testPipeline(t), nil)

	rr := doJSON(t, srv, http.MethodPost, "/api/v1/batch", `{"records": []}`)
	if rr.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d, want 422", rr.Code)
	}
}

func TestBatchTooLarge(t *testing.T) {
	srv := testServer(t, testPipeline(t), nil)

	records := make([]string, 6)
	for i := range records {
		records[i] = highRiskBody
	}
	body := `{"records": [` + strings.Join(records, ",") + `]}`
	rr := doJSON(t, srv, http.MethodPost, "/api/v1/batch", body)
	if rr.Code != http.StatusRequestEntityTooLarge {
		t.Fatalf("status = %d, want 413", rr.Code)
	}
}

func TestHistoryLifecycle(t *testing.T) {
	store := testStore(t)
	srv := testServer(t, testPipeline(t), store)

	// Scoring persists an entry.
	if rr := doJSON(t, srv, http.MethodPost, "/api/v1/recommend", highRiskBody); rr.Code != http.StatusOK {
		t.Fatalf("recommend status = %d, want 200", rr.Code)
	}

	rr := doJSON(t, srv, http.MethodGet, "/api/v1/history", "")
	if rr.Code != http.StatusOK {
		t.Fatalf("list status = %d, want 200", rr.Code)
	}
	var entries []*history.Entry
	decodeBody(t, rr, &entries)
	if len(entries) != 1 {
		t.Fatalf("entries = %d, want 1", len(entries))
	}
	entry := entries[0]
	if entry.Recommendation == nil {
		t.Error("persisted entry is missing its recommendation")
	}

	// Direct lookup by id.
	rr = doJSON(t, srv, http.MethodGet, "/api/v1/history/"+entry.ID, "")
	if rr.Code != http.StatusOK {
		t.Fatalf("get status = %d, want 200", rr.Code)
	}
	var got history.Entry
	decodeBody(t, rr, &got)
	if got.ID != entry.ID {
		t.Errorf("got id %s, want %s", got.ID, entry.ID)
	}

	// Delete, then verify it is gone.
	rr = doJSON(t, srv, http.MethodDelete, "/api/v1/history/"+entry.ID, "")
	if rr.Code != http.StatusNoContent {
		t.Fatalf("delete status = %d, want 204", rr.Code)
	}
	rr = doJSON(t, srv, http.MethodGet, "/api/v1/history/"+entry.ID, "")
	if rr.Code != http.StatusNotFound {
		t.Fatalf("get after delete status = %d, want 404", rr.Code)
	}
}

func TestHistoryListLimit(t *testing.T) {
	store := testStore(t)
	srv := testServer(t, testPipeline(t), store)

	for i := 0; i < 3; i++ {
		if rr := doJSON(t, srv, http.MethodPost, "/api/v1/predict", highRiskBody); rr.Code != http.StatusOK {
			t.Fatalf("predict status = %d, want 200", rr.Code)
		}
		time.Sleep(time.Millisecond)
	}

	rr := doJSON(t, srv, http.MethodGet, "/api/v1/history?limit=2", "")
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rr.Code)
	}
	var entries []*history.Entry
	decodeBody(t, rr, &entries)
	if len(entries) != 2 {
		t.Errorf("entries = %d, want 2", len(entries))
	}
}

func TestHistoryBadLimit(t *testing.T) {
	srv := testServer(t, testPipeline(t), testStore(t))

	rr := doJSON(t, srv, http.MethodGet, "/api/v1/history?limit=zero", "")
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rr.Code)
	}
}

func TestHistoryDisabled(t *testing.T) {
	srv := testServer(t, testPipeline(t), nil)

	rr := doJSON(t, srv, http.MethodGet, "/api/v1/history", "")
	if rr.Code != http.StatusNotImplemented {
		t.Fatalf("status = %d, want 501", rr.Code)
	}
}

func TestHealthz(t *testing.T) {
	srv := testServer(t, testPipeline(t), nil)

	rr := doJSON(t, srv, http.MethodGet, "/healthz", "")
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rr.Code)
	}
	var resp healthResponse
	decodeBody(t, rr, &resp)
	if !resp.ModelLoaded {
		t.Error("expected model_loaded true")
	}
	if resp.ExplainStrategy == "" {
		t.Error("expected a non-empty explain strategy")
	}
}

func TestReadyzUnloaded(t *testing.T) {
	srv := testServer(t, pipeline.New(nil), nil)

	// Health reports ok even without a model; readiness does not.
	if rr := doJSON(t, srv, http.MethodGet, "/healthz", ""); rr.Code != http.StatusOK {
		t.Fatalf("healthz status = %d, want 200", rr.Code)
	}
	if rr := doJSON(t, srv, http.MethodGet, "/readyz", ""); rr.Code != http.StatusServiceUnavailable {
		t.Fatalf("readyz status = %d, want 503", rr.Code)
	}
}

func TestSecurityHeaders(t *testing.T) {
	srv := testServer(t, testPipeline(t), nil)

	rr := doJSON(t, srv, http.MethodPost, "/api/v1/predict", highRiskBody)
	if got := rr.Header().Get("X-Content-Type-Options"); got != "nosniff" {
		t.Errorf("X-Content-Type-Options = %q, want nosniff", got)
	}
	if got := rr.Header().Get("Cache-Control"); got != "no-store" {
		t.Errorf("Cache-Control = %q, want no-store", got)
	}
}

func TestRateLimit(t *testing.T) {
	h := NewHandler(HandlerConfig{
		Pipeline:  testPipeline(t),
		Processor: batch.NewProcessor(testPipeline(t)),
	})
	srv := NewRouter(h, MiddlewareConfig{
		RateLimitRequests: 2,
		RateLimitWindow:   time.Minute,
	})

	var limited bool
	for i := 0; i < 4; i++ {
		rr := doJSON(t, srv, http.MethodPost, "/api/v1/predict", highRiskBody)
		if rr.Code == http.StatusTooManyRequests {
			limited = true
			break
		}
	}
	if !limited {
		t.Error("expected a 429 after exceeding the rate limit")
	}
}
