// Churnscope - Customer Churn Prediction and Retention Analytics
// Copyright 2026 Churnscope Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/churnscope/churnscope

package api

import (
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/churnscope/churnscope/internal/batch"
	"github.com/churnscope/churnscope/internal/churn"
	"github.com/churnscope/churnscope/internal/churn/pipeline"
	"github.com/churnscope/churnscope/internal/churn/recommend"
	"github.com/churnscope/churnscope/internal/history"
	"github.com/churnscope/churnscope/internal/logging"
	"github.com/churnscope/churnscope/internal/metrics"
)

// Handler serves the scoring and history endpoints. The history store is
// optional; when nil, scoring endpoints skip persistence and the history
// endpoints report the feature as disabled.
type Handler struct {
	pipe         *pipeline.Pipeline
	store        *history.Store
	processor    *batch.Processor
	historyLimit int
	maxRecords   int
}

// HandlerConfig carries the dependencies and limits for NewHandler.
type HandlerConfig struct {
	// Pipeline is the scoring pipeline, never nil (an unloaded pipeline
	// is valid and reports 503 on scoring).
	Pipeline *pipeline.Pipeline

	// Store is the prediction history store, nil when history is disabled.
	Store *history.Store

	// Processor is the batch scorer.
	Processor *batch.Processor

	// HistoryLimit is the default page size for history listing.
	HistoryLimit int

	// MaxBatchRecords caps the records accepted per batch request.
	MaxBatchRecords int
}

// NewHandler builds the endpoint handler set.
func NewHandler(cfg HandlerConfig) *Handler {
	h := &Handler{
		pipe:         cfg.Pipeline,
		store:        cfg.Store,
		processor:    cfg.Processor,
		historyLimit: cfg.HistoryLimit,
		maxRecords:   cfg.MaxBatchRecords,
	}
	if h.historyLimit <= 0 {
		h.historyLimit = 100
	}
	return h
}

// Predict handles POST /api/v1/predict.
func (h *Handler) Predict(w http.ResponseWriter, r *http.Request) {
	var payload recordPayload
	if !decodeAndValidate(w, r, &payload) {
		return
	}

	start := time.Now()
	rec := payload.toRecord()
	pred, err := h.pipe.PredictChurn(rec)
	if err != nil {
		respondScoringError(w, r, err)
		return
	}
	metrics.RecordPrediction(string(pred.RiskTier), "predict", time.Since(start))

	h.saveHistory(r, &history.Entry{Record: rec, Prediction: pred})
	writeJSON(w, http.StatusOK, pred)
}

// Explain handles POST /api/v1/explain.
func (h *Handler) Explain(w http.ResponseWriter, r *http.Request) {
	var payload recordPayload
	if !decodeAndValidate(w, r, &payload) {
		return
	}

	start := time.Now()
	rec := payload.toRecord()
	pred, expl, err := h.pipe.ExplainPrediction(rec)
	if err != nil {
		respondScoringError(w, r, err)
		return
	}
	metrics.RecordPrediction(string(pred.RiskTier), "explain", time.Since(start))
	if expl.Degraded {
		metrics.DegradedExplanations.Inc()
	}

	h.saveHistory(r, &history.Entry{Record: rec, Prediction: pred, Explanation: expl})
	writeJSON(w, http.StatusOK, explainResponse{Prediction: pred, Explanation: expl})
}

// Recommend handles POST /api/v1/recommend.
func (h *Handler) Recommend(w http.ResponseWriter, r *http.Request) {
	var payload recordPayload
	if !decodeAndValidate(w, r, &payload) {
		return
	}

	start := time.Now()
	rec := payload.toRecord()
	pred, expl, recom, err := h.pipe.GenerateFullRecommendation(rec)
	if err != nil {
		respondScoringError(w, r, err)
		return
	}
	metrics.RecordPrediction(string(pred.RiskTier), "recommend", time.Since(start))
	if expl.Degraded {
		metrics.DegradedExplanations.Inc()
	}

	h.saveHistory(r, &history.Entry{
		Record:         rec,
		Prediction:     pred,
		Explanation:    expl,
		Recommendation: recom,
	})

	// Accept: text/plain requests the rendered retention report instead of
	// the structured response.
	if strings.HasPrefix(r.Header.Get("Accept"), "text/plain") {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		if _, err := io.WriteString(w, recommend.FormatReport(recom)); err != nil {
			logging.CtxErr(r.Context(), err).Msg("Failed to write report response")
		}
		return
	}
	writeJSON(w, http.StatusOK, recommendResponse{
		Prediction:     pred,
		Explanation:    expl,
		Recommendation: recom,
	})
}

// BatchScore handles POST /api/v1/batch. A JSON body returns a JSON
// result; a text/csv body is the file-upload flow and returns the scored
// rows as CSV.
func (h *Handler) BatchScore(w http.ResponseWriter, r *http.Request) {
	if isCSV(r) {
		h.batchScoreCSV(w, r)
		return
	}

	var req batchRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}
	if h.maxRecords > 0 && len(req.Records) > h.maxRecords {
		respondError(w, http.StatusRequestEntityTooLarge, "batch_too_large",
			"batch exceeds the configured record limit")
		return
	}

	records := make([]churn.CustomerRecord, len(req.Records))
	for i, p := range req.Records {
		records[i] = p.toRecord()
	}

	start := time.Now()
	result, err := h.processor.Process(r.Context(), records)
	if err != nil {
		respondScoringError(w, r, err)
		return
	}
	metrics.RecordBatchRun(result.Summary.Total, result.Summary.Succeeded,
		result.Summary.Failed, time.Since(start))
	logging.Ctx(r.Context()).Info().
		Int("total", result.Summary.Total).
		Int("failed", result.Summary.Failed).
		Msg("Batch scoring run completed")

	writeJSON(w, http.StatusOK, result)
}

// batchScoreCSV scores an uploaded CSV file and streams the scored rows
// back as CSV, one output row per input row.
func (h *Handler) batchScoreCSV(w http.ResponseWriter, r *http.Request) {
	records, err := batch.ReadRecords(r.Body)
	if err != nil {
		respondError(w, http.StatusBadRequest, "malformed_request", err.Error())
		return
	}
	if len(records) == 0 {
		respondError(w, http.StatusUnprocessableEntity, "validation_failed", "csv input has no data rows")
		return
	}
	if h.maxRecords > 0 && len(records) > h.maxRecords {
		respondError(w, http.StatusRequestEntityTooLarge, "batch_too_large",
			"batch exceeds the configured record limit")
		return
	}

	start := time.Now()
	result, err := h.processor.Process(r.Context(), records)
	if err != nil {
		respondScoringError(w, r, err)
		return
	}
	metrics.RecordBatchRun(result.Summary.Total, result.Summary.Succeeded,
		result.Summary.Failed, time.Since(start))

	w.Header().Set("Content-Type", "text/csv")
	w.WriteHeader(http.StatusOK)
	if err := batch.WriteRows(w, result.Rows); err != nil {
		logging.CtxErr(r.Context(), err).Msg("Failed to write batch CSV response")
	}
}

func isCSV(r *http.Request) bool {
	ct, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if err != nil {
		return false
	}
	return ct == "text/csv"
}

// HistoryList handles GET /api/v1/history. The optional ?limit= query
// overrides the configured default page size.
func (h *Handler) HistoryList(w http.ResponseWriter, r *http.Request) {
	if h.store == nil {
		respondError(w, http.StatusNotImplemented, "history_disabled", "prediction history is disabled")
		return
	}

	limit := h.historyLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := parseLimit(raw)
		if err != nil {
			respondError(w, http.StatusBadRequest, "malformed_request", err.Error())
			return
		}
		limit = n
	}

	entries, err := h.store.List(r.Context(), limit)
	if err != nil {
		metrics.HistoryErrors.Inc()
		logging.CtxErr(r.Context(), err).Msg("Failed to list history")
		respondError(w, http.StatusInternalServerError, "internal_error", "failed to list history")
		return
	}
	if entries == nil {
		entries = []*history.Entry{}
	}
	writeJSON(w, http.StatusOK, entries)
}

// HistoryGet handles GET /api/v1/history/{id}.
func (h *Handler) HistoryGet(w http.ResponseWriter, r *http.Request) {
	if h.store == nil {
		respondError(w, http.StatusNotImplemented, "history_disabled", "prediction history is disabled")
		return
	}

	id := chi.URLParam(r, "id")
	entry, err := h.store.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, history.ErrEntryNotFound) {
			respondError(w, http.StatusNotFound, "not_found", err.Error())
			return
		}
		metrics.HistoryErrors.Inc()
		logging.CtxErr(r.Context(), err).Str("id", id).Msg("Failed to get history entry")
		respondError(w, http.StatusInternalServerError, "internal_error", "failed to get history entry")
		return
	}
	writeJSON(w, http.StatusOK, entry)
}

// HistoryDelete handles DELETE /api/v1/history/{id}. Deleting an absent
// entry succeeds, matching the store's semantics.
func (h *Handler) HistoryDelete(w http.ResponseWriter, r *http.Request) {
	if h.store == nil {
		respondError(w, http.StatusNotImplemented, "history_disabled", "prediction history is disabled")
		return
	}

	id := chi.URLParam(r, "id")
	if err := h.store.Delete(r.Context(), id); err != nil {
		metrics.HistoryErrors.Inc()
		logging.CtxErr(r.Context(), err).Str("id", id).Msg("Failed to delete history entry")
		respondError(w, http.StatusInternalServerError, "internal_error", "failed to delete history entry")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Healthz handles GET /healthz. The process serving the request is the
// health signal; model state is reported but does not fail the check.
func (h *Handler) Healthz(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, healthResponse{
		Status:          "ok",
		ModelLoaded:     h.pipe.Loaded(),
		ExplainStrategy: h.pipe.ExplainStrategy(),
	})
}

// Readyz handles GET /readyz. Readiness requires loaded model artifacts.
func (h *Handler) Readyz(w http.ResponseWriter, _ *http.Request) {
	if !h.pipe.Loaded() {
		writeJSON(w, http.StatusServiceUnavailable, healthResponse{
			Status:      "unavailable",
			ModelLoaded: false,
		})
		return
	}
	writeJSON(w, http.StatusOK, healthResponse{
		Status:          "ok",
		ModelLoaded:     true,
		ExplainStrategy: h.pipe.ExplainStrategy(),
	})
}

// parseLimit parses a history listing limit from query input.
func parseLimit(raw string) (int, error) {
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return 0, fmt.Errorf("limit must be a positive integer, got %q", raw)
	}
	return n, nil
}

// saveHistory persists a scoring outcome when history is enabled. Failures
// are logged and counted but never fail the scoring response.
func (h *Handler) saveHistory(r *http.Request, e *history.Entry) {
	if h.store == nil {
		return
	}
	if err := h.store.Save(r.Context(), e); err != nil {
		metrics.HistoryErrors.Inc()
		logging.CtxErr(r.Context(), err).Msg("Failed to save history entry")
		return
	}
	metrics.HistoryEntriesSaved.Inc()
}
