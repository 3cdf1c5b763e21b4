// Churnscope - Customer Churn Prediction and Retention Analytics
// Copyright 2026 Churnscope Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/churnscope/churnscope

package api

import (
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/goccy/go-json"

	"github.com/churnscope/churnscope/internal/churn"
	"github.com/churnscope/churnscope/internal/history"
	"github.com/churnscope/churnscope/internal/logging"
	"github.com/churnscope/churnscope/internal/metrics"
)

// apiError is the wire form of an error response.
type apiError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type errorResponse struct {
	Error apiError `json:"error"`
}

// writeJSON encodes data as JSON and writes it with the given status.
// Encode errors are logged, not surfaced; headers are already sent.
func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		logging.Error().Err(err).Msg("Failed to encode JSON response")
	}
}

// respondError sends a structured error response.
func respondError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, errorResponse{Error: apiError{Code: code, Message: message}})
}

// respondScoringError maps pipeline errors onto HTTP statuses and records
// the failure. Validation failures are the client's to fix; an unloaded
// model is a service condition; everything else is internal.
func respondScoringError(w http.ResponseWriter, r *http.Request, err error) {
	var ve *churn.ValidationError
	var sm *churn.ShapeMismatchError

	switch {
	case errors.As(err, &ve):
		metrics.RecordPredictionError("validation")
		respondError(w, http.StatusUnprocessableEntity, "validation_failed", ve.Error())
	case errors.Is(err, churn.ErrModelNotLoaded):
		metrics.RecordPredictionError("model_not_loaded")
		respondError(w, http.StatusServiceUnavailable, "model_not_loaded", err.Error())
	case errors.As(err, &sm):
		metrics.RecordPredictionError("internal")
		logging.CtxErr(r.Context(), err).Msg("Artifact shape mismatch during scoring")
		respondError(w, http.StatusInternalServerError, "internal_error", "scoring failed")
	case errors.Is(err, history.ErrEntryNotFound):
		respondError(w, http.StatusNotFound, "not_found", err.Error())
	default:
		metrics.RecordPredictionError("internal")
		logging.CtxErr(r.Context(), err).Msg("Scoring failed")
		respondError(w, http.StatusInternalServerError, "internal_error", "scoring failed")
	}
}

// decodeAndValidate decodes the request body into dst and runs struct
// validation. Responses for failures are written here; the caller only
// proceeds when it returns true.
func decodeAndValidate(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		respondError(w, http.StatusBadRequest, "malformed_request", "invalid JSON: "+err.Error())
		return false
	}

	if err := validate.Struct(dst); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			first := verrs[0]
			respondError(w, http.StatusUnprocessableEntity, "validation_failed",
				"field "+first.Field()+" failed rule "+first.Tag())
			return false
		}
		respondError(w, http.StatusUnprocessableEntity, "validation_failed", err.Error())
		return false
	}
	return true
}
