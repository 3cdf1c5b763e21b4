// Churnscope - Customer Churn Prediction and Retention Analytics
// Copyright 2026 Churnscope Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/churnscope/churnscope

// Package predict turns a raw customer record into a churn probability and
// risk tier by invoking the trained classifier on the encoded vector.
package predict

import (
	"github.com/churnscope/churnscope/internal/churn"
	"github.com/churnscope/churnscope/internal/churn/model"
	"github.com/churnscope/churnscope/internal/churn/preprocess"
)

// Predictor runs single-record churn predictions against one fitted
// classifier and its preprocessing artifacts. All fields are read-only
// after construction, so a Predictor is safe for concurrent use.
type Predictor struct {
	classifier   model.Classifier
	encoders     preprocess.Encoders
	scaler       *preprocess.StandardScaler
	featureOrder []string
}

// New builds a Predictor over loaded artifacts.
func New(c model.Classifier, encoders preprocess.Encoders, scaler *preprocess.StandardScaler, featureOrder []string) *Predictor {
	return &Predictor{
		classifier:   c,
		encoders:     encoders,
		scaler:       scaler,
		featureOrder: featureOrder,
	}
}

// Encode exposes the predictor's preprocessing so callers can reuse the
// exact vector that produced a prediction (the explainer needs it).
func (p *Predictor) Encode(rec churn.CustomerRecord) ([]float64, error) {
	return preprocess.Encode(rec, p.encoders, p.scaler, p.featureOrder)
}

// Predict encodes the record and returns the prediction result. Fully
// deterministic given the same artifacts and record.
//
// When the classifier cannot produce probability estimates, the discrete
// 0/1 label is used as the churn probability. This is a degraded
// confidence signal: it conflates classification with confidence, and
// callers relying on fine-grained probabilities should prefer models that
// implement model.ProbabilityEstimator.
func (p *Predictor) Predict(rec churn.CustomerRecord) (*churn.PredictionResult, error) {
	x, err := p.Encode(rec)
	if err != nil {
		return nil, err
	}

	label := p.classifier.Predict(x)

	var churnProb float64
	if pe, ok := p.classifier.(model.ProbabilityEstimator); ok {
		churnProb = pe.PredictProba(x)[model.ClassChurn]
	} else {
		churnProb = float64(label)
	}

	predicted := churn.LabelStay
	if label == model.ClassChurn {
		predicted = churn.LabelChurn
	}

	return &churn.PredictionResult{
		Prediction:       label,
		PredictedLabel:   predicted,
		ChurnProbability: churnProb,
		StayProbability:  1 - churnProb,
		RiskTier:         churn.TierFor(churnProb),
	}, nil
}
