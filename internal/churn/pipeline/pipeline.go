// Churnscope - Customer Churn Prediction and Retention Analytics
// Copyright 2026 Churnscope Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/churnscope/churnscope

package pipeline

import (
	"github.com/churnscope/churnscope/internal/churn"
	"github.com/churnscope/churnscope/internal/churn/explain"
	"github.com/churnscope/churnscope/internal/churn/predict"
	"github.com/churnscope/churnscope/internal/churn/recommend"
)

// Pipeline wires the predictor, explainer, and recommender around one
// artifact bundle. All methods are safe for concurrent use: the bundle is
// immutable after New.
type Pipeline struct {
	predictor *predict.Predictor
	explainer *explain.Explainer
}

// New builds a pipeline from a loaded artifact bundle. A nil bundle yields
// an unloaded pipeline whose methods return churn.ErrModelNotLoaded, which
// lets callers construct the service before artifacts are available.
func New(a *Artifacts) *Pipeline {
	if a == nil {
		return &Pipeline{}
	}
	return &Pipeline{
		predictor: predict.New(a.Classifier, a.Encoders, a.Scaler, a.FeatureOrder),
		explainer: explain.New(a.Classifier, a.FeatureOrder),
	}
}

// Loaded reports whether the pipeline has model artifacts.
func (p *Pipeline) Loaded() bool { return p.predictor != nil }

// ExplainStrategy returns the attribution strategy the explainer selected
// at load time, or "" when unloaded.
func (p *Pipeline) ExplainStrategy() string {
	if p.explainer == nil {
		return ""
	}
	return p.explainer.StrategyName()
}

// PredictChurn scores one customer record.
func (p *Pipeline) PredictChurn(rec churn.CustomerRecord) (*churn.PredictionResult, error) {
	if !p.Loaded() {
		return nil, churn.ErrModelNotLoaded
	}
	return p.predictor.Predict(rec)
}

// ExplainPrediction scores a record and attributes the outcome to its
// features.
func (p *Pipeline) ExplainPrediction(rec churn.CustomerRecord) (*churn.PredictionResult, *churn.ExplanationResult, error) {
	if !p.Loaded() {
		return nil, nil, churn.ErrModelNotLoaded
	}

	pred, err := p.predictor.Predict(rec)
	if err != nil {
		return nil, nil, err
	}
	encoded, err := p.predictor.Encode(rec)
	if err != nil {
		return nil, nil, err
	}
	expl, err := p.explainer.Explain(encoded, rec)
	if err != nil {
		return nil, nil, err
	}
	return pred, expl, nil
}

// GenerateFullRecommendation runs the complete predict, explain, recommend
// chain for one record.
func (p *Pipeline) GenerateFullRecommendation(rec churn.CustomerRecord) (*churn.PredictionResult, *churn.ExplanationResult, *churn.Recommendation, error) {
	pred, expl, err := p.ExplainPrediction(rec)
	if err != nil {
		return nil, nil, nil, err
	}
	recom := recommend.Recommend(pred.ChurnProbability, rec, expl.TopFactors)
	return pred, expl, recom, nil
}
