// Churnscope - Customer Churn Prediction and Retention Analytics
// Copyright 2026 Churnscope Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/churnscope/churnscope

package pipeline

import (
	"fmt"
	"io"
	"os"

	"github.com/goccy/go-json"

	"github.com/churnscope/churnscope/internal/churn"
	"github.com/churnscope/churnscope/internal/churn/model"
	"github.com/churnscope/churnscope/internal/churn/preprocess"
)

// Artifacts is the read-only bundle of trained model artifacts: the fitted
// classifier, the categorical encoders, the numeric scaler, and the ordered
// feature-name list that establishes the vector layout. Loaded once at
// process start and shared across all prediction calls without locking.
type Artifacts struct {
	Classifier   model.Classifier
	Encoders     preprocess.Encoders
	Scaler       *preprocess.StandardScaler
	FeatureOrder []string
}

// bundleJSON is the serialized artifact bundle.
type bundleJSON struct {
	Model        json.RawMessage            `json:"model"`
	Encoders     preprocess.Encoders        `json:"encoders"`
	Scaler       *preprocess.StandardScaler `json:"scaler"`
	FeatureNames []string                   `json:"feature_names"`
}

// modelKind peeks at the model discriminator before full decoding.
type modelKind struct {
	Kind string `json:"kind"`
}

// LoadArtifacts reads an artifact bundle from a file.
func LoadArtifacts(path string) (*Artifacts, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open artifact bundle: %w", err)
	}
	defer f.Close()
	return DecodeArtifacts(f)
}

// DecodeArtifacts decodes and validates an artifact bundle.
func DecodeArtifacts(r io.Reader) (*Artifacts, error) {
	var bundle bundleJSON
	if err := json.NewDecoder(r).Decode(&bundle); err != nil {
		return nil, fmt.Errorf("decode artifact bundle: %w", err)
	}

	classifier, err := decodeModel(bundle.Model)
	if err != nil {
		return nil, err
	}

	a := &Artifacts{
		Classifier:   classifier,
		Encoders:     bundle.Encoders,
		Scaler:       bundle.Scaler,
		FeatureOrder: bundle.FeatureNames,
	}
	if err := a.validate(); err != nil {
		return nil, err
	}
	return a, nil
}

// decodeModel decodes the classifier by its kind discriminator.
func decodeModel(raw json.RawMessage) (model.Classifier, error) {
	if len(raw) == 0 {
		return nil, fmt.Errorf("artifact bundle has no model")
	}

	var kind modelKind
	if err := json.Unmarshal(raw, &kind); err != nil {
		return nil, fmt.Errorf("decode model kind: %w", err)
	}

	switch kind.Kind {
	case model.KindLogisticRegression:
		var m model.Logistic
		if err := json.Unmarshal(raw, &m); err != nil {
			return nil, fmt.Errorf("decode logistic model: %w", err)
		}
		return &m, nil
	case model.KindRandomForest:
		var m model.Forest
		if err := json.Unmarshal(raw, &m); err != nil {
			return nil, fmt.Errorf("decode forest model: %w", err)
		}
		if err := m.Validate(); err != nil {
			return nil, fmt.Errorf("invalid forest model: %w", err)
		}
		return &m, nil
	default:
		return nil, fmt.Errorf("unsupported model kind %q", kind.Kind)
	}
}

// validate enforces the packaging invariants that silently corrupt
// predictions when broken.
func (a *Artifacts) validate() error {
	n := len(a.FeatureOrder)
	if n == 0 {
		return fmt.Errorf("artifact bundle has no feature names")
	}

	if a.Scaler != nil && a.Scaler.NumFeatures() != n {
		return &churn.ShapeMismatchError{Want: n, Got: a.Scaler.NumFeatures(), Context: "scaler parameters"}
	}
	if got := a.Classifier.NumFeatures(); got != 0 && got != n {
		return &churn.ShapeMismatchError{Want: n, Got: got, Context: "classifier parameters"}
	}

	declared := make(map[string]struct{}, n)
	for _, name := range a.FeatureOrder {
		declared[name] = struct{}{}
	}
	for name := range a.Encoders {
		if _, ok := declared[name]; !ok {
			return fmt.Errorf("encoder for %q has no matching feature name", name)
		}
	}
	return nil
}
