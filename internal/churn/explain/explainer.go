// Churnscope - Customer Churn Prediction and Retention Analytics
// Copyright 2026 Churnscope Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/churnscope/churnscope

package explain

import (
	"fmt"
	"sort"

	"github.com/churnscope/churnscope/internal/churn"
	"github.com/churnscope/churnscope/internal/churn/model"
)

// TopFactorCount is how many leading attributions become top factors.
const TopFactorCount = 3

// Explainer turns encoded feature vectors into ranked, narrated feature
// attributions. The attribution strategy is fixed at construction; the
// explainer itself is stateless and safe for concurrent use.
type Explainer struct {
	strategy     Strategy
	featureOrder []string
}

// New builds an Explainer for a classifier, selecting the attribution
// strategy from the capabilities the model exposes.
func New(c model.Classifier, featureOrder []string) *Explainer {
	return &Explainer{
		strategy:     NewStrategy(c),
		featureOrder: featureOrder,
	}
}

// StrategyName identifies the selected attribution method.
func (e *Explainer) StrategyName() string { return e.strategy.Name() }

// Explain decomposes one prediction. The encoded vector length must match
// the feature order; raw values from rec appear in the narratives.
func (e *Explainer) Explain(encoded []float64, rec churn.CustomerRecord) (*churn.ExplanationResult, error) {
	if len(encoded) != len(e.featureOrder) {
		return nil, &churn.ShapeMismatchError{
			Want:    len(e.featureOrder),
			Got:     len(encoded),
			Context: "encoded vector",
		}
	}

	contributions, base := e.strategy.Attribute(encoded)

	all := make([]churn.FeatureAttribution, len(e.featureOrder))
	for i, name := range e.featureOrder {
		c := contributions[i]
		meta := churn.MetaFor(name)

		direction := churn.DirectionIncreases
		if c <= 0 {
			direction = churn.DirectionDecreases
		}

		rawValue := rec.DisplayValue(name)
		valueStr := rawValue
		if meta.Unit != "" {
			valueStr = fmt.Sprintf("%s %s", rawValue, meta.Unit)
		}

		all[i] = churn.FeatureAttribution{
			Feature:         name,
			DisplayName:     meta.DisplayName,
			Contribution:    c,
			AbsContribution: abs(c),
			Direction:       direction,
			RawValue:        rawValue,
			Narrative:       fmt.Sprintf("%s (%s) %s churn risk", meta.DisplayName, valueStr, direction),
		}
	}

	// Stable sort: ties keep the original feature order.
	sort.SliceStable(all, func(i, j int) bool {
		return all[i].AbsContribution > all[j].AbsContribution
	})

	top := all
	if len(top) > TopFactorCount {
		top = top[:TopFactorCount]
	}

	narratives := make([]string, len(top))
	for i, f := range top {
		pct := f.AbsContribution * 100
		if f.Contribution > 0 {
			narratives[i] = fmt.Sprintf("%s (+%.1f%%)", f.Narrative, pct)
		} else {
			narratives[i] = fmt.Sprintf("%s (-%.1f%%)", f.Narrative, pct)
		}
	}

	return &churn.ExplanationResult{
		AllFeatures: all,
		TopFactors:  top,
		Narratives:  narratives,
		BaseValue:   base,
		Degraded:    e.strategy.Degraded(),
	}, nil
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
