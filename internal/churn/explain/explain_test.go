// Churnscope - Customer Churn Prediction and Retention Analytics
// Copyright 2026 Churnscope Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/churnscope/churnscope

package explain

import (
	"errors"
	"math"
	"testing"

	"github.com/churnscope/churnscope/internal/churn"
	"github.com/churnscope/churnscope/internal/churn/model"
)

// stubClassifier exposes no attribution capability, forcing the fallback.
type stubClassifier struct{}

func (stubClassifier) Predict(x []float64) int { return 0 }
func (stubClassifier) Kind() string            { return "stub" }
func (stubClassifier) NumFeatures() int        { return 2 }

func twoSplitTree() *model.Tree {
	return &model.Tree{
		ChildrenLeft:  []int{1, model.LeafSentinel, 3, model.LeafSentinel, model.LeafSentinel},
		ChildrenRight: []int{2, model.LeafSentinel, 4, model.LeafSentinel, model.LeafSentinel},
		Feature:       []int{0, model.LeafSentinel, 1, model.LeafSentinel, model.LeafSentinel},
		Threshold:     []float64{0, 0, 1, 0, 0},
		Value: [][]float64{
			{0.62, 0.38},
			{0.8, 0.2},
			{0.35, 0.65},
			{0.5, 0.5},
			{0.1, 0.9},
		},
		Cover: []float64{100, 60, 40, 25, 15},
	}
}

func repeatedFeatureTree() *model.Tree {
	return &model.Tree{
		ChildrenLeft:  []int{1, 3, model.LeafSentinel, model.LeafSentinel, model.LeafSentinel},
		ChildrenRight: []int{2, 4, model.LeafSentinel, model.LeafSentinel, model.LeafSentinel},
		Feature:       []int{0, 0, model.LeafSentinel, model.LeafSentinel, model.LeafSentinel},
		Threshold:     []float64{0.5, -0.5, 0, 0, 0},
		Value: [][]float64{
			{0.57, 0.43},
			{0.72857142857142854, 0.27142857142857146},
			{0.2, 0.8},
			{0.9, 0.1},
			{0.6, 0.4},
		},
		Cover: []float64{100, 70, 30, 30, 40},
	}
}

func testForest() *model.Forest {
	return &model.Forest{
		TreeList: []*model.Tree{twoSplitTree(), repeatedFeatureTree()},
		Classes:  2,
		Features: 2,
	}
}

func TestStrategySelection(t *testing.T) {
	tests := []struct {
		name       string
		classifier model.Classifier
		strategy   string
		degraded   bool
	}{
		{"linear model", &model.Logistic{Coef: []float64{1, 2}}, "coefficients", false},
		{"tree ensemble", testForest(), "tree_shap", false},
		{"unknown model", stubClassifier{}, "raw_values", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewStrategy(tt.classifier)
			if s.Name() != tt.strategy {
				t.Errorf("strategy = %q, want %q", s.Name(), tt.strategy)
			}
			if s.Degraded() != tt.degraded {
				t.Errorf("degraded = %v, want %v", s.Degraded(), tt.degraded)
			}
		})
	}
}

func TestLinearAdditiveDecomposition(t *testing.T) {
	m := &model.Logistic{Coef: []float64{0.8, -1.2, 0.3}, Bias: -0.4}
	s := NewStrategy(m)

	vectors := [][]float64{
		{1, 1, 1},
		{-2, 0.5, 3},
		{0, 0, 0},
	}
	for _, x := range vectors {
		contributions, base := s.Attribute(x)
		var sum float64
		for _, c := range contributions {
			sum += c
		}
		if got, want := sum+base, m.RawScore(x); math.Abs(got-want) > 1e-12 {
			t.Errorf("sum+base = %v, want raw score %v for %v", got, want, x)
		}
	}
}

func TestTreeShapSingleTreeAdditivity(t *testing.T) {
	tests := []struct {
		name string
		tree *model.Tree
		x    []float64
	}{
		{"two split left", twoSplitTree(), []float64{-1, 0}},
		{"two split right left", twoSplitTree(), []float64{1.2, 0.5}},
		{"two split right right", twoSplitTree(), []float64{1.2, 2}},
		{"repeated feature deep left", repeatedFeatureTree(), []float64{-1, 0}},
		{"repeated feature middle", repeatedFeatureTree(), []float64{0, 7}},
		{"repeated feature right", repeatedFeatureTree(), []float64{2, -3}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			phi := treeShap(tt.tree, tt.x, model.ClassChurn)

			var sum float64
			for _, v := range phi {
				sum += v
			}
			leaf := tt.tree.PredictProba(tt.x)[model.ClassChurn]
			base := tt.tree.ExpectedValue(model.ClassChurn)
			if math.Abs(sum+base-leaf) > 1e-9 {
				t.Errorf("sum(phi)+base = %v, want leaf value %v (phi=%v)", sum+base, leaf, phi)
			}
		})
	}
}

func TestTreeShapUntouchedFeatureGetsZero(t *testing.T) {
	// repeatedFeatureTree never splits on feature 1.
	phi := treeShap(repeatedFeatureTree(), []float64{0.1, 99}, model.ClassChurn)
	if phi[1] != 0 {
		t.Errorf("phi for unused feature = %v, want 0", phi[1])
	}
}

func TestForestShapAdditivity(t *testing.T) {
	f := testForest()
	s := NewStrategy(f)

	vectors := [][]float64{
		{-1, 0},
		{1.2, 0.5},
		{1.2, 2},
		{0.2, -4},
	}
	for _, x := range vectors {
		contributions, base := s.Attribute(x)
		var sum float64
		for _, c := range contributions {
			sum += c
		}
		want := f.PredictProba(x)[model.ClassChurn]
		if math.Abs(sum+base-want) > 1e-9 {
			t.Errorf("sum+base = %v, want P(churn) %v for %v", sum+base, want, x)
		}
	}
}

func TestExplainShapeMismatch(t *testing.T) {
	e := New(&model.Logistic{Coef: []float64{1, 2}}, []string{churn.FeatureAge, churn.FeatureWatchTime})

	_, err := e.Explain([]float64{1}, churn.CustomerRecord{})
	var sme *churn.ShapeMismatchError
	if !errors.As(err, &sme) {
		t.Fatalf("expected *churn.ShapeMismatchError, got %v", err)
	}
}

func TestExplainRankingAndTopFactors(t *testing.T) {
	order := []string{
		churn.FeatureAge,
		churn.FeatureLastLoginDays,
		churn.FeaturePaymentFailures,
		churn.FeatureWatchTime,
	}
	m := &model.Logistic{Coef: []float64{0.1, 0.9, 1.0, -0.4}, Bias: 0}
	e := New(m, order)

	rec := churn.CustomerRecord{Age: 25, LastLoginDays: 45, PaymentFailures: 2, WatchTime: 2.5}
	res, err := e.Explain([]float64{1, 2, 1.5, -1}, rec)
	if err != nil {
		t.Fatalf("Explain: %v", err)
	}

	// Contributions: 0.1, 1.8, 1.5, 0.4 -> order by magnitude:
	// last_login_days, payment_failures, watch_time, age.
	wantOrder := []string{
		churn.FeatureLastLoginDays,
		churn.FeaturePaymentFailures,
		churn.FeatureWatchTime,
		churn.FeatureAge,
	}
	for i, want := range wantOrder {
		if res.AllFeatures[i].Feature != want {
			t.Errorf("AllFeatures[%d] = %q, want %q", i, res.AllFeatures[i].Feature, want)
		}
	}

	if len(res.TopFactors) != TopFactorCount {
		t.Fatalf("len(TopFactors) = %d", len(res.TopFactors))
	}
	for i := range res.TopFactors {
		if res.TopFactors[i].Feature != res.AllFeatures[i].Feature {
			t.Errorf("TopFactors[%d] != AllFeatures[%d]", i, i)
		}
	}

	// AllFeatures is sorted by AbsContribution descending.
	for i := 1; i < len(res.AllFeatures); i++ {
		if res.AllFeatures[i].AbsContribution > res.AllFeatures[i-1].AbsContribution {
			t.Errorf("AllFeatures not sorted at %d", i)
		}
	}

	// Direction follows the sign of the contribution.
	if res.AllFeatures[0].Direction != churn.DirectionIncreases {
		t.Errorf("direction = %q", res.AllFeatures[0].Direction)
	}
	if res.AllFeatures[2].Feature == churn.FeatureWatchTime && res.AllFeatures[2].Direction != churn.DirectionDecreases {
		t.Errorf("watch_time direction = %q", res.AllFeatures[2].Direction)
	}
}

func TestExplainTiesPreserveFeatureOrder(t *testing.T) {
	order := []string{churn.FeatureAge, churn.FeatureWatchTime, churn.FeatureLoginFrequency}
	m := &model.Logistic{Coef: []float64{1, -1, 1}, Bias: 0}
	e := New(m, order)

	// All contributions have magnitude 2: the sort must keep declaration order.
	res, err := e.Explain([]float64{2, 2, 2}, churn.CustomerRecord{})
	if err != nil {
		t.Fatalf("Explain: %v", err)
	}
	for i, want := range order {
		if res.AllFeatures[i].Feature != want {
			t.Errorf("tie order broken at %d: %q", i, res.AllFeatures[i].Feature)
		}
	}
}

func TestExplainNarratives(t *testing.T) {
	order := []string{churn.FeatureLastLoginDays}
	m := &model.Logistic{Coef: []float64{0.9}, Bias: 0}
	e := New(m, order)

	rec := churn.CustomerRecord{LastLoginDays: 45}
	res, err := e.Explain([]float64{3.5}, rec)
	if err != nil {
		t.Fatalf("Explain: %v", err)
	}

	want := "Days Since Last Login (45 days) increases churn risk"
	if res.AllFeatures[0].Narrative != want {
		t.Errorf("narrative = %q, want %q", res.AllFeatures[0].Narrative, want)
	}
	if len(res.Narratives) != 1 {
		t.Fatalf("Narratives = %v", res.Narratives)
	}
	if res.Narratives[0] != want+" (+315.0%)" {
		t.Errorf("top narrative = %q", res.Narratives[0])
	}
}

func TestExplainFallbackTagged(t *testing.T) {
	order := []string{churn.FeatureAge, churn.FeatureWatchTime}
	e := New(stubClassifier{}, order)

	res, err := e.Explain([]float64{1.5, -0.5}, churn.CustomerRecord{Age: 30, WatchTime: 5})
	if err != nil {
		t.Fatalf("Explain: %v", err)
	}
	if !res.Degraded {
		t.Error("fallback result not tagged as degraded")
	}
	if res.BaseValue != 0.5 {
		t.Errorf("fallback base value = %v, want 0.5", res.BaseValue)
	}
	if res.AllFeatures[0].Contribution != 1.5 {
		t.Errorf("fallback contribution = %v, want raw encoded value", res.AllFeatures[0].Contribution)
	}
}
