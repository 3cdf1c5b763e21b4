// Churnscope - Customer Churn Prediction and Retention Analytics
// Copyright 2026 Churnscope Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/churnscope/churnscope

package model

import "fmt"

// LeafSentinel marks a node with no children in the flat tree arrays,
// matching the -1 convention scikit-learn serializes.
const LeafSentinel = -1

// Tree is one fitted decision tree in the flat array layout: node i's
// children are ChildrenLeft[i] and ChildrenRight[i] (LeafSentinel for
// leaves), it splits Feature[i] at Threshold[i], carries the per-class
// probability distribution Value[i], and Cover[i] training samples reached
// it. Samples with x[feature] <= threshold go left.
type Tree struct {
	ChildrenLeft  []int       `json:"children_left"`
	ChildrenRight []int       `json:"children_right"`
	Feature       []int       `json:"feature"`
	Threshold     []float64   `json:"threshold"`
	Value         [][]float64 `json:"value"`
	Cover         []float64   `json:"cover"`
}

// IsLeaf reports whether node i has no children.
func (t *Tree) IsLeaf(i int) bool { return t.ChildrenLeft[i] == LeafSentinel }

// leafFor walks the tree to the leaf a sample lands in.
func (t *Tree) leafFor(x []float64) int {
	node := 0
	for !t.IsLeaf(node) {
		if x[t.Feature[node]] <= t.Threshold[node] {
			node = t.ChildrenLeft[node]
		} else {
			node = t.ChildrenRight[node]
		}
	}
	return node
}

// PredictProba returns the class distribution of the leaf the sample
// reaches.
func (t *Tree) PredictProba(x []float64) []float64 {
	return append([]float64(nil), t.Value[t.leafFor(x)]...)
}

// ExpectedValue returns the cover-weighted mean leaf value for one class,
// the tree's baseline expectation over its training distribution.
func (t *Tree) ExpectedValue(class int) float64 {
	var sum, cover float64
	for i := range t.ChildrenLeft {
		if !t.IsLeaf(i) {
			continue
		}
		sum += t.Cover[i] * t.Value[i][class]
		cover += t.Cover[i]
	}
	if cover == 0 {
		return 0
	}
	return sum / cover
}

// Validate checks the structural invariants of the flat arrays.
func (t *Tree) Validate() error {
	n := len(t.ChildrenLeft)
	if len(t.ChildrenRight) != n || len(t.Feature) != n || len(t.Threshold) != n ||
		len(t.Value) != n || len(t.Cover) != n {
		return fmt.Errorf("tree arrays have inconsistent lengths")
	}
	if n == 0 {
		return fmt.Errorf("tree has no nodes")
	}
	for i := 0; i < n; i++ {
		l, r := t.ChildrenLeft[i], t.ChildrenRight[i]
		if (l == LeafSentinel) != (r == LeafSentinel) {
			return fmt.Errorf("node %d has exactly one child", i)
		}
		if l != LeafSentinel && (l <= i || l >= n || r <= i || r >= n) {
			return fmt.Errorf("node %d has child index out of range", i)
		}
		if t.Cover[i] <= 0 {
			return fmt.Errorf("node %d has non-positive cover", i)
		}
	}
	return nil
}

// Forest is a fitted random-forest classifier. The forest probability is
// the mean of the per-tree leaf class distributions, matching
// scikit-learn's soft voting.
type Forest struct {
	// TreeList holds the fitted trees.
	TreeList []*Tree `json:"trees"`

	// Classes is the number of target classes (2 for churn).
	Classes int `json:"n_classes"`

	// Features is the feature count the forest was fit on.
	Features int `json:"n_features"`
}

// Kind returns the model kind identifier.
func (f *Forest) Kind() string { return KindRandomForest }

// NumFeatures returns the feature count the forest was fit on.
func (f *Forest) NumFeatures() int { return f.Features }

// NumClasses returns the number of target classes.
func (f *Forest) NumClasses() int { return f.Classes }

// Trees returns the fitted decision trees.
func (f *Forest) Trees() []*Tree { return f.TreeList }

// PredictProba returns the mean per-class probability over all trees.
func (f *Forest) PredictProba(x []float64) []float64 {
	probs := make([]float64, f.Classes)
	if len(f.TreeList) == 0 {
		return probs
	}
	for _, t := range f.TreeList {
		leaf := t.PredictProba(x)
		for c := range probs {
			probs[c] += leaf[c]
		}
	}
	inv := 1 / float64(len(f.TreeList))
	for c := range probs {
		probs[c] *= inv
	}
	return probs
}

// Predict returns the class with the highest mean probability.
func (f *Forest) Predict(x []float64) int {
	probs := f.PredictProba(x)
	best := 0
	for c := 1; c < len(probs); c++ {
		if probs[c] > probs[best] {
			best = c
		}
	}
	return best
}

// Validate checks every tree's structural invariants.
func (f *Forest) Validate() error {
	if f.Classes < 2 {
		return fmt.Errorf("forest has %d classes, need at least 2", f.Classes)
	}
	for i, t := range f.TreeList {
		if err := t.Validate(); err != nil {
			return fmt.Errorf("tree %d: %w", i, err)
		}
		for j, v := range t.Value {
			if len(v) != f.Classes {
				return fmt.Errorf("tree %d node %d: %d class values, want %d", i, j, len(v), f.Classes)
			}
		}
	}
	return nil
}

// Interface compliance.
var (
	_ Classifier           = (*Forest)(nil)
	_ ProbabilityEstimator = (*Forest)(nil)
	_ TreeEnsemble         = (*Forest)(nil)
)
