// Churnscope - Customer Churn Prediction and Retention Analytics
// Copyright 2026 Churnscope Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/churnscope/churnscope

package explain

import "github.com/churnscope/churnscope/internal/churn/model"

// Tree SHAP: exact Shapley values for a single decision tree in polynomial
// time, following Algorithm 2 of "Consistent Individualized Feature
// Attribution for Tree Ensembles" (Lundberg, Erion & Lee, 2018).
//
// The algorithm walks every root-to-leaf path once while maintaining the
// set of unique features split on so far. For each feature it tracks the
// fraction of feature subsets that flow down the path when the feature is
// conditioned on the sample ("one" fraction) versus marginalized by
// training cover ("zero" fraction), together with a permutation weight per
// subset size. At a leaf, unwinding each path feature yields its weighted
// share of the leaf value.

// pathElem is one unique feature on the current decision path.
type pathElem struct {
	// feature is the feature index, -1 for the root placeholder.
	feature int

	// zero is the fraction of paths that reach here when the feature is
	// marginalized by cover.
	zero float64

	// one is 1 if the sample's value follows this path, 0 otherwise.
	one float64

	// weight holds the permutation weight for each subset size.
	weight float64
}

// treeShap returns one Shapley value per feature for the given class. The
// values plus the tree's ExpectedValue for that class sum exactly to the
// leaf value the sample reaches.
func treeShap(t *model.Tree, x []float64, class int) []float64 {
	phi := make([]float64, len(x))

	var recurse func(node int, parent []pathElem, pz, po float64, feature int)
	recurse = func(node int, parent []pathElem, pz, po float64, feature int) {
		path := extendPath(parent, pz, po, feature)

		if t.IsLeaf(node) {
			leaf := t.Value[node][class]
			for i := 1; i < len(path); i++ {
				w := unwoundSum(path, i)
				phi[path[i].feature] += w * (path[i].one - path[i].zero) * leaf
			}
			return
		}

		split := t.Feature[node]
		var hot, cold int
		if x[split] <= t.Threshold[node] {
			hot, cold = t.ChildrenLeft[node], t.ChildrenRight[node]
		} else {
			hot, cold = t.ChildrenRight[node], t.ChildrenLeft[node]
		}

		// A feature already on the path is unwound and its fractions
		// carried into the children, so each unique feature appears once.
		iz, io := 1.0, 1.0
		for k := 1; k < len(path); k++ {
			if path[k].feature == split {
				iz, io = path[k].zero, path[k].one
				path = unwindPath(path, k)
				break
			}
		}

		cover := t.Cover[node]
		recurse(hot, path, iz*t.Cover[hot]/cover, io, split)
		recurse(cold, path, iz*t.Cover[cold]/cover, 0, split)
	}

	recurse(0, nil, 1, 1, -1)
	return phi
}

// extendPath returns a copy of parent with one more feature, updating the
// subset-size weights.
func extendPath(parent []pathElem, pz, po float64, feature int) []pathElem {
	l := len(parent)
	path := make([]pathElem, l+1)
	copy(path, parent)

	w := 0.0
	if l == 0 {
		w = 1.0
	}
	path[l] = pathElem{feature: feature, zero: pz, one: po, weight: w}

	for i := l - 1; i >= 0; i-- {
		path[i+1].weight += po * path[i].weight * float64(i+1) / float64(l+1)
		path[i].weight = pz * path[i].weight * float64(l-i) / float64(l+1)
	}
	return path
}

// unwindPath returns the path with element i removed and the weights
// restored to the state before that feature was extended onto it.
func unwindPath(path []pathElem, i int) []pathElem {
	l := len(path) - 1
	out := make([]pathElem, l+1)
	copy(out, path)

	one, zero := out[i].one, out[i].zero
	n := out[l].weight
	for j := l - 1; j >= 0; j-- {
		if one != 0 {
			tmp := out[j].weight
			out[j].weight = n * float64(l+1) / (float64(j+1) * one)
			n = tmp - out[j].weight*zero*float64(l-j)/float64(l+1)
		} else {
			out[j].weight = out[j].weight * float64(l+1) / (zero * float64(l-j))
		}
	}
	for j := i; j < l; j++ {
		out[j].feature = out[j+1].feature
		out[j].zero = out[j+1].zero
		out[j].one = out[j+1].one
	}
	return out[:l]
}

// unwoundSum is the total permutation weight the path would have after
// unwinding element i, without mutating the path.
func unwoundSum(path []pathElem, i int) float64 {
	l := len(path) - 1
	one, zero := path[i].one, path[i].zero

	var sum float64
	if one != 0 {
		n := path[l].weight
		for j := l - 1; j >= 0; j-- {
			tmp := n * float64(l+1) / (float64(j+1) * one)
			sum += tmp
			n = path[j].weight - tmp*zero*float64(l-j)/float64(l+1)
		}
	} else {
		for j := l - 1; j >= 0; j-- {
			sum += path[j].weight * float64(l+1) / (zero * float64(l-j))
		}
	}
	return sum
}
