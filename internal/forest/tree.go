package forest

import (
	"math"
	"math/rand"
	"sort"
)

// Node is one decision node, stored flat so the artifact serializes to JSON.
// Leaves have Feature == -1 and carry the weighted class-1 probability.
type Node struct {
	Feature   int     `json:"f"`
	Threshold float64 `json:"t"`
	Left      int     `json:"l"`
	Right     int     `json:"r"`
	Proba     float64 `json:"p"`
}

// Tree is a single CART tree over the fixed feature vector
type Tree struct {
	Nodes []Node `json:"nodes"`
}

// predict walks the tree and returns the leaf class-1 probability
func (t *Tree) predict(features []float64) float64 {
	idx := 0
	for {
		n := t.Nodes[idx]
		if n.Feature < 0 {
			return n.Proba
		}
		if features[n.Feature] <= n.Threshold {
			idx = n.Left
		} else {
			idx = n.Right
		}
	}
}

type sample struct {
	features []float64
	label    int
	weight   float64
}

type treeBuilder struct {
	rng         *rand.Rand
	maxDepth    int
	maxFeatures int
	nodes       []Node
}

func (b *treeBuilder) build(samples []sample, depth int) int {
	var w0, w1 float64
	for _, s := range samples {
		if s.label == 1 {
			w1 += s.weight
		} else {
			w0 += s.weight
		}
	}
	proba := 0.0
	if w0+w1 > 0 {
		proba = w1 / (w0 + w1)
	}

	if depth >= b.maxDepth || len(samples) < 2 || w0 == 0 || w1 == 0 {
		return b.leaf(proba)
	}

	feature, threshold, ok := b.bestSplit(samples)
	if !ok {
		return b.leaf(proba)
	}

	var left, right []sample
	for _, s := range samples {
		if s.features[feature] <= threshold {
			left = append(left, s)
		} else {
			right = append(right, s)
		}
	}
	if len(left) == 0 || len(right) == 0 {
		return b.leaf(proba)
	}

	idx := len(b.nodes)
	b.nodes = append(b.nodes, Node{Feature: feature, Threshold: threshold})
	b.nodes[idx].Left = b.build(left, depth+1)
	b.nodes[idx].Right = b.build(right, depth+1)
	return idx
}

func (b *treeBuilder) leaf(proba float64) int {
	idx := len(b.nodes)
	b.nodes = append(b.nodes, Node{Feature: -1, Left: -1, Right: -1, Proba: proba})
	return idx
}

// bestSplit evaluates a random feature subset and returns the split with
// the lowest weighted Gini impurity
func (b *treeBuilder) bestSplit(samples []sample) (int, float64, bool) {
	numFeatures := len(samples[0].features)
	candidates := b.rng.Perm(numFeatures)[:b.maxFeatures]

	bestGini := math.Inf(1)
	bestFeature, bestThreshold := -1, 0.0

	for _, f := range candidates {
		ordered := make([]sample, len(samples))
		copy(ordered, samples)
		sort.SliceStable(ordered, func(i, j int) bool {
			return ordered[i].features[f] < ordered[j].features[f]
		})

		var total0, total1 float64
		for _, s := range ordered {
			if s.label == 1 {
				total1 += s.weight
			} else {
				total0 += s.weight
			}
		}

		var left0, left1 float64
		for i := 1; i < len(ordered); i++ {
			prev := ordered[i-1]
			if prev.label == 1 {
				left1 += prev.weight
			} else {
				left0 += prev.weight
			}
			if ordered[i].features[f] == prev.features[f] {
				continue
			}

			right0, right1 := total0-left0, total1-left1
			g := weightedGini(left0, left1, right0, right1)
			if g < bestGini {
				bestGini = g
				bestFeature = f
				bestThreshold = (prev.features[f] + ordered[i].features[f]) / 2
			}
		}
	}

	return bestFeature, bestThreshold, bestFeature >= 0
}

func weightedGini(l0, l1, r0, r1 float64) float64 {
	lTotal, rTotal := l0+l1, r0+r1
	total := lTotal + rTotal
	return (lTotal*gini(l0, l1) + rTotal*gini(r0, r1)) / total
}

func gini(w0, w1 float64) float64 {
	total := w0 + w1
	if total == 0 {
		return 0
	}
	p0, p1 := w0/total, w1/total
	return 1 - p0*p0 - p1*p1
}
