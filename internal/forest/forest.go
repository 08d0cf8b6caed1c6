package forest

import (
	"errors"
	"fmt"
	"math"
	"math/rand"
)

// Config controls forest training. A fixed seed keeps training
// deterministic so racing first-time trainers converge on the same model.
type Config struct {
	Trees    int   `json:"trees"`
	MaxDepth int   `json:"maxDepth"`
	Seed     int64 `json:"seed"`
	Balanced bool  `json:"balanced"` // inverse-frequency class weights
}

// DefaultConfig mirrors the screening model settings: 100 shallow trees,
// balanced class weights for the usual class imbalance in screening data.
func DefaultConfig() Config {
	return Config{Trees: 100, MaxDepth: 5, Seed: 42, Balanced: true}
}

// Forest is a bagged ensemble of CART trees over a fixed-width feature
// vector. A trained forest is read-only and safe for concurrent use.
type Forest struct {
	Config      Config `json:"config"`
	NumFeatures int    `json:"numFeatures"`
	Trees       []Tree `json:"trees"`
}

// Train fits a random forest on the given matrix. Rows must all have the
// same width and labels must be in {0,1}.
func Train(features [][]float64, labels []int, cfg Config) (*Forest, error) {
	if len(features) == 0 {
		return nil, errors.New("training matrix is empty")
	}
	if len(features) != len(labels) {
		return nil, fmt.Errorf("feature rows (%d) and labels (%d) differ", len(features), len(labels))
	}
	width := len(features[0])
	for i, row := range features {
		if len(row) != width {
			return nil, fmt.Errorf("row %d has %d features, want %d", i, len(row), width)
		}
	}
	for i, label := range labels {
		if label != 0 && label != 1 {
			return nil, fmt.Errorf("label %d is %d, want 0 or 1", i, label)
		}
	}
	if cfg.Trees <= 0 {
		return nil, errors.New("tree count must be positive")
	}

	weights := classWeights(labels, cfg.Balanced)
	samples := make([]sample, len(features))
	for i, row := range features {
		samples[i] = sample{features: row, label: labels[i], weight: weights[labels[i]]}
	}

	rng := rand.New(rand.NewSource(cfg.Seed))
	maxFeatures := int(math.Sqrt(float64(width)))
	if maxFeatures < 1 {
		maxFeatures = 1
	}

	f := &Forest{Config: cfg, NumFeatures: width, Trees: make([]Tree, cfg.Trees)}
	for t := 0; t < cfg.Trees; t++ {
		boot := make([]sample, len(samples))
		for i := range boot {
			boot[i] = samples[rng.Intn(len(samples))]
		}

		builder := &treeBuilder{rng: rng, maxDepth: cfg.MaxDepth, maxFeatures: maxFeatures}
		builder.build(boot, 0)
		f.Trees[t] = Tree{Nodes: builder.nodes}
	}
	return f, nil
}

// PredictProba returns the mean class-1 probability across all trees
func (f *Forest) PredictProba(features []float64) (float64, error) {
	if len(f.Trees) == 0 {
		return 0, errors.New("forest is not fitted")
	}
	if len(features) != f.NumFeatures {
		return 0, fmt.Errorf("got %d features, model expects %d", len(features), f.NumFeatures)
	}

	sum := 0.0
	for i := range f.Trees {
		sum += f.Trees[i].predict(features)
	}
	return sum / float64(len(f.Trees)), nil
}

// classWeights returns per-class sample weights. With balancing enabled
// each class contributes equal total weight regardless of frequency.
func classWeights(labels []int, balanced bool) [2]float64 {
	if !balanced {
		return [2]float64{1, 1}
	}
	counts := [2]int{}
	for _, label := range labels {
		counts[label]++
	}
	n := float64(len(labels))
	weights := [2]float64{1, 1}
	for class, count := range counts {
		if count > 0 {
			weights[class] = n / (2 * float64(count))
		}
	}
	return weights
}
