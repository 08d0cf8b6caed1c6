package trainer

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"asdscreen/internal/dataset"
	"asdscreen/internal/forest"
	"asdscreen/internal/scoring"
)

// TrainingError reports a fit or persistence failure
type TrainingError struct {
	Op  string // "fit" or "persist"
	Err error
}

func (e *TrainingError) Error() string {
	return fmt.Sprintf("training %s failed: %v", e.Op, e.Err)
}

func (e *TrainingError) Unwrap() error { return e.Err }

// artifact is the persisted classifier state. The dataset fingerprint
// guards against serving a model trained on a different corpus; a bare
// existence check is not trusted.
type artifact struct {
	Fingerprint string         `json:"fingerprint"`
	TrainedAt   time.Time      `json:"trainedAt"`
	Rows        int            `json:"rows"`
	Forest      *forest.Forest `json:"forest"`
}

// Trainer owns the classifier lifecycle: load a matching cached artifact,
// or fit a new forest and persist it for reuse.
type Trainer struct {
	modelPath string
	cfg       forest.Config
}

// New creates a trainer persisting its artifact at modelPath
func New(modelPath string, cfg forest.Config) *Trainer {
	return &Trainer{modelPath: modelPath, cfg: cfg}
}

// Classifier returns a forest fitted to the dataset. A cached artifact is
// reused only when its fingerprint matches the dataset. On persistence
// failure the freshly fitted in-memory forest is still returned alongside
// the TrainingError so prediction can proceed.
func (t *Trainer) Classifier(ds *dataset.Dataset) (*forest.Forest, error) {
	fingerprint := Fingerprint(ds)

	if cached := t.loadArtifact(fingerprint); cached != nil {
		return cached, nil
	}

	features, labels, err := BuildMatrix(ds)
	if err != nil {
		return nil, &TrainingError{Op: "fit", Err: err}
	}

	f, err := forest.Train(features, labels, t.cfg)
	if err != nil {
		return nil, &TrainingError{Op: "fit", Err: err}
	}

	if err := t.persist(f, fingerprint, ds.Len()); err != nil {
		return f, &TrainingError{Op: "persist", Err: err}
	}
	return f, nil
}

func (t *Trainer) loadArtifact(fingerprint string) *forest.Forest {
	data, err := os.ReadFile(t.modelPath)
	if err != nil {
		return nil
	}
	var a artifact
	if err := json.Unmarshal(data, &a); err != nil {
		log.Printf("Ignoring unreadable model artifact %s: %v", t.modelPath, err)
		return nil
	}
	if a.Fingerprint != fingerprint {
		log.Printf("Model artifact %s is stale (dataset changed), retraining", t.modelPath)
		return nil
	}
	return a.Forest
}

func (t *Trainer) persist(f *forest.Forest, fingerprint string, rows int) error {
	if err := os.MkdirAll(filepath.Dir(t.modelPath), 0o755); err != nil {
		return err
	}
	data, err := json.Marshal(artifact{
		Fingerprint: fingerprint,
		TrainedAt:   time.Now().UTC(),
		Rows:        rows,
		Forest:      f,
	})
	if err != nil {
		return err
	}
	return os.WriteFile(t.modelPath, data, 0o644)
}

// BuildMatrix converts the cleaned dataset into the training matrix in
// the assembler's column order. Textual answer cells get the same binary
// transform the answer codec applies at prediction time, including the
// item-10 reversal; non-coercible cells default to 0 and no row is ever
// dropped.
func BuildMatrix(ds *dataset.Dataset) ([][]float64, []int, error) {
	if ds.Len() == 0 {
		return nil, nil, fmt.Errorf("dataset has no rows")
	}

	features := make([][]float64, ds.Len())
	labels := make([]int, ds.Len())

	for row := 0; row < ds.Len(); row++ {
		vec := make([]float64, 0, scoring.NumFeatures)
		for i, col := range scoring.FeatureColumns {
			cell := ds.Value(row, col)
			// ParseFloat accepts "nan"/"inf" spellings; those cells are
			// textual garbage, not numbers, and take the default path.
			if v, err := strconv.ParseFloat(strings.TrimSpace(cell), 64); err == nil && !math.IsNaN(v) && !math.IsInf(v, 0) {
				vec = append(vec, v)
				continue
			}
			if i < 10 {
				// Raw textual answer column: same binary transform the
				// codec applies at prediction time, with out-of-vocabulary
				// tokens defaulting to 0.
				vec = append(vec, float64(scoring.EncodeCell(cell, i)))
				continue
			}
			vec = append(vec, 0)
		}
		features[row] = vec

		if v, err := strconv.ParseFloat(ds.Value(row, scoring.LabelColumn), 64); err == nil && v == 1 {
			labels[row] = 1
		}
	}
	return features, labels, nil
}

// Fingerprint hashes the dataset schema, row count and every training
// cell. Any corpus change invalidates the persisted artifact.
func Fingerprint(ds *dataset.Dataset) string {
	h := sha256.New()
	for _, col := range scoring.FeatureColumns {
		io.WriteString(h, col)
		io.WriteString(h, "\x1f")
	}
	io.WriteString(h, scoring.LabelColumn)
	fmt.Fprintf(h, "\x1e%d\x1e", ds.Len())

	for row := 0; row < ds.Len(); row++ {
		for _, col := range scoring.FeatureColumns {
			io.WriteString(h, ds.Value(row, col))
			io.WriteString(h, "\x1f")
		}
		io.WriteString(h, ds.Value(row, scoring.LabelColumn))
		io.WriteString(h, "\x1e")
	}
	return hex.EncodeToString(h.Sum(nil))
}
