package trainer

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"asdscreen/internal/dataset"
	"asdscreen/internal/forest"
)

const header = "A1,A2,A3,A4,A5,A6,A7,A8,A9,A10,Age_Mons,Jaundice,Family_mem_with_ASD,Class ASD Traits"

func testConfig() forest.Config {
	return forest.Config{Trees: 15, MaxDepth: 4, Seed: 42, Balanced: true}
}

// loadFixture writes a small numeric corpus and loads it: even rows are
// clear negatives, odd rows clear positives.
func loadFixture(t *testing.T, rows int) *dataset.Dataset {
	t.Helper()
	var sb strings.Builder
	sb.WriteString(header + "\n")
	for i := 0; i < rows; i++ {
		if i%2 == 0 {
			sb.WriteString("0,0,0,0,0,0,0,0,0,0,24,no,no,No\n")
		} else {
			sb.WriteString("1,1,1,1,1,1,1,1,1,1,30,yes,yes,YES\n")
		}
	}
	path := filepath.Join(t.TempDir(), "corpus.csv")
	if err := os.WriteFile(path, []byte(sb.String()), 0o644); err != nil {
		t.Fatal(err)
	}
	ds, err := dataset.Load(path)
	if err != nil {
		t.Fatal(err)
	}
	return ds
}

func TestClassifier_TrainsAndPersists(t *testing.T) {
	ds := loadFixture(t, 40)
	modelPath := filepath.Join(t.TempDir(), "models", "forest.json")

	f, err := New(modelPath, testConfig()).Classifier(ds)
	if err != nil {
		t.Fatalf("Classifier returned error: %v", err)
	}

	proba, err := f.PredictProba([]float64{1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 30})
	if err != nil {
		t.Fatal(err)
	}
	if proba < 0.7 {
		t.Errorf("probability for positive-shaped input = %v, want >= 0.7", proba)
	}

	if _, err := os.Stat(modelPath); err != nil {
		t.Errorf("artifact was not persisted: %v", err)
	}
}

func TestClassifier_ReusesMatchingArtifact(t *testing.T) {
	ds := loadFixture(t, 20)
	modelPath := filepath.Join(t.TempDir(), "forest.json")

	if _, err := New(modelPath, testConfig()).Classifier(ds); err != nil {
		t.Fatal(err)
	}

	// Replace the persisted forest with a recognizable stand-in, keeping
	// the fingerprint. A cache hit must return it untouched.
	sentinel := &forest.Forest{
		NumFeatures: 13,
		Trees:       []forest.Tree{{Nodes: []forest.Node{{Feature: -1, Left: -1, Right: -1, Proba: 0.123}}}},
	}
	data, err := json.Marshal(artifact{Fingerprint: Fingerprint(ds), Forest: sentinel})
	if err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(modelPath, data, 0o644); err != nil {
		t.Fatal(err)
	}

	f, err := New(modelPath, testConfig()).Classifier(ds)
	if err != nil {
		t.Fatal(err)
	}
	proba, err := f.PredictProba(make([]float64, 13))
	if err != nil {
		t.Fatal(err)
	}
	if proba != 0.123 {
		t.Errorf("probability = %v, want the cached sentinel 0.123", proba)
	}
}

func TestClassifier_StaleArtifactRetrains(t *testing.T) {
	modelPath := filepath.Join(t.TempDir(), "forest.json")

	first := loadFixture(t, 20)
	if _, err := New(modelPath, testConfig()).Classifier(first); err != nil {
		t.Fatal(err)
	}

	second := loadFixture(t, 26) // different corpus
	if _, err := New(modelPath, testConfig()).Classifier(second); err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(modelPath)
	if err != nil {
		t.Fatal(err)
	}
	var a artifact
	if err := json.Unmarshal(data, &a); err != nil {
		t.Fatal(err)
	}
	if a.Fingerprint != Fingerprint(second) {
		t.Error("artifact was not refreshed for the changed dataset")
	}
	if a.Rows != 26 {
		t.Errorf("artifact rows = %d, want 26", a.Rows)
	}
}

func TestClassifier_PersistFailureStillReturnsModel(t *testing.T) {
	ds := loadFixture(t, 20)

	// Parent "directory" is a regular file so persistence cannot succeed.
	blocker := filepath.Join(t.TempDir(), "blocker")
	if err := os.WriteFile(blocker, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	modelPath := filepath.Join(blocker, "forest.json")

	f, err := New(modelPath, testConfig()).Classifier(ds)
	if f == nil {
		t.Fatal("in-memory model must be returned despite persistence failure")
	}
	var trainErr *TrainingError
	if !errors.As(err, &trainErr) {
		t.Fatalf("got %T, want *TrainingError", err)
	}
	if trainErr.Op != "persist" {
		t.Errorf("op = %q, want persist", trainErr.Op)
	}

	if _, err := f.PredictProba(make([]float64, 13)); err != nil {
		t.Errorf("returned model is not usable: %v", err)
	}
}

func TestBuildMatrix_TextualAnswerColumns(t *testing.T) {
	content := header + "\n" +
		"Sometimes,Rarely,Never,Always,Usually,Sometimes,Never,Always,Rarely,Always,28,yes,no,YES\n"
	path := filepath.Join(t.TempDir(), "corpus.csv")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	ds, err := dataset.Load(path)
	if err != nil {
		t.Fatal(err)
	}

	features, labels, err := BuildMatrix(ds)
	if err != nil {
		t.Fatal(err)
	}

	// Items 1-9 score on sometimes/rarely/never; item 10 is reversed and
	// "Always" scores 1 there. The vector tail follows the assembler's
	// column order: Jaundice, Family_mem_with_ASD, Age_Mons.
	want := []float64{1, 1, 1, 0, 0, 1, 1, 0, 1, 1, 1, 0, 28}
	for i, v := range want {
		if features[0][i] != v {
			t.Errorf("features[0][%d] = %v, want %v", i, features[0][i], v)
		}
	}
	if labels[0] != 1 {
		t.Errorf("label = %d, want 1", labels[0])
	}
}

func TestBuildMatrix_FloatSpellingsDefaultToZero(t *testing.T) {
	// "nan"/"inf" cells parse under ParseFloat but are not numbers here;
	// answer columns fall back to the binary transform's 0 default and
	// Age_Mons defaults to 0 outright.
	content := header + "\n" +
		"nan,inf,Always,Always,Always,Always,Always,Always,Always,Never,NaN,yes,no,YES\n"
	path := filepath.Join(t.TempDir(), "corpus.csv")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	ds, err := dataset.Load(path)
	if err != nil {
		t.Fatal(err)
	}

	features, _, err := BuildMatrix(ds)
	if err != nil {
		t.Fatal(err)
	}

	want := []float64{0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 1, 0, 0}
	for i, v := range want {
		if features[0][i] != v {
			t.Errorf("features[0][%d] = %v, want %v", i, features[0][i], v)
		}
	}
}

func TestBuildMatrix_RowCountParity(t *testing.T) {
	ds := loadFixture(t, 17)
	features, labels, err := BuildMatrix(ds)
	if err != nil {
		t.Fatal(err)
	}
	if len(features) != 17 || len(labels) != 17 {
		t.Errorf("got %d rows / %d labels, want 17 each", len(features), len(labels))
	}
}

func TestFingerprint_TracksContent(t *testing.T) {
	a := loadFixture(t, 10)
	b := loadFixture(t, 10)
	if Fingerprint(a) != Fingerprint(b) {
		t.Error("identical corpora must share a fingerprint")
	}
	c := loadFixture(t, 11)
	if Fingerprint(a) == Fingerprint(c) {
		t.Error("different corpora must not share a fingerprint")
	}
	if len(Fingerprint(a)) != 64 {
		t.Errorf("fingerprint length = %d, want 64 hex chars", len(Fingerprint(a)))
	}
}
