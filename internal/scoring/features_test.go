package scoring

import (
	"errors"
	"testing"
)

func TestAssemble_ColumnOrder(t *testing.T) {
	binary := []int{1, 0, 1, 0, 1, 0, 1, 0, 1, 0}
	features, err := Assemble(binary, true, false, 24)
	if err != nil {
		t.Fatalf("Assemble returned error: %v", err)
	}
	if len(features) != NumFeatures {
		t.Fatalf("got %d features, want %d", len(features), NumFeatures)
	}

	// Reconstruct field by field against the declared column order.
	want := map[string]float64{
		"A1": 1, "A2": 0, "A3": 1, "A4": 0, "A5": 1,
		"A6": 0, "A7": 1, "A8": 0, "A9": 1, "A10": 0,
		"Jaundice":            1,
		"Family_mem_with_ASD": 0,
		"Age_Mons":            24,
	}
	for i, col := range FeatureColumns {
		if features[i] != want[col] {
			t.Errorf("features[%d] (%s) = %v, want %v", i, col, features[i], want[col])
		}
	}
}

func TestAssemble_AgeUnclamped(t *testing.T) {
	binary := make([]int, 10)
	features, err := Assemble(binary, false, false, 240)
	if err != nil {
		t.Fatalf("Assemble returned error: %v", err)
	}
	if got := features[NumFeatures-1]; got != 240 {
		t.Errorf("Age_Mons = %v, want 240 (engine must not clamp)", got)
	}
}

func TestAssemble_LengthMismatch(t *testing.T) {
	_, err := Assemble([]int{1, 0, 1}, false, false, 24)
	var lenErr *LengthMismatchError
	if !errors.As(err, &lenErr) {
		t.Fatalf("got %T, want *LengthMismatchError", err)
	}
	if lenErr.Want != 10 || lenErr.Got != 3 {
		t.Errorf("got want=%d got=%d, expected want=10 got=3", lenErr.Want, lenErr.Got)
	}
}

func TestFeatureColumns_Fixed(t *testing.T) {
	want := []string{
		"A1", "A2", "A3", "A4", "A5", "A6", "A7", "A8", "A9", "A10",
		"Jaundice", "Family_mem_with_ASD", "Age_Mons",
	}
	if len(FeatureColumns) != len(want) {
		t.Fatalf("got %d columns, want %d", len(FeatureColumns), len(want))
	}
	for i := range want {
		if FeatureColumns[i] != want[i] {
			t.Errorf("FeatureColumns[%d] = %q, want %q", i, FeatureColumns[i], want[i])
		}
	}
}
