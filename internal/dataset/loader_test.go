package dataset

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func writeCSV(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "toddlers.csv")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

const cleanHeader = "Case_No,A1,A2,A3,A4,A5,A6,A7,A8,A9,A10,Age_Mons,Qchat-10-Score,Sex,Ethnicity,Jaundice,Family_mem_with_ASD,Who_completed_the_test,Class ASD Traits"

func TestLoad_CleanSource(t *testing.T) {
	path := writeCSV(t, cleanHeader+"\n"+
		"1,0,0,0,0,0,0,1,1,0,1,28,3,f,middle eastern,yes,no,family member,No\n"+
		"2,1,1,0,0,0,1,1,0,0,0,36,4,m,White European,Yes,no,family member,YES\n")

	d, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if d.Len() != 2 {
		t.Fatalf("got %d rows, want 2 (rows must never be dropped)", d.Len())
	}

	if got := d.Value(0, "Jaundice"); got != "1" {
		t.Errorf("Jaundice[0] = %q, want \"1\"", got)
	}
	if got := d.Value(0, "Family_mem_with_ASD"); got != "0" {
		t.Errorf("Family_mem_with_ASD[0] = %q, want \"0\"", got)
	}
	if got := d.Value(0, "Class ASD Traits"); got != "0" {
		t.Errorf("label[0] = %q, want \"0\"", got)
	}
	if got := d.Value(1, "Class ASD Traits"); got != "1" {
		t.Errorf("label[1] = %q, want \"1\"", got)
	}
	if d.Defaulted != 0 {
		t.Errorf("Defaulted = %d, want 0 for a clean source", d.Defaulted)
	}
}

func TestLoad_MissingColumnsAllNamed(t *testing.T) {
	// No Age_Mons and no label column.
	path := writeCSV(t, "A1,A2,A3,A4,A5,A6,A7,A8,A9,A10,Jaundice,Family_mem_with_ASD\n"+
		"1,0,0,0,0,0,0,1,1,0,yes,no\n")

	_, err := Load(path)
	var schemaErr *SchemaError
	if !errors.As(err, &schemaErr) {
		t.Fatalf("got %T, want *SchemaError", err)
	}
	want := []string{"Age_Mons", "Class ASD Traits"}
	if !reflect.DeepEqual(schemaErr.Missing, want) {
		t.Errorf("missing = %v, want %v", schemaErr.Missing, want)
	}
}

func TestLoad_SourceUnavailable(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.csv"))
	var srcErr *SourceUnavailableError
	if !errors.As(err, &srcErr) {
		t.Fatalf("got %T, want *SourceUnavailableError", err)
	}
}

func TestLoad_TrimsHeaderWhitespaceAndBOM(t *testing.T) {
	path := writeCSV(t, "\ufeff A1 ,A2,A3,A4,A5,A6,A7,A8,A9,A10, Age_Mons ,Jaundice,Family_mem_with_ASD, Class ASD Traits \n"+
		"1,0,0,0,0,0,0,1,1,0,28,yes,no,No\n")

	d, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if !d.HasColumn("A1") || !d.HasColumn("Age_Mons") {
		t.Error("trimmed columns not found")
	}
	if got := d.Value(0, "A1"); got != "1" {
		t.Errorf("A1[0] = %q, want \"1\"", got)
	}
}

func TestLoad_NonCoercibleDefaultsToZero(t *testing.T) {
	path := writeCSV(t, "A1,A2,A3,A4,A5,A6,A7,A8,A9,A10,Age_Mons,Jaundice,Family_mem_with_ASD,Class ASD Traits\n"+
		"1,0,0,0,0,0,0,1,1,0,28,nan,definitely,Unknown\n")

	d, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if d.Len() != 1 {
		t.Fatalf("row was dropped; defaulting is the policy, not dropping")
	}
	if got := d.Value(0, "Jaundice"); got != "0" {
		t.Errorf("Jaundice = %q, want \"0\"", got)
	}
	if got := d.Value(0, "Family_mem_with_ASD"); got != "0" {
		t.Errorf("Family_mem_with_ASD = %q, want \"0\"", got)
	}
	if got := d.Value(0, "Class ASD Traits"); got != "0" {
		t.Errorf("label = %q, want \"0\"", got)
	}
	if d.Defaulted != 3 {
		t.Errorf("Defaulted = %d, want 3", d.Defaulted)
	}
}

func TestLoad_FloatSpellingsAreNotNumbers(t *testing.T) {
	// ParseFloat accepts "nan" and "inf" spellings; the coercers must
	// treat them as garbage, not pass them through as numeric cells.
	path := writeCSV(t, "A1,A2,A3,A4,A5,A6,A7,A8,A9,A10,Age_Mons,Jaundice,Family_mem_with_ASD,Class ASD Traits\n"+
		"1,0,0,0,0,0,0,1,1,0,28,nan,inf,NaN\n"+
		"1,0,0,0,0,0,0,1,1,0,28,+Inf,-inf,Infinity\n")

	d, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	for row := 0; row < d.Len(); row++ {
		for _, col := range []string{"Jaundice", "Family_mem_with_ASD", "Class ASD Traits"} {
			if got := d.Value(row, col); got != "0" {
				t.Errorf("%s[%d] = %q, want \"0\"", col, row, got)
			}
		}
	}
	if d.Defaulted != 6 {
		t.Errorf("Defaulted = %d, want 6", d.Defaulted)
	}
}

func TestLoad_NumericColumnsPassThrough(t *testing.T) {
	path := writeCSV(t, "A1,A2,A3,A4,A5,A6,A7,A8,A9,A10,Age_Mons,Jaundice,Family_mem_with_ASD,Class ASD Traits\n"+
		"1,0,0,0,0,0,0,1,1,0,28,1,0,1\n")

	d, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if got := d.Value(0, "Jaundice"); got != "1" {
		t.Errorf("Jaundice = %q, want \"1\"", got)
	}
	if got := d.Value(0, "Class ASD Traits"); got != "1" {
		t.Errorf("label = %q, want \"1\"", got)
	}
}

func TestLoad_Idempotent(t *testing.T) {
	content := cleanHeader + "\n" +
		"1,0,0,0,0,0,0,1,1,0,1,28,3,f,middle eastern,yes,no,family member,No\n"
	path := writeCSV(t, content)

	first, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	second, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(first.Columns, second.Columns) {
		t.Error("columns differ across identical loads")
	}
	if !reflect.DeepEqual(first.Rows, second.Rows) {
		t.Error("rows differ across identical loads")
	}
}
