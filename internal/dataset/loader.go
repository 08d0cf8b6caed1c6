package dataset

import (
	"encoding/csv"
	"io"
	"log"
	"math"
	"os"
	"strconv"
	"strings"

	"asdscreen/internal/scoring"
)

// Dataset is the cleaned training table. It is never mutated after Load
// returns; callers treat it as read-only.
type Dataset struct {
	Columns []string
	Rows    [][]string
	// Defaulted counts cells that could not be coerced and fell back to 0.
	// Defaulting is the documented lossy policy; rows are never dropped,
	// so row count always matches the source file.
	Defaulted int

	colIdx map[string]int
}

// Len returns the number of data rows
func (d *Dataset) Len() int { return len(d.Rows) }

// Value returns the cell at the given row for a named column.
// Unknown columns return the empty string.
func (d *Dataset) Value(row int, col string) string {
	idx, ok := d.colIdx[col]
	if !ok || row < 0 || row >= len(d.Rows) {
		return ""
	}
	return d.Rows[row][idx]
}

// HasColumn reports whether the source file carried the named column
func (d *Dataset) HasColumn(col string) bool {
	_, ok := d.colIdx[col]
	return ok
}

// Load reads and cleans the training CSV. Column names are
// whitespace-trimmed, the yes/no columns and the label column are coerced
// to {0,1}, and every required feature column plus the label must be
// present. Loading the same clean source twice yields identical datasets.
func Load(path string) (*Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &SourceUnavailableError{Path: path, Err: err}
	}
	defer f.Close()

	reader := csv.NewReader(f)
	header, err := reader.Read()
	if err != nil {
		return nil, &SourceUnavailableError{Path: path, Err: err}
	}

	// UTF-8 signature bytes, if present, ride on the first column name.
	header[0] = strings.TrimPrefix(header[0], "\ufeff")

	columns := make([]string, len(header))
	colIdx := make(map[string]int, len(header))
	for i, col := range header {
		name := strings.TrimSpace(col)
		columns[i] = name
		colIdx[name] = i
	}

	var missing []string
	for _, col := range append(append([]string{}, scoring.FeatureColumns...), scoring.LabelColumn) {
		if _, ok := colIdx[col]; !ok {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return nil, &SchemaError{Missing: missing}
	}

	var rows [][]string
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, &SourceUnavailableError{Path: path, Err: err}
		}
		rows = append(rows, record)
	}

	d := &Dataset{Columns: columns, Rows: rows, colIdx: colIdx}

	for _, col := range []string{"Jaundice", "Family_mem_with_ASD"} {
		d.coerceColumn(col, coerceYesNo)
	}
	d.coerceColumn(scoring.LabelColumn, coerceLabel)

	if d.Defaulted > 0 {
		log.Printf("Dataset %s: defaulted %d non-coercible cells to 0", path, d.Defaulted)
	}
	return d, nil
}

func (d *Dataset) coerceColumn(col string, coerce func(string) (string, bool)) {
	idx := d.colIdx[col]
	for _, row := range d.Rows {
		val, defaulted := coerce(row[idx])
		row[idx] = val
		if defaulted {
			d.Defaulted++
		}
	}
}

// coerceYesNo maps yes/no text to 1/0 and passes numeric cells through.
// Anything else, including literal "nan", defaults to 0.
func coerceYesNo(cell string) (string, bool) {
	switch strings.ToLower(strings.TrimSpace(cell)) {
	case "yes":
		return "1", false
	case "no":
		return "0", false
	}
	if v, ok := parseFinite(cell); ok {
		return strconv.Itoa(int(v)), false
	}
	return "0", true
}

// coerceLabel maps the ground-truth column: "YES" is positive, numeric
// cells pass through, everything else defaults to 0.
func coerceLabel(cell string) (string, bool) {
	trimmed := strings.TrimSpace(cell)
	if strings.EqualFold(trimmed, "yes") {
		return "1", false
	}
	if strings.EqualFold(trimmed, "no") {
		return "0", false
	}
	if v, ok := parseFinite(trimmed); ok {
		return strconv.Itoa(int(v)), false
	}
	return "0", true
}

// parseFinite parses a finite numeric cell. ParseFloat accepts "nan" and
// "inf" spellings, which must fall through to the default-to-0 path
// instead of passing as numbers.
func parseFinite(cell string) (float64, bool) {
	v, err := strconv.ParseFloat(strings.TrimSpace(cell), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}
