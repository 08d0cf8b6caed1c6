package scoring

// FeatureColumns is the exact column order the classifier consumes.
// The trained model is order-sensitive; reordering this slice is a
// correctness bug, not a tuning knob.
var FeatureColumns = []string{
	"A1", "A2", "A3", "A4", "A5", "A6", "A7", "A8", "A9", "A10",
	"Jaundice", "Family_mem_with_ASD", "Age_Mons",
}

// LabelColumn is the ground-truth column in the training dataset
const LabelColumn = "Class ASD Traits"

// NumFeatures is the width of the feature vector
var NumFeatures = len(FeatureColumns)

// Assemble builds the 13-value feature vector from the ten binary answers
// plus the jaundice flag, family-history flag and age in months. Age is
// passed through unclamped; range enforcement belongs to the form.
func Assemble(binary []int, jaundice, familyHistory bool, ageMonths int) ([]float64, error) {
	if len(binary) != 10 {
		return nil, &LengthMismatchError{Want: 10, Got: len(binary)}
	}

	features := make([]float64, 0, NumFeatures)
	for _, v := range binary {
		features = append(features, float64(v))
	}
	features = append(features, boolToFloat(jaundice), boolToFloat(familyHistory), float64(ageMonths))
	return features, nil
}

func boolToFloat(b bool) float64 {
	if b {
		return 1
	}
	return 0
}
