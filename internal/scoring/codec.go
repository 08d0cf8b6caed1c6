package scoring

import (
	"fmt"
	"strings"
)

// reverseScoredItem is the zero-based index of Q-Chat-10 item 10, which is
// inverse-phrased ("stares at nothing") and scored opposite to items 1-9.
const reverseScoredItem = 9

var vocabulary = map[string]bool{
	"always":    true,
	"usually":   true,
	"sometimes": true,
	"rarely":    true,
	"never":     true,
}

// Codec converts raw Q-Chat-10 answers into binary indicators.
// With Strict set, malformed answers fail with InvalidAnswerError;
// otherwise they default to "never" and the warning is returned to the
// caller, mirroring the exploratory form behavior.
type Codec struct {
	Strict bool
}

// Encode converts one raw answer for the given item into {0,1}.
// The returned warning is non-empty only when a malformed answer was
// defaulted under the lenient policy.
func (c Codec) Encode(raw string, item int) (int, string, error) {
	if item < 0 || item >= 10 {
		return 0, "", fmt.Errorf("item index %d out of range [0,9]", item)
	}

	ans := strings.ToLower(strings.TrimSpace(raw))
	warning := ""
	if !vocabulary[ans] {
		if c.Strict {
			return 0, "", &InvalidAnswerError{Item: item, Answer: raw}
		}
		warning = fmt.Sprintf("invalid answer for question %d: %q, defaulting to 'never'", item+1, raw)
		ans = "never"
	}

	return mapBinary(ans, item), warning, nil
}

// mapBinary applies the frequency-to-indicator rule to a normalized token.
// Items 1-9 score on {sometimes, rarely, never}; the inverse-phrased item
// 10 scores on {always, usually, sometimes}.
func mapBinary(ans string, item int) int {
	if item == reverseScoredItem {
		if ans == "always" || ans == "usually" || ans == "sometimes" {
			return 1
		}
		return 0
	}
	if ans == "sometimes" || ans == "rarely" || ans == "never" {
		return 1
	}
	return 0
}

// EncodeCell applies the binary mapping without vocabulary enforcement.
// Tokens outside the vocabulary score 0, which is the documented
// default-to-zero policy for training-table cells.
func EncodeCell(raw string, item int) int {
	return mapBinary(strings.ToLower(strings.TrimSpace(raw)), item)
}

// EncodeAll converts a full 10-answer response, collecting lenient-mode
// warnings. It fails on the first malformed answer under the strict policy.
func (c Codec) EncodeAll(raw []string) ([]int, []string, error) {
	if len(raw) != 10 {
		return nil, nil, &LengthMismatchError{Want: 10, Got: len(raw)}
	}

	binary := make([]int, 10)
	var warnings []string
	for i, ans := range raw {
		v, warning, err := c.Encode(ans, i)
		if err != nil {
			return nil, nil, err
		}
		if warning != "" {
			warnings = append(warnings, warning)
		}
		binary[i] = v
	}
	return binary, warnings, nil
}

// EncodeYesNo maps a trimmed, case-insensitive yes/no token to {1,0}.
// Anything other than "yes" counts as no, matching the dataset convention.
func EncodeYesNo(s string) int {
	if strings.ToLower(strings.TrimSpace(s)) == "yes" {
		return 1
	}
	return 0
}
