package scoring

import "fmt"

// InvalidAnswerError reports a questionnaire token outside the Q-Chat-10 vocabulary
type InvalidAnswerError struct {
	Item   int    // zero-based item index
	Answer string // raw token as received
}

func (e *InvalidAnswerError) Error() string {
	return fmt.Sprintf("invalid answer for question %d: %q", e.Item+1, e.Answer)
}

// LengthMismatchError reports a binary answer vector of the wrong size
type LengthMismatchError struct {
	Want int
	Got  int
}

func (e *LengthMismatchError) Error() string {
	return fmt.Sprintf("expected %d binary answers, got %d", e.Want, e.Got)
}

// PredictionError wraps any failure during inference. A prediction that
// fails produces no result at all; callers must never read a zero score
// or probability out of a failed prediction.
type PredictionError struct {
	Stage string // "decode", "assemble" or "inference"
	Err   error
}

func (e *PredictionError) Error() string {
	return fmt.Sprintf("prediction failed during %s: %v", e.Stage, e.Err)
}

func (e *PredictionError) Unwrap() error { return e.Err }
