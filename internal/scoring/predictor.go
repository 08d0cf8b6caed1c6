package scoring

import (
	"asdscreen/internal/model"
)

// Classifier is the read-only surface of a trained model. Implementations
// must be safe for concurrent use; the predictor never mutates them.
type Classifier interface {
	PredictProba(features []float64) (float64, error)
}

// Input is one decoded-at-the-boundary screening submission
type Input struct {
	Answers       []string // 10 raw Q-Chat-10 answers
	Jaundice      bool
	FamilyHistory bool
	AgeMonths     int
}

// Predictor orchestrates the answer codec, the feature assembler and the
// classifier into one verdict per submission. It holds no per-call state
// and is safe for concurrent use.
type Predictor struct {
	codec Codec
}

// NewPredictor creates a predictor with the given invalid-answer policy
func NewPredictor(strict bool) *Predictor {
	return &Predictor{codec: Codec{Strict: strict}}
}

// Predict produces the combined verdict: the Q-Chat-10 sum score, the
// threshold rule label (YES strictly above threshold) and the classifier's
// class-1 probability. The two signals are reported side by side and not
// reconciled. On any failure the result is nil; a failed prediction never
// degrades into a zero score or probability.
func (p *Predictor) Predict(clf Classifier, in Input, threshold int) (*model.PredictionResult, []string, error) {
	binary, warnings, err := p.codec.EncodeAll(in.Answers)
	if err != nil {
		return nil, nil, &PredictionError{Stage: "decode", Err: err}
	}

	score := 0
	for _, v := range binary {
		score += v
	}

	ruleLabel := model.LabelNo
	if score > threshold {
		ruleLabel = model.LabelYes
	}

	features, err := Assemble(binary, in.Jaundice, in.FamilyHistory, in.AgeMonths)
	if err != nil {
		return nil, nil, &PredictionError{Stage: "assemble", Err: err}
	}

	proba, err := clf.PredictProba(features)
	if err != nil {
		return nil, nil, &PredictionError{Stage: "inference", Err: err}
	}

	return &model.PredictionResult{
		QChatScore:       score,
		RuleLabel:        ruleLabel,
		ModelProbability: proba,
		BinaryAnswers:    binary,
	}, warnings, nil
}
