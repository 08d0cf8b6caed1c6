package model

import "time"

// Rule labels produced by the score-threshold decision path
const (
	LabelYes = "YES"
	LabelNo  = "NO"
)

// ProvenanceUserSubmitted marks corpus rows appended from live submissions,
// keeping them separable from curated training data.
const ProvenanceUserSubmitted = "user-submitted, unverified"

// ScreeningRequest is one questionnaire submission from a form client
type ScreeningRequest struct {
	Answers          []string `json:"answers"`          // 10 raw Q-Chat-10 answers
	Jaundice         string   `json:"jaundice"`         // yes/no
	FamilyHistory    string   `json:"familyHistory"`    // yes/no, family member with ASD
	AgeMonths        int      `json:"ageMonths"`        // 12-48 per the form, unclamped here
	Sex              string   `json:"sex,omitempty"`    // m/f, demographic only
	Ethnicity        string   `json:"ethnicity,omitempty"`
	WhoCompletedTest string   `json:"whoCompletedTest,omitempty"`
}

// PredictionResult carries both decision signals for one submission.
// The rule label and the model probability are reported side by side and
// deliberately not reconciled; presentation is the caller's call.
type PredictionResult struct {
	QChatScore       int     `json:"qchatScore" bson:"qchatScore"`             // 0-10
	RuleLabel        string  `json:"ruleLabel" bson:"ruleLabel"`               // YES/NO from score > threshold
	ModelProbability float64 `json:"modelProbability" bson:"modelProbability"` // class-1 probability, 0-1
	BinaryAnswers    []int   `json:"binaryAnswers" bson:"binaryAnswers"`       // 10 encoded item indicators
}

// Screening is one persisted submission with its verdict
type Screening struct {
	ID               string           `json:"id" bson:"_id,omitempty"`
	Answers          []string         `json:"answers" bson:"answers"`
	Jaundice         int              `json:"jaundice" bson:"jaundice"`
	FamilyHistory    int              `json:"familyHistory" bson:"familyHistory"`
	AgeMonths        int              `json:"ageMonths" bson:"ageMonths"`
	Sex              string           `json:"sex,omitempty" bson:"sex,omitempty"`
	Ethnicity        string           `json:"ethnicity,omitempty" bson:"ethnicity,omitempty"`
	WhoCompletedTest string           `json:"whoCompletedTest,omitempty" bson:"whoCompletedTest,omitempty"`
	Result           PredictionResult `json:"result" bson:"result"`
	Warnings         []string         `json:"warnings,omitempty" bson:"warnings,omitempty"` // lenient-mode decode notes
	SubmittedAt      time.Time        `json:"submittedAt" bson:"submittedAt"`
}

// CorpusRow is one labeled record in the training corpus collection.
// Rows appended from live submissions keep the rule label and the model
// probability separately so the human-verified label can overwrite later.
type CorpusRow struct {
	ID               string    `json:"id" bson:"_id,omitempty"`
	ScreeningID      string    `json:"screeningId,omitempty" bson:"screeningId,omitempty"`
	Answers          []int     `json:"answers" bson:"answers"` // A1..A10 binary indicators
	QChatScore       int       `json:"qchatScore" bson:"qchatScore"`
	AgeMonths        int       `json:"ageMonths" bson:"ageMonths"`
	Sex              string    `json:"sex,omitempty" bson:"sex,omitempty"`
	Ethnicity        string    `json:"ethnicity,omitempty" bson:"ethnicity,omitempty"`
	Jaundice         int       `json:"jaundice" bson:"jaundice"`
	FamilyHistory    int       `json:"familyHistory" bson:"familyHistory"`
	WhoCompletedTest string    `json:"whoCompletedTest,omitempty" bson:"whoCompletedTest,omitempty"`
	Label            int       `json:"label" bson:"label"` // Class ASD Traits, from the rule path at append time
	ModelProbability float64   `json:"modelProbability" bson:"modelProbability"`
	Provenance       string    `json:"provenance" bson:"provenance"`
	AppendedAt       time.Time `json:"appendedAt" bson:"appendedAt"`
}
