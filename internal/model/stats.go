package model

import "time"

// Score bands used by the analysis dashboard and the report generator.
// Bands follow the Q-Chat-10 inclination scale: 0-3 low, 4-6 moderate, 7-10 high.
const (
	BandLow      = "low"
	BandModerate = "moderate"
	BandHigh     = "high"
)

// BandForScore maps a Q-Chat-10 score to its inclination band
func BandForScore(score int) string {
	switch {
	case score <= 3:
		return BandLow
	case score <= 6:
		return BandModerate
	default:
		return BandHigh
	}
}

// ScoreDistribution is the live histogram of submitted Q-Chat-10 scores
type ScoreDistribution struct {
	Counts     [11]int64 `json:"counts"` // index = score 0..10
	Total      int64     `json:"total"`
	BandCounts struct {
		Low      int64 `json:"low"`
		Moderate int64 `json:"moderate"`
		High     int64 `json:"high"`
	} `json:"bandCounts"`
}

// ScreeningReport is the generated narrative for one screening
type ScreeningReport struct {
	ScreeningID      string    `json:"screeningId"`
	QChatScore       int       `json:"qchatScore"`
	Band             string    `json:"band"`
	RuleLabel        string    `json:"ruleLabel"`
	ModelProbability float64   `json:"modelProbability"`
	Summary          string    `json:"summary"`
	ItemNotes        []string  `json:"itemNotes,omitempty"` // items that scored toward ASD traits
	Guidance         string    `json:"guidance"`
	Disclaimer       string    `json:"disclaimer"`
	GeneratedAt      time.Time `json:"generatedAt"`
}
