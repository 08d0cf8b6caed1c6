package service

import (
	"context"
	"fmt"
	"time"

	"asdscreen/internal/model"
)

// Disclaimer shown on every generated report. Screening is an estimate,
// never a diagnosis.
const Disclaimer = "This screening provides an estimate based on the Q-Chat-10 questionnaire " +
	"and a machine learning model. It is not a diagnosis. Consult a healthcare professional " +
	"for a formal assessment."

// ReportService generates the narrative screening report
type ReportService struct {
	screeningSvc *ScreeningService
}

// NewReportService creates a new report service
func NewReportService(screeningSvc *ScreeningService) *ReportService {
	return &ReportService{screeningSvc: screeningSvc}
}

// Generate builds the report for one screening. Returns nil when the
// screening does not exist.
func (s *ReportService) Generate(ctx context.Context, screeningID string) (*model.ScreeningReport, error) {
	screening, err := s.screeningSvc.Get(ctx, screeningID)
	if err != nil {
		return nil, err
	}
	if screening == nil {
		return nil, nil
	}

	result := screening.Result
	band := model.BandForScore(result.QChatScore)

	report := &model.ScreeningReport{
		ScreeningID:      screening.ID,
		QChatScore:       result.QChatScore,
		Band:             band,
		RuleLabel:        result.RuleLabel,
		ModelProbability: result.ModelProbability,
		Summary: fmt.Sprintf(
			"Q-Chat-10 score of %d out of 10 (%s inclination). Threshold rule: %s. Model confidence of ASD traits: %.2f.",
			result.QChatScore, band, result.RuleLabel, result.ModelProbability),
		ItemNotes:   itemNotes(result.BinaryAnswers),
		Guidance:    guidance(band),
		Disclaimer:  Disclaimer,
		GeneratedAt: time.Now().UTC(),
	}
	return report, nil
}

// itemNotes lists the questionnaire items that scored toward ASD traits
func itemNotes(binary []int) []string {
	var notes []string
	for i, v := range binary {
		if v == 1 && i < len(model.Questions) {
			notes = append(notes, fmt.Sprintf("Item %d: %s", i+1, model.Questions[i]))
		}
	}
	return notes
}

func guidance(band string) string {
	switch band {
	case model.BandLow:
		return "The score falls in the low inclination range. No immediate follow-up is indicated; repeat the screening if new concerns arise."
	case model.BandModerate:
		return "The score falls in the moderate inclination range. Consider discussing the result with a pediatrician at the next visit."
	default:
		return "The score falls in the high inclination range. A referral to a developmental specialist for a full assessment is recommended."
	}
}
