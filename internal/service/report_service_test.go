package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"asdscreen/internal/model"
)

func reportFixtures(stored *model.Screening) *ReportService {
	f := newFixtures(&stubClassifier{proba: 0.5}, true)
	if stored != nil {
		f.screenings.byID[stored.ID] = stored
	}
	return NewReportService(f.svc)
}

func TestGenerate_HighBandReport(t *testing.T) {
	screening := &model.Screening{
		ID: "scr-1",
		Result: model.PredictionResult{
			QChatScore:       8,
			RuleLabel:        model.LabelYes,
			ModelProbability: 0.91,
			BinaryAnswers:    []int{1, 1, 0, 1, 1, 1, 0, 1, 1, 1},
		},
	}
	svc := reportFixtures(screening)

	report, err := svc.Generate(context.Background(), "scr-1")
	require.NoError(t, err)
	require.NotNil(t, report)

	assert.Equal(t, "scr-1", report.ScreeningID)
	assert.Equal(t, 8, report.QChatScore)
	assert.Equal(t, model.BandHigh, report.Band)
	assert.Equal(t, model.LabelYes, report.RuleLabel)
	assert.Contains(t, report.Summary, "score of 8 out of 10")
	assert.Contains(t, report.Guidance, "developmental specialist")
	assert.Equal(t, Disclaimer, report.Disclaimer)
	assert.False(t, report.GeneratedAt.IsZero())

	// One note per item that scored 1, with the question text.
	require.Len(t, report.ItemNotes, 8)
	assert.Contains(t, report.ItemNotes[0], "Item 1:")
	assert.Contains(t, report.ItemNotes[0], model.Questions[0])
}

func TestGenerate_LowBandGuidance(t *testing.T) {
	screening := &model.Screening{
		ID: "scr-2",
		Result: model.PredictionResult{
			QChatScore:       1,
			RuleLabel:        model.LabelNo,
			ModelProbability: 0.04,
			BinaryAnswers:    []int{0, 0, 0, 0, 1, 0, 0, 0, 0, 0},
		},
	}
	svc := reportFixtures(screening)

	report, err := svc.Generate(context.Background(), "scr-2")
	require.NoError(t, err)
	assert.Equal(t, model.BandLow, report.Band)
	assert.Contains(t, report.Guidance, "No immediate follow-up")
	require.Len(t, report.ItemNotes, 1)
	assert.Contains(t, report.ItemNotes[0], "Item 5:")
}

func TestGenerate_UnknownScreening(t *testing.T) {
	svc := reportFixtures(nil)

	report, err := svc.Generate(context.Background(), "missing")
	require.NoError(t, err)
	assert.Nil(t, report)
}
