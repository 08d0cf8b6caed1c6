package service

import (
	"context"
	"log"

	"github.com/google/uuid"

	"asdscreen/internal/cache"
	"asdscreen/internal/model"
	"asdscreen/internal/repository"
	"asdscreen/internal/scoring"
)

// ScreeningService runs one submission through the scoring engine and
// fans the verdict out to storage, the corpus, the caches and live
// monitors. The classifier is read-only after construction, so concurrent
// submissions share it safely.
type ScreeningService struct {
	predictor *scoring.Predictor
	clf       scoring.Classifier
	threshold int

	screeningRepo repository.ScreeningRepo
	corpusRepo    repository.CorpusRepo
	resultCache   cache.ResultCache
	statsCache    cache.StatsCache
	broadcaster   Broadcaster
}

// NewScreeningService creates a new screening service
func NewScreeningService(
	predictor *scoring.Predictor,
	clf scoring.Classifier,
	threshold int,
	screeningRepo repository.ScreeningRepo,
	corpusRepo repository.CorpusRepo,
	resultCache cache.ResultCache,
	statsCache cache.StatsCache,
) *ScreeningService {
	return &ScreeningService{
		predictor:     predictor,
		clf:           clf,
		threshold:     threshold,
		screeningRepo: screeningRepo,
		corpusRepo:    corpusRepo,
		resultCache:   resultCache,
		statsCache:    statsCache,
	}
}

// SetBroadcaster injects the live-monitor hub
func (s *ScreeningService) SetBroadcaster(b Broadcaster) {
	s.broadcaster = b
}

// Submit scores one questionnaire submission and persists the outcome.
// Prediction failures propagate to the caller; post-verdict side channels
// (corpus append, caches, broadcast) degrade to log lines so a storage
// hiccup never hides a computed result.
func (s *ScreeningService) Submit(ctx context.Context, req *model.ScreeningRequest) (*model.Screening, error) {
	input := scoring.Input{
		Answers:       req.Answers,
		Jaundice:      scoring.EncodeYesNo(req.Jaundice) == 1,
		FamilyHistory: scoring.EncodeYesNo(req.FamilyHistory) == 1,
		AgeMonths:     req.AgeMonths,
	}

	result, warnings, err := s.predictor.Predict(s.clf, input, s.threshold)
	if err != nil {
		return nil, err
	}

	screening := &model.Screening{
		ID:               uuid.New().String(),
		Answers:          req.Answers,
		Jaundice:         scoring.EncodeYesNo(req.Jaundice),
		FamilyHistory:    scoring.EncodeYesNo(req.FamilyHistory),
		AgeMonths:        req.AgeMonths,
		Sex:              req.Sex,
		Ethnicity:        req.Ethnicity,
		WhoCompletedTest: req.WhoCompletedTest,
		Result:           *result,
		Warnings:         warnings,
	}

	if err := s.screeningRepo.Create(ctx, screening); err != nil {
		return nil, err
	}

	s.appendToCorpus(ctx, screening)

	if err := s.resultCache.Set(ctx, screening); err != nil {
		log.Printf("Failed to cache screening %s: %v", screening.ID, err)
	}
	if err := s.statsCache.IncrementScore(ctx, result.QChatScore); err != nil {
		log.Printf("Failed to update score distribution: %v", err)
	}

	if s.broadcaster != nil {
		s.broadcaster.BroadcastToMonitors("screening_completed", map[string]interface{}{
			"screeningId": screening.ID,
			"qchatScore":  result.QChatScore,
			"ruleLabel":   result.RuleLabel,
			"band":        model.BandForScore(result.QChatScore),
		})
		if dist, err := s.statsCache.GetDistribution(ctx); err == nil {
			s.broadcaster.BroadcastToMonitors("stats_update", dist)
		}
	}

	return screening, nil
}

// appendToCorpus writes the labeled feedback row. The label comes from
// the rule path at append time; the provenance tag keeps these rows
// distinguishable from curated training data until a human verifies them.
func (s *ScreeningService) appendToCorpus(ctx context.Context, screening *model.Screening) {
	label := 0
	if screening.Result.RuleLabel == model.LabelYes {
		label = 1
	}

	row := &model.CorpusRow{
		ID:               uuid.New().String(),
		ScreeningID:      screening.ID,
		Answers:          screening.Result.BinaryAnswers,
		QChatScore:       screening.Result.QChatScore,
		AgeMonths:        screening.AgeMonths,
		Sex:              screening.Sex,
		Ethnicity:        screening.Ethnicity,
		Jaundice:         screening.Jaundice,
		FamilyHistory:    screening.FamilyHistory,
		WhoCompletedTest: screening.WhoCompletedTest,
		Label:            label,
		ModelProbability: screening.Result.ModelProbability,
		Provenance:       model.ProvenanceUserSubmitted,
	}
	if err := s.corpusRepo.Append(ctx, row); err != nil {
		log.Printf("Failed to append screening %s to corpus: %v", screening.ID, err)
	}
}

// Get retrieves one screening, trying the cache before MongoDB
func (s *ScreeningService) Get(ctx context.Context, id string) (*model.Screening, error) {
	if cached, err := s.resultCache.Get(ctx, id); err == nil && cached != nil {
		return cached, nil
	}
	return s.screeningRepo.GetByID(ctx, id)
}

// List returns the most recent screenings for the clinician view
func (s *ScreeningService) List(ctx context.Context, limit int64) ([]*model.Screening, error) {
	return s.screeningRepo.List(ctx, limit)
}
