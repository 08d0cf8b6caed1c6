package service

import (
	"context"
	"log"

	"asdscreen/internal/cache"
	"asdscreen/internal/model"
	"asdscreen/internal/repository"
)

// StatsSnapshot is the analysis dashboard payload
type StatsSnapshot struct {
	Distribution       *model.ScoreDistribution `json:"distribution"`
	UnverifiedRows     int64                    `json:"unverifiedRows"`     // corpus rows pending human review
	CuratedDatasetRows int                      `json:"curatedDatasetRows"` // rows in the training CSV
}

// StatsService serves the live score distribution for the analysis view
type StatsService struct {
	statsCache  cache.StatsCache
	corpusRepo  repository.CorpusRepo
	curatedRows int
}

// NewStatsService creates a new stats service. curatedRows is the row
// count of the training CSV loaded at startup.
func NewStatsService(statsCache cache.StatsCache, corpusRepo repository.CorpusRepo, curatedRows int) *StatsService {
	return &StatsService{
		statsCache:  statsCache,
		corpusRepo:  corpusRepo,
		curatedRows: curatedRows,
	}
}

// Snapshot returns the current distribution plus corpus counters
func (s *StatsService) Snapshot(ctx context.Context) (*StatsSnapshot, error) {
	dist, err := s.statsCache.GetDistribution(ctx)
	if err != nil {
		return nil, err
	}

	unverified, err := s.corpusRepo.CountByProvenance(ctx, model.ProvenanceUserSubmitted)
	if err != nil {
		log.Printf("Failed to count unverified corpus rows: %v", err)
		unverified = 0
	}

	return &StatsSnapshot{
		Distribution:       dist,
		UnverifiedRows:     unverified,
		CuratedDatasetRows: s.curatedRows,
	}, nil
}
