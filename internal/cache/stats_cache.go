package cache

import (
	"context"
	"fmt"
	"strconv"

	"github.com/redis/go-redis/v9"

	"asdscreen/internal/model"
)

const scoreHistKey = "stats:qchat_scores"

// StatsCache maintains the live Q-Chat-10 score histogram backing the
// analysis dashboard
type StatsCache interface {
	IncrementScore(ctx context.Context, score int) error
	GetDistribution(ctx context.Context) (*model.ScoreDistribution, error)
}

type statsCache struct {
	client *redis.Client
}

// NewStatsCache creates a new stats cache
func NewStatsCache(client *redis.Client) StatsCache {
	return &statsCache{
		client: client,
	}
}

func (c *statsCache) IncrementScore(ctx context.Context, score int) error {
	if score < 0 || score > 10 {
		return fmt.Errorf("score %d outside [0,10]", score)
	}
	return c.client.HIncrBy(ctx, scoreHistKey, strconv.Itoa(score), 1).Err()
}

func (c *statsCache) GetDistribution(ctx context.Context) (*model.ScoreDistribution, error) {
	fields, err := c.client.HGetAll(ctx, scoreHistKey).Result()
	if err != nil {
		return nil, err
	}

	dist := &model.ScoreDistribution{}
	for field, value := range fields {
		score, err := strconv.Atoi(field)
		if err != nil || score < 0 || score > 10 {
			continue
		}
		count, err := strconv.ParseInt(value, 10, 64)
		if err != nil {
			continue
		}
		dist.Counts[score] = count
		dist.Total += count
		switch model.BandForScore(score) {
		case model.BandLow:
			dist.BandCounts.Low += count
		case model.BandModerate:
			dist.BandCounts.Moderate += count
		default:
			dist.BandCounts.High += count
		}
	}
	return dist, nil
}
