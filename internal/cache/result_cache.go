package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"asdscreen/internal/model"
)

// ResultCache keeps recent screening results hot for report generation
type ResultCache interface {
	Set(ctx context.Context, screening *model.Screening) error
	Get(ctx context.Context, id string) (*model.Screening, error)
	Delete(ctx context.Context, id string) error
}

type resultCache struct {
	client *redis.Client
}

// NewResultCache creates a new result cache
func NewResultCache(client *redis.Client) ResultCache {
	return &resultCache{
		client: client,
	}
}

func (c *resultCache) Set(ctx context.Context, screening *model.Screening) error {
	data, err := json.Marshal(screening)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, "screening:"+screening.ID, data, 30*time.Minute).Err()
}

func (c *resultCache) Get(ctx context.Context, id string) (*model.Screening, error) {
	data, err := c.client.Get(ctx, "screening:"+id).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var screening model.Screening
	err = json.Unmarshal([]byte(data), &screening)
	return &screening, err
}

func (c *resultCache) Delete(ctx context.Context, id string) error {
	return c.client.Del(ctx, "screening:"+id).Err()
}
