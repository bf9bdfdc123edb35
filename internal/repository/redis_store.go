// internal/repository/redis_store.go
package repository

import (
	"context"
	"encoding/json"

	"github.com/go-redis/redis/v8"

	"github.com/davquint/callcampaign-backend/internal/model"
)

// RedisStore keeps the whole campaign collection as a single JSON blob
// under one key. Cheap to run and good enough for the collection sizes
// this service handles; a missing key just means nothing was saved yet.
type RedisStore struct {
	client *redis.Client
	key    string
}

func NewRedisStore(addr, key string) (*RedisStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr: addr,
	})
	if err := client.Ping(context.Background()).Err(); err != nil {
		return nil, err
	}
	return &RedisStore{client: client, key: key}, nil
}

func (s *RedisStore) LoadAll() ([]model.Campaign, error) {
	val, err := s.client.Get(context.Background(), s.key).Result()
	if err == redis.Nil {
		return []model.Campaign{}, nil
	}
	if err != nil {
		return nil, err
	}

	var campaigns []model.Campaign
	if err := json.Unmarshal([]byte(val), &campaigns); err != nil {
		return nil, err
	}
	return campaigns, nil
}

func (s *RedisStore) SaveAll(campaigns []model.Campaign) error {
	data, err := json.Marshal(campaigns)
	if err != nil {
		return err
	}
	return s.client.Set(context.Background(), s.key, data, 0).Err()
}

var _ CampaignStore = (*RedisStore)(nil)
