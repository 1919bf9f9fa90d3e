package chain

import (
	"context"
	"fmt"
	"lummy/models"
	"strconv"

	"github.com/redis/go-redis/v9"
)

const DefaultIndexKey = "events:index"

// RedisSource reads a redis mirror of the event registry: identifiers live in
// a list, each event's fields in a hash named "event:<id>".
type RedisSource struct {
	Redis    *redis.Client
	indexKey string
}

func NewRedisSource(redisClient *redis.Client, indexKey string) *RedisSource {
	if indexKey == "" {
		indexKey = DefaultIndexKey
	}
	return &RedisSource{Redis: redisClient, indexKey: indexKey}
}

func eventKey(id string) string {
	return fmt.Sprintf("event:%s", id)
}

func (s *RedisSource) ListEvents(ctx context.Context) ([]string, error) {
	return s.Redis.LRange(ctx, s.indexKey, 0, -1).Result()
}

func (s *RedisSource) GetEventDetails(ctx context.Context, id string) (*models.EventDetails, error) {
	fields, err := s.Redis.HGetAll(ctx, eventKey(id)).Result()
	if err != nil {
		return nil, err
	}
	if len(fields) == 0 {
		return nil, nil
	}

	details := &models.EventDetails{
		Name:         fields["name"],
		Description:  fields["description"],
		Venue:        fields["venue"],
		IPFSMetadata: fields["ipfs_metadata"],
		Organizer:    fields["organizer"],
	}
	if raw := fields["date"]; raw != "" {
		date, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("event %s: invalid date %q: %w", id, raw, err)
		}
		details.Date = date
	}
	return details, nil
}
