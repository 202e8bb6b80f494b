package tokens

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

const redisKeyPrefix = "nyxlicense:admin_token:"

// RedisStore keeps admin tokens in Redis with a per-key TTL, so every
// instance behind a load balancer sees the same token set and expiry is
// enforced by Redis itself.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisStore creates a Redis-backed token store with the given TTL.
func NewRedisStore(client *redis.Client, ttl time.Duration) *RedisStore {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &RedisStore{client: client, ttl: ttl}
}

func (s *RedisStore) Issue() (string, error) {
	token, err := newToken()
	if err != nil {
		return "", err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := s.client.Set(ctx, redisKeyPrefix+token, "1", s.ttl).Err(); err != nil {
		return "", err
	}
	return token, nil
}

func (s *RedisStore) IsValid(token string) bool {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	n, err := s.client.Exists(ctx, redisKeyPrefix+token).Result()
	return err == nil && n > 0
}
