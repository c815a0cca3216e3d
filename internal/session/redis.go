package session

import (
	"context"
	"encoding/json"
	"errors"
	"time"
	"wastetrack/internal/common"
	"wastetrack/internal/domain/model"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const redisKeyPrefix = "session:"

// RedisStore keeps sessions in Redis so lookups stay consistent across
// process instances. Expiry rides on the key TTL.
type RedisStore struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewRedisStore(rdb *redis.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{rdb: rdb, ttl: ttl}
}

func (s *RedisStore) Create(ctx context.Context, p model.Principal) (string, error) {
	token := uuid.NewString()
	data, err := json.Marshal(p)
	if err != nil {
		return "", common.Errorf("failed to marshal principal: %w", err)
	}
	if err := s.rdb.Set(ctx, redisKeyPrefix+token, data, s.ttl).Err(); err != nil {
		return "", common.Errorf("failed to store session: %w", err)
	}
	return token, nil
}

func (s *RedisStore) Resolve(ctx context.Context, token string) (*model.Principal, error) {
	data, err := s.rdb.Get(ctx, redisKeyPrefix+token).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, common.ErrUnauthorized
		}
		return nil, common.Errorf("failed to fetch session: %w", err)
	}
	var p model.Principal
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, common.Errorf("failed to unmarshal principal: %w", err)
	}
	return &p, nil
}

func (s *RedisStore) Destroy(ctx context.Context, token string) error {
	if err := s.rdb.Del(ctx, redisKeyPrefix+token).Err(); err != nil {
		return common.Errorf("failed to delete session: %w", err)
	}
	return nil
}
