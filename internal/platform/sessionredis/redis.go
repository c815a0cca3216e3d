package sessionredis

import (
	"context"
	"wastetrack/internal/platform/config"

	"github.com/redis/go-redis/v9"
)

// Connect opens the Redis client backing the distributed session store.
func Connect(ctx context.Context) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisDB,
	})

	if _, err := rdb.Ping(ctx).Result(); err != nil {
		return nil, err
	}
	return rdb, nil
}
