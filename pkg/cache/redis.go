package cache

import (
	"context"
	"log"

	"github.com/redis/go-redis/v9"

	"social-service/configs"
)

func NewRedis(cfg *configs.Config) *redis.Client {
	rdb := redis.NewClient(&redis.Options{
		Addr: cfg.RedisAddr(),
	})

	if err := rdb.Ping(context.Background()).Err(); err != nil {
		log.Fatalf("Redis ping failed: %v", err)
	}

	return rdb
}
