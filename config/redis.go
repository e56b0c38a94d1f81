package config

import (
	"fmt"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

var RedisClient *redis.Client

func ConnectRedis(cfg *Config) error {
	opt, err := redis.ParseURL(cfg.Redis.URL)
	if err != nil {
		return fmt.Errorf("invalid redis url: %w", err)
	}

	client := redis.NewClient(opt)

	ctx, cancel := WithTimeout()
	defer cancel()

	// test connection
	res, err := client.Ping(ctx).Result()
	if err != nil {
		_ = client.Close()
		return fmt.Errorf("failed to connect to Redis: %w", err)
	}

	RedisClient = client
	zap.L().Info("✅ connected to Redis", zap.String("ping", res))
	return nil
}

func CloseRedis() {
	if RedisClient != nil {
		_ = RedisClient.Close()
	}
}
