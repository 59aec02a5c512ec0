package database

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/yourusername/quiz-api/internal/config"
)

// ErrRedisDisabled возвращается, если в конфигурации не задан ни один адрес Redis
var ErrRedisDisabled = errors.New("redis is not configured")

const redisPingTimeout = 5 * time.Second

// redisOptions собирает UniversalOptions из конфигурации и проверяет режим работы
func redisOptions(cfg config.RedisConfig) (*redis.UniversalOptions, string, error) {
	if !cfg.Enabled() {
		return nil, "", ErrRedisDisabled
	}

	addresses := cfg.Addrs
	if len(addresses) == 0 {
		addresses = []string{cfg.Addr}
	}

	options := &redis.UniversalOptions{
		Addrs:    addresses,
		Password: cfg.Password,
		DB:       cfg.DB,
	}
	if cfg.MaxRetries != 0 {
		options.MaxRetries = cfg.MaxRetries
	}
	if cfg.MinRetryBackoff != 0 {
		options.MinRetryBackoff = time.Duration(cfg.MinRetryBackoff) * time.Millisecond
	}
	if cfg.MaxRetryBackoff != 0 {
		options.MaxRetryBackoff = time.Duration(cfg.MaxRetryBackoff) * time.Millisecond
	}

	mode := cfg.Mode
	if mode == "" {
		mode = "single"
	}

	switch mode {
	case "sentinel":
		if cfg.MasterName == "" {
			return nil, mode, fmt.Errorf("redis sentinel mode requires MasterName")
		}
		options.MasterName = cfg.MasterName
	case "single":
		// Несколько адресов без MasterName превратили бы клиент в кластерный
		options.Addrs = addresses[:1]
	case "cluster":
	default:
		return nil, mode, fmt.Errorf("unsupported redis mode: %s", mode)
	}
	return options, mode, nil
}

// NewUniversalRedisClient создает клиент Redis (single, sentinel или cluster) и проверяет подключение.
// Если Redis не настроен, возвращает ErrRedisDisabled.
func NewUniversalRedisClient(ctx context.Context, cfg config.RedisConfig) (redis.UniversalClient, error) {
	options, mode, err := redisOptions(cfg)
	if err != nil {
		return nil, err
	}

	client := redis.NewUniversalClient(options)

	pingCtx, cancel := context.WithTimeout(ctx, redisPingTimeout)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to Redis (mode: %s, addrs: %v): %w", mode, options.Addrs, err)
	}
	return client, nil
}
