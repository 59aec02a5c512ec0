package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

// AttemptCounter реализует repository.AttemptCounter на счетчиках Redis (INCR + EXPIRE)
type AttemptCounter struct {
	client redis.UniversalClient
}

// NewAttemptCounter создает счетчик попыток и возвращает ошибку без клиента Redis
func NewAttemptCounter(client redis.UniversalClient) (*AttemptCounter, error) {
	if client == nil {
		return nil, fmt.Errorf("Redis client cannot be nil for AttemptCounter")
	}
	return &AttemptCounter{client: client}, nil
}

// Hit увеличивает счетчик; первая попытка в окне устанавливает TTL
func (r *AttemptCounter) Hit(ctx context.Context, key string, window time.Duration) (int64, time.Duration, error) {
	count, err := r.client.Incr(ctx, key).Result()
	if err != nil {
		return 0, 0, fmt.Errorf("incr %s: %w", key, err)
	}

	if count == 1 {
		if err := r.client.Expire(ctx, key, window).Err(); err != nil {
			return count, window, fmt.Errorf("expire %s: %w", key, err)
		}
		return count, window, nil
	}

	ttl, err := r.client.TTL(ctx, key).Result()
	if err != nil {
		return count, window, fmt.Errorf("ttl %s: %w", key, err)
	}
	// Ключ без TTL (например, EXPIRE не выполнился после сбоя) живет вечно; чиним
	if ttl < 0 {
		if err := r.client.Expire(ctx, key, window).Err(); err != nil {
			return count, window, fmt.Errorf("expire %s: %w", key, err)
		}
		ttl = window
	}
	return count, ttl, nil
}
