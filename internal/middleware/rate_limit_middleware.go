package middleware

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/yourusername/quiz-api/internal/domain/repository"
)

// RateLimitConfig содержит настройки rate limiting
type RateLimitConfig struct {
	// MaxRequests: максимальное количество запросов за Window
	MaxRequests int
	// Window: окно подсчета попыток
	Window time.Duration
	// KeyPrefix: префикс ключей счетчика
	KeyPrefix string
}

// LoginRateLimitConfig лимит попыток входа (защита от перебора паролей)
func LoginRateLimitConfig(maxRequests int, window time.Duration) RateLimitConfig {
	return RateLimitConfig{
		MaxRequests: maxRequests,
		Window:      window,
		KeyPrefix:   "rl:session",
	}
}

// RateLimiter ограничивает частоту запросов с помощью счетчика попыток.
// Без счетчика все запросы пропускаются.
type RateLimiter struct {
	counter repository.AttemptCounter
}

// NewRateLimiter создает новый RateLimiter; counter может быть nil
func NewRateLimiter(counter repository.AttemptCounter) *RateLimiter {
	return &RateLimiter{counter: counter}
}

// LimitByIP ограничивает количество запросов по IP без привязки к маршруту
func (rl *RateLimiter) LimitByIP(cfg RateLimitConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		rl.apply(c, cfg, fmt.Sprintf("%s:%s", cfg.KeyPrefix, c.ClientIP()))
	}
}

func (rl *RateLimiter) apply(c *gin.Context, cfg RateLimitConfig, key string) {
	if rl.counter == nil || cfg.MaxRequests <= 0 {
		c.Next()
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	count, resetIn, err := rl.counter.Hit(ctx, key, cfg.Window)
	if err != nil {
		// При ошибке хранилища пропускаем запрос (fail-open), но логируем
		log.Printf("[RateLimiter] Counter error for key %s: %v. Allowing request (fail-open).", key, err)
		c.Next()
		return
	}

	remaining := cfg.MaxRequests - int(count)
	if remaining < 0 {
		remaining = 0
	}

	retryAfter := int(resetIn.Seconds())
	if retryAfter <= 0 {
		retryAfter = int(cfg.Window.Seconds())
	}

	c.Header("X-RateLimit-Limit", fmt.Sprintf("%d", cfg.MaxRequests))
	c.Header("X-RateLimit-Remaining", fmt.Sprintf("%d", remaining))
	c.Header("X-RateLimit-Reset", fmt.Sprintf("%d", retryAfter))

	if int(count) > cfg.MaxRequests {
		log.Printf("[RateLimiter] Rate limit exceeded for key=%s. Count=%d, Limit=%d", key, count, cfg.MaxRequests)

		c.Header("Retry-After", fmt.Sprintf("%d", retryAfter))
		c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
			"error":       "Too many requests. Please try again later.",
			"error_type":  "rate_limited",
			"retry_after": retryAfter,
		})
		return
	}

	c.Next()
}
