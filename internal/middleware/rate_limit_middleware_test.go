package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

// memoryCounter считает попытки в памяти без учета окна
type memoryCounter struct {
	mu     sync.Mutex
	counts map[string]int64
	err    error
}

func (m *memoryCounter) Hit(_ context.Context, key string, window time.Duration) (int64, time.Duration, error) {
	if m.err != nil {
		return 0, 0, m.err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.counts == nil {
		m.counts = make(map[string]int64)
	}
	m.counts[key]++
	return m.counts[key], window, nil
}

func newLimitedRouter(rl *RateLimiter) *gin.Engine {
	r := gin.New()
	r.POST("/login", rl.LimitByIP(LoginRateLimitConfig(2, time.Minute)), func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})
	return r
}

func postLogin(r *gin.Engine, ip string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/login", nil)
	req.RemoteAddr = ip + ":1234"
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRateLimiter_NilCounterPassesThrough(t *testing.T) {
	r := newLimitedRouter(NewRateLimiter(nil))

	for i := 0; i < 5; i++ {
		assert.Equal(t, http.StatusNoContent, postLogin(r, "10.0.0.1").Code)
	}
}

func TestRateLimiter_BlocksAfterLimit(t *testing.T) {
	r := newLimitedRouter(NewRateLimiter(&memoryCounter{}))

	w := postLogin(r, "10.0.0.1")
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "2", w.Header().Get("X-RateLimit-Limit"))
	assert.Equal(t, "1", w.Header().Get("X-RateLimit-Remaining"))

	assert.Equal(t, http.StatusNoContent, postLogin(r, "10.0.0.1").Code)

	w = postLogin(r, "10.0.0.1")
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Equal(t, "60", w.Header().Get("Retry-After"))
	assert.Contains(t, w.Body.String(), "rate_limited")

	// Другой IP считается отдельно
	assert.Equal(t, http.StatusNoContent, postLogin(r, "10.0.0.2").Code)
}

func TestRateLimiter_FailOpenOnCounterError(t *testing.T) {
	r := newLimitedRouter(NewRateLimiter(&memoryCounter{err: errors.New("connection refused")}))

	for i := 0; i < 3; i++ {
		w := postLogin(r, "10.0.0.1")
		assert.Equal(t, http.StatusNoContent, w.Code)
		assert.Empty(t, w.Header().Get("X-RateLimit-Limit"))
	}
}
