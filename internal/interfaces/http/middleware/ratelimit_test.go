package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newFrozenLimiter(t *testing.T, limit int, window time.Duration) (*RateLimiter, *time.Time) {
	t.Helper()
	rl := NewRateLimiter(limit, window)
	t.Cleanup(rl.Close)

	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	rl.now = func() time.Time { return now }
	return rl, &now
}

func TestRateLimiter_Allow(t *testing.T) {
	rl, now := newFrozenLimiter(t, 3, time.Minute)

	for i := 0; i < 3; i++ {
		assert.True(t, rl.Allow("a"), "request %d", i)
	}
	assert.False(t, rl.Allow("a"))
	assert.True(t, rl.Allow("b"), "keys are independent")

	// one token per 20s
	*now = now.Add(20 * time.Second)
	assert.True(t, rl.Allow("a"))
	assert.False(t, rl.Allow("a"))
}

func TestRateLimiter_RemainingAndRetryAfter(t *testing.T) {
	rl, _ := newFrozenLimiter(t, 2, 10*time.Second)

	assert.Equal(t, 2, rl.Remaining("a"))
	require.True(t, rl.Allow("a"))
	assert.Equal(t, 1, rl.Remaining("a"))
	require.True(t, rl.Allow("a"))
	assert.Equal(t, 0, rl.Remaining("a"))
	assert.Equal(t, 5*time.Second, rl.RetryAfter("a"))

	// RetryAfter must not consume the token it measures
	assert.Equal(t, 5*time.Second, rl.RetryAfter("a"))
}

func TestRateLimiter_EvictIdle(t *testing.T) {
	rl, now := newFrozenLimiter(t, 1, time.Minute)
	rl.Allow("old")
	*now = now.Add(3 * time.Minute)
	rl.Allow("fresh")

	rl.evictIdle()

	rl.mu.Lock()
	defer rl.mu.Unlock()
	assert.NotContains(t, rl.clients, "old")
	assert.Contains(t, rl.clients, "fresh")
}

func TestRateLimitMiddleware(t *testing.T) {
	rl, _ := newFrozenLimiter(t, 2, time.Minute)

	router := gin.New()
	router.Use(RateLimit(rl))
	router.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	send := func() *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.RemoteAddr = "10.0.0.1:1234"
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		return w
	}

	w := send()
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "2", w.Header().Get("X-RateLimit-Limit"))
	assert.Equal(t, "1", w.Header().Get("X-RateLimit-Remaining"))

	assert.Equal(t, http.StatusOK, send().Code)

	w = send()
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Equal(t, "0", w.Header().Get("X-RateLimit-Remaining"))
	assert.Equal(t, "30", w.Header().Get("Retry-After"))
	assert.JSONEq(t, `{"detail": "Request was throttled."}`, w.Body.String())
}
