package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/crm/backend/internal/infrastructure/ratelimit"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func rateLimitTestRouter(cfg RateLimitConfig) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(RateLimit(cfg))
	router.GET("/test", func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})
	return router
}

func TestRateLimit(t *testing.T) {
	t.Run("allows requests within limit", func(t *testing.T) {
		limiter := ratelimit.NewLimiter(ratelimit.NewMemoryStore(), 3, time.Minute)
		router := rateLimitTestRouter(RateLimitConfig{Limiter: limiter})

		for i := 0; i < 3; i++ {
			w := httptest.NewRecorder()
			router.ServeHTTP(w, httptest.NewRequest("GET", "/test", nil))
			assert.Equal(t, http.StatusOK, w.Code, "request %d should pass", i+1)
		}
	})

	t.Run("rejects requests over the limit with 429", func(t *testing.T) {
		limiter := ratelimit.NewLimiter(ratelimit.NewMemoryStore(), 2, time.Minute)
		router := rateLimitTestRouter(RateLimitConfig{Limiter: limiter})

		for i := 0; i < 2; i++ {
			w := httptest.NewRecorder()
			router.ServeHTTP(w, httptest.NewRequest("GET", "/test", nil))
			assert.Equal(t, http.StatusOK, w.Code)
		}

		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest("GET", "/test", nil))

		assert.Equal(t, http.StatusTooManyRequests, w.Code)
		assert.Contains(t, w.Body.String(), "ERR_RATE_LIMITED")
		assert.Equal(t, "60", w.Header().Get("Retry-After"))
	})

	t.Run("limits per header key independently", func(t *testing.T) {
		limiter := ratelimit.NewLimiter(ratelimit.NewMemoryStore(), 1, time.Minute)
		router := rateLimitTestRouter(RateLimitConfig{
			Limiter: limiter,
			KeyFunc: KeyByHeader("X-API-Key"),
		})

		first := httptest.NewRequest("GET", "/test", nil)
		first.Header.Set("X-API-Key", "key-a")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, first)
		assert.Equal(t, http.StatusOK, w.Code)

		repeat := httptest.NewRequest("GET", "/test", nil)
		repeat.Header.Set("X-API-Key", "key-a")
		w = httptest.NewRecorder()
		router.ServeHTTP(w, repeat)
		assert.Equal(t, http.StatusTooManyRequests, w.Code)

		other := httptest.NewRequest("GET", "/test", nil)
		other.Header.Set("X-API-Key", "key-b")
		w = httptest.NewRecorder()
		router.ServeHTTP(w, other)
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("skips requests without a key", func(t *testing.T) {
		limiter := ratelimit.NewLimiter(ratelimit.NewMemoryStore(), 1, time.Minute)
		router := rateLimitTestRouter(RateLimitConfig{
			Limiter: limiter,
			KeyFunc: KeyByHeader("X-API-Key"),
		})

		for i := 0; i < 3; i++ {
			w := httptest.NewRecorder()
			router.ServeHTTP(w, httptest.NewRequest("GET", "/test", nil))
			assert.Equal(t, http.StatusOK, w.Code)
		}
	})

	t.Run("sets rate limit header on allowed requests", func(t *testing.T) {
		limiter := ratelimit.NewLimiter(ratelimit.NewMemoryStore(), 10, time.Minute)
		router := rateLimitTestRouter(RateLimitConfig{Limiter: limiter})

		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest("GET", "/test", nil))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "10", w.Header().Get("X-RateLimit-Limit"))
	})
}
