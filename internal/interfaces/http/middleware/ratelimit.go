package middleware

import (
	"net/http"
	"strconv"

	"github.com/crm/backend/internal/infrastructure/ratelimit"
	"github.com/crm/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// KeyFunc extracts the rate limit key from a request. Requests that
// return an empty key are not limited.
type KeyFunc func(c *gin.Context) string

// KeyByClientIP limits per client IP
func KeyByClientIP() KeyFunc {
	return func(c *gin.Context) string {
		return "ip:" + c.ClientIP()
	}
}

// KeyByHeader limits per value of the given request header
func KeyByHeader(header string) KeyFunc {
	return func(c *gin.Context) string {
		value := c.GetHeader(header)
		if value == "" {
			return ""
		}
		return header + ":" + value
	}
}

// RateLimitConfig holds configuration for rate limit middleware
type RateLimitConfig struct {
	Limiter *ratelimit.Limiter
	KeyFunc KeyFunc
	// Logger for middleware logging
	Logger *zap.Logger
}

// RateLimit creates middleware that enforces the limiter per request key.
// Limiter failures fail open; throttling is protection, not correctness.
func RateLimit(cfg RateLimitConfig) gin.HandlerFunc {
	keyFunc := cfg.KeyFunc
	if keyFunc == nil {
		keyFunc = KeyByClientIP()
	}

	return func(c *gin.Context) {
		key := keyFunc(c)
		if key == "" {
			c.Next()
			return
		}

		allowed, err := cfg.Limiter.Allow(c.Request.Context(), key)
		if err != nil {
			if cfg.Logger != nil {
				cfg.Logger.Error("Rate limit check failed",
					zap.String("key", key),
					zap.Error(err))
			}
			c.Next()
			return
		}

		c.Writer.Header().Set("X-RateLimit-Limit", strconv.Itoa(cfg.Limiter.Limit()))

		if !allowed {
			if cfg.Logger != nil {
				cfg.Logger.Warn("Rate limit exceeded",
					zap.String("key", key),
					zap.String("path", c.Request.URL.Path))
			}
			c.Writer.Header().Set("Retry-After", strconv.Itoa(int(cfg.Limiter.Window().Seconds())))
			c.AbortWithStatusJSON(http.StatusTooManyRequests,
				dto.NewErrorResponse(dto.ErrCodeRateLimited, "Too many requests, slow down"))
			return
		}

		c.Next()
	}
}
