package middleware

import (
	"crypto/subtle"
	"net/http"

	"github.com/crm/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// APIKeyHeader carries the shared secret on machine-to-machine calls
const APIKeyHeader = "X-API-Key"

// APIKeyAuthConfig holds configuration for shared-secret authentication
type APIKeyAuthConfig struct {
	Key    string
	Logger *zap.Logger
}

// APIKeyAuth creates middleware that authenticates requests against a
// shared secret. An empty configured key rejects everything; the compare
// is constant time.
func APIKeyAuth(cfg APIKeyAuthConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		presented := c.GetHeader(APIKeyHeader)
		if cfg.Key == "" || presented == "" ||
			subtle.ConstantTimeCompare([]byte(cfg.Key), []byte(presented)) != 1 {
			if cfg.Logger != nil {
				cfg.Logger.Warn("API key authentication failed",
					zap.String("path", c.Request.URL.Path))
			}
			c.AbortWithStatusJSON(http.StatusUnauthorized,
				dto.NewErrorResponse(dto.ErrCodeUnauthorized, "Invalid API key"))
			return
		}
		c.Next()
	}
}
