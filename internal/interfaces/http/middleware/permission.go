package middleware

import (
	"net/http"

	"github.com/crm/backend/internal/domain/identity"
	"github.com/crm/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// RoleConfig holds configuration for role middleware
type RoleConfig struct {
	// Logger for middleware logging
	Logger *zap.Logger
}

// RequireRoles creates middleware that allows only the listed roles
func RequireRoles(roles ...identity.Role) gin.HandlerFunc {
	return RequireRolesWithConfig(RoleConfig{}, roles...)
}

// RequireRolesWithConfig creates role middleware with custom config.
// Services re-check roles per operation; this gate short-circuits requests
// that could never succeed.
func RequireRolesWithConfig(cfg RoleConfig, roles ...identity.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		principal := GetPrincipal(c)
		if !principal.Valid() {
			c.AbortWithStatusJSON(http.StatusUnauthorized,
				dto.NewErrorResponse(dto.ErrCodeUnauthorized, "Authentication required"))
			return
		}

		for _, role := range roles {
			if principal.Role == role {
				c.Next()
				return
			}
		}

		if cfg.Logger != nil {
			cfg.Logger.Warn("Role check failed",
				zap.String("user_id", principal.UserID.String()),
				zap.String("role", string(principal.Role)),
				zap.String("path", c.Request.URL.Path),
				zap.String("method", c.Request.Method),
			)
		}

		c.AbortWithStatusJSON(http.StatusForbidden,
			dto.NewErrorResponse(dto.ErrCodeForbidden, "Access denied: insufficient role"))
	}
}

// RequireStaff creates middleware that rejects portal (CLIENT) principals
func RequireStaff() gin.HandlerFunc {
	return RequireRoles(identity.MutatorRoles...)
}

// RequirePortal creates middleware that allows only CLIENT principals with
// a bound client. Staff use the agency endpoints instead.
func RequirePortal() gin.HandlerFunc {
	return func(c *gin.Context) {
		principal := GetPrincipal(c)
		if !principal.Valid() {
			c.AbortWithStatusJSON(http.StatusUnauthorized,
				dto.NewErrorResponse(dto.ErrCodeUnauthorized, "Authentication required"))
			return
		}

		if principal.Role != identity.RoleClient || principal.ClientID == nil {
			c.AbortWithStatusJSON(http.StatusForbidden,
				dto.NewErrorResponse(dto.ErrCodeForbidden, "Portal access requires a client account"))
			return
		}

		c.Next()
	}
}

// HasRole is a helper to check the principal's role in handlers
func HasRole(c *gin.Context, roles ...identity.Role) bool {
	principal := GetPrincipal(c)
	for _, role := range roles {
		if principal.Role == role {
			return true
		}
	}
	return false
}
