package middleware

import (
	"net/http"
	"strings"

	"github.com/crm/backend/internal/domain/identity"
	"github.com/crm/backend/internal/infrastructure/auth"
	"github.com/crm/backend/internal/infrastructure/logger"
	"github.com/crm/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// JWT context keys
const (
	JWTClaimsKey  = "jwt_claims"
	PrincipalKey  = "principal"
	AuthHeaderKey = "Authorization"
	BearerPrefix  = "Bearer "
)

// JWTMiddlewareConfig holds configuration for JWT middleware
type JWTMiddlewareConfig struct {
	// JWTService is required for token validation
	JWTService *auth.JWTService
	// TokenBlacklist is optional for checking revoked tokens
	TokenBlacklist auth.TokenBlacklist
	// Logger for middleware logging
	Logger *zap.Logger
}

// JWTAuthMiddleware creates JWT authentication middleware. It validates the
// bearer token, rejects revoked tokens, and stores the resolved principal
// in the request context for handlers.
func JWTAuthMiddleware(cfg JWTMiddlewareConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader(AuthHeaderKey)
		if authHeader == "" {
			handleAuthError(c, cfg, auth.ErrInvalidToken, "Missing authorization header")
			return
		}

		if !strings.HasPrefix(authHeader, BearerPrefix) {
			handleAuthError(c, cfg, auth.ErrInvalidToken, "Invalid authorization header format")
			return
		}

		tokenString := strings.TrimPrefix(authHeader, BearerPrefix)
		if tokenString == "" {
			handleAuthError(c, cfg, auth.ErrInvalidToken, "Missing token")
			return
		}

		claims, err := cfg.JWTService.ValidateToken(tokenString)
		if err != nil {
			handleAuthError(c, cfg, err, "Token validation failed")
			return
		}

		if cfg.TokenBlacklist != nil && claims.ID != "" {
			blacklisted, err := cfg.TokenBlacklist.IsBlacklisted(c.Request.Context(), claims.ID)
			if err != nil {
				// Fail open for availability; revocation is best effort
				if cfg.Logger != nil {
					cfg.Logger.Error("Failed to check token blacklist",
						zap.String("jti", claims.ID),
						zap.Error(err))
				}
			} else if blacklisted {
				handleAuthError(c, cfg, auth.ErrTokenBlacklisted, "Token has been revoked")
				return
			}
		}

		principal, err := claims.Principal()
		if err != nil {
			handleAuthError(c, cfg, err, "Token carries unusable identity")
			return
		}

		c.Set(JWTClaimsKey, claims)
		c.Set(PrincipalKey, principal)

		// Enrich the request context so downstream logs carry identity
		ctx := c.Request.Context()
		log := logger.FromContext(ctx)
		ctx, _ = logger.WithUserID(ctx, log, claims.UserID)
		ctx, _ = logger.WithAgencyID(ctx, log, claims.AgencyID)
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}

// handleAuthError handles authentication errors
func handleAuthError(c *gin.Context, cfg JWTMiddlewareConfig, err error, message string) {
	if cfg.Logger != nil {
		cfg.Logger.Warn("JWT authentication failed",
			zap.Error(err),
			zap.String("message", message),
			zap.String("path", c.Request.URL.Path),
		)
	}

	errorMessage := "Authentication required"
	switch err {
	case auth.ErrExpiredToken:
		errorMessage = "Token has expired"
	case auth.ErrTokenBlacklisted:
		errorMessage = "Token has been revoked"
	}

	c.AbortWithStatusJSON(http.StatusUnauthorized,
		dto.NewErrorResponse(dto.ErrCodeUnauthorized, errorMessage))
}

// GetPrincipal retrieves the authenticated principal from gin.Context.
// Returns a zero principal when the request is unauthenticated.
func GetPrincipal(c *gin.Context) identity.Principal {
	if v, exists := c.Get(PrincipalKey); exists {
		if p, ok := v.(identity.Principal); ok {
			return p
		}
	}
	return identity.Principal{}
}

// GetJWTClaims retrieves JWT claims from gin.Context
func GetJWTClaims(c *gin.Context) *auth.Claims {
	if claims, exists := c.Get(JWTClaimsKey); exists {
		if jwtClaims, ok := claims.(*auth.Claims); ok {
			return jwtClaims
		}
	}
	return nil
}
