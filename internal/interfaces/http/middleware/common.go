package middleware

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
)

// CORSConfig holds CORS middleware configuration
type CORSConfig struct {
	AllowOrigins     []string
	AllowMethods     []string
	AllowHeaders     []string
	ExposeHeaders    []string
	AllowCredentials bool
	MaxAge           time.Duration
}

// DefaultCORSConfig returns the baseline CORS policy. AllowOrigins starts
// empty, so no cross-origin request is accepted until the deployment
// configures its frontends explicitly.
func DefaultCORSConfig() CORSConfig {
	return CORSConfig{
		AllowOrigins:     []string{},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "PATCH", "OPTIONS"},
		AllowHeaders:     []string{"Content-Type", "Authorization", "X-Request-ID", "X-Agency-ID", "X-API-Key", "Accept", "Origin", "Cache-Control"},
		ExposeHeaders:    []string{"X-Request-ID", "X-RateLimit-Limit", "X-RateLimit-Remaining"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
}

// CORS handles cross-origin requests with the default policy
func CORS() gin.HandlerFunc {
	return CORSWithConfig(DefaultCORSConfig())
}

// corsHeaders carries the header values a CORS policy produces, joined
// once at construction instead of on every request.
type corsHeaders struct {
	allowMethods  string
	allowHeaders  string
	exposeHeaders string
	maxAge        string
}

func (h corsHeaders) apply(header http.Header) {
	header.Set("Access-Control-Allow-Headers", h.allowHeaders)
	header.Set("Access-Control-Allow-Methods", h.allowMethods)
	if h.exposeHeaders != "" {
		header.Set("Access-Control-Expose-Headers", h.exposeHeaders)
	}
	if h.maxAge != "" {
		header.Set("Access-Control-Max-Age", h.maxAge)
	}
}

// CORSWithConfig handles cross-origin requests with a custom policy.
// Preflight OPTIONS requests are always answered with 204; CORS headers
// are attached only when the Origin is on the whitelist. An empty
// whitelist never emits CORS headers.
func CORSWithConfig(cfg CORSConfig) gin.HandlerFunc {
	wildcard := false
	allowed := make(map[string]struct{}, len(cfg.AllowOrigins))
	for _, o := range cfg.AllowOrigins {
		if o == "*" {
			wildcard = true
		}
		allowed[o] = struct{}{}
	}

	pre := corsHeaders{
		allowMethods: strings.Join(cfg.AllowMethods, ", "),
		allowHeaders: strings.Join(cfg.AllowHeaders, ", "),
	}
	if len(cfg.ExposeHeaders) > 0 {
		pre.exposeHeaders = strings.Join(cfg.ExposeHeaders, ", ")
	}
	if cfg.MaxAge > 0 {
		pre.maxAge = strconv.Itoa(int(cfg.MaxAge.Seconds()))
	}

	// resolve returns the Allow-Origin value for a request, or "" when
	// the origin is not permitted.
	resolve := func(origin string) string {
		if wildcard {
			return "*"
		}
		if _, ok := allowed[origin]; ok && origin != "" {
			return origin
		}
		return ""
	}

	return func(c *gin.Context) {
		origin := c.Request.Header.Get("Origin")
		header := c.Writer.Header()

		if c.Request.Method == http.MethodOptions {
			if grant := resolve(origin); grant != "" {
				header.Set("Access-Control-Allow-Origin", grant)
				if cfg.AllowCredentials && grant != "*" {
					header.Set("Access-Control-Allow-Credentials", "true")
				}
				pre.apply(header)
			}
			// 204 even for disallowed origins, so preflights never 404
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		// Same-origin requests carry no Origin header and need no grant.
		// Browsers enforce the absence of headers for disallowed origins.
		if grant := resolve(origin); grant != "" && (origin != "" || wildcard) {
			header.Set("Access-Control-Allow-Origin", grant)
			if cfg.AllowCredentials && grant != "*" {
				header.Set("Access-Control-Allow-Credentials", "true")
			}
			pre.apply(header)
		}

		c.Next()
	}
}

// RequestID tags every request with an identifier, reusing the caller's
// X-Request-ID when one is supplied so traces can span services.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader("X-Request-ID")
		if requestID == "" {
			requestID = generateRequestID()
		}
		c.Set("request_id", requestID)
		c.Writer.Header().Set("X-Request-ID", requestID)
		c.Next()
	}
}

// generateRequestID returns 16 random bytes hex encoded
func generateRequestID() string {
	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		// crypto/rand failing is close to fatal, fall back to a
		// timestamp so requests stay distinguishable
		return time.Now().Format("20060102150405.000000000")
	}
	return hex.EncodeToString(buf)
}

// SecurityConfig holds configuration for security response headers
type SecurityConfig struct {
	HSTSEnabled           bool
	HSTSMaxAge            int // seconds
	HSTSIncludeSubdomains bool
	HSTSPreload           bool

	CSPEnabled   bool
	CSPDirective string

	PermissionsPolicyEnabled   bool
	PermissionsPolicyDirective string
}

// DefaultSecurityConfig returns restrictive defaults. HSTS stays off
// until the deployment terminates TLS itself.
func DefaultSecurityConfig() SecurityConfig {
	return SecurityConfig{
		HSTSEnabled:           false,
		HSTSMaxAge:            31536000,
		HSTSIncludeSubdomains: true,
		HSTSPreload:           false,

		CSPEnabled:   true,
		CSPDirective: "default-src 'self'; script-src 'self'; style-src 'self' 'unsafe-inline'; img-src 'self' data: https:; font-src 'self' data:; connect-src 'self'; frame-ancestors 'none'; base-uri 'self'; form-action 'self'",

		PermissionsPolicyEnabled:   true,
		PermissionsPolicyDirective: "accelerometer=(), camera=(), geolocation=(), gyroscope=(), magnetometer=(), microphone=(), payment=(), usb=()",
	}
}

// Secure adds security headers with the default configuration
func Secure() gin.HandlerFunc {
	return SecureWithConfig(DefaultSecurityConfig())
}

// SecureWithConfig adds security headers to every response
func SecureWithConfig(cfg SecurityConfig) gin.HandlerFunc {
	var hstsValue string
	if cfg.HSTSEnabled {
		hstsValue = fmt.Sprintf("max-age=%d", cfg.HSTSMaxAge)
		if cfg.HSTSIncludeSubdomains {
			hstsValue += "; includeSubDomains"
		}
		if cfg.HSTSPreload {
			hstsValue += "; preload"
		}
	}

	return func(c *gin.Context) {
		header := c.Writer.Header()
		header.Set("X-Frame-Options", "DENY")
		header.Set("X-XSS-Protection", "1; mode=block")
		header.Set("X-Content-Type-Options", "nosniff")
		header.Set("Referrer-Policy", "strict-origin-when-cross-origin")

		if cfg.CSPEnabled && cfg.CSPDirective != "" {
			header.Set("Content-Security-Policy", cfg.CSPDirective)
		}
		if hstsValue != "" {
			header.Set("Strict-Transport-Security", hstsValue)
		}
		if cfg.PermissionsPolicyEnabled && cfg.PermissionsPolicyDirective != "" {
			header.Set("Permissions-Policy", cfg.PermissionsPolicyDirective)
		}

		c.Next()
	}
}

// Timeout caps how long the handler chain may spend on one request. The
// deadline rides on the request context, so database calls and anything
// else context-aware is cancelled with it.
func Timeout(timeout time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), timeout)
		defer cancel()
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}
