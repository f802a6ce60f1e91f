package handler

import (
	"strings"

	identityapp "github.com/crm/backend/internal/application/identity"
	"github.com/crm/backend/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
)

// AuthHandler handles authentication endpoints
type AuthHandler struct {
	BaseHandler
	authService *identityapp.AuthService
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(authService *identityapp.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// Login verifies credentials and issues an access token
func (h *AuthHandler) Login(c *gin.Context) {
	var req identityapp.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.HandleBindingError(c, err)
		return
	}

	resp, err := h.authService.Login(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// Logout revokes the presented access token. Always succeeds so a stale
// client cannot get stuck holding a token it cannot discard.
func (h *AuthHandler) Logout(c *gin.Context) {
	token := strings.TrimPrefix(c.GetHeader(middleware.AuthHeaderKey), middleware.BearerPrefix)
	if err := h.authService.Logout(c.Request.Context(), token); err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, gin.H{"message": "Logged out"})
}

// Me returns the authenticated user's profile
func (h *AuthHandler) Me(c *gin.Context) {
	resp, err := h.authService.Me(c.Request.Context(), principal(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}
