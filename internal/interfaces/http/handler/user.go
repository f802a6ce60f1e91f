package handler

import (
	identityapp "github.com/crm/backend/internal/application/identity"
	"github.com/gin-gonic/gin"
)

// UserHandler handles agency user management endpoints
type UserHandler struct {
	BaseHandler
	userService *identityapp.UserService
}

// NewUserHandler creates a new UserHandler
func NewUserHandler(userService *identityapp.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// Create adds a user to the caller's agency
func (h *UserHandler) Create(c *gin.Context) {
	var req identityapp.CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.HandleBindingError(c, err)
		return
	}

	user, err := h.userService.Create(c.Request.Context(), principal(c), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, user)
}

// List returns the agency's users
func (h *UserHandler) List(c *gin.Context) {
	users, err := h.userService.List(c.Request.Context(), principal(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, users)
}

// ChangeRole updates a user's role, rebinding the client for CLIENT roles
func (h *UserHandler) ChangeRole(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		h.BadRequest(c, "Invalid user ID")
		return
	}

	var req identityapp.ChangeRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.HandleBindingError(c, err)
		return
	}

	user, err := h.userService.ChangeRole(c.Request.Context(), principal(c), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, user)
}

// Delete removes a user from the agency
func (h *UserHandler) Delete(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		h.BadRequest(c, "Invalid user ID")
		return
	}

	if err := h.userService.Delete(c.Request.Context(), principal(c), id); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}
