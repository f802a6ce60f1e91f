package identity

import (
	"time"

	"github.com/crm/backend/internal/domain/identity"
	"github.com/google/uuid"
)

// LoginRequest represents a login attempt
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
}

// LoginResponse carries the issued token and the authenticated user
type LoginResponse struct {
	AccessToken string       `json:"access_token"`
	TokenType   string       `json:"token_type"`
	ExpiresAt   time.Time    `json:"expires_at"`
	User        UserResponse `json:"user"`
}

// CreateUserRequest represents a request to create a user
type CreateUserRequest struct {
	Name     string    `json:"name" binding:"required,min=1,max=100"`
	Email    string    `json:"email" binding:"required,email,max=200"`
	Password string    `json:"password" binding:"required,min=8,max=100"`
	Role     string    `json:"role" binding:"required,oneof=OWNER ADMIN EDITOR CLIENT"`
	ClientID uuid.UUID `json:"client_id"`
}

// ChangeRoleRequest represents a request to change a user's role
type ChangeRoleRequest struct {
	Role     string    `json:"role" binding:"required,oneof=OWNER ADMIN EDITOR CLIENT"`
	ClientID uuid.UUID `json:"client_id"`
}

// UserResponse represents a user in API responses
type UserResponse struct {
	ID        uuid.UUID  `json:"id"`
	AgencyID  uuid.UUID  `json:"agency_id"`
	Name      string     `json:"name"`
	Email     string     `json:"email"`
	Role      string     `json:"role"`
	ClientID  *uuid.UUID `json:"client_id,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// ToUserResponse converts a domain User to UserResponse
func ToUserResponse(u *identity.User) UserResponse {
	return UserResponse{
		ID:        u.ID,
		AgencyID:  u.AgencyID,
		Name:      u.Name,
		Email:     u.Email,
		Role:      string(u.Role),
		ClientID:  u.ClientID,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}
