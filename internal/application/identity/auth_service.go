package identity

import (
	"context"

	"github.com/crm/backend/internal/domain/identity"
	"github.com/crm/backend/internal/domain/shared"
	"github.com/crm/backend/internal/infrastructure/auth"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// AuthService handles authentication operations
type AuthService struct {
	users      identity.UserRepository
	jwtService *auth.JWTService
	blacklist  auth.TokenBlacklist
	logger     *zap.Logger
}

// NewAuthService creates a new authentication service
func NewAuthService(users identity.UserRepository, jwtService *auth.JWTService, blacklist auth.TokenBlacklist, logger *zap.Logger) *AuthService {
	return &AuthService{
		users:      users,
		jwtService: jwtService,
		blacklist:  blacklist,
		logger:     logger,
	}
}

// Login authenticates a user by email and password and issues a token
func (s *AuthService) Login(ctx context.Context, req LoginRequest) (*LoginResponse, error) {
	user, err := s.users.FindByEmail(ctx, req.Email)
	if err != nil {
		s.logger.Warn("Login for unknown email", zap.String("email", req.Email))
		return nil, shared.NewDomainError("INVALID_CREDENTIALS", "Invalid email or password")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		s.logger.Warn("Invalid password attempt",
			zap.String("email", req.Email),
			zap.String("user_id", user.ID.String()))
		return nil, shared.NewDomainError("INVALID_CREDENTIALS", "Invalid email or password")
	}

	token, err := s.jwtService.GenerateToken(user)
	if err != nil {
		s.logger.Error("Failed to generate token", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to generate authentication token")
	}

	s.logger.Info("User logged in",
		zap.String("user_id", user.ID.String()),
		zap.String("agency_id", user.AgencyID.String()),
		zap.String("role", string(user.Role)))

	return &LoginResponse{
		AccessToken: token.AccessToken,
		TokenType:   token.TokenType,
		ExpiresAt:   token.ExpiresAt,
		User:        ToUserResponse(user),
	}, nil
}

// Logout revokes the presented token for its remaining lifetime
func (s *AuthService) Logout(ctx context.Context, tokenString string) error {
	claims, err := s.jwtService.ValidateToken(tokenString)
	if err != nil {
		// Expired or malformed tokens have nothing left to revoke.
		return nil
	}

	ttl := claims.GetRemainingTTL()
	if ttl <= 0 {
		return nil
	}
	if err := s.blacklist.AddToBlacklist(ctx, claims.ID, ttl); err != nil {
		s.logger.Error("Failed to blacklist token", zap.Error(err))
		return shared.NewDomainError("INTERNAL_ERROR", "Failed to revoke token")
	}
	return nil
}

// Me returns the profile of the authenticated user
func (s *AuthService) Me(ctx context.Context, p identity.Principal) (*UserResponse, error) {
	if err := identity.RequireSession(p); err != nil {
		return nil, err
	}

	user, err := s.users.FindByIDForAgency(ctx, p.AgencyID, p.UserID)
	if err != nil {
		return nil, err
	}

	response := ToUserResponse(user)
	return &response, nil
}

// HashPassword derives a bcrypt hash for storage
func HashPassword(password string) (string, error) {
	if len(password) < 8 {
		return "", shared.NewDomainError("INVALID_PASSWORD", "Password must be at least 8 characters")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}
