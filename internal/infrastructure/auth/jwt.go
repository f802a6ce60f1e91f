package auth

import (
	"errors"
	"time"

	"github.com/crm/backend/internal/domain/identity"
	"github.com/crm/backend/internal/infrastructure/config"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Common errors
var (
	ErrInvalidToken     = errors.New("invalid token")
	ErrExpiredToken     = errors.New("token has expired")
	ErrInvalidClaims    = errors.New("invalid token claims")
	ErrTokenNotYetValid = errors.New("token is not yet valid")
	ErrMissingAgencyID  = errors.New("missing agency_id in claims")
	ErrMissingUserID    = errors.New("missing user_id in claims")
	ErrMissingRole      = errors.New("missing role in claims")
	ErrTokenBlacklisted = errors.New("token has been revoked")
)

// Claims represents custom JWT claims
type Claims struct {
	jwt.RegisteredClaims
	AgencyID string `json:"agency_id"`
	UserID   string `json:"user_id"`
	Email    string `json:"email"`
	Role     string `json:"role"`
	ClientID string `json:"client_id,omitempty"`
}

// IssuedToken represents an issued access token
type IssuedToken struct {
	AccessToken string    `json:"access_token"`
	ExpiresAt   time.Time `json:"expires_at"`
	TokenType   string    `json:"token_type"` // Bearer
}

// JWTService handles JWT token operations
type JWTService struct {
	secret     []byte
	expiration time.Duration
	issuer     string
}

// NewJWTService creates a new JWT service
func NewJWTService(cfg config.JWTConfig) *JWTService {
	return &JWTService{
		secret:     []byte(cfg.Secret),
		expiration: cfg.AccessTokenExpiration,
		issuer:     cfg.Issuer,
	}
}

// GenerateToken issues an access token for a user
func (s *JWTService) GenerateToken(user *identity.User) (*IssuedToken, error) {
	now := time.Now()
	expiresAt := now.Add(s.expiration)

	claims := &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.New().String(),
			Issuer:    s.issuer,
			Subject:   user.ID.String(),
			Audience:  jwt.ClaimStrings{s.issuer},
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			NotBefore: jwt.NewNumericDate(now),
			IssuedAt:  jwt.NewNumericDate(now),
		},
		AgencyID: user.AgencyID.String(),
		UserID:   user.ID.String(),
		Email:    user.Email,
		Role:     string(user.Role),
	}
	if user.ClientID != nil {
		claims.ClientID = user.ClientID.String()
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return nil, err
	}

	return &IssuedToken{
		AccessToken: signed,
		ExpiresAt:   expiresAt,
		TokenType:   "Bearer",
	}, nil
}

// ValidateToken validates an access token and returns its claims
func (s *JWTService) ValidateToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return s.secret, nil
	})

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}
		if errors.Is(err, jwt.ErrTokenNotValidYet) {
			return nil, ErrTokenNotYetValid
		}
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrInvalidClaims
	}

	// Validate required claims
	if claims.AgencyID == "" {
		return nil, ErrMissingAgencyID
	}
	if claims.UserID == "" {
		return nil, ErrMissingUserID
	}
	if claims.Role == "" {
		return nil, ErrMissingRole
	}

	return claims, nil
}

// Principal converts claims into a domain principal
func (c *Claims) Principal() (identity.Principal, error) {
	agencyID, err := uuid.Parse(c.AgencyID)
	if err != nil {
		return identity.Principal{}, ErrInvalidClaims
	}
	userID, err := uuid.Parse(c.UserID)
	if err != nil {
		return identity.Principal{}, ErrInvalidClaims
	}

	role := identity.Role(c.Role)
	if !role.IsValid() {
		return identity.Principal{}, ErrInvalidClaims
	}

	p := identity.Principal{
		UserID:   userID,
		AgencyID: agencyID,
		Role:     role,
	}
	if c.ClientID != "" {
		clientID, err := uuid.Parse(c.ClientID)
		if err != nil {
			return identity.Principal{}, ErrInvalidClaims
		}
		p.ClientID = &clientID
	}
	return p, nil
}

// GetIssuedAtTime returns the token's issued-at time as time.Time
func (c *Claims) GetIssuedAtTime() time.Time {
	if c.IssuedAt != nil {
		return c.IssuedAt.Time
	}
	return time.Time{}
}

// GetRemainingTTL returns the remaining time until the token expires
func (c *Claims) GetRemainingTTL() time.Duration {
	if c.ExpiresAt == nil {
		return 0
	}
	remaining := time.Until(c.ExpiresAt.Time)
	if remaining < 0 {
		return 0
	}
	return remaining
}

// GetAccessTokenExpiration returns the access token expiration duration
func (s *JWTService) GetAccessTokenExpiration() time.Duration {
	return s.expiration
}
