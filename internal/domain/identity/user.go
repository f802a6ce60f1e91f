package identity

import (
	"regexp"
	"strings"

	"github.com/crm/backend/internal/domain/shared"
	"github.com/google/uuid"
)

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

// User is an account within an agency. A CLIENT-role user is bound to one
// client record and only ever sees that client's data.
type User struct {
	shared.AgencyAggregateRoot
	Name         string     `gorm:"type:varchar(100);not null"`
	Email        string     `gorm:"type:varchar(200);not null;uniqueIndex"`
	PasswordHash string     `gorm:"type:varchar(200);not null"`
	Role         Role       `gorm:"type:varchar(20);not null;default:'EDITOR'"`
	ClientID     *uuid.UUID `gorm:"type:uuid;index"`
}

// TableName returns the table name for GORM
func (User) TableName() string {
	return "users"
}

// NewUser creates a new user with required fields
func NewUser(agencyID uuid.UUID, name, email, passwordHash string, role Role) (*User, error) {
	if err := validateUserName(name); err != nil {
		return nil, err
	}
	if err := validateUserEmail(email); err != nil {
		return nil, err
	}
	if passwordHash == "" {
		return nil, shared.NewDomainError("INVALID_PASSWORD", "Password hash cannot be empty")
	}
	if !role.IsValid() {
		return nil, shared.NewDomainError("INVALID_ROLE", "Unknown role")
	}

	return &User{
		AgencyAggregateRoot: shared.NewAgencyAggregateRoot(agencyID),
		Name:                name,
		Email:               strings.ToLower(email),
		PasswordHash:        passwordHash,
		Role:                role,
	}, nil
}

// BindClient binds a CLIENT-role user to its client record
func (u *User) BindClient(clientID uuid.UUID) error {
	if u.Role != RoleClient {
		return shared.NewDomainError("INVALID_STATE", "Only CLIENT users can be bound to a client")
	}
	u.ClientID = &clientID
	u.Touch()
	u.IncrementVersion()
	return nil
}

// ChangeRole updates the user's role. Dropping a client binding is the
// caller's responsibility when moving away from CLIENT.
func (u *User) ChangeRole(role Role) error {
	if !role.IsValid() {
		return shared.NewDomainError("INVALID_ROLE", "Unknown role")
	}
	u.Role = role
	if role != RoleClient {
		u.ClientID = nil
	}
	u.Touch()
	u.IncrementVersion()
	return nil
}

// Principal derives the session principal for this user
func (u *User) Principal() Principal {
	return Principal{
		UserID:   u.ID,
		AgencyID: u.AgencyID,
		Role:     u.Role,
		ClientID: u.ClientID,
	}
}

func validateUserName(name string) error {
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "User name cannot be empty")
	}
	if len(name) > 100 {
		return shared.NewDomainError("INVALID_NAME", "User name cannot exceed 100 characters")
	}
	return nil
}

func validateUserEmail(email string) error {
	if email == "" {
		return shared.NewDomainError("INVALID_EMAIL", "Email cannot be empty")
	}
	if len(email) > 200 {
		return shared.NewDomainError("INVALID_EMAIL", "Email cannot exceed 200 characters")
	}
	if !emailRegex.MatchString(email) {
		return shared.NewDomainError("INVALID_EMAIL", "Invalid email format")
	}
	return nil
}
