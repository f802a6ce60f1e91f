package identity

import (
	"context"

	"github.com/google/uuid"
)

// AgencyRepository defines the interface for agency persistence
type AgencyRepository interface {
	// FindByID finds an agency by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*Agency, error)

	// Save creates or updates an agency
	Save(ctx context.Context, agency *Agency) error
}

// UserRepository defines the interface for user persistence
type UserRepository interface {
	// FindByID finds a user by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*User, error)

	// FindByIDForAgency finds a user by ID within an agency
	FindByIDForAgency(ctx context.Context, agencyID, id uuid.UUID) (*User, error)

	// FindByEmail finds a user by email (emails are globally unique)
	FindByEmail(ctx context.Context, email string) (*User, error)

	// FindAllForAgency finds all users for an agency
	FindAllForAgency(ctx context.Context, agencyID uuid.UUID) ([]User, error)

	// Save creates or updates a user
	Save(ctx context.Context, user *User) error

	// DeleteForAgency deletes a user within an agency
	DeleteForAgency(ctx context.Context, agencyID, id uuid.UUID) error
}
