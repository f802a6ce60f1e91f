package identity

import (
	"github.com/crm/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// Agency is the tenant root. Every other entity in the system belongs to
// exactly one agency.
type Agency struct {
	shared.BaseAggregateRoot
	Name        string    `gorm:"type:varchar(200);not null"`
	OwnerUserID uuid.UUID `gorm:"type:uuid"`
}

// TableName returns the table name for GORM
func (Agency) TableName() string {
	return "agencies"
}

// NewAgency creates a new agency
func NewAgency(name string) (*Agency, error) {
	if err := validateAgencyName(name); err != nil {
		return nil, err
	}
	return &Agency{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              name,
	}, nil
}

// Rename updates the agency's display name
func (a *Agency) Rename(name string) error {
	if err := validateAgencyName(name); err != nil {
		return err
	}
	a.Name = name
	a.Touch()
	a.IncrementVersion()
	return nil
}

// SetOwner records the owning user
func (a *Agency) SetOwner(userID uuid.UUID) {
	a.OwnerUserID = userID
	a.Touch()
	a.IncrementVersion()
}

func validateAgencyName(name string) error {
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Agency name cannot be empty")
	}
	if len(name) > 200 {
		return shared.NewDomainError("INVALID_NAME", "Agency name cannot exceed 200 characters")
	}
	return nil
}
