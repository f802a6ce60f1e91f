package models

import (
	"github.com/crm/backend/internal/domain/identity"
	"github.com/crm/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// AgencyModel is the persistence model for the Agency domain entity.
type AgencyModel struct {
	AggregateModel
	Name        string    `gorm:"type:varchar(200);not null"`
	OwnerUserID uuid.UUID `gorm:"type:uuid"`
}

// TableName returns the table name for GORM
func (AgencyModel) TableName() string {
	return "agencies"
}

// ToDomain converts the persistence model to a domain Agency entity.
func (m *AgencyModel) ToDomain() *identity.Agency {
	return &identity.Agency{
		BaseAggregateRoot: shared.BaseAggregateRoot{
			BaseEntity: shared.BaseEntity{
				ID:        m.ID,
				CreatedAt: m.CreatedAt,
				UpdatedAt: m.UpdatedAt,
			},
			Version: m.Version,
		},
		Name:        m.Name,
		OwnerUserID: m.OwnerUserID,
	}
}

// FromDomain populates the persistence model from a domain Agency entity.
func (m *AgencyModel) FromDomain(a *identity.Agency) {
	m.FromDomainAggregateRoot(a.BaseAggregateRoot)
	m.Name = a.Name
	m.OwnerUserID = a.OwnerUserID
}

// AgencyModelFromDomain creates a new persistence model from a domain Agency entity.
func AgencyModelFromDomain(a *identity.Agency) *AgencyModel {
	m := &AgencyModel{}
	m.FromDomain(a)
	return m
}

// UserModel is the persistence model for the User domain entity.
type UserModel struct {
	AgencyAggregateModel
	Name         string        `gorm:"type:varchar(100);not null"`
	Email        string        `gorm:"type:varchar(200);not null;uniqueIndex"`
	PasswordHash string        `gorm:"type:varchar(200);not null"`
	Role         identity.Role `gorm:"type:varchar(20);not null;default:'EDITOR'"`
	ClientID     *uuid.UUID    `gorm:"type:uuid;index"`
}

// TableName returns the table name for GORM
func (UserModel) TableName() string {
	return "users"
}

// ToDomain converts the persistence model to a domain User entity.
func (m *UserModel) ToDomain() *identity.User {
	return &identity.User{
		AgencyAggregateRoot: m.agencyAggregateRoot(),
		Name:                m.Name,
		Email:               m.Email,
		PasswordHash:        m.PasswordHash,
		Role:                m.Role,
		ClientID:            m.ClientID,
	}
}

// FromDomain populates the persistence model from a domain User entity.
func (m *UserModel) FromDomain(u *identity.User) {
	m.FromDomainAgencyAggregateRoot(u.AgencyAggregateRoot)
	m.Name = u.Name
	m.Email = u.Email
	m.PasswordHash = u.PasswordHash
	m.Role = u.Role
	m.ClientID = u.ClientID
}

// UserModelFromDomain creates a new persistence model from a domain User entity.
func UserModelFromDomain(u *identity.User) *UserModel {
	m := &UserModel{}
	m.FromDomain(u)
	return m
}
