package shared

import (
	"github.com/google/uuid"
)

// BaseAggregateRoot provides common fields for aggregate roots
type BaseAggregateRoot struct {
	BaseEntity
	Version      int           `gorm:"not null;default:1"`
	domainEvents []DomainEvent `gorm:"-"`
}

// GetVersion returns the aggregate version for optimistic locking
func (a *BaseAggregateRoot) GetVersion() int {
	return a.Version
}

// IncrementVersion increments the version number
func (a *BaseAggregateRoot) IncrementVersion() {
	a.Version++
}

// AddDomainEvent adds a domain event to be published
func (a *BaseAggregateRoot) AddDomainEvent(event DomainEvent) {
	a.domainEvents = append(a.domainEvents, event)
}

// GetDomainEvents returns all pending domain events
func (a *BaseAggregateRoot) GetDomainEvents() []DomainEvent {
	return a.domainEvents
}

// ClearDomainEvents clears the pending domain events
func (a *BaseAggregateRoot) ClearDomainEvents() {
	a.domainEvents = nil
}

// NewBaseAggregateRoot creates a new base aggregate root
func NewBaseAggregateRoot() BaseAggregateRoot {
	return BaseAggregateRoot{
		BaseEntity:   NewBaseEntity(),
		Version:      1,
		domainEvents: make([]DomainEvent, 0),
	}
}

// AgencyAggregateRoot extends BaseAggregateRoot with agency (tenant) scoping.
// Every record it backs belongs to exactly one agency; cross-agency access
// is forbidden at the repository level.
type AgencyAggregateRoot struct {
	BaseAggregateRoot
	AgencyID uuid.UUID `gorm:"type:uuid;not null;index"`
}

// NewAgencyAggregateRoot creates a new agency-scoped aggregate root
func NewAgencyAggregateRoot(agencyID uuid.UUID) AgencyAggregateRoot {
	return AgencyAggregateRoot{
		BaseAggregateRoot: NewBaseAggregateRoot(),
		AgencyID:          agencyID,
	}
}
