package crm

import (
	"github.com/crm/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// Aggregate type constant
const AggregateTypeLead = "Lead"

// Event type constants
const (
	EventTypeLeadCreated = "LeadCreated"
	EventTypeLeadUpdated = "LeadUpdated"
)

// LeadCreatedEvent is published when a new lead is captured
type LeadCreatedEvent struct {
	shared.BaseDomainEvent
	LeadID   uuid.UUID  `json:"lead_id"`
	ClientID uuid.UUID  `json:"client_id"`
	LeadCode string     `json:"lead_code"`
	Source   LeadSource `json:"source"`
}

// NewLeadCreatedEvent creates a new LeadCreatedEvent
func NewLeadCreatedEvent(lead *Lead) *LeadCreatedEvent {
	return &LeadCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeLeadCreated, AggregateTypeLead, lead.ID, lead.AgencyID),
		LeadID:          lead.ID,
		ClientID:        lead.ClientID,
		LeadCode:        lead.LeadCode,
		Source:          lead.Source,
	}
}

// LeadUpdatedEvent is published when a lead is updated. PreviousStatus lets
// subscribers detect status transitions, conversion in particular.
type LeadUpdatedEvent struct {
	shared.BaseDomainEvent
	LeadID         uuid.UUID  `json:"lead_id"`
	ClientID       uuid.UUID  `json:"client_id"`
	PreviousStatus LeadStatus `json:"previous_status"`
	Status         LeadStatus `json:"status"`
}

// NewLeadUpdatedEvent creates a new LeadUpdatedEvent
func NewLeadUpdatedEvent(lead *Lead, previous LeadStatus) *LeadUpdatedEvent {
	return &LeadUpdatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeLeadUpdated, AggregateTypeLead, lead.ID, lead.AgencyID),
		LeadID:          lead.ID,
		ClientID:        lead.ClientID,
		PreviousStatus:  previous,
		Status:          lead.Status,
	}
}
