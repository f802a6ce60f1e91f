package crm

import (
	"github.com/crm/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// Aggregate type constant
const AggregateTypeClient = "Client"

// Event type constants
const (
	EventTypeClientCreated = "ClientCreated"
	EventTypeClientUpdated = "ClientUpdated"
	EventTypeClientDeleted = "ClientDeleted"
)

// ClientCreatedEvent is published when a new client is created
type ClientCreatedEvent struct {
	shared.BaseDomainEvent
	ClientID     uuid.UUID `json:"client_id"`
	ClientCode   string    `json:"client_code"`
	BusinessName string    `json:"business_name"`
}

// NewClientCreatedEvent creates a new ClientCreatedEvent
func NewClientCreatedEvent(client *Client) *ClientCreatedEvent {
	return &ClientCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeClientCreated, AggregateTypeClient, client.ID, client.AgencyID),
		ClientID:        client.ID,
		ClientCode:      client.ClientCode,
		BusinessName:    client.BusinessName,
	}
}

// ClientUpdatedEvent is published when a client is updated
type ClientUpdatedEvent struct {
	shared.BaseDomainEvent
	ClientID   uuid.UUID    `json:"client_id"`
	ClientCode string       `json:"client_code"`
	Status     ClientStatus `json:"status"`
}

// NewClientUpdatedEvent creates a new ClientUpdatedEvent
func NewClientUpdatedEvent(client *Client) *ClientUpdatedEvent {
	return &ClientUpdatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeClientUpdated, AggregateTypeClient, client.ID, client.AgencyID),
		ClientID:        client.ID,
		ClientCode:      client.ClientCode,
		Status:          client.Status,
	}
}
