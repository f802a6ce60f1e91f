package crm

import (
	"context"
	"time"

	"github.com/crm/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// ClientRepository defines the interface for client persistence
type ClientRepository interface {
	// FindByIDForAgency finds a client by ID within an agency
	FindByIDForAgency(ctx context.Context, agencyID, id uuid.UUID) (*Client, error)

	// FindByID finds a client by ID across agencies. Reserved for the
	// webhook path, which resolves the owning agency from the client.
	FindByID(ctx context.Context, id uuid.UUID) (*Client, error)

	// FindByCode finds a client by its client code across agencies
	FindByCode(ctx context.Context, code string) (*Client, error)

	// FindForAgency lists clients for an agency with pagination
	FindForAgency(ctx context.Context, agencyID uuid.UUID, filter shared.Filter) (shared.Paginated[Client], error)

	// CountActiveForAgency counts clients in ACTIVE status
	CountActiveForAgency(ctx context.Context, agencyID uuid.UUID) (int64, error)

	// Save creates or updates a client
	Save(ctx context.Context, client *Client) error

	// DeleteForAgency deletes a client within an agency
	DeleteForAgency(ctx context.Context, agencyID, id uuid.UUID) error
}

// LeadRepository defines the interface for lead persistence
type LeadRepository interface {
	// FindByIDForAgency finds a lead by ID within an agency
	FindByIDForAgency(ctx context.Context, agencyID, id uuid.UUID) (*Lead, error)

	// FindForAgency lists leads for an agency with pagination
	FindForAgency(ctx context.Context, agencyID uuid.UUID, filter shared.Filter) (shared.Paginated[Lead], error)

	// FindForClient lists leads for one client, newest first
	FindForClient(ctx context.Context, agencyID, clientID uuid.UUID) ([]Lead, error)

	// FindRecentByPhone finds the most recent lead for a client with the
	// given phone number created at or after since. Returns
	// shared.ErrNotFound when there is none.
	FindRecentByPhone(ctx context.Context, clientID uuid.UUID, phone string, since time.Time) (*Lead, error)

	// CountCreatedSince counts leads created at or after since
	CountCreatedSince(ctx context.Context, agencyID uuid.UUID, since time.Time) (int64, error)

	// CountConvertedSince counts leads converted at or after since
	CountConvertedSince(ctx context.Context, agencyID uuid.UUID, since time.Time) (int64, error)

	// Save creates or updates a lead
	Save(ctx context.Context, lead *Lead) error

	// SaveWithConversation persists a new lead and its first conversation
	// entry in a single transaction
	SaveWithConversation(ctx context.Context, lead *Lead, conversation *Conversation) error

	// DeleteForAgency deletes a lead within an agency
	DeleteForAgency(ctx context.Context, agencyID, id uuid.UUID) error
}

// ConversationRepository defines the interface for conversation persistence
type ConversationRepository interface {
	// FindForLead lists conversation entries for a lead, oldest first
	FindForLead(ctx context.Context, agencyID, leadID uuid.UUID) ([]Conversation, error)

	// Save creates a conversation entry
	Save(ctx context.Context, conversation *Conversation) error
}

// PaymentRepository defines the interface for payment persistence
type PaymentRepository interface {
	// FindByIDForAgency finds a payment by ID within an agency
	FindByIDForAgency(ctx context.Context, agencyID, id uuid.UUID) (*Payment, error)

	// FindForAgency lists payments for an agency with pagination
	FindForAgency(ctx context.Context, agencyID uuid.UUID, filter shared.Filter) (shared.Paginated[Payment], error)

	// CountOutstandingForAgency counts payments in PENDING or OVERDUE status
	CountOutstandingForAgency(ctx context.Context, agencyID uuid.UUID) (int64, error)

	// Save creates or updates a payment
	Save(ctx context.Context, payment *Payment) error

	// DeleteForAgency deletes a payment within an agency
	DeleteForAgency(ctx context.Context, agencyID, id uuid.UUID) error
}

// ServiceRepository defines the interface for service persistence
type ServiceRepository interface {
	// FindByIDForAgency finds a service by ID within an agency
	FindByIDForAgency(ctx context.Context, agencyID, id uuid.UUID) (*Service, error)

	// FindForAgency lists services for an agency with pagination
	FindForAgency(ctx context.Context, agencyID uuid.UUID, filter shared.Filter) (shared.Paginated[Service], error)

	// FindForClient lists services for one client
	FindForClient(ctx context.Context, agencyID, clientID uuid.UUID) ([]Service, error)

	// Save creates or updates a service
	Save(ctx context.Context, service *Service) error

	// DeleteForAgency deletes a service within an agency
	DeleteForAgency(ctx context.Context, agencyID, id uuid.UUID) error
}
