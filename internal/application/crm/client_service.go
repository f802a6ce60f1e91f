package crm

import (
	"context"

	appautomation "github.com/crm/backend/internal/application/automation"
	"github.com/crm/backend/internal/domain/automation"
	"github.com/crm/backend/internal/domain/crm"
	"github.com/crm/backend/internal/domain/identity"
	"github.com/crm/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// ClientService handles client-related business operations
type ClientService struct {
	clients crm.ClientRepository
	events  *appautomation.EventLogger
}

// NewClientService creates a new ClientService
func NewClientService(clients crm.ClientRepository, events *appautomation.EventLogger) *ClientService {
	return &ClientService{
		clients: clients,
		events:  events,
	}
}

// Create creates a new client
func (s *ClientService) Create(ctx context.Context, p identity.Principal, req CreateClientRequest) (*ClientResponse, error) {
	if err := identity.RequireSession(p); err != nil {
		return nil, err
	}
	if err := identity.RequireRole(p, identity.MutatorRoles...); err != nil {
		return nil, err
	}

	status := crm.ClientStatusActive
	if req.Status != "" {
		status = crm.ClientStatus(req.Status)
	}

	client, err := crm.NewClient(p.AgencyID, req.BusinessName, req.ContactPerson,
		req.WhatsappNumber, req.Email, crm.PackageType(req.PackageType), status, req.StartDate)
	if err != nil {
		return nil, err
	}

	if err := s.clients.Save(ctx, client); err != nil {
		return nil, err
	}

	clientID := client.ID
	s.events.RecordMutation(ctx, p.AgencyID, automation.EventClientCreated, "clients",
		client.ID, &clientID, nil, map[string]interface{}{
			"clientCode":   client.ClientCode,
			"businessName": client.BusinessName,
		})

	response := ToClientResponse(client)
	return &response, nil
}

// GetByID retrieves a client by ID
func (s *ClientService) GetByID(ctx context.Context, p identity.Principal, clientID uuid.UUID) (*ClientResponse, error) {
	if err := identity.RequireSession(p); err != nil {
		return nil, err
	}
	if err := identity.EnforceClientScope(p, clientID); err != nil {
		return nil, err
	}

	client, err := s.clients.FindByIDForAgency(ctx, p.AgencyID, clientID)
	if err != nil {
		return nil, err
	}

	response := ToClientResponse(client)
	return &response, nil
}

// List retrieves clients for the principal's agency
func (s *ClientService) List(ctx context.Context, p identity.Principal, filter ClientListFilter) (shared.Paginated[ClientResponse], error) {
	if err := identity.RequireSession(p); err != nil {
		return shared.Paginated[ClientResponse]{}, err
	}
	if err := identity.RequireRole(p, identity.MutatorRoles...); err != nil {
		return shared.Paginated[ClientResponse]{}, err
	}

	result, err := s.clients.FindForAgency(ctx, p.AgencyID, filter.toDomain())
	if err != nil {
		return shared.Paginated[ClientResponse]{}, err
	}

	responses := make([]ClientResponse, len(result.Items))
	for i, client := range result.Items {
		responses[i] = ToClientResponse(&client)
	}
	return shared.Paginated[ClientResponse]{
		Items:      responses,
		Total:      result.Total,
		Page:       result.Page,
		PageSize:   result.PageSize,
		TotalPages: result.TotalPages,
	}, nil
}

// Update updates a client's mutable fields. The client code never changes.
func (s *ClientService) Update(ctx context.Context, p identity.Principal, clientID uuid.UUID, req UpdateClientRequest) (*ClientResponse, error) {
	if err := identity.RequireSession(p); err != nil {
		return nil, err
	}
	if err := identity.RequireRole(p, identity.MutatorRoles...); err != nil {
		return nil, err
	}

	client, err := s.clients.FindByIDForAgency(ctx, p.AgencyID, clientID)
	if err != nil {
		return nil, err
	}

	if err := client.Update(req.BusinessName, req.ContactPerson, req.WhatsappNumber,
		req.Email, crm.PackageType(req.PackageType), crm.ClientStatus(req.Status), req.StartDate); err != nil {
		return nil, err
	}

	if err := s.clients.Save(ctx, client); err != nil {
		return nil, err
	}

	id := client.ID
	s.events.RecordMutation(ctx, p.AgencyID, automation.EventClientUpdated, "clients",
		client.ID, &id, nil, map[string]interface{}{
			"clientCode": client.ClientCode,
			"status":     string(client.Status),
		})

	response := ToClientResponse(client)
	return &response, nil
}

// Delete removes a client
func (s *ClientService) Delete(ctx context.Context, p identity.Principal, clientID uuid.UUID) error {
	if err := identity.RequireSession(p); err != nil {
		return err
	}
	if err := identity.RequireRole(p, identity.DeleterRoles...); err != nil {
		return err
	}

	if err := s.clients.DeleteForAgency(ctx, p.AgencyID, clientID); err != nil {
		return err
	}

	id := clientID
	s.events.RecordMutation(ctx, p.AgencyID, automation.EventClientDeleted, "clients",
		clientID, &id, nil, nil)
	return nil
}
