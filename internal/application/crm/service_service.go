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

// ServiceService handles the deliverables an agency runs for its clients
type ServiceService struct {
	services crm.ServiceRepository
	clients  crm.ClientRepository
	events   *appautomation.EventLogger
}

// NewServiceService creates a new ServiceService
func NewServiceService(services crm.ServiceRepository, clients crm.ClientRepository, events *appautomation.EventLogger) *ServiceService {
	return &ServiceService{
		services: services,
		clients:  clients,
		events:   events,
	}
}

// Create creates a new service for a client
func (s *ServiceService) Create(ctx context.Context, p identity.Principal, req CreateServiceRequest) (*ServiceResponse, error) {
	if err := identity.RequireSession(p); err != nil {
		return nil, err
	}
	if err := identity.RequireRole(p, identity.MutatorRoles...); err != nil {
		return nil, err
	}

	if _, err := s.clients.FindByIDForAgency(ctx, p.AgencyID, req.ClientID); err != nil {
		return nil, err
	}

	service, err := crm.NewService(p.AgencyID, req.ClientID, req.Name, req.ServiceType, req.DeliveryStatus, req.GoLiveDate, req.Notes)
	if err != nil {
		return nil, err
	}

	if err := s.services.Save(ctx, service); err != nil {
		return nil, err
	}

	clientID := service.ClientID
	s.events.RecordMutation(ctx, p.AgencyID, automation.EventServiceCreated, "services",
		service.ID, &clientID, nil, map[string]interface{}{
			"name": service.Name,
		})

	response := ToServiceResponse(service)
	return &response, nil
}

// GetByID retrieves a service by ID
func (s *ServiceService) GetByID(ctx context.Context, p identity.Principal, serviceID uuid.UUID) (*ServiceResponse, error) {
	if err := identity.RequireSession(p); err != nil {
		return nil, err
	}

	service, err := s.services.FindByIDForAgency(ctx, p.AgencyID, serviceID)
	if err != nil {
		return nil, err
	}
	if err := identity.EnforceClientScope(p, service.ClientID); err != nil {
		return nil, err
	}

	response := ToServiceResponse(service)
	return &response, nil
}

// List retrieves services for the principal's agency
func (s *ServiceService) List(ctx context.Context, p identity.Principal, filter ServiceListFilter) (shared.Paginated[ServiceResponse], error) {
	if err := identity.RequireSession(p); err != nil {
		return shared.Paginated[ServiceResponse]{}, err
	}
	if err := identity.RequireRole(p, identity.MutatorRoles...); err != nil {
		return shared.Paginated[ServiceResponse]{}, err
	}

	result, err := s.services.FindForAgency(ctx, p.AgencyID, filter.toDomain())
	if err != nil {
		return shared.Paginated[ServiceResponse]{}, err
	}

	responses := make([]ServiceResponse, len(result.Items))
	for i, service := range result.Items {
		responses[i] = ToServiceResponse(&service)
	}
	return shared.Paginated[ServiceResponse]{
		Items:      responses,
		Total:      result.Total,
		Page:       result.Page,
		PageSize:   result.PageSize,
		TotalPages: result.TotalPages,
	}, nil
}

// ListForClient retrieves the services running for one client
func (s *ServiceService) ListForClient(ctx context.Context, p identity.Principal, clientID uuid.UUID) ([]ServiceResponse, error) {
	if err := identity.RequireSession(p); err != nil {
		return nil, err
	}
	if err := identity.EnforceClientScope(p, clientID); err != nil {
		return nil, err
	}

	services, err := s.services.FindForClient(ctx, p.AgencyID, clientID)
	if err != nil {
		return nil, err
	}

	responses := make([]ServiceResponse, len(services))
	for i := range services {
		responses[i] = ToServiceResponse(&services[i])
	}
	return responses, nil
}

// Update updates a service
func (s *ServiceService) Update(ctx context.Context, p identity.Principal, serviceID uuid.UUID, req UpdateServiceRequest) (*ServiceResponse, error) {
	if err := identity.RequireSession(p); err != nil {
		return nil, err
	}
	if err := identity.RequireRole(p, identity.MutatorRoles...); err != nil {
		return nil, err
	}

	service, err := s.services.FindByIDForAgency(ctx, p.AgencyID, serviceID)
	if err != nil {
		return nil, err
	}

	if err := service.Update(req.Name, req.ServiceType, req.DeliveryStatus, req.GoLiveDate, req.Notes); err != nil {
		return nil, err
	}

	if err := s.services.Save(ctx, service); err != nil {
		return nil, err
	}

	clientID := service.ClientID
	s.events.RecordMutation(ctx, p.AgencyID, automation.EventServiceUpdated, "services",
		service.ID, &clientID, nil, map[string]interface{}{
			"name":           service.Name,
			"deliveryStatus": service.DeliveryStatus,
		})

	response := ToServiceResponse(service)
	return &response, nil
}

// Delete removes a service
func (s *ServiceService) Delete(ctx context.Context, p identity.Principal, serviceID uuid.UUID) error {
	if err := identity.RequireSession(p); err != nil {
		return err
	}
	if err := identity.RequireRole(p, identity.DeleterRoles...); err != nil {
		return err
	}

	service, err := s.services.FindByIDForAgency(ctx, p.AgencyID, serviceID)
	if err != nil {
		return err
	}

	if err := s.services.DeleteForAgency(ctx, p.AgencyID, serviceID); err != nil {
		return err
	}

	clientID := service.ClientID
	s.events.RecordMutation(ctx, p.AgencyID, automation.EventServiceDeleted, "services",
		service.ID, &clientID, nil, nil)
	return nil
}
