package automation

import (
	"context"

	"github.com/crm/backend/internal/domain/automation"
	"github.com/crm/backend/internal/domain/identity"
	"github.com/crm/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// LogService exposes the automation log to staff users
type LogService struct {
	logs automation.LogRepository
}

// NewLogService creates a new LogService
func NewLogService(logs automation.LogRepository) *LogService {
	return &LogService{logs: logs}
}

// List retrieves automation log rows for the principal's agency
func (s *LogService) List(ctx context.Context, p identity.Principal, filter LogListFilter) (shared.Paginated[LogResponse], error) {
	if err := identity.RequireSession(p); err != nil {
		return shared.Paginated[LogResponse]{}, err
	}
	if err := identity.RequireRole(p, identity.MutatorRoles...); err != nil {
		return shared.Paginated[LogResponse]{}, err
	}

	domainFilter := filter.toDomain()
	result, err := s.logs.FindForAgency(ctx, p.AgencyID, domainFilter)
	if err != nil {
		return shared.Paginated[LogResponse]{}, err
	}

	responses := make([]LogResponse, len(result.Items))
	for i, row := range result.Items {
		responses[i] = ToLogResponse(&row)
	}
	return shared.Paginated[LogResponse]{
		Items:      responses,
		Total:      result.Total,
		Page:       result.Page,
		PageSize:   result.PageSize,
		TotalPages: result.TotalPages,
	}, nil
}

// ListForLead retrieves automation log rows related to one lead
func (s *LogService) ListForLead(ctx context.Context, p identity.Principal, leadID uuid.UUID) ([]LogResponse, error) {
	if err := identity.RequireSession(p); err != nil {
		return nil, err
	}
	if err := identity.RequireRole(p, identity.MutatorRoles...); err != nil {
		return nil, err
	}

	rows, err := s.logs.FindForLead(ctx, p.AgencyID, leadID)
	if err != nil {
		return nil, err
	}

	responses := make([]LogResponse, len(rows))
	for i, row := range rows {
		responses[i] = ToLogResponse(&row)
	}
	return responses, nil
}
