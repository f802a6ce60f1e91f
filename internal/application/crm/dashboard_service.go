package crm

import (
	"context"
	"time"

	"github.com/crm/backend/internal/domain/crm"
	"github.com/crm/backend/internal/domain/identity"
)

// DashboardService aggregates the headline numbers for the agency dashboard
type DashboardService struct {
	clients  crm.ClientRepository
	leads    crm.LeadRepository
	payments crm.PaymentRepository
	now      func() time.Time
}

// NewDashboardService creates a new DashboardService
func NewDashboardService(clients crm.ClientRepository, leads crm.LeadRepository, payments crm.PaymentRepository) *DashboardService {
	return &DashboardService{
		clients:  clients,
		leads:    leads,
		payments: payments,
		now:      time.Now,
	}
}

// Stats computes the dashboard counters: active clients, leads captured
// today, conversions over the last seven days, and payments still open.
func (s *DashboardService) Stats(ctx context.Context, p identity.Principal) (*DashboardStatsResponse, error) {
	if err := identity.RequireSession(p); err != nil {
		return nil, err
	}
	if err := identity.RequireRole(p, identity.MutatorRoles...); err != nil {
		return nil, err
	}

	now := s.now()
	startOfDay := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	weekAgo := now.Add(-7 * 24 * time.Hour)

	activeClients, err := s.clients.CountActiveForAgency(ctx, p.AgencyID)
	if err != nil {
		return nil, err
	}
	leadsToday, err := s.leads.CountCreatedSince(ctx, p.AgencyID, startOfDay)
	if err != nil {
		return nil, err
	}
	conversions, err := s.leads.CountConvertedSince(ctx, p.AgencyID, weekAgo)
	if err != nil {
		return nil, err
	}
	outstanding, err := s.payments.CountOutstandingForAgency(ctx, p.AgencyID)
	if err != nil {
		return nil, err
	}

	return &DashboardStatsResponse{
		ActiveClients:       activeClients,
		LeadsToday:          leadsToday,
		ConversionsThisWeek: conversions,
		OutstandingPayments: outstanding,
	}, nil
}
