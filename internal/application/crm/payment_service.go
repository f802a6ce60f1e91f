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

// PaymentService handles payment-related business operations
type PaymentService struct {
	payments crm.PaymentRepository
	clients  crm.ClientRepository
	events   *appautomation.EventLogger
}

// NewPaymentService creates a new PaymentService
func NewPaymentService(payments crm.PaymentRepository, clients crm.ClientRepository, events *appautomation.EventLogger) *PaymentService {
	return &PaymentService{
		payments: payments,
		clients:  clients,
		events:   events,
	}
}

// Create creates a new payment record
func (s *PaymentService) Create(ctx context.Context, p identity.Principal, req CreatePaymentRequest) (*PaymentResponse, error) {
	if err := identity.RequireSession(p); err != nil {
		return nil, err
	}
	if err := identity.RequireRole(p, identity.MutatorRoles...); err != nil {
		return nil, err
	}

	if _, err := s.clients.FindByIDForAgency(ctx, p.AgencyID, req.ClientID); err != nil {
		return nil, err
	}

	status := crm.PaymentStatusPending
	if req.Status != "" {
		status = crm.PaymentStatus(req.Status)
	}
	cycle := crm.BillingMonthly
	if req.BillingCycle != "" {
		cycle = crm.BillingCycle(req.BillingCycle)
	}

	payment, err := crm.NewPayment(p.AgencyID, req.ClientID, req.Amount, req.Currency, status, cycle, req.DueDate, req.Notes)
	if err != nil {
		return nil, err
	}

	if err := s.payments.Save(ctx, payment); err != nil {
		return nil, err
	}

	clientID := payment.ClientID
	s.events.RecordMutation(ctx, p.AgencyID, automation.EventPaymentCreated, "payments",
		payment.ID, &clientID, nil, map[string]interface{}{
			"amount": payment.Amount.String(),
			"status": string(payment.Status),
		})

	response := ToPaymentResponse(payment)
	return &response, nil
}

// GetByID retrieves a payment by ID
func (s *PaymentService) GetByID(ctx context.Context, p identity.Principal, paymentID uuid.UUID) (*PaymentResponse, error) {
	if err := identity.RequireSession(p); err != nil {
		return nil, err
	}

	payment, err := s.payments.FindByIDForAgency(ctx, p.AgencyID, paymentID)
	if err != nil {
		return nil, err
	}
	if err := identity.EnforceClientScope(p, payment.ClientID); err != nil {
		return nil, err
	}

	response := ToPaymentResponse(payment)
	return &response, nil
}

// List retrieves payments for the principal's agency
func (s *PaymentService) List(ctx context.Context, p identity.Principal, filter PaymentListFilter) (shared.Paginated[PaymentResponse], error) {
	if err := identity.RequireSession(p); err != nil {
		return shared.Paginated[PaymentResponse]{}, err
	}
	if err := identity.RequireRole(p, identity.MutatorRoles...); err != nil {
		return shared.Paginated[PaymentResponse]{}, err
	}

	result, err := s.payments.FindForAgency(ctx, p.AgencyID, filter.toDomain())
	if err != nil {
		return shared.Paginated[PaymentResponse]{}, err
	}

	responses := make([]PaymentResponse, len(result.Items))
	for i, payment := range result.Items {
		responses[i] = ToPaymentResponse(&payment)
	}
	return shared.Paginated[PaymentResponse]{
		Items:      responses,
		Total:      result.Total,
		Page:       result.Page,
		PageSize:   result.PageSize,
		TotalPages: result.TotalPages,
	}, nil
}

// Update updates a payment
func (s *PaymentService) Update(ctx context.Context, p identity.Principal, paymentID uuid.UUID, req UpdatePaymentRequest) (*PaymentResponse, error) {
	if err := identity.RequireSession(p); err != nil {
		return nil, err
	}
	if err := identity.RequireRole(p, identity.MutatorRoles...); err != nil {
		return nil, err
	}

	payment, err := s.payments.FindByIDForAgency(ctx, p.AgencyID, paymentID)
	if err != nil {
		return nil, err
	}

	if err := payment.Update(req.Amount, req.Currency, crm.PaymentStatus(req.Status),
		crm.BillingCycle(req.BillingCycle), req.DueDate, req.Notes); err != nil {
		return nil, err
	}

	if err := s.payments.Save(ctx, payment); err != nil {
		return nil, err
	}

	clientID := payment.ClientID
	s.events.RecordMutation(ctx, p.AgencyID, automation.EventPaymentUpdated, "payments",
		payment.ID, &clientID, nil, map[string]interface{}{
			"amount": payment.Amount.String(),
			"status": string(payment.Status),
		})

	response := ToPaymentResponse(payment)
	return &response, nil
}

// Delete removes a payment
func (s *PaymentService) Delete(ctx context.Context, p identity.Principal, paymentID uuid.UUID) error {
	if err := identity.RequireSession(p); err != nil {
		return err
	}
	if err := identity.RequireRole(p, identity.DeleterRoles...); err != nil {
		return err
	}

	payment, err := s.payments.FindByIDForAgency(ctx, p.AgencyID, paymentID)
	if err != nil {
		return err
	}

	if err := s.payments.DeleteForAgency(ctx, p.AgencyID, paymentID); err != nil {
		return err
	}

	clientID := payment.ClientID
	s.events.RecordMutation(ctx, p.AgencyID, automation.EventPaymentDeleted, "payments",
		payment.ID, &clientID, nil, nil)
	return nil
}

// ListForClient retrieves one client's payments. CLIENT-role principals
// can only read their bound client.
func (s *PaymentService) ListForClient(ctx context.Context, p identity.Principal, clientID uuid.UUID, filter PaymentListFilter) (shared.Paginated[PaymentResponse], error) {
	if err := identity.RequireSession(p); err != nil {
		return shared.Paginated[PaymentResponse]{}, err
	}
	if err := identity.EnforceClientScope(p, clientID); err != nil {
		return shared.Paginated[PaymentResponse]{}, err
	}

	domainFilter := filter.toDomain()
	domainFilter.Filters["client_id"] = clientID.String()

	result, err := s.payments.FindForAgency(ctx, p.AgencyID, domainFilter)
	if err != nil {
		return shared.Paginated[PaymentResponse]{}, err
	}

	responses := make([]PaymentResponse, len(result.Items))
	for i, payment := range result.Items {
		responses[i] = ToPaymentResponse(&payment)
	}
	return shared.Paginated[PaymentResponse]{
		Items:      responses,
		Total:      result.Total,
		Page:       result.Page,
		PageSize:   result.PageSize,
		TotalPages: result.TotalPages,
	}, nil
}
