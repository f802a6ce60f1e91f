package crm

import (
	"context"
	"time"

	appautomation "github.com/crm/backend/internal/application/automation"
	"github.com/crm/backend/internal/domain/automation"
	"github.com/crm/backend/internal/domain/crm"
	"github.com/crm/backend/internal/domain/identity"
	"github.com/crm/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// LeadService handles lead-related business operations, including the
// pipeline board and the conversation timeline.
type LeadService struct {
	leads         crm.LeadRepository
	clients       crm.ClientRepository
	conversations crm.ConversationRepository
	events        *appautomation.EventLogger
}

// NewLeadService creates a new LeadService
func NewLeadService(leads crm.LeadRepository, clients crm.ClientRepository, conversations crm.ConversationRepository, events *appautomation.EventLogger) *LeadService {
	return &LeadService{
		leads:         leads,
		clients:       clients,
		conversations: conversations,
		events:        events,
	}
}

// Create creates a new lead by hand, outside the webhook path
func (s *LeadService) Create(ctx context.Context, p identity.Principal, req CreateLeadRequest) (*LeadResponse, error) {
	if err := identity.RequireSession(p); err != nil {
		return nil, err
	}
	if err := identity.RequireRole(p, identity.MutatorRoles...); err != nil {
		return nil, err
	}

	// The client must exist in the same agency before a lead can point at it.
	if _, err := s.clients.FindByIDForAgency(ctx, p.AgencyID, req.ClientID); err != nil {
		return nil, err
	}

	lead, err := crm.NewLead(p.AgencyID, req.ClientID, req.CustomerName,
		req.PhoneNumber, crm.LeadSource(req.Source), req.Notes)
	if err != nil {
		return nil, err
	}
	lead.AssignAgent(req.AssignedAgentUserID)

	if err := s.leads.Save(ctx, lead); err != nil {
		return nil, err
	}

	s.events.RecordLeadCreated(ctx, lead)

	response := ToLeadResponse(lead)
	return &response, nil
}

// GetByID retrieves a lead by ID
func (s *LeadService) GetByID(ctx context.Context, p identity.Principal, leadID uuid.UUID) (*LeadResponse, error) {
	if err := identity.RequireSession(p); err != nil {
		return nil, err
	}

	lead, err := s.leads.FindByIDForAgency(ctx, p.AgencyID, leadID)
	if err != nil {
		return nil, err
	}
	if err := identity.EnforceClientScope(p, lead.ClientID); err != nil {
		return nil, err
	}

	response := ToLeadResponse(lead)
	return &response, nil
}

// List retrieves leads for the principal's agency
func (s *LeadService) List(ctx context.Context, p identity.Principal, filter LeadListFilter) (shared.Paginated[LeadResponse], error) {
	if err := identity.RequireSession(p); err != nil {
		return shared.Paginated[LeadResponse]{}, err
	}
	if err := identity.RequireRole(p, identity.MutatorRoles...); err != nil {
		return shared.Paginated[LeadResponse]{}, err
	}

	result, err := s.leads.FindForAgency(ctx, p.AgencyID, filter.toDomain())
	if err != nil {
		return shared.Paginated[LeadResponse]{}, err
	}

	responses := make([]LeadResponse, len(result.Items))
	for i, lead := range result.Items {
		responses[i] = ToLeadResponse(&lead)
	}
	return shared.Paginated[LeadResponse]{
		Items:      responses,
		Total:      result.Total,
		Page:       result.Page,
		PageSize:   result.PageSize,
		TotalPages: result.TotalPages,
	}, nil
}

// Board groups a client's leads by pipeline status for the kanban view
func (s *LeadService) Board(ctx context.Context, p identity.Principal, clientID uuid.UUID) (*LeadBoardResponse, error) {
	if err := identity.RequireSession(p); err != nil {
		return nil, err
	}
	if err := identity.EnforceClientScope(p, clientID); err != nil {
		return nil, err
	}

	leads, err := s.leads.FindForClient(ctx, p.AgencyID, clientID)
	if err != nil {
		return nil, err
	}

	board := &LeadBoardResponse{
		New:       []LeadResponse{},
		FollowUp:  []LeadResponse{},
		Converted: []LeadResponse{},
		Lost:      []LeadResponse{},
	}
	for i := range leads {
		response := ToLeadResponse(&leads[i])
		switch leads[i].Status {
		case crm.LeadStatusNew:
			board.New = append(board.New, response)
		case crm.LeadStatusFollowUp:
			board.FollowUp = append(board.FollowUp, response)
		case crm.LeadStatusConverted:
			board.Converted = append(board.Converted, response)
		case crm.LeadStatusLost:
			board.Lost = append(board.Lost, response)
		}
	}
	return board, nil
}

// Update updates a lead. A transition into CONVERTED stamps the conversion
// time once and fires the conversion automation event.
func (s *LeadService) Update(ctx context.Context, p identity.Principal, leadID uuid.UUID, req UpdateLeadRequest) (*LeadResponse, error) {
	if err := identity.RequireSession(p); err != nil {
		return nil, err
	}
	if p.Role != identity.RoleClient {
		if err := identity.RequireRole(p, identity.MutatorRoles...); err != nil {
			return nil, err
		}
	}

	lead, err := s.leads.FindByIDForAgency(ctx, p.AgencyID, leadID)
	if err != nil {
		return nil, err
	}
	// Portal users may move their own client's leads through the pipeline
	if err := identity.EnforceClientScope(p, lead.ClientID); err != nil {
		return nil, err
	}

	previous := lead.Status
	next := crm.LeadStatus(req.Status)
	converting := automation.ShouldConvert(previous, next)

	if err := lead.Update(req.CustomerName, req.PhoneNumber,
		crm.LeadSource(req.Source), next, req.Notes); err != nil {
		return nil, err
	}
	lead.AssignAgent(req.AssignedAgentUserID)
	if converting {
		lead.MarkConverted(time.Now())
	}

	if err := s.leads.Save(ctx, lead); err != nil {
		return nil, err
	}

	if converting {
		s.events.RecordLeadConverted(ctx, lead)
	}
	id := lead.ID
	clientID := lead.ClientID
	s.events.RecordMutation(ctx, p.AgencyID, automation.EventLeadUpdated, "leads",
		lead.ID, &clientID, &id, map[string]interface{}{
			"leadCode":       lead.LeadCode,
			"previousStatus": string(previous),
			"status":         string(lead.Status),
		})

	response := ToLeadResponse(lead)
	return &response, nil
}

// Delete removes a lead
func (s *LeadService) Delete(ctx context.Context, p identity.Principal, leadID uuid.UUID) error {
	if err := identity.RequireSession(p); err != nil {
		return err
	}
	if err := identity.RequireRole(p, identity.DeleterRoles...); err != nil {
		return err
	}

	lead, err := s.leads.FindByIDForAgency(ctx, p.AgencyID, leadID)
	if err != nil {
		return err
	}

	if err := s.leads.DeleteForAgency(ctx, p.AgencyID, leadID); err != nil {
		return err
	}

	id := lead.ID
	clientID := lead.ClientID
	s.events.RecordMutation(ctx, p.AgencyID, automation.EventLeadDeleted, "leads",
		lead.ID, &clientID, &id, map[string]interface{}{
			"leadCode": lead.LeadCode,
		})
	return nil
}

// AddConversation appends a message to a lead's conversation timeline
func (s *LeadService) AddConversation(ctx context.Context, p identity.Principal, leadID uuid.UUID, req CreateConversationRequest) (*ConversationResponse, error) {
	if err := identity.RequireSession(p); err != nil {
		return nil, err
	}
	if err := identity.RequireRole(p, identity.MutatorRoles...); err != nil {
		return nil, err
	}

	lead, err := s.leads.FindByIDForAgency(ctx, p.AgencyID, leadID)
	if err != nil {
		return nil, err
	}

	conversation, err := crm.NewConversation(p.AgencyID, lead.ClientID, lead.ID,
		crm.MessageType(req.MessageType), req.Content, time.Now())
	if err != nil {
		return nil, err
	}

	if err := s.conversations.Save(ctx, conversation); err != nil {
		return nil, err
	}

	response := ToConversationResponse(conversation)
	return &response, nil
}

// ListConversations retrieves a lead's conversation timeline, oldest first
func (s *LeadService) ListConversations(ctx context.Context, p identity.Principal, leadID uuid.UUID) ([]ConversationResponse, error) {
	if err := identity.RequireSession(p); err != nil {
		return nil, err
	}

	lead, err := s.leads.FindByIDForAgency(ctx, p.AgencyID, leadID)
	if err != nil {
		return nil, err
	}
	if err := identity.EnforceClientScope(p, lead.ClientID); err != nil {
		return nil, err
	}

	entries, err := s.conversations.FindForLead(ctx, p.AgencyID, lead.ID)
	if err != nil {
		return nil, err
	}

	responses := make([]ConversationResponse, len(entries))
	for i := range entries {
		responses[i] = ToConversationResponse(&entries[i])
	}
	return responses, nil
}

// ListForClient retrieves one client's leads newest first. CLIENT-role
// principals can only read their bound client.
func (s *LeadService) ListForClient(ctx context.Context, p identity.Principal, clientID uuid.UUID) ([]LeadResponse, error) {
	if err := identity.RequireSession(p); err != nil {
		return nil, err
	}
	if err := identity.EnforceClientScope(p, clientID); err != nil {
		return nil, err
	}

	leads, err := s.leads.FindForClient(ctx, p.AgencyID, clientID)
	if err != nil {
		return nil, err
	}

	responses := make([]LeadResponse, len(leads))
	for i := range leads {
		responses[i] = ToLeadResponse(&leads[i])
	}
	return responses, nil
}
