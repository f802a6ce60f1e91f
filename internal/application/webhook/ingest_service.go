package webhook

import (
	"context"
	"time"

	appautomation "github.com/crm/backend/internal/application/automation"
	"github.com/crm/backend/internal/domain/crm"
	"github.com/crm/backend/internal/domain/shared"
	"github.com/crm/backend/internal/infrastructure/logger"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// IngestService turns inbound webhook payloads into leads. Each accepted
// payload creates the lead and its first INCOMING conversation entry in one
// transaction; repeated submissions for the same phone within the dedupe
// window return the existing lead instead.
type IngestService struct {
	clients      crm.ClientRepository
	leads        crm.LeadRepository
	events       *appautomation.EventLogger
	dedupeWindow time.Duration
	now          func() time.Time
}

// NewIngestService creates a new IngestService
func NewIngestService(clients crm.ClientRepository, leads crm.LeadRepository, events *appautomation.EventLogger, dedupeWindow time.Duration) *IngestService {
	return &IngestService{
		clients:      clients,
		leads:        leads,
		events:       events,
		dedupeWindow: dedupeWindow,
		now:          time.Now,
	}
}

// Ingest processes one webhook payload. The target client may be addressed
// by id or by client code; its own agency is authoritative for the new lead
// regardless of anything else in the payload.
func (s *IngestService) Ingest(ctx context.Context, req LeadWebhookRequest) (*LeadWebhookResponse, error) {
	client, err := s.resolveClient(ctx, req)
	if err != nil {
		return nil, err
	}

	since := s.now().Add(-s.dedupeWindow)
	existing, err := s.leads.FindRecentByPhone(ctx, client.ID, req.PhoneNumber, since)
	if err == nil {
		s.events.RecordWebhookDedupe(ctx, existing, req.PhoneNumber)
		logger.L(ctx).Info("webhook lead deduplicated",
			zap.String("client_id", client.ID.String()),
			zap.String("lead_id", existing.ID.String()))
		return &LeadWebhookResponse{LeadID: existing.ID, Deduped: true}, nil
	}
	if err != shared.ErrNotFound {
		return nil, err
	}

	lead, err := crm.NewLead(client.AgencyID, client.ID, req.CustomerName,
		req.PhoneNumber, crm.LeadSource(req.Source), "")
	if err != nil {
		return nil, err
	}

	conversation, err := crm.NewConversation(client.AgencyID, client.ID, lead.ID,
		crm.MessageIncoming, req.Message, req.Timestamp)
	if err != nil {
		return nil, err
	}

	if err := s.leads.SaveWithConversation(ctx, lead, conversation); err != nil {
		return nil, err
	}

	s.events.RecordLeadCreated(ctx, lead)
	logger.L(ctx).Info("webhook lead created",
		zap.String("client_id", client.ID.String()),
		zap.String("lead_id", lead.ID.String()),
		zap.String("lead_code", lead.LeadCode))

	return &LeadWebhookResponse{LeadID: lead.ID, Deduped: false}, nil
}

func (s *IngestService) resolveClient(ctx context.Context, req LeadWebhookRequest) (*crm.Client, error) {
	if req.ClientID != "" {
		id, err := uuid.Parse(req.ClientID)
		if err != nil {
			return nil, shared.NewDomainError("VALIDATION_ERROR", "clientId must be a valid UUID")
		}
		return s.clients.FindByID(ctx, id)
	}
	if req.ClientCode != "" {
		return s.clients.FindByCode(ctx, req.ClientCode)
	}
	return nil, shared.NewDomainError("VALIDATION_ERROR", "One of clientId or clientCode is required")
}
