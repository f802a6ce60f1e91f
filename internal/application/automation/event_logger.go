package automation

import (
	"context"

	"github.com/crm/backend/internal/domain/automation"
	"github.com/crm/backend/internal/domain/crm"
	"github.com/crm/backend/internal/infrastructure/logger"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// EventLogger writes automation log rows. Every write is best-effort: a
// failure is logged and swallowed so the triggering operation still
// succeeds.
type EventLogger struct {
	logs automation.LogRepository
}

// NewEventLogger creates a new EventLogger
func NewEventLogger(logs automation.LogRepository) *EventLogger {
	return &EventLogger{logs: logs}
}

// Record writes one automation event row. The returned error reports
// whether the row made it to storage; callers that chain follow-up rows
// off the result still treat it as best-effort.
func (l *EventLogger) Record(ctx context.Context, agencyID uuid.UUID, entry automation.Entry) error {
	row, err := automation.NewLog(agencyID, entry)
	if err != nil {
		logger.L(ctx).Warn("automation log entry rejected",
			zap.String("event_type", entry.EventType),
			zap.Error(err))
		return err
	}
	if err := l.logs.Save(ctx, row); err != nil {
		logger.L(ctx).Warn("automation log write failed",
			zap.String("event_type", entry.EventType),
			zap.String("event_id", row.EventID),
			zap.Error(err))
		return err
	}
	return nil
}

// RecordMutation writes a CRUD audit row for an entity change
func (l *EventLogger) RecordMutation(ctx context.Context, agencyID uuid.UUID, eventType, table string, recordID uuid.UUID, clientID, leadID *uuid.UUID, details map[string]interface{}) {
	id := recordID
	l.Record(ctx, agencyID, automation.Entry{
		EventType:       eventType,
		Status:          automation.StatusSuccess,
		TriggerTable:    table,
		TriggerRecordID: &id,
		RelatedClientID: clientID,
		RelatedLeadID:   leadID,
		Details:         details,
	})
}

// RecordLeadCreated runs the new-lead notification step, then writes the
// LEAD_CREATED row. When the notification step fails, the LEAD_CREATED
// row is written with FAILED status and carries the failure message.
func (l *EventLogger) RecordLeadCreated(ctx context.Context, lead *crm.Lead) {
	leadID := lead.ID
	clientID := lead.ClientID
	notifyErr := l.Record(ctx, lead.AgencyID, automation.Entry{
		EventType:       automation.EventNotificationPlaceholder,
		Status:          automation.StatusSuccess,
		TriggerTable:    "leads",
		TriggerRecordID: &leadID,
		RelatedClientID: &clientID,
		RelatedLeadID:   &leadID,
		Details: map[string]interface{}{
			"channel": "none",
			"reason":  "notification delivery not configured",
		},
	})

	created := automation.Entry{
		EventType:       automation.EventLeadCreated,
		Status:          automation.StatusSuccess,
		TriggerTable:    "leads",
		TriggerRecordID: &leadID,
		RelatedClientID: &clientID,
		RelatedLeadID:   &leadID,
		Details: map[string]interface{}{
			"leadCode": lead.LeadCode,
			"source":   string(lead.Source),
		},
	}
	if notifyErr != nil {
		created.Status = automation.StatusFailed
		created.ErrorMessage = notifyErr.Error()
	}
	l.Record(ctx, lead.AgencyID, created)
}

// RecordLeadConverted writes the LEAD_CONVERTED row
func (l *EventLogger) RecordLeadConverted(ctx context.Context, lead *crm.Lead) {
	leadID := lead.ID
	clientID := lead.ClientID
	l.Record(ctx, lead.AgencyID, automation.Entry{
		EventType:       automation.EventLeadConverted,
		Status:          automation.StatusSuccess,
		TriggerTable:    "leads",
		TriggerRecordID: &leadID,
		RelatedClientID: &clientID,
		RelatedLeadID:   &leadID,
		Details: map[string]interface{}{
			"leadCode": lead.LeadCode,
		},
	})
}

// RecordWebhookDedupe writes the WEBHOOK_DEDUPE row for a suppressed
// duplicate submission.
func (l *EventLogger) RecordWebhookDedupe(ctx context.Context, existing *crm.Lead, phone string) {
	leadID := existing.ID
	clientID := existing.ClientID
	l.Record(ctx, existing.AgencyID, automation.Entry{
		EventType:       automation.EventWebhookDedupe,
		Status:          automation.StatusSuccess,
		TriggerTable:    "leads",
		TriggerRecordID: &leadID,
		RelatedClientID: &clientID,
		RelatedLeadID:   &leadID,
		Details: map[string]interface{}{
			"phoneNumber":    phone,
			"existingLeadId": existing.ID.String(),
		},
	})
}
