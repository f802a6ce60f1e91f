package automation

import (
	"encoding/json"
	"time"

	"github.com/crm/backend/internal/domain/crm"
	"github.com/crm/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// Status is the outcome recorded for an automation event
type Status string

const (
	StatusSuccess Status = "SUCCESS"
	StatusFailed  Status = "FAILED"
)

// Event types written by the automation layer. CRUD audit entries follow the
// {ENTITY}_{ACTION} pattern.
const (
	EventWebhookDedupe           = "WEBHOOK_DEDUPE"
	EventLeadCreated             = "LEAD_CREATED"
	EventLeadConverted           = "LEAD_CONVERTED"
	EventNotificationPlaceholder = "NOTIFICATION_PLACEHOLDER"

	EventClientCreated = "CLIENT_CREATED"
	EventClientUpdated = "CLIENT_UPDATED"
	EventClientDeleted = "CLIENT_DELETED"

	EventLeadUpdated = "LEAD_UPDATED"
	EventLeadDeleted = "LEAD_DELETED"

	EventPaymentCreated = "PAYMENT_CREATED"
	EventPaymentUpdated = "PAYMENT_UPDATED"
	EventPaymentDeleted = "PAYMENT_DELETED"

	EventServiceCreated = "SERVICE_CREATED"
	EventServiceUpdated = "SERVICE_UPDATED"
	EventServiceDeleted = "SERVICE_DELETED"
)

// Log is an append-only automation event record. Rows are written
// best-effort: a failed write never fails the operation that triggered it.
type Log struct {
	shared.AgencyAggregateRoot
	EventID         string     `gorm:"type:varchar(50);not null;uniqueIndex"`
	EventType       string     `gorm:"type:varchar(50);not null;index"`
	Status          Status     `gorm:"type:varchar(20);not null"`
	TriggerTable    string     `gorm:"type:varchar(50)"`
	TriggerRecordID *uuid.UUID `gorm:"type:uuid"`
	RelatedClientID *uuid.UUID `gorm:"type:uuid;index"`
	RelatedLeadID   *uuid.UUID `gorm:"type:uuid;index"`
	Details         string     `gorm:"type:text"`
	ErrorMessage    string     `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (Log) TableName() string {
	return "automation_logs"
}

// Entry describes one automation event before it is persisted
type Entry struct {
	EventType       string
	Status          Status
	TriggerTable    string
	TriggerRecordID *uuid.UUID
	RelatedClientID *uuid.UUID
	RelatedLeadID   *uuid.UUID
	Details         map[string]interface{}
	ErrorMessage    string
}

// NewLog builds a persistable log row from an entry. The event id is
// generated here so callers never supply one.
func NewLog(agencyID uuid.UUID, entry Entry) (*Log, error) {
	if entry.EventType == "" {
		return nil, shared.NewDomainError("INVALID_EVENT_TYPE", "Event type cannot be empty")
	}
	if entry.Status != StatusSuccess && entry.Status != StatusFailed {
		return nil, shared.NewDomainError("INVALID_STATUS", "Status must be SUCCESS or FAILED")
	}

	details := ""
	if entry.Details != nil {
		raw, err := json.Marshal(entry.Details)
		if err != nil {
			return nil, shared.NewDomainError("INVALID_DETAILS", "Details are not serializable")
		}
		details = string(raw)
	}

	return &Log{
		AgencyAggregateRoot: shared.NewAgencyAggregateRoot(agencyID),
		EventID:             crm.GenerateEventID(time.Now()),
		EventType:           entry.EventType,
		Status:              entry.Status,
		TriggerTable:        entry.TriggerTable,
		TriggerRecordID:     entry.TriggerRecordID,
		RelatedClientID:     entry.RelatedClientID,
		RelatedLeadID:       entry.RelatedLeadID,
		Details:             details,
		ErrorMessage:        entry.ErrorMessage,
	}, nil
}

// ShouldConvert reports whether a status change is a conversion. Only the
// transition into CONVERTED counts; re-saving an already converted lead
// does not fire again.
func ShouldConvert(previous, next crm.LeadStatus) bool {
	return next == crm.LeadStatusConverted && previous != crm.LeadStatusConverted
}
