package automation

import (
	"time"

	"github.com/crm/backend/internal/domain/automation"
	"github.com/crm/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// LogListFilter represents filter options for the automation log list
type LogListFilter struct {
	EventType string `form:"event_type"`
	Status    string `form:"status" binding:"omitempty,oneof=SUCCESS FAILED"`
	ClientID  string `form:"client_id" binding:"omitempty,uuid"`
	Page      int    `form:"page" binding:"omitempty,min=1"`
	PageSize  int    `form:"page_size" binding:"omitempty,min=1,max=100"`
	OrderBy   string `form:"order_by"`
	OrderDir  string `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

func (f LogListFilter) toDomain() shared.Filter {
	filter := shared.DefaultFilter()
	if f.Page > 0 {
		filter.Page = f.Page
	}
	if f.PageSize > 0 {
		filter.PageSize = f.PageSize
	}
	if f.OrderBy != "" {
		filter.OrderBy = f.OrderBy
	}
	if f.OrderDir != "" {
		filter.OrderDir = f.OrderDir
	}
	if f.EventType != "" {
		filter.Filters["event_type"] = f.EventType
	}
	if f.Status != "" {
		filter.Filters["status"] = f.Status
	}
	if f.ClientID != "" {
		filter.Filters["client_id"] = f.ClientID
	}
	return filter
}

// LogResponse represents an automation log row in API responses
type LogResponse struct {
	ID              uuid.UUID  `json:"id"`
	EventID         string     `json:"event_id"`
	EventType       string     `json:"event_type"`
	Status          string     `json:"status"`
	TriggerTable    string     `json:"trigger_table"`
	TriggerRecordID *uuid.UUID `json:"trigger_record_id"`
	RelatedClientID *uuid.UUID `json:"related_client_id"`
	RelatedLeadID   *uuid.UUID `json:"related_lead_id"`
	Details         string     `json:"details"`
	ErrorMessage    string     `json:"error_message,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
}

// ToLogResponse converts a domain Log to LogResponse
func ToLogResponse(l *automation.Log) LogResponse {
	return LogResponse{
		ID:              l.ID,
		EventID:         l.EventID,
		EventType:       l.EventType,
		Status:          string(l.Status),
		TriggerTable:    l.TriggerTable,
		TriggerRecordID: l.TriggerRecordID,
		RelatedClientID: l.RelatedClientID,
		RelatedLeadID:   l.RelatedLeadID,
		Details:         l.Details,
		ErrorMessage:    l.ErrorMessage,
		CreatedAt:       l.CreatedAt,
	}
}
