package webhook

import (
	"time"

	"github.com/google/uuid"
)

// LeadWebhookRequest is the inbound lead payload. One of ClientID or
// ClientCode must identify the target client.
type LeadWebhookRequest struct {
	ClientID     string    `json:"clientId"`
	ClientCode   string    `json:"clientCode"`
	CustomerName string    `json:"customerName" binding:"required,min=2,max=200"`
	PhoneNumber  string    `json:"phoneNumber" binding:"required,min=6,max=50"`
	Source       string    `json:"source" binding:"required,oneof=WHATSAPP FACEBOOK WEBSITE"`
	Message      string    `json:"message" binding:"required,min=1"`
	Timestamp    time.Time `json:"timestamp" binding:"required"`
}

// LeadWebhookResponse reports the lead that now represents the submission
type LeadWebhookResponse struct {
	LeadID  uuid.UUID `json:"leadId"`
	Deduped bool      `json:"deduped"`
}
