package handler

import (
	"net/http"

	webhookapp "github.com/crm/backend/internal/application/webhook"
	"github.com/gin-gonic/gin"
)

// WebhookHandler handles the inbound lead webhook. Authentication and rate
// limiting happen in middleware before the handler runs.
type WebhookHandler struct {
	BaseHandler
	ingestService *webhookapp.IngestService
}

// NewWebhookHandler creates a new WebhookHandler
func NewWebhookHandler(ingestService *webhookapp.IngestService) *WebhookHandler {
	return &WebhookHandler{ingestService: ingestService}
}

// IngestLead accepts a lead from an external automation platform.
// The body is returned unwrapped; external callers are configured
// against the {leadId, deduped} contract, not the API envelope.
func (h *WebhookHandler) IngestLead(c *gin.Context) {
	var req webhookapp.LeadWebhookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.HandleBindingError(c, err)
		return
	}

	resp, err := h.ingestService.Ingest(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}
