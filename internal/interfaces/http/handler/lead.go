package handler

import (
	crmapp "github.com/crm/backend/internal/application/crm"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// LeadHandler handles lead pipeline endpoints
type LeadHandler struct {
	BaseHandler
	leadService *crmapp.LeadService
}

// NewLeadHandler creates a new LeadHandler
func NewLeadHandler(leadService *crmapp.LeadService) *LeadHandler {
	return &LeadHandler{leadService: leadService}
}

// Create records a lead manually (staff entry, as opposed to the webhook)
func (h *LeadHandler) Create(c *gin.Context) {
	var req crmapp.CreateLeadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.HandleBindingError(c, err)
		return
	}

	lead, err := h.leadService.Create(c.Request.Context(), principal(c), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, lead)
}

// List returns leads of the caller's agency
func (h *LeadHandler) List(c *gin.Context) {
	var filter crmapp.LeadListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.HandleBindingError(c, err)
		return
	}

	result, err := h.leadService.List(c.Request.Context(), principal(c), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, result.Items, result.Total, result.Page, result.PageSize)
}

// Board returns one client's leads grouped by pipeline status
func (h *LeadHandler) Board(c *gin.Context) {
	clientID, err := uuid.Parse(c.Query("client_id"))
	if err != nil {
		h.BadRequest(c, "client_id query parameter is required")
		return
	}

	board, err := h.leadService.Board(c.Request.Context(), principal(c), clientID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, board)
}

// Get returns a single lead by id
func (h *LeadHandler) Get(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		h.BadRequest(c, "Invalid lead ID")
		return
	}

	lead, err := h.leadService.GetByID(c.Request.Context(), principal(c), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, lead)
}

// Update replaces a lead's editable fields; moving the status to
// CONVERTED stamps the conversion timestamp once.
func (h *LeadHandler) Update(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		h.BadRequest(c, "Invalid lead ID")
		return
	}

	var req crmapp.UpdateLeadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.HandleBindingError(c, err)
		return
	}

	lead, err := h.leadService.Update(c.Request.Context(), principal(c), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, lead)
}

// Delete removes a lead
func (h *LeadHandler) Delete(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		h.BadRequest(c, "Invalid lead ID")
		return
	}

	if err := h.leadService.Delete(c.Request.Context(), principal(c), id); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

// AddConversation appends a message to the lead's timeline
func (h *LeadHandler) AddConversation(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		h.BadRequest(c, "Invalid lead ID")
		return
	}

	var req crmapp.CreateConversationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.HandleBindingError(c, err)
		return
	}

	conversation, err := h.leadService.AddConversation(c.Request.Context(), principal(c), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, conversation)
}

// Conversations returns the lead's message timeline oldest first
func (h *LeadHandler) Conversations(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		h.BadRequest(c, "Invalid lead ID")
		return
	}

	conversations, err := h.leadService.ListConversations(c.Request.Context(), principal(c), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, conversations)
}
