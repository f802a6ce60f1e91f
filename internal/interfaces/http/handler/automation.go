package handler

import (
	automationapp "github.com/crm/backend/internal/application/automation"
	"github.com/gin-gonic/gin"
)

// AutomationLogHandler handles automation event log endpoints
type AutomationLogHandler struct {
	BaseHandler
	logService *automationapp.LogService
}

// NewAutomationLogHandler creates a new AutomationLogHandler
func NewAutomationLogHandler(logService *automationapp.LogService) *AutomationLogHandler {
	return &AutomationLogHandler{logService: logService}
}

// List returns the agency's automation log, newest first
func (h *AutomationLogHandler) List(c *gin.Context) {
	var filter automationapp.LogListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.HandleBindingError(c, err)
		return
	}

	result, err := h.logService.List(c.Request.Context(), principal(c), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, result.Items, result.Total, result.Page, result.PageSize)
}

// ForLead returns the automation rows tied to one lead
func (h *AutomationLogHandler) ForLead(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		h.BadRequest(c, "Invalid lead ID")
		return
	}

	logs, err := h.logService.ListForLead(c.Request.Context(), principal(c), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, logs)
}
