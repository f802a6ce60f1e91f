package handler

import (
	crmapp "github.com/crm/backend/internal/application/crm"
	"github.com/gin-gonic/gin"
)

// DashboardHandler handles the agency dashboard
type DashboardHandler struct {
	BaseHandler
	dashboardService *crmapp.DashboardService
}

// NewDashboardHandler creates a new DashboardHandler
func NewDashboardHandler(dashboardService *crmapp.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboardService: dashboardService}
}

// Stats returns the agency's headline counters
func (h *DashboardHandler) Stats(c *gin.Context) {
	stats, err := h.dashboardService.Stats(c.Request.Context(), principal(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, stats)
}
