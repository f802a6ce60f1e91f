package handler

import (
	"fmt"
	"net/http"
	"time"

	crmapp "github.com/crm/backend/internal/application/crm"
	"github.com/gin-gonic/gin"
)

// PortalHandler serves the client-facing portal. Routes behind it require
// a CLIENT principal with a bound client; reads never leave that client.
type PortalHandler struct {
	BaseHandler
	leadService    *crmapp.LeadService
	paymentService *crmapp.PaymentService
	serviceService *crmapp.ServiceService
}

// NewPortalHandler creates a new PortalHandler
func NewPortalHandler(leadService *crmapp.LeadService, paymentService *crmapp.PaymentService, serviceService *crmapp.ServiceService) *PortalHandler {
	return &PortalHandler{
		leadService:    leadService,
		paymentService: paymentService,
		serviceService: serviceService,
	}
}

// Leads returns the caller's own leads, newest first
func (h *PortalHandler) Leads(c *gin.Context) {
	p := principal(c)
	if p.ClientID == nil {
		h.Unauthorized(c, "Portal access requires a client account")
		return
	}

	leads, err := h.leadService.ListForClient(c.Request.Context(), p, *p.ClientID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, leads)
}

// Board returns the caller's own leads grouped by pipeline status
func (h *PortalHandler) Board(c *gin.Context) {
	p := principal(c)
	if p.ClientID == nil {
		h.Unauthorized(c, "Portal access requires a client account")
		return
	}

	board, err := h.leadService.Board(c.Request.Context(), p, *p.ClientID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, board)
}

// Payments returns the caller's own payments
func (h *PortalHandler) Payments(c *gin.Context) {
	p := principal(c)
	if p.ClientID == nil {
		h.Unauthorized(c, "Portal access requires a client account")
		return
	}

	var filter crmapp.PaymentListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.HandleBindingError(c, err)
		return
	}

	result, err := h.paymentService.ListForClient(c.Request.Context(), p, *p.ClientID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, result.Items, result.Total, result.Page, result.PageSize)
}

// Services returns the caller's own service engagements
func (h *PortalHandler) Services(c *gin.Context) {
	p := principal(c)
	if p.ClientID == nil {
		h.Unauthorized(c, "Portal access requires a client account")
		return
	}

	services, err := h.serviceService.ListForClient(c.Request.Context(), p, *p.ClientID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, services)
}

// ExportLeads streams the caller's leads as a CSV download
func (h *PortalHandler) ExportLeads(c *gin.Context) {
	csv, err := h.leadService.ExportCSV(c.Request.Context(), principal(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}

	filename := fmt.Sprintf("leads-%s.csv", time.Now().UTC().Format("2006-01-02"))
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	c.Data(http.StatusOK, "text/csv; charset=utf-8", csv)
}
