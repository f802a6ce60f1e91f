package handler

import (
	crmapp "github.com/crm/backend/internal/application/crm"
	"github.com/gin-gonic/gin"
)

// ServiceHandler handles service engagement endpoints
type ServiceHandler struct {
	BaseHandler
	serviceService *crmapp.ServiceService
}

// NewServiceHandler creates a new ServiceHandler
func NewServiceHandler(serviceService *crmapp.ServiceService) *ServiceHandler {
	return &ServiceHandler{serviceService: serviceService}
}

// Create registers a service sold to a client
func (h *ServiceHandler) Create(c *gin.Context) {
	var req crmapp.CreateServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.HandleBindingError(c, err)
		return
	}

	service, err := h.serviceService.Create(c.Request.Context(), principal(c), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, service)
}

// List returns services of the caller's agency
func (h *ServiceHandler) List(c *gin.Context) {
	var filter crmapp.ServiceListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.HandleBindingError(c, err)
		return
	}

	result, err := h.serviceService.List(c.Request.Context(), principal(c), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, result.Items, result.Total, result.Page, result.PageSize)
}

// Get returns a single service by id
func (h *ServiceHandler) Get(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		h.BadRequest(c, "Invalid service ID")
		return
	}

	service, err := h.serviceService.GetByID(c.Request.Context(), principal(c), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, service)
}

// Update replaces a service's editable fields
func (h *ServiceHandler) Update(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		h.BadRequest(c, "Invalid service ID")
		return
	}

	var req crmapp.UpdateServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.HandleBindingError(c, err)
		return
	}

	service, err := h.serviceService.Update(c.Request.Context(), principal(c), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, service)
}

// Delete removes a service engagement
func (h *ServiceHandler) Delete(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		h.BadRequest(c, "Invalid service ID")
		return
	}

	if err := h.serviceService.Delete(c.Request.Context(), principal(c), id); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}
