package handler

import (
	crmapp "github.com/crm/backend/internal/application/crm"
	"github.com/gin-gonic/gin"
)

// ClientHandler handles client management endpoints
type ClientHandler struct {
	BaseHandler
	clientService  *crmapp.ClientService
	serviceService *crmapp.ServiceService
}

// NewClientHandler creates a new ClientHandler
func NewClientHandler(clientService *crmapp.ClientService, serviceService *crmapp.ServiceService) *ClientHandler {
	return &ClientHandler{
		clientService:  clientService,
		serviceService: serviceService,
	}
}

// Create registers a new client business
func (h *ClientHandler) Create(c *gin.Context) {
	var req crmapp.CreateClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.HandleBindingError(c, err)
		return
	}

	client, err := h.clientService.Create(c.Request.Context(), principal(c), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, client)
}

// List returns clients of the caller's agency
func (h *ClientHandler) List(c *gin.Context) {
	var filter crmapp.ClientListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.HandleBindingError(c, err)
		return
	}

	result, err := h.clientService.List(c.Request.Context(), principal(c), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, result.Items, result.Total, result.Page, result.PageSize)
}

// Get returns a single client by id
func (h *ClientHandler) Get(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		h.BadRequest(c, "Invalid client ID")
		return
	}

	client, err := h.clientService.GetByID(c.Request.Context(), principal(c), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, client)
}

// Update replaces a client's editable fields
func (h *ClientHandler) Update(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		h.BadRequest(c, "Invalid client ID")
		return
	}

	var req crmapp.UpdateClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.HandleBindingError(c, err)
		return
	}

	client, err := h.clientService.Update(c.Request.Context(), principal(c), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, client)
}

// Delete removes a client
func (h *ClientHandler) Delete(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		h.BadRequest(c, "Invalid client ID")
		return
	}

	if err := h.clientService.Delete(c.Request.Context(), principal(c), id); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

// Services lists the active service engagements of a client
func (h *ClientHandler) Services(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		h.BadRequest(c, "Invalid client ID")
		return
	}

	services, err := h.serviceService.ListForClient(c.Request.Context(), principal(c), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, services)
}
