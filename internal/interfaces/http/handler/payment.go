package handler

import (
	crmapp "github.com/crm/backend/internal/application/crm"
	"github.com/gin-gonic/gin"
)

// PaymentHandler handles payment tracking endpoints
type PaymentHandler struct {
	BaseHandler
	paymentService *crmapp.PaymentService
}

// NewPaymentHandler creates a new PaymentHandler
func NewPaymentHandler(paymentService *crmapp.PaymentService) *PaymentHandler {
	return &PaymentHandler{paymentService: paymentService}
}

// Create records an expected payment for a client
func (h *PaymentHandler) Create(c *gin.Context) {
	var req crmapp.CreatePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.HandleBindingError(c, err)
		return
	}

	payment, err := h.paymentService.Create(c.Request.Context(), principal(c), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, payment)
}

// List returns payments of the caller's agency
func (h *PaymentHandler) List(c *gin.Context) {
	var filter crmapp.PaymentListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.HandleBindingError(c, err)
		return
	}

	result, err := h.paymentService.List(c.Request.Context(), principal(c), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, result.Items, result.Total, result.Page, result.PageSize)
}

// Get returns a single payment by id
func (h *PaymentHandler) Get(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		h.BadRequest(c, "Invalid payment ID")
		return
	}

	payment, err := h.paymentService.GetByID(c.Request.Context(), principal(c), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, payment)
}

// Update replaces a payment's editable fields; moving the status to PAID
// stamps the paid timestamp.
func (h *PaymentHandler) Update(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		h.BadRequest(c, "Invalid payment ID")
		return
	}

	var req crmapp.UpdatePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.HandleBindingError(c, err)
		return
	}

	payment, err := h.paymentService.Update(c.Request.Context(), principal(c), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, payment)
}

// Delete removes a payment record
func (h *PaymentHandler) Delete(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		h.BadRequest(c, "Invalid payment ID")
		return
	}

	if err := h.paymentService.Delete(c.Request.Context(), principal(c), id); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}
