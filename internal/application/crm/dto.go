package crm

import (
	"time"

	"github.com/crm/backend/internal/domain/crm"
	"github.com/crm/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// =============================================================================
// Client DTOs
// =============================================================================

// CreateClientRequest represents a request to create a new client
type CreateClientRequest struct {
	BusinessName   string    `json:"business_name" binding:"required,min=2,max=200"`
	ContactPerson  string    `json:"contact_person" binding:"required,min=2,max=100"`
	WhatsappNumber string    `json:"whatsapp_number" binding:"required,min=6,max=50"`
	Email          string    `json:"email" binding:"required,email,max=200"`
	PackageType    string    `json:"package_type" binding:"required,oneof=BASIC GROWTH PREMIUM"`
	Status         string    `json:"status" binding:"omitempty,oneof=ACTIVE PAUSED CHURNED"`
	StartDate      time.Time `json:"start_date" binding:"required"`
}

// UpdateClientRequest represents a request to update a client
type UpdateClientRequest struct {
	BusinessName   string    `json:"business_name" binding:"required,min=2,max=200"`
	ContactPerson  string    `json:"contact_person" binding:"required,min=2,max=100"`
	WhatsappNumber string    `json:"whatsapp_number" binding:"required,min=6,max=50"`
	Email          string    `json:"email" binding:"required,email,max=200"`
	PackageType    string    `json:"package_type" binding:"required,oneof=BASIC GROWTH PREMIUM"`
	Status         string    `json:"status" binding:"required,oneof=ACTIVE PAUSED CHURNED"`
	StartDate      time.Time `json:"start_date" binding:"required"`
}

// ClientResponse represents a client in API responses
type ClientResponse struct {
	ID             uuid.UUID `json:"id"`
	ClientCode     string    `json:"client_code"`
	BusinessName   string    `json:"business_name"`
	ContactPerson  string    `json:"contact_person"`
	WhatsappNumber string    `json:"whatsapp_number"`
	Email          string    `json:"email"`
	PackageType    string    `json:"package_type"`
	Status         string    `json:"status"`
	StartDate      time.Time `json:"start_date"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// ClientListFilter represents filter options for the client list
type ClientListFilter struct {
	Search      string `form:"search"`
	Status      string `form:"status" binding:"omitempty,oneof=ACTIVE PAUSED CHURNED"`
	PackageType string `form:"package_type" binding:"omitempty,oneof=BASIC GROWTH PREMIUM"`
	Page        int    `form:"page" binding:"omitempty,min=1"`
	PageSize    int    `form:"page_size" binding:"omitempty,min=1,max=100"`
	OrderBy     string `form:"order_by"`
	OrderDir    string `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

func (f ClientListFilter) toDomain() shared.Filter {
	filter := listFilterDefaults(f.Page, f.PageSize, f.OrderBy, f.OrderDir)
	filter.Search = f.Search
	if f.Status != "" {
		filter.Filters["status"] = f.Status
	}
	if f.PackageType != "" {
		filter.Filters["package_type"] = f.PackageType
	}
	return filter
}

// ToClientResponse converts a domain Client to ClientResponse
func ToClientResponse(c *crm.Client) ClientResponse {
	return ClientResponse{
		ID:             c.ID,
		ClientCode:     c.ClientCode,
		BusinessName:   c.BusinessName,
		ContactPerson:  c.ContactPerson,
		WhatsappNumber: c.WhatsappNumber,
		Email:          c.Email,
		PackageType:    string(c.PackageType),
		Status:         string(c.Status),
		StartDate:      c.StartDate,
		CreatedAt:      c.CreatedAt,
		UpdatedAt:      c.UpdatedAt,
	}
}

// =============================================================================
// Lead DTOs
// =============================================================================

// CreateLeadRequest represents a request to create a new lead
type CreateLeadRequest struct {
	ClientID            uuid.UUID  `json:"client_id" binding:"required"`
	CustomerName        string     `json:"customer_name" binding:"required,min=2,max=200"`
	PhoneNumber         string     `json:"phone_number" binding:"required,min=6,max=50"`
	Source              string     `json:"source" binding:"required,oneof=WHATSAPP FACEBOOK WEBSITE"`
	Notes               string     `json:"notes"`
	AssignedAgentUserID *uuid.UUID `json:"assigned_agent_user_id"`
}

// UpdateLeadRequest represents a request to update a lead
type UpdateLeadRequest struct {
	CustomerName        string     `json:"customer_name" binding:"required,min=2,max=200"`
	PhoneNumber         string     `json:"phone_number" binding:"required,min=6,max=50"`
	Source              string     `json:"source" binding:"required,oneof=WHATSAPP FACEBOOK WEBSITE"`
	Status              string     `json:"status" binding:"required,oneof=NEW FOLLOW_UP CONVERTED LOST"`
	Notes               string     `json:"notes"`
	AssignedAgentUserID *uuid.UUID `json:"assigned_agent_user_id"`
}

// LeadResponse represents a lead in API responses
type LeadResponse struct {
	ID                  uuid.UUID  `json:"id"`
	ClientID            uuid.UUID  `json:"client_id"`
	LeadCode            string     `json:"lead_code"`
	CustomerName        string     `json:"customer_name"`
	PhoneNumber         string     `json:"phone_number"`
	Source              string     `json:"source"`
	Status              string     `json:"status"`
	Notes               string     `json:"notes"`
	ConvertedAt         *time.Time `json:"converted_at"`
	AssignedAgentUserID *uuid.UUID `json:"assigned_agent_user_id"`
	CreatedAt           time.Time  `json:"created_at"`
	UpdatedAt           time.Time  `json:"updated_at"`
}

// LeadListFilter represents filter options for the lead list
type LeadListFilter struct {
	Search   string `form:"search"`
	Status   string `form:"status" binding:"omitempty,oneof=NEW FOLLOW_UP CONVERTED LOST"`
	Source   string `form:"source" binding:"omitempty,oneof=WHATSAPP FACEBOOK WEBSITE"`
	ClientID string `form:"client_id" binding:"omitempty,uuid"`
	Page     int    `form:"page" binding:"omitempty,min=1"`
	PageSize int    `form:"page_size" binding:"omitempty,min=1,max=100"`
	OrderBy  string `form:"order_by"`
	OrderDir string `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

func (f LeadListFilter) toDomain() shared.Filter {
	filter := listFilterDefaults(f.Page, f.PageSize, f.OrderBy, f.OrderDir)
	filter.Search = f.Search
	if f.Status != "" {
		filter.Filters["status"] = f.Status
	}
	if f.Source != "" {
		filter.Filters["source"] = f.Source
	}
	if f.ClientID != "" {
		filter.Filters["client_id"] = f.ClientID
	}
	return filter
}

// ToLeadResponse converts a domain Lead to LeadResponse
func ToLeadResponse(l *crm.Lead) LeadResponse {
	return LeadResponse{
		ID:                  l.ID,
		ClientID:            l.ClientID,
		LeadCode:            l.LeadCode,
		CustomerName:        l.CustomerName,
		PhoneNumber:         l.PhoneNumber,
		Source:              string(l.Source),
		Status:              string(l.Status),
		Notes:               l.Notes,
		ConvertedAt:         l.ConvertedAt,
		AssignedAgentUserID: l.AssignedAgentUserID,
		CreatedAt:           l.CreatedAt,
		UpdatedAt:           l.UpdatedAt,
	}
}

// LeadBoardResponse groups leads by pipeline status for the kanban view
type LeadBoardResponse struct {
	New       []LeadResponse `json:"new"`
	FollowUp  []LeadResponse `json:"follow_up"`
	Converted []LeadResponse `json:"converted"`
	Lost      []LeadResponse `json:"lost"`
}

// =============================================================================
// Conversation DTOs
// =============================================================================

// CreateConversationRequest represents a request to append a conversation entry
type CreateConversationRequest struct {
	MessageType string `json:"message_type" binding:"required,oneof=INCOMING OUTGOING"`
	Content     string `json:"content" binding:"required,min=1"`
}

// ConversationResponse represents a conversation entry in API responses
type ConversationResponse struct {
	ID               uuid.UUID `json:"id"`
	ClientID         uuid.UUID `json:"client_id"`
	LeadID           uuid.UUID `json:"lead_id"`
	MessageType      string    `json:"message_type"`
	Content          string    `json:"content"`
	MessageTimestamp time.Time `json:"message_timestamp"`
	CreatedAt        time.Time `json:"created_at"`
}

// ToConversationResponse converts a domain Conversation to ConversationResponse
func ToConversationResponse(c *crm.Conversation) ConversationResponse {
	return ConversationResponse{
		ID:               c.ID,
		ClientID:         c.ClientID,
		LeadID:           c.LeadID,
		MessageType:      string(c.MessageType),
		Content:          c.Content,
		MessageTimestamp: c.MessageTimestamp,
		CreatedAt:        c.CreatedAt,
	}
}

// =============================================================================
// Payment DTOs
// =============================================================================

// CreatePaymentRequest represents a request to create a new payment
type CreatePaymentRequest struct {
	ClientID     uuid.UUID       `json:"client_id" binding:"required"`
	Amount       decimal.Decimal `json:"amount" binding:"required"`
	Currency     string          `json:"currency" binding:"required,min=1,max=10"`
	Status       string          `json:"status" binding:"omitempty,oneof=PENDING PAID OVERDUE FAILED"`
	BillingCycle string          `json:"billing_cycle" binding:"omitempty,oneof=MONTHLY QUARTERLY YEARLY"`
	DueDate      time.Time       `json:"due_date" binding:"required"`
	Notes        string          `json:"notes"`
}

// UpdatePaymentRequest represents a request to update a payment
type UpdatePaymentRequest struct {
	Amount       decimal.Decimal `json:"amount" binding:"required"`
	Currency     string          `json:"currency" binding:"required,min=1,max=10"`
	Status       string          `json:"status" binding:"required,oneof=PENDING PAID OVERDUE FAILED"`
	BillingCycle string          `json:"billing_cycle" binding:"required,oneof=MONTHLY QUARTERLY YEARLY"`
	DueDate      time.Time       `json:"due_date" binding:"required"`
	Notes        string          `json:"notes"`
}

// PaymentResponse represents a payment in API responses
type PaymentResponse struct {
	ID           uuid.UUID       `json:"id"`
	ClientID     uuid.UUID       `json:"client_id"`
	Amount       decimal.Decimal `json:"amount"`
	Currency     string          `json:"currency"`
	Status       string          `json:"status"`
	BillingCycle string          `json:"billing_cycle"`
	DueDate      time.Time       `json:"due_date"`
	PaidAt       *time.Time      `json:"paid_at"`
	Notes        string          `json:"notes"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

// PaymentListFilter represents filter options for the payment list
type PaymentListFilter struct {
	Status       string `form:"status" binding:"omitempty,oneof=PENDING PAID OVERDUE FAILED"`
	BillingCycle string `form:"billing_cycle" binding:"omitempty,oneof=MONTHLY QUARTERLY YEARLY"`
	ClientID     string `form:"client_id" binding:"omitempty,uuid"`
	Page         int    `form:"page" binding:"omitempty,min=1"`
	PageSize     int    `form:"page_size" binding:"omitempty,min=1,max=100"`
	OrderBy      string `form:"order_by"`
	OrderDir     string `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

func (f PaymentListFilter) toDomain() shared.Filter {
	filter := listFilterDefaults(f.Page, f.PageSize, f.OrderBy, f.OrderDir)
	if f.Status != "" {
		filter.Filters["status"] = f.Status
	}
	if f.BillingCycle != "" {
		filter.Filters["billing_cycle"] = f.BillingCycle
	}
	if f.ClientID != "" {
		filter.Filters["client_id"] = f.ClientID
	}
	return filter
}

// ToPaymentResponse converts a domain Payment to PaymentResponse
func ToPaymentResponse(p *crm.Payment) PaymentResponse {
	return PaymentResponse{
		ID:           p.ID,
		ClientID:     p.ClientID,
		Amount:       p.Amount,
		Currency:     p.Currency,
		Status:       string(p.Status),
		BillingCycle: string(p.BillingCycle),
		DueDate:      p.DueDate,
		PaidAt:       p.PaidAt,
		Notes:        p.Notes,
		CreatedAt:    p.CreatedAt,
		UpdatedAt:    p.UpdatedAt,
	}
}

// =============================================================================
// Service DTOs
// =============================================================================

// CreateServiceRequest represents a request to create a new service
type CreateServiceRequest struct {
	ClientID       uuid.UUID  `json:"client_id" binding:"required"`
	Name           string     `json:"name" binding:"required,min=2,max=200"`
	ServiceType    string     `json:"service_type" binding:"required,min=2,max=100"`
	DeliveryStatus string     `json:"delivery_status" binding:"required,min=2,max=100"`
	GoLiveDate     *time.Time `json:"go_live_date"`
	Notes          string     `json:"notes"`
}

// UpdateServiceRequest represents a request to update a service
type UpdateServiceRequest struct {
	Name           string     `json:"name" binding:"required,min=2,max=200"`
	ServiceType    string     `json:"service_type" binding:"required,min=2,max=100"`
	DeliveryStatus string     `json:"delivery_status" binding:"required,min=2,max=100"`
	GoLiveDate     *time.Time `json:"go_live_date"`
	Notes          string     `json:"notes"`
}

// ServiceResponse represents a service in API responses
type ServiceResponse struct {
	ID             uuid.UUID  `json:"id"`
	ClientID       uuid.UUID  `json:"client_id"`
	Name           string     `json:"name"`
	ServiceType    string     `json:"service_type"`
	DeliveryStatus string     `json:"delivery_status"`
	GoLiveDate     *time.Time `json:"go_live_date"`
	Notes          string     `json:"notes"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

// ServiceListFilter represents filter options for the service list
type ServiceListFilter struct {
	Search      string `form:"search"`
	ClientID    string `form:"client_id" binding:"omitempty,uuid"`
	ServiceType string `form:"service_type"`
	Page        int    `form:"page" binding:"omitempty,min=1"`
	PageSize    int    `form:"page_size" binding:"omitempty,min=1,max=100"`
	OrderBy     string `form:"order_by"`
	OrderDir    string `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

func (f ServiceListFilter) toDomain() shared.Filter {
	filter := listFilterDefaults(f.Page, f.PageSize, f.OrderBy, f.OrderDir)
	filter.Search = f.Search
	if f.ClientID != "" {
		filter.Filters["client_id"] = f.ClientID
	}
	if f.ServiceType != "" {
		filter.Filters["service_type"] = f.ServiceType
	}
	return filter
}

// ToServiceResponse converts a domain Service to ServiceResponse
func ToServiceResponse(s *crm.Service) ServiceResponse {
	return ServiceResponse{
		ID:             s.ID,
		ClientID:       s.ClientID,
		Name:           s.Name,
		ServiceType:    s.ServiceType,
		DeliveryStatus: s.DeliveryStatus,
		GoLiveDate:     s.GoLiveDate,
		Notes:          s.Notes,
		CreatedAt:      s.CreatedAt,
		UpdatedAt:      s.UpdatedAt,
	}
}

// =============================================================================
// Dashboard DTOs
// =============================================================================

// DashboardStatsResponse aggregates the numbers shown on the dashboard
type DashboardStatsResponse struct {
	ActiveClients       int64 `json:"active_clients"`
	LeadsToday          int64 `json:"leads_today"`
	ConversionsThisWeek int64 `json:"conversions_this_week"`
	OutstandingPayments int64 `json:"outstanding_payments"`
}

func listFilterDefaults(page, pageSize int, orderBy, orderDir string) shared.Filter {
	filter := shared.DefaultFilter()
	if page > 0 {
		filter.Page = page
	}
	if pageSize > 0 {
		filter.PageSize = pageSize
	}
	if orderBy != "" {
		filter.OrderBy = orderBy
	}
	if orderDir != "" {
		filter.OrderDir = orderDir
	}
	return filter
}
