package models

import (
	"time"

	"github.com/crm/backend/internal/domain/crm"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ClientModel is the persistence model for the Client domain entity.
type ClientModel struct {
	AgencyAggregateModel
	ClientCode     string           `gorm:"type:varchar(50);not null;uniqueIndex:idx_client_agency_code,priority:2"`
	BusinessName   string           `gorm:"type:varchar(200);not null"`
	ContactPerson  string           `gorm:"type:varchar(100);not null"`
	WhatsappNumber string           `gorm:"type:varchar(50);not null;index"`
	Email          string           `gorm:"type:varchar(200);not null"`
	PackageType    crm.PackageType  `gorm:"type:varchar(20);not null;default:'BASIC'"`
	Status         crm.ClientStatus `gorm:"type:varchar(20);not null;default:'ACTIVE'"`
	StartDate      time.Time        `gorm:"not null"`
}

// TableName returns the table name for GORM
func (ClientModel) TableName() string {
	return "clients"
}

// ToDomain converts the persistence model to a domain Client entity.
func (m *ClientModel) ToDomain() *crm.Client {
	return &crm.Client{
		AgencyAggregateRoot: m.agencyAggregateRoot(),
		ClientCode:          m.ClientCode,
		BusinessName:        m.BusinessName,
		ContactPerson:       m.ContactPerson,
		WhatsappNumber:      m.WhatsappNumber,
		Email:               m.Email,
		PackageType:         m.PackageType,
		Status:              m.Status,
		StartDate:           m.StartDate,
	}
}

// FromDomain populates the persistence model from a domain Client entity.
func (m *ClientModel) FromDomain(c *crm.Client) {
	m.FromDomainAgencyAggregateRoot(c.AgencyAggregateRoot)
	m.ClientCode = c.ClientCode
	m.BusinessName = c.BusinessName
	m.ContactPerson = c.ContactPerson
	m.WhatsappNumber = c.WhatsappNumber
	m.Email = c.Email
	m.PackageType = c.PackageType
	m.Status = c.Status
	m.StartDate = c.StartDate
}

// ClientModelFromDomain creates a new persistence model from a domain Client entity.
func ClientModelFromDomain(c *crm.Client) *ClientModel {
	m := &ClientModel{}
	m.FromDomain(c)
	return m
}

// LeadModel is the persistence model for the Lead domain entity.
type LeadModel struct {
	AgencyAggregateModel
	ClientID            uuid.UUID      `gorm:"type:uuid;not null;index"`
	LeadCode            string         `gorm:"type:varchar(50);not null;uniqueIndex:idx_lead_agency_code,priority:2"`
	CustomerName        string         `gorm:"type:varchar(200);not null"`
	PhoneNumber         string         `gorm:"type:varchar(50);not null;index"`
	Source              crm.LeadSource `gorm:"type:varchar(20);not null"`
	Status              crm.LeadStatus `gorm:"type:varchar(20);not null;default:'NEW'"`
	Notes               string         `gorm:"type:text"`
	ConvertedAt         *time.Time
	AssignedAgentUserID *uuid.UUID `gorm:"type:uuid;index"`
}

// TableName returns the table name for GORM
func (LeadModel) TableName() string {
	return "leads"
}

// ToDomain converts the persistence model to a domain Lead entity.
func (m *LeadModel) ToDomain() *crm.Lead {
	return &crm.Lead{
		AgencyAggregateRoot: m.agencyAggregateRoot(),
		ClientID:            m.ClientID,
		LeadCode:            m.LeadCode,
		CustomerName:        m.CustomerName,
		PhoneNumber:         m.PhoneNumber,
		Source:              m.Source,
		Status:              m.Status,
		Notes:               m.Notes,
		ConvertedAt:         m.ConvertedAt,
		AssignedAgentUserID: m.AssignedAgentUserID,
	}
}

// FromDomain populates the persistence model from a domain Lead entity.
func (m *LeadModel) FromDomain(l *crm.Lead) {
	m.FromDomainAgencyAggregateRoot(l.AgencyAggregateRoot)
	m.ClientID = l.ClientID
	m.LeadCode = l.LeadCode
	m.CustomerName = l.CustomerName
	m.PhoneNumber = l.PhoneNumber
	m.Source = l.Source
	m.Status = l.Status
	m.Notes = l.Notes
	m.ConvertedAt = l.ConvertedAt
	m.AssignedAgentUserID = l.AssignedAgentUserID
}

// LeadModelFromDomain creates a new persistence model from a domain Lead entity.
func LeadModelFromDomain(l *crm.Lead) *LeadModel {
	m := &LeadModel{}
	m.FromDomain(l)
	return m
}

// ConversationModel is the persistence model for the Conversation domain entity.
type ConversationModel struct {
	AgencyAggregateModel
	ClientID         uuid.UUID       `gorm:"type:uuid;not null;index"`
	LeadID           uuid.UUID       `gorm:"type:uuid;not null;index"`
	MessageType      crm.MessageType `gorm:"type:varchar(20);not null"`
	Content          string          `gorm:"type:text;not null"`
	MessageTimestamp time.Time       `gorm:"not null"`
}

// TableName returns the table name for GORM
func (ConversationModel) TableName() string {
	return "conversations"
}

// ToDomain converts the persistence model to a domain Conversation entity.
func (m *ConversationModel) ToDomain() *crm.Conversation {
	return &crm.Conversation{
		AgencyAggregateRoot: m.agencyAggregateRoot(),
		ClientID:            m.ClientID,
		LeadID:              m.LeadID,
		MessageType:         m.MessageType,
		Content:             m.Content,
		MessageTimestamp:    m.MessageTimestamp,
	}
}

// FromDomain populates the persistence model from a domain Conversation entity.
func (m *ConversationModel) FromDomain(c *crm.Conversation) {
	m.FromDomainAgencyAggregateRoot(c.AgencyAggregateRoot)
	m.ClientID = c.ClientID
	m.LeadID = c.LeadID
	m.MessageType = c.MessageType
	m.Content = c.Content
	m.MessageTimestamp = c.MessageTimestamp
}

// ConversationModelFromDomain creates a new persistence model from a domain Conversation entity.
func ConversationModelFromDomain(c *crm.Conversation) *ConversationModel {
	m := &ConversationModel{}
	m.FromDomain(c)
	return m
}

// PaymentModel is the persistence model for the Payment domain entity.
type PaymentModel struct {
	AgencyAggregateModel
	ClientID     uuid.UUID         `gorm:"type:uuid;not null;index"`
	Amount       decimal.Decimal   `gorm:"type:decimal(12,2);not null"`
	Currency     string            `gorm:"type:varchar(10);not null"`
	Status       crm.PaymentStatus `gorm:"type:varchar(20);not null;default:'PENDING'"`
	BillingCycle crm.BillingCycle  `gorm:"type:varchar(20);not null;default:'MONTHLY'"`
	DueDate      time.Time         `gorm:"not null;index"`
	PaidAt       *time.Time
	Notes        string `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (PaymentModel) TableName() string {
	return "payments"
}

// ToDomain converts the persistence model to a domain Payment entity.
func (m *PaymentModel) ToDomain() *crm.Payment {
	return &crm.Payment{
		AgencyAggregateRoot: m.agencyAggregateRoot(),
		ClientID:            m.ClientID,
		Amount:              m.Amount,
		Currency:            m.Currency,
		Status:              m.Status,
		BillingCycle:        m.BillingCycle,
		DueDate:             m.DueDate,
		PaidAt:              m.PaidAt,
		Notes:               m.Notes,
	}
}

// FromDomain populates the persistence model from a domain Payment entity.
func (m *PaymentModel) FromDomain(p *crm.Payment) {
	m.FromDomainAgencyAggregateRoot(p.AgencyAggregateRoot)
	m.ClientID = p.ClientID
	m.Amount = p.Amount
	m.Currency = p.Currency
	m.Status = p.Status
	m.BillingCycle = p.BillingCycle
	m.DueDate = p.DueDate
	m.PaidAt = p.PaidAt
	m.Notes = p.Notes
}

// PaymentModelFromDomain creates a new persistence model from a domain Payment entity.
func PaymentModelFromDomain(p *crm.Payment) *PaymentModel {
	m := &PaymentModel{}
	m.FromDomain(p)
	return m
}

// ServiceModel is the persistence model for the Service domain entity.
type ServiceModel struct {
	AgencyAggregateModel
	ClientID       uuid.UUID  `gorm:"type:uuid;not null;index"`
	Name           string     `gorm:"type:varchar(200);not null"`
	ServiceType    string     `gorm:"type:varchar(100);not null"`
	DeliveryStatus string     `gorm:"type:varchar(100);not null"`
	GoLiveDate     *time.Time `gorm:"type:date"`
	Notes          string     `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (ServiceModel) TableName() string {
	return "services"
}

// ToDomain converts the persistence model to a domain Service entity.
func (m *ServiceModel) ToDomain() *crm.Service {
	return &crm.Service{
		AgencyAggregateRoot: m.agencyAggregateRoot(),
		ClientID:            m.ClientID,
		Name:                m.Name,
		ServiceType:         m.ServiceType,
		DeliveryStatus:      m.DeliveryStatus,
		GoLiveDate:          m.GoLiveDate,
		Notes:               m.Notes,
	}
}

// FromDomain populates the persistence model from a domain Service entity.
func (m *ServiceModel) FromDomain(s *crm.Service) {
	m.FromDomainAgencyAggregateRoot(s.AgencyAggregateRoot)
	m.ClientID = s.ClientID
	m.Name = s.Name
	m.ServiceType = s.ServiceType
	m.DeliveryStatus = s.DeliveryStatus
	m.GoLiveDate = s.GoLiveDate
	m.Notes = s.Notes
}

// ServiceModelFromDomain creates a new persistence model from a domain Service entity.
func ServiceModelFromDomain(s *crm.Service) *ServiceModel {
	m := &ServiceModel{}
	m.FromDomain(s)
	return m
}
