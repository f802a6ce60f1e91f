package crm

import (
	"regexp"
	"strings"
	"time"

	"github.com/crm/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// ClientStatus represents a client's lifecycle status
type ClientStatus string

const (
	ClientStatusActive  ClientStatus = "ACTIVE"
	ClientStatusPaused  ClientStatus = "PAUSED"
	ClientStatusChurned ClientStatus = "CHURNED"
)

// PackageType represents the service package a client is on
type PackageType string

const (
	PackageBasic   PackageType = "BASIC"
	PackageGrowth  PackageType = "GROWTH"
	PackagePremium PackageType = "PREMIUM"
)

var phoneRegex = regexp.MustCompile(`^[\d\s\-\(\)\+]+$`)
var clientEmailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

// Client is a managed business account under an agency. It is the
// aggregate root leads, payments, and services hang off.
type Client struct {
	shared.AgencyAggregateRoot
	ClientCode     string       `gorm:"type:varchar(50);not null;uniqueIndex:idx_client_agency_code,priority:2"`
	BusinessName   string       `gorm:"type:varchar(200);not null"`
	ContactPerson  string       `gorm:"type:varchar(100);not null"`
	WhatsappNumber string       `gorm:"type:varchar(50);not null;index"`
	Email          string       `gorm:"type:varchar(200);not null"`
	PackageType    PackageType  `gorm:"type:varchar(20);not null;default:'BASIC'"`
	Status         ClientStatus `gorm:"type:varchar(20);not null;default:'ACTIVE'"`
	StartDate      time.Time    `gorm:"not null"`
}

// TableName returns the table name for GORM
func (Client) TableName() string {
	return "clients"
}

// NewClient creates a new client. The client code is generated here and
// is immutable afterwards.
func NewClient(agencyID uuid.UUID, businessName, contactPerson, whatsappNumber, email string, pkg PackageType, status ClientStatus, startDate time.Time) (*Client, error) {
	if err := validateBusinessName(businessName); err != nil {
		return nil, err
	}
	if err := validateContactPerson(contactPerson); err != nil {
		return nil, err
	}
	if err := validateClientPhone(whatsappNumber); err != nil {
		return nil, err
	}
	if err := validateClientEmail(email); err != nil {
		return nil, err
	}
	if err := validatePackageType(pkg); err != nil {
		return nil, err
	}
	if err := validateClientStatus(status); err != nil {
		return nil, err
	}

	client := &Client{
		AgencyAggregateRoot: shared.NewAgencyAggregateRoot(agencyID),
		ClientCode:          GenerateClientCode(time.Now()),
		BusinessName:        businessName,
		ContactPerson:       contactPerson,
		WhatsappNumber:      whatsappNumber,
		Email:               strings.ToLower(email),
		PackageType:         pkg,
		Status:              status,
		StartDate:           startDate,
	}
	client.AddDomainEvent(NewClientCreatedEvent(client))
	return client, nil
}

// Update applies a full set of mutable fields. The client code is never
// touched here.
func (c *Client) Update(businessName, contactPerson, whatsappNumber, email string, pkg PackageType, status ClientStatus, startDate time.Time) error {
	if err := validateBusinessName(businessName); err != nil {
		return err
	}
	if err := validateContactPerson(contactPerson); err != nil {
		return err
	}
	if err := validateClientPhone(whatsappNumber); err != nil {
		return err
	}
	if err := validateClientEmail(email); err != nil {
		return err
	}
	if err := validatePackageType(pkg); err != nil {
		return err
	}
	if err := validateClientStatus(status); err != nil {
		return err
	}

	c.BusinessName = businessName
	c.ContactPerson = contactPerson
	c.WhatsappNumber = whatsappNumber
	c.Email = strings.ToLower(email)
	c.PackageType = pkg
	c.Status = status
	c.StartDate = startDate
	c.Touch()
	c.IncrementVersion()

	c.AddDomainEvent(NewClientUpdatedEvent(c))
	return nil
}

// IsActive returns true if the client is active
func (c *Client) IsActive() bool {
	return c.Status == ClientStatusActive
}

func validateBusinessName(name string) error {
	if len(name) < 2 {
		return shared.NewDomainError("INVALID_NAME", "Business name must be at least 2 characters")
	}
	if len(name) > 200 {
		return shared.NewDomainError("INVALID_NAME", "Business name cannot exceed 200 characters")
	}
	return nil
}

func validateContactPerson(name string) error {
	if len(name) < 2 {
		return shared.NewDomainError("INVALID_CONTACT", "Contact person must be at least 2 characters")
	}
	if len(name) > 100 {
		return shared.NewDomainError("INVALID_CONTACT", "Contact person cannot exceed 100 characters")
	}
	return nil
}

func validateClientPhone(phone string) error {
	if len(phone) < 6 {
		return shared.NewDomainError("INVALID_PHONE", "Phone number must be at least 6 characters")
	}
	if len(phone) > 50 {
		return shared.NewDomainError("INVALID_PHONE", "Phone number cannot exceed 50 characters")
	}
	if !phoneRegex.MatchString(phone) {
		return shared.NewDomainError("INVALID_PHONE", "Invalid phone number format")
	}
	return nil
}

func validateClientEmail(email string) error {
	if len(email) > 200 {
		return shared.NewDomainError("INVALID_EMAIL", "Email cannot exceed 200 characters")
	}
	if !clientEmailRegex.MatchString(email) {
		return shared.NewDomainError("INVALID_EMAIL", "Invalid email format")
	}
	return nil
}

func validatePackageType(pkg PackageType) error {
	switch pkg {
	case PackageBasic, PackageGrowth, PackagePremium:
		return nil
	default:
		return shared.NewDomainError("INVALID_PACKAGE", "Package must be BASIC, GROWTH, or PREMIUM")
	}
}

func validateClientStatus(status ClientStatus) error {
	switch status {
	case ClientStatusActive, ClientStatusPaused, ClientStatusChurned:
		return nil
	default:
		return shared.NewDomainError("INVALID_STATUS", "Invalid client status")
	}
}
