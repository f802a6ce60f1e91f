package crm

import (
	"time"

	"github.com/crm/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// Service is a deliverable the agency runs for a client, like a chatbot or
// an ad campaign. DeliveryStatus is free text ("In Progress", "Live", ...)
// because agencies track delivery in their own vocabulary; GoLiveDate stays
// nil until the deliverable ships.
type Service struct {
	shared.AgencyAggregateRoot
	ClientID       uuid.UUID  `gorm:"type:uuid;not null;index"`
	Name           string     `gorm:"type:varchar(200);not null"`
	ServiceType    string     `gorm:"type:varchar(100);not null"`
	DeliveryStatus string     `gorm:"type:varchar(100);not null"`
	GoLiveDate     *time.Time `gorm:"type:date"`
	Notes          string     `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (Service) TableName() string {
	return "services"
}

// NewService creates a new service for a client
func NewService(agencyID, clientID uuid.UUID, name, serviceType, deliveryStatus string, goLiveDate *time.Time, notes string) (*Service, error) {
	if err := validateServiceName(name); err != nil {
		return nil, err
	}
	if err := validateServiceType(serviceType); err != nil {
		return nil, err
	}
	if err := validateDeliveryStatus(deliveryStatus); err != nil {
		return nil, err
	}

	return &Service{
		AgencyAggregateRoot: shared.NewAgencyAggregateRoot(agencyID),
		ClientID:            clientID,
		Name:                name,
		ServiceType:         serviceType,
		DeliveryStatus:      deliveryStatus,
		GoLiveDate:          goLiveDate,
		Notes:               notes,
	}, nil
}

// Update applies the mutable service fields
func (s *Service) Update(name, serviceType, deliveryStatus string, goLiveDate *time.Time, notes string) error {
	if err := validateServiceName(name); err != nil {
		return err
	}
	if err := validateServiceType(serviceType); err != nil {
		return err
	}
	if err := validateDeliveryStatus(deliveryStatus); err != nil {
		return err
	}

	s.Name = name
	s.ServiceType = serviceType
	s.DeliveryStatus = deliveryStatus
	s.GoLiveDate = goLiveDate
	s.Notes = notes
	s.Touch()
	s.IncrementVersion()
	return nil
}

func validateServiceName(name string) error {
	if len(name) < 2 {
		return shared.NewDomainError("INVALID_NAME", "Service name must be at least 2 characters")
	}
	if len(name) > 200 {
		return shared.NewDomainError("INVALID_NAME", "Service name cannot exceed 200 characters")
	}
	return nil
}

func validateServiceType(serviceType string) error {
	if len(serviceType) < 2 {
		return shared.NewDomainError("INVALID_SERVICE_TYPE", "Service type must be at least 2 characters")
	}
	return nil
}

func validateDeliveryStatus(deliveryStatus string) error {
	if len(deliveryStatus) < 2 {
		return shared.NewDomainError("INVALID_DELIVERY_STATUS", "Delivery status must be at least 2 characters")
	}
	return nil
}
