package crm

import (
	"time"

	"github.com/crm/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// LeadSource identifies the channel a lead came in through
type LeadSource string

const (
	LeadSourceWhatsapp LeadSource = "WHATSAPP"
	LeadSourceFacebook LeadSource = "FACEBOOK"
	LeadSourceWebsite  LeadSource = "WEBSITE"
)

// LeadStatus tracks a lead through the pipeline
type LeadStatus string

const (
	LeadStatusNew       LeadStatus = "NEW"
	LeadStatusFollowUp  LeadStatus = "FOLLOW_UP"
	LeadStatusConverted LeadStatus = "CONVERTED"
	LeadStatusLost      LeadStatus = "LOST"
)

// Lead is a prospective customer captured for a client, usually via the
// inbound webhook. Leads carry a generated code and a conversion timestamp
// that is written exactly once.
type Lead struct {
	shared.AgencyAggregateRoot
	ClientID     uuid.UUID  `gorm:"type:uuid;not null;index"`
	LeadCode     string     `gorm:"type:varchar(50);not null;uniqueIndex:idx_lead_agency_code,priority:2"`
	CustomerName string     `gorm:"type:varchar(200);not null"`
	PhoneNumber  string     `gorm:"type:varchar(50);not null;index"`
	Source       LeadSource `gorm:"type:varchar(20);not null"`
	Status       LeadStatus `gorm:"type:varchar(20);not null;default:'NEW'"`
	Notes        string     `gorm:"type:text"`
	ConvertedAt  *time.Time
	// AssignedAgentUserID points at the staff user working the lead; nil
	// until somebody picks it up.
	AssignedAgentUserID *uuid.UUID `gorm:"type:uuid;index"`
}

// TableName returns the table name for GORM
func (Lead) TableName() string {
	return "leads"
}

// NewLead creates a new lead in NEW status with a fresh lead code.
func NewLead(agencyID, clientID uuid.UUID, customerName, phoneNumber string, source LeadSource, notes string) (*Lead, error) {
	if err := validateCustomerName(customerName); err != nil {
		return nil, err
	}
	if err := validateClientPhone(phoneNumber); err != nil {
		return nil, err
	}
	if err := validateLeadSource(source); err != nil {
		return nil, err
	}

	lead := &Lead{
		AgencyAggregateRoot: shared.NewAgencyAggregateRoot(agencyID),
		ClientID:            clientID,
		LeadCode:            GenerateLeadCode(time.Now()),
		CustomerName:        customerName,
		PhoneNumber:         phoneNumber,
		Source:              source,
		Status:              LeadStatusNew,
		Notes:               notes,
	}
	lead.AddDomainEvent(NewLeadCreatedEvent(lead))
	return lead, nil
}

// Update applies the mutable lead fields. A transition into CONVERTED stamps
// ConvertedAt; the timestamp is never overwritten on later updates.
func (l *Lead) Update(customerName, phoneNumber string, source LeadSource, status LeadStatus, notes string) error {
	if err := validateCustomerName(customerName); err != nil {
		return err
	}
	if err := validateClientPhone(phoneNumber); err != nil {
		return err
	}
	if err := validateLeadSource(source); err != nil {
		return err
	}
	if err := validateLeadStatus(status); err != nil {
		return err
	}

	previous := l.Status
	l.CustomerName = customerName
	l.PhoneNumber = phoneNumber
	l.Source = source
	l.Status = status
	l.Notes = notes
	l.Touch()
	l.IncrementVersion()

	l.AddDomainEvent(NewLeadUpdatedEvent(l, previous))
	return nil
}

// MarkConverted stamps the conversion time. Calling it again is a no-op so
// the original conversion time survives repeated transitions.
func (l *Lead) MarkConverted(at time.Time) {
	if l.ConvertedAt != nil {
		return
	}
	l.ConvertedAt = &at
}

// AssignAgent sets or clears the staff user responsible for this lead
func (l *Lead) AssignAgent(userID *uuid.UUID) {
	l.AssignedAgentUserID = userID
}

// IsConverted reports whether the lead has reached CONVERTED
func (l *Lead) IsConverted() bool {
	return l.Status == LeadStatusConverted
}

func validateCustomerName(name string) error {
	if len(name) < 2 {
		return shared.NewDomainError("INVALID_NAME", "Customer name must be at least 2 characters")
	}
	if len(name) > 200 {
		return shared.NewDomainError("INVALID_NAME", "Customer name cannot exceed 200 characters")
	}
	return nil
}

func validateLeadSource(source LeadSource) error {
	switch source {
	case LeadSourceWhatsapp, LeadSourceFacebook, LeadSourceWebsite:
		return nil
	default:
		return shared.NewDomainError("INVALID_SOURCE", "Source must be WHATSAPP, FACEBOOK, or WEBSITE")
	}
}

func validateLeadStatus(status LeadStatus) error {
	switch status {
	case LeadStatusNew, LeadStatusFollowUp, LeadStatusConverted, LeadStatusLost:
		return nil
	default:
		return shared.NewDomainError("INVALID_STATUS", "Invalid lead status")
	}
}
