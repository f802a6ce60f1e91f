package models

import (
	"github.com/crm/backend/internal/domain/automation"
	"github.com/google/uuid"
)

// AutomationLogModel is the persistence model for the automation Log entity.
type AutomationLogModel struct {
	AgencyAggregateModel
	EventID         string            `gorm:"type:varchar(50);not null;uniqueIndex"`
	EventType       string            `gorm:"type:varchar(50);not null;index"`
	Status          automation.Status `gorm:"type:varchar(20);not null"`
	TriggerTable    string            `gorm:"type:varchar(50)"`
	TriggerRecordID *uuid.UUID        `gorm:"type:uuid"`
	RelatedClientID *uuid.UUID        `gorm:"type:uuid;index"`
	RelatedLeadID   *uuid.UUID        `gorm:"type:uuid;index"`
	Details         string            `gorm:"type:text"`
	ErrorMessage    string            `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (AutomationLogModel) TableName() string {
	return "automation_logs"
}

// ToDomain converts the persistence model to a domain Log entity.
func (m *AutomationLogModel) ToDomain() *automation.Log {
	return &automation.Log{
		AgencyAggregateRoot: m.agencyAggregateRoot(),
		EventID:             m.EventID,
		EventType:           m.EventType,
		Status:              m.Status,
		TriggerTable:        m.TriggerTable,
		TriggerRecordID:     m.TriggerRecordID,
		RelatedClientID:     m.RelatedClientID,
		RelatedLeadID:       m.RelatedLeadID,
		Details:             m.Details,
		ErrorMessage:        m.ErrorMessage,
	}
}

// FromDomain populates the persistence model from a domain Log entity.
func (m *AutomationLogModel) FromDomain(l *automation.Log) {
	m.FromDomainAgencyAggregateRoot(l.AgencyAggregateRoot)
	m.EventID = l.EventID
	m.EventType = l.EventType
	m.Status = l.Status
	m.TriggerTable = l.TriggerTable
	m.TriggerRecordID = l.TriggerRecordID
	m.RelatedClientID = l.RelatedClientID
	m.RelatedLeadID = l.RelatedLeadID
	m.Details = l.Details
	m.ErrorMessage = l.ErrorMessage
}

// AutomationLogModelFromDomain creates a new persistence model from a domain Log entity.
func AutomationLogModelFromDomain(l *automation.Log) *AutomationLogModel {
	m := &AutomationLogModel{}
	m.FromDomain(l)
	return m
}
