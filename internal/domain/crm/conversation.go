package crm

import (
	"time"

	"github.com/crm/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// MessageType distinguishes inbound and outbound conversation entries
type MessageType string

const (
	MessageIncoming MessageType = "INCOMING"
	MessageOutgoing MessageType = "OUTGOING"
)

// Conversation is a single message exchanged with a lead. The webhook writes
// the first INCOMING entry when a lead is captured; staff append OUTGOING
// replies from the app. MessageTimestamp is when the message was sent on the
// source channel, which can predate CreatedAt for webhook-delivered messages.
type Conversation struct {
	shared.AgencyAggregateRoot
	ClientID         uuid.UUID   `gorm:"type:uuid;not null;index"`
	LeadID           uuid.UUID   `gorm:"type:uuid;not null;index"`
	MessageType      MessageType `gorm:"type:varchar(20);not null"`
	Content          string      `gorm:"type:text;not null"`
	MessageTimestamp time.Time   `gorm:"not null"`
}

// TableName returns the table name for GORM
func (Conversation) TableName() string {
	return "conversations"
}

// NewConversation creates a new conversation entry for a lead. A zero sentAt
// falls back to the current time.
func NewConversation(agencyID, clientID, leadID uuid.UUID, messageType MessageType, content string, sentAt time.Time) (*Conversation, error) {
	if err := validateMessageType(messageType); err != nil {
		return nil, err
	}
	if content == "" {
		return nil, shared.NewDomainError("INVALID_CONTENT", "Message content cannot be empty")
	}
	if sentAt.IsZero() {
		sentAt = time.Now()
	}

	return &Conversation{
		AgencyAggregateRoot: shared.NewAgencyAggregateRoot(agencyID),
		ClientID:            clientID,
		LeadID:              leadID,
		MessageType:         messageType,
		Content:             content,
		MessageTimestamp:    sentAt,
	}, nil
}

func validateMessageType(messageType MessageType) error {
	switch messageType {
	case MessageIncoming, MessageOutgoing:
		return nil
	default:
		return shared.NewDomainError("INVALID_MESSAGE_TYPE", "Message type must be INCOMING or OUTGOING")
	}
}
