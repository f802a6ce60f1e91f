package crm

import (
	"testing"
	"time"

	"github.com/crm/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConversation(t *testing.T) {
	agencyID := uuid.New()
	clientID := uuid.New()
	leadID := uuid.New()
	sentAt := time.Date(2026, 6, 1, 10, 30, 0, 0, time.UTC)

	t.Run("carries client, lead, and message timestamp", func(t *testing.T) {
		c, err := NewConversation(agencyID, clientID, leadID, MessageIncoming, "hello", sentAt)
		require.NoError(t, err)
		assert.Equal(t, clientID, c.ClientID)
		assert.Equal(t, leadID, c.LeadID)
		assert.Equal(t, sentAt, c.MessageTimestamp)
	})

	t.Run("defaults a zero timestamp to now", func(t *testing.T) {
		c, err := NewConversation(agencyID, clientID, leadID, MessageOutgoing, "hello", time.Time{})
		require.NoError(t, err)
		assert.WithinDuration(t, time.Now(), c.MessageTimestamp, time.Second)
	})

	t.Run("rejects empty content", func(t *testing.T) {
		_, err := NewConversation(agencyID, clientID, leadID, MessageIncoming, "", sentAt)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INVALID_CONTENT", domainErr.Code)
	})

	t.Run("rejects unknown message type", func(t *testing.T) {
		_, err := NewConversation(agencyID, clientID, leadID, MessageType("CARRIER_PIGEON"), "hello", sentAt)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INVALID_MESSAGE_TYPE", domainErr.Code)
	})
}
