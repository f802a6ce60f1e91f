package crm

import (
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLead(t *testing.T) {
	agencyID := uuid.New()
	clientID := uuid.New()

	t.Run("creates lead in NEW status", func(t *testing.T) {
		lead, err := NewLead(agencyID, clientID, "Budi Santoso", "+62 811-2222-3333", LeadSourceWhatsapp, "asked about pricing")
		require.NoError(t, err)
		require.NotNil(t, lead)

		assert.Equal(t, agencyID, lead.AgencyID)
		assert.Equal(t, clientID, lead.ClientID)
		assert.Equal(t, LeadStatusNew, lead.Status)
		assert.Nil(t, lead.ConvertedAt)
		assert.False(t, lead.IsConverted())
	})

	t.Run("generates a lead code", func(t *testing.T) {
		lead, err := NewLead(agencyID, clientID, "Budi Santoso", "+62 811-2222-3333", LeadSourceWebsite, "")
		require.NoError(t, err)

		assert.True(t, strings.HasPrefix(lead.LeadCode, "LD-"))
		parts := strings.Split(lead.LeadCode, "-")
		require.Len(t, parts, 3)
		assert.Len(t, parts[2], 5)
	})

	t.Run("publishes LeadCreated event", func(t *testing.T) {
		lead, err := NewLead(agencyID, clientID, "Budi Santoso", "+62 811-2222-3333", LeadSourceFacebook, "")
		require.NoError(t, err)

		events := lead.GetDomainEvents()
		require.Len(t, events, 1)
		assert.Equal(t, EventTypeLeadCreated, events[0].EventType())
	})

	t.Run("fails with unknown source", func(t *testing.T) {
		_, err := NewLead(agencyID, clientID, "Budi Santoso", "+62 811-2222-3333", LeadSource("TIKTOK"), "")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "WHATSAPP, FACEBOOK, or WEBSITE")
	})

	t.Run("fails with short customer name", func(t *testing.T) {
		_, err := NewLead(agencyID, clientID, "B", "+62 811-2222-3333", LeadSourceWhatsapp, "")
		require.Error(t, err)
	})
}

func TestLeadUpdate(t *testing.T) {
	agencyID := uuid.New()
	clientID := uuid.New()

	newLead := func(t *testing.T) *Lead {
		lead, err := NewLead(agencyID, clientID, "Budi Santoso", "+62 811-2222-3333", LeadSourceWhatsapp, "")
		require.NoError(t, err)
		lead.ClearDomainEvents()
		return lead
	}

	t.Run("updates status and notes", func(t *testing.T) {
		lead := newLead(t)

		err := lead.Update("Budi Santoso", "+62 811-2222-3333", LeadSourceWhatsapp, LeadStatusFollowUp, "called twice")
		require.NoError(t, err)

		assert.Equal(t, LeadStatusFollowUp, lead.Status)
		assert.Equal(t, "called twice", lead.Notes)
	})

	t.Run("publishes LeadUpdated with previous status", func(t *testing.T) {
		lead := newLead(t)

		err := lead.Update("Budi Santoso", "+62 811-2222-3333", LeadSourceWhatsapp, LeadStatusConverted, "")
		require.NoError(t, err)

		events := lead.GetDomainEvents()
		require.Len(t, events, 1)
		updated, ok := events[0].(*LeadUpdatedEvent)
		require.True(t, ok)
		assert.Equal(t, LeadStatusNew, updated.PreviousStatus)
		assert.Equal(t, LeadStatusConverted, updated.Status)
	})

	t.Run("fails with unknown status", func(t *testing.T) {
		lead := newLead(t)

		err := lead.Update("Budi Santoso", "+62 811-2222-3333", LeadSourceWhatsapp, LeadStatus("ARCHIVED"), "")
		require.Error(t, err)
		assert.Equal(t, LeadStatusNew, lead.Status)
	})
}

func TestLeadMarkConverted(t *testing.T) {
	agencyID := uuid.New()
	clientID := uuid.New()

	t.Run("stamps conversion time once", func(t *testing.T) {
		lead, err := NewLead(agencyID, clientID, "Budi Santoso", "+62 811-2222-3333", LeadSourceWhatsapp, "")
		require.NoError(t, err)

		first := time.Date(2026, 2, 1, 10, 0, 0, 0, time.UTC)
		lead.MarkConverted(first)
		require.NotNil(t, lead.ConvertedAt)
		assert.Equal(t, first, *lead.ConvertedAt)

		lead.MarkConverted(first.Add(48 * time.Hour))
		assert.Equal(t, first, *lead.ConvertedAt)
	})
}
