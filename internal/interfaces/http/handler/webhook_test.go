package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	automationapp "github.com/crm/backend/internal/application/automation"
	webhookapp "github.com/crm/backend/internal/application/webhook"
	"github.com/crm/backend/internal/domain/crm"
	"github.com/crm/backend/internal/infrastructure/persistence"
	"github.com/crm/backend/internal/infrastructure/persistence/models"
	"github.com/crm/backend/internal/infrastructure/ratelimit"
	"github.com/crm/backend/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func init() {
	gin.SetMode(gin.TestMode)
}

const testWebhookKey = "wh-secret-key"

type webhookTestEnv struct {
	router        *gin.Engine
	client        *crm.Client
	leads         crm.LeadRepository
	conversations crm.ConversationRepository
}

func setupWebhookTest(t *testing.T, rateLimit int) *webhookTestEnv {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.ClientModel{},
		&models.LeadModel{},
		&models.ConversationModel{},
		&models.AutomationLogModel{},
	))

	clientRepo := persistence.NewGormClientRepository(db)
	leadRepo := persistence.NewGormLeadRepository(db)
	conversationRepo := persistence.NewGormConversationRepository(db)
	logRepo := persistence.NewGormAutomationLogRepository(db)

	agencyID := uuid.New()
	client, err := crm.NewClient(agencyID, "Acme Coffee", "Jane Doe", "+62 812 3456 789",
		"jane@example.com", crm.PackageBasic, crm.ClientStatusActive, time.Now())
	require.NoError(t, err)
	require.NoError(t, clientRepo.Save(context.Background(), client))

	events := automationapp.NewEventLogger(logRepo)
	ingest := webhookapp.NewIngestService(clientRepo, leadRepo, events, time.Hour)
	h := NewWebhookHandler(ingest)

	limiter := ratelimit.NewLimiter(ratelimit.NewMemoryStore(), rateLimit, time.Minute)

	router := gin.New()
	router.POST("/leads/webhook",
		middleware.APIKeyAuth(middleware.APIKeyAuthConfig{Key: testWebhookKey}),
		middleware.RateLimit(middleware.RateLimitConfig{
			Limiter: limiter,
			KeyFunc: middleware.KeyByHeader(middleware.APIKeyHeader),
		}),
		h.IngestLead)

	return &webhookTestEnv{
		router:        router,
		client:        client,
		leads:         leadRepo,
		conversations: conversationRepo,
	}
}

func (e *webhookTestEnv) post(t *testing.T, apiKey string, body any) *httptest.ResponseRecorder {
	t.Helper()
	payload, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/leads/webhook", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	if apiKey != "" {
		req.Header.Set(middleware.APIKeyHeader, apiKey)
	}
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func webhookPayload(clientCode string) map[string]any {
	return map[string]any{
		"clientCode":   clientCode,
		"customerName": "Budi Santoso",
		"phoneNumber":  "+62 813 9999 0000",
		"source":       "WHATSAPP",
		"message":      "Hi, I saw your ad and want to know more",
		"timestamp":    "2026-06-01T10:30:00Z",
	}
}

func TestWebhookHandler_IngestLead(t *testing.T) {
	t.Run("rejects missing API key", func(t *testing.T) {
		env := setupWebhookTest(t, 30)
		w := env.post(t, "", webhookPayload(env.client.ClientCode))

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Contains(t, w.Body.String(), "ERR_UNAUTHORIZED")
	})

	t.Run("rejects wrong API key", func(t *testing.T) {
		env := setupWebhookTest(t, 30)
		w := env.post(t, "not-the-key", webhookPayload(env.client.ClientCode))

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("bad keys get 401 even past the rate limit", func(t *testing.T) {
		env := setupWebhookTest(t, 1)
		payload := webhookPayload(env.client.ClientCode)

		first := env.post(t, "not-the-key", payload)
		second := env.post(t, "not-the-key", payload)

		assert.Equal(t, http.StatusUnauthorized, first.Code)
		assert.Equal(t, http.StatusUnauthorized, second.Code)
	})

	t.Run("bad keys do not consume the valid key's budget", func(t *testing.T) {
		env := setupWebhookTest(t, 1)
		payload := webhookPayload(env.client.ClientCode)

		for i := 0; i < 3; i++ {
			env.post(t, "not-the-key", payload)
		}
		w := env.post(t, testWebhookKey, payload)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("valid key over the limit gets 429", func(t *testing.T) {
		env := setupWebhookTest(t, 1)
		payload := webhookPayload(env.client.ClientCode)

		first := env.post(t, testWebhookKey, payload)
		second := env.post(t, testWebhookKey, payload)

		assert.Equal(t, http.StatusOK, first.Code)
		assert.Equal(t, http.StatusTooManyRequests, second.Code)
	})

	t.Run("creates lead and returns unwrapped body", func(t *testing.T) {
		env := setupWebhookTest(t, 30)
		w := env.post(t, testWebhookKey, webhookPayload(env.client.ClientCode))

		require.Equal(t, http.StatusOK, w.Code)

		var resp struct {
			LeadID  uuid.UUID `json:"leadId"`
			Deduped bool      `json:"deduped"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.False(t, resp.Deduped)

		lead, err := env.leads.FindByIDForAgency(context.Background(), env.client.AgencyID, resp.LeadID)
		require.NoError(t, err)
		assert.Equal(t, "Budi Santoso", lead.CustomerName)
		assert.Equal(t, crm.LeadSourceWhatsapp, lead.Source)

		// external callers see the flat contract, not the envelope
		assert.NotContains(t, w.Body.String(), `"success"`)
	})

	t.Run("records the conversation with client and payload timestamp", func(t *testing.T) {
		env := setupWebhookTest(t, 30)
		w := env.post(t, testWebhookKey, webhookPayload(env.client.ClientCode))
		require.Equal(t, http.StatusOK, w.Code)

		var resp struct {
			LeadID uuid.UUID `json:"leadId"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))

		entries, err := env.conversations.FindForLead(context.Background(), env.client.AgencyID, resp.LeadID)
		require.NoError(t, err)
		require.Len(t, entries, 1)
		assert.Equal(t, env.client.ID, entries[0].ClientID)
		assert.Equal(t, time.Date(2026, 6, 1, 10, 30, 0, 0, time.UTC).Unix(),
			entries[0].MessageTimestamp.UTC().Unix())
	})

	t.Run("returns same lead for duplicate phone", func(t *testing.T) {
		env := setupWebhookTest(t, 30)
		first := env.post(t, testWebhookKey, webhookPayload(env.client.ClientCode))
		require.Equal(t, http.StatusOK, first.Code)

		second := env.post(t, testWebhookKey, webhookPayload(env.client.ClientCode))
		require.Equal(t, http.StatusOK, second.Code)

		var resp1, resp2 struct {
			LeadID  uuid.UUID `json:"leadId"`
			Deduped bool      `json:"deduped"`
		}
		require.NoError(t, json.Unmarshal(first.Body.Bytes(), &resp1))
		require.NoError(t, json.Unmarshal(second.Body.Bytes(), &resp2))
		assert.True(t, resp2.Deduped)
		assert.Equal(t, resp1.LeadID, resp2.LeadID)
	})

	t.Run("rejects payload missing required fields", func(t *testing.T) {
		env := setupWebhookTest(t, 30)
		payload := webhookPayload(env.client.ClientCode)
		delete(payload, "phoneNumber")

		w := env.post(t, testWebhookKey, payload)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "ERR_VALIDATION")
	})

	t.Run("rejects payload missing timestamp", func(t *testing.T) {
		env := setupWebhookTest(t, 30)
		payload := webhookPayload(env.client.ClientCode)
		delete(payload, "timestamp")

		w := env.post(t, testWebhookKey, payload)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("rejects unknown source", func(t *testing.T) {
		env := setupWebhookTest(t, 30)
		payload := webhookPayload(env.client.ClientCode)
		payload["source"] = "CARRIER_PIGEON"

		w := env.post(t, testWebhookKey, payload)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("returns 404 for unknown client code", func(t *testing.T) {
		env := setupWebhookTest(t, 30)
		w := env.post(t, testWebhookKey, webhookPayload("CLT-NOPE"))

		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Contains(t, w.Body.String(), "ERR_NOT_FOUND")
	})

	t.Run("rejects payload addressing no client", func(t *testing.T) {
		env := setupWebhookTest(t, 30)
		payload := webhookPayload("")
		delete(payload, "clientCode")

		w := env.post(t, testWebhookKey, payload)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}
