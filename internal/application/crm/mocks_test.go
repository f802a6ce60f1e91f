package crm

import (
	"context"
	"sync"
	"time"

	"github.com/crm/backend/internal/domain/automation"
	"github.com/crm/backend/internal/domain/crm"
	"github.com/crm/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// =============================================================================
// Mock Repositories
// =============================================================================

// MockClientRepository is a mock implementation of crm.ClientRepository
type MockClientRepository struct {
	mock.Mock
}

func (m *MockClientRepository) FindByIDForAgency(ctx context.Context, agencyID, id uuid.UUID) (*crm.Client, error) {
	args := m.Called(ctx, agencyID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*crm.Client), args.Error(1)
}

func (m *MockClientRepository) FindByID(ctx context.Context, id uuid.UUID) (*crm.Client, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*crm.Client), args.Error(1)
}

func (m *MockClientRepository) FindByCode(ctx context.Context, code string) (*crm.Client, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*crm.Client), args.Error(1)
}

func (m *MockClientRepository) FindForAgency(ctx context.Context, agencyID uuid.UUID, filter shared.Filter) (shared.Paginated[crm.Client], error) {
	args := m.Called(ctx, agencyID, filter)
	return args.Get(0).(shared.Paginated[crm.Client]), args.Error(1)
}

func (m *MockClientRepository) CountActiveForAgency(ctx context.Context, agencyID uuid.UUID) (int64, error) {
	args := m.Called(ctx, agencyID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockClientRepository) Save(ctx context.Context, client *crm.Client) error {
	args := m.Called(ctx, client)
	return args.Error(0)
}

func (m *MockClientRepository) DeleteForAgency(ctx context.Context, agencyID, id uuid.UUID) error {
	args := m.Called(ctx, agencyID, id)
	return args.Error(0)
}

// MockLeadRepository is a mock implementation of crm.LeadRepository
type MockLeadRepository struct {
	mock.Mock
}

func (m *MockLeadRepository) FindByIDForAgency(ctx context.Context, agencyID, id uuid.UUID) (*crm.Lead, error) {
	args := m.Called(ctx, agencyID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*crm.Lead), args.Error(1)
}

func (m *MockLeadRepository) FindForAgency(ctx context.Context, agencyID uuid.UUID, filter shared.Filter) (shared.Paginated[crm.Lead], error) {
	args := m.Called(ctx, agencyID, filter)
	return args.Get(0).(shared.Paginated[crm.Lead]), args.Error(1)
}

func (m *MockLeadRepository) FindForClient(ctx context.Context, agencyID, clientID uuid.UUID) ([]crm.Lead, error) {
	args := m.Called(ctx, agencyID, clientID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]crm.Lead), args.Error(1)
}

func (m *MockLeadRepository) FindRecentByPhone(ctx context.Context, clientID uuid.UUID, phone string, since time.Time) (*crm.Lead, error) {
	args := m.Called(ctx, clientID, phone, since)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*crm.Lead), args.Error(1)
}

func (m *MockLeadRepository) CountCreatedSince(ctx context.Context, agencyID uuid.UUID, since time.Time) (int64, error) {
	args := m.Called(ctx, agencyID, since)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockLeadRepository) CountConvertedSince(ctx context.Context, agencyID uuid.UUID, since time.Time) (int64, error) {
	args := m.Called(ctx, agencyID, since)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockLeadRepository) Save(ctx context.Context, lead *crm.Lead) error {
	args := m.Called(ctx, lead)
	return args.Error(0)
}

func (m *MockLeadRepository) SaveWithConversation(ctx context.Context, lead *crm.Lead, conversation *crm.Conversation) error {
	args := m.Called(ctx, lead, conversation)
	return args.Error(0)
}

func (m *MockLeadRepository) DeleteForAgency(ctx context.Context, agencyID, id uuid.UUID) error {
	args := m.Called(ctx, agencyID, id)
	return args.Error(0)
}

// MockConversationRepository is a mock implementation of crm.ConversationRepository
type MockConversationRepository struct {
	mock.Mock
}

func (m *MockConversationRepository) FindForLead(ctx context.Context, agencyID, leadID uuid.UUID) ([]crm.Conversation, error) {
	args := m.Called(ctx, agencyID, leadID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]crm.Conversation), args.Error(1)
}

func (m *MockConversationRepository) Save(ctx context.Context, conversation *crm.Conversation) error {
	args := m.Called(ctx, conversation)
	return args.Error(0)
}

// MockPaymentRepository is a mock implementation of crm.PaymentRepository
type MockPaymentRepository struct {
	mock.Mock
}

func (m *MockPaymentRepository) FindByIDForAgency(ctx context.Context, agencyID, id uuid.UUID) (*crm.Payment, error) {
	args := m.Called(ctx, agencyID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*crm.Payment), args.Error(1)
}

func (m *MockPaymentRepository) FindForAgency(ctx context.Context, agencyID uuid.UUID, filter shared.Filter) (shared.Paginated[crm.Payment], error) {
	args := m.Called(ctx, agencyID, filter)
	return args.Get(0).(shared.Paginated[crm.Payment]), args.Error(1)
}

func (m *MockPaymentRepository) CountOutstandingForAgency(ctx context.Context, agencyID uuid.UUID) (int64, error) {
	args := m.Called(ctx, agencyID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockPaymentRepository) Save(ctx context.Context, payment *crm.Payment) error {
	args := m.Called(ctx, payment)
	return args.Error(0)
}

func (m *MockPaymentRepository) DeleteForAgency(ctx context.Context, agencyID, id uuid.UUID) error {
	args := m.Called(ctx, agencyID, id)
	return args.Error(0)
}

// MockServiceRepository is a mock implementation of crm.ServiceRepository
type MockServiceRepository struct {
	mock.Mock
}

func (m *MockServiceRepository) FindByIDForAgency(ctx context.Context, agencyID, id uuid.UUID) (*crm.Service, error) {
	args := m.Called(ctx, agencyID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*crm.Service), args.Error(1)
}

func (m *MockServiceRepository) FindForAgency(ctx context.Context, agencyID uuid.UUID, filter shared.Filter) (shared.Paginated[crm.Service], error) {
	args := m.Called(ctx, agencyID, filter)
	return args.Get(0).(shared.Paginated[crm.Service]), args.Error(1)
}

func (m *MockServiceRepository) FindForClient(ctx context.Context, agencyID, clientID uuid.UUID) ([]crm.Service, error) {
	args := m.Called(ctx, agencyID, clientID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]crm.Service), args.Error(1)
}

func (m *MockServiceRepository) Save(ctx context.Context, service *crm.Service) error {
	args := m.Called(ctx, service)
	return args.Error(0)
}

func (m *MockServiceRepository) DeleteForAgency(ctx context.Context, agencyID, id uuid.UUID) error {
	args := m.Called(ctx, agencyID, id)
	return args.Error(0)
}

// =============================================================================
// Automation log recorder
// =============================================================================

// recordingLogRepository captures automation log rows written during a test
type recordingLogRepository struct {
	mu   sync.Mutex
	rows []automation.Log
	err  error
}

func (r *recordingLogRepository) FindForAgency(ctx context.Context, agencyID uuid.UUID, filter shared.Filter) (shared.Paginated[automation.Log], error) {
	return shared.Paginated[automation.Log]{}, nil
}

func (r *recordingLogRepository) FindForLead(ctx context.Context, agencyID, leadID uuid.UUID) ([]automation.Log, error) {
	return nil, nil
}

func (r *recordingLogRepository) Save(ctx context.Context, log *automation.Log) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return r.err
	}
	r.rows = append(r.rows, *log)
	return nil
}

func (r *recordingLogRepository) eventTypes() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	types := make([]string, len(r.rows))
	for i, row := range r.rows {
		types[i] = row.EventType
	}
	return types
}
