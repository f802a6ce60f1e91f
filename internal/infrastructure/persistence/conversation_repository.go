package persistence

import (
	"context"

	"github.com/crm/backend/internal/domain/crm"
	"github.com/crm/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormConversationRepository implements crm.ConversationRepository using GORM
type GormConversationRepository struct {
	db *gorm.DB
}

// NewGormConversationRepository creates a new GormConversationRepository
func NewGormConversationRepository(db *gorm.DB) *GormConversationRepository {
	return &GormConversationRepository{db: db}
}

// FindForLead lists conversation entries for a lead, oldest first
func (r *GormConversationRepository) FindForLead(ctx context.Context, agencyID, leadID uuid.UUID) ([]crm.Conversation, error) {
	var conversationModels []models.ConversationModel
	if err := r.db.WithContext(ctx).
		Where("agency_id = ? AND lead_id = ?", agencyID, leadID).
		Order("created_at ASC").
		Find(&conversationModels).Error; err != nil {
		return nil, err
	}

	conversations := make([]crm.Conversation, len(conversationModels))
	for i, model := range conversationModels {
		conversations[i] = *model.ToDomain()
	}
	return conversations, nil
}

// Save creates a conversation entry
func (r *GormConversationRepository) Save(ctx context.Context, conversation *crm.Conversation) error {
	model := models.ConversationModelFromDomain(conversation)
	return r.db.WithContext(ctx).Save(model).Error
}

// Ensure GormConversationRepository implements crm.ConversationRepository
var _ crm.ConversationRepository = (*GormConversationRepository)(nil)
