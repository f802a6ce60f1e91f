package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/crm/backend/internal/domain/crm"
	"github.com/crm/backend/internal/domain/shared"
	"github.com/crm/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormLeadRepository implements crm.LeadRepository using GORM
type GormLeadRepository struct {
	db *gorm.DB
}

// NewGormLeadRepository creates a new GormLeadRepository
func NewGormLeadRepository(db *gorm.DB) *GormLeadRepository {
	return &GormLeadRepository{db: db}
}

// FindByIDForAgency finds a lead by ID within an agency
func (r *GormLeadRepository) FindByIDForAgency(ctx context.Context, agencyID, id uuid.UUID) (*crm.Lead, error) {
	var model models.LeadModel
	if err := r.db.WithContext(ctx).
		Where("agency_id = ? AND id = ?", agencyID, id).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindForAgency lists leads for an agency with pagination
func (r *GormLeadRepository) FindForAgency(ctx context.Context, agencyID uuid.UUID, filter shared.Filter) (shared.Paginated[crm.Lead], error) {
	base := r.db.WithContext(ctx).Model(&models.LeadModel{}).Where("agency_id = ?", agencyID)
	base = r.applySearch(base, filter)

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return shared.Paginated[crm.Lead]{}, err
	}

	var leadModels []models.LeadModel
	query := applyPagination(base, filter, LeadSortFields, "created_at")
	if err := query.Find(&leadModels).Error; err != nil {
		return shared.Paginated[crm.Lead]{}, err
	}

	leads := make([]crm.Lead, len(leadModels))
	for i, model := range leadModels {
		leads[i] = *model.ToDomain()
	}
	return shared.NewPaginated(leads, total, filter.Page, filter.PageSize), nil
}

// FindForClient lists leads for one client, newest first
func (r *GormLeadRepository) FindForClient(ctx context.Context, agencyID, clientID uuid.UUID) ([]crm.Lead, error) {
	var leadModels []models.LeadModel
	if err := r.db.WithContext(ctx).
		Where("agency_id = ? AND client_id = ?", agencyID, clientID).
		Order("created_at DESC").
		Find(&leadModels).Error; err != nil {
		return nil, err
	}

	leads := make([]crm.Lead, len(leadModels))
	for i, model := range leadModels {
		leads[i] = *model.ToDomain()
	}
	return leads, nil
}

// FindRecentByPhone finds the most recent lead for a client with the given
// phone number created at or after since
func (r *GormLeadRepository) FindRecentByPhone(ctx context.Context, clientID uuid.UUID, phone string, since time.Time) (*crm.Lead, error) {
	var model models.LeadModel
	if err := r.db.WithContext(ctx).
		Where("client_id = ? AND phone_number = ? AND created_at >= ?", clientID, phone, since).
		Order("created_at DESC").
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// CountCreatedSince counts leads created at or after since
func (r *GormLeadRepository) CountCreatedSince(ctx context.Context, agencyID uuid.UUID, since time.Time) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.LeadModel{}).
		Where("agency_id = ? AND created_at >= ?", agencyID, since).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// CountConvertedSince counts leads converted at or after since
func (r *GormLeadRepository) CountConvertedSince(ctx context.Context, agencyID uuid.UUID, since time.Time) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.LeadModel{}).
		Where("agency_id = ? AND converted_at >= ?", agencyID, since).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Save creates or updates a lead
func (r *GormLeadRepository) Save(ctx context.Context, lead *crm.Lead) error {
	model := models.LeadModelFromDomain(lead)
	return r.db.WithContext(ctx).Save(model).Error
}

// SaveWithConversation persists a new lead and its first conversation entry
// in a single transaction
func (r *GormLeadRepository) SaveWithConversation(ctx context.Context, lead *crm.Lead, conversation *crm.Conversation) error {
	leadModel := models.LeadModelFromDomain(lead)
	conversationModel := models.ConversationModelFromDomain(conversation)

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(leadModel).Error; err != nil {
			return err
		}
		return tx.Create(conversationModel).Error
	})
}

// DeleteForAgency deletes a lead within an agency
func (r *GormLeadRepository) DeleteForAgency(ctx context.Context, agencyID, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.LeadModel{}, "agency_id = ? AND id = ?", agencyID, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// applySearch applies free-text search over the lead identity fields
func (r *GormLeadRepository) applySearch(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		query = query.Where("customer_name LIKE ? OR phone_number LIKE ? OR lead_code LIKE ?",
			pattern, pattern, pattern)
	}
	for key, value := range filter.Filters {
		switch key {
		case "status":
			query = query.Where("status = ?", value)
		case "source":
			query = query.Where("source = ?", value)
		case "client_id":
			query = query.Where("client_id = ?", value)
		}
	}
	return query
}

// Ensure GormLeadRepository implements crm.LeadRepository
var _ crm.LeadRepository = (*GormLeadRepository)(nil)
