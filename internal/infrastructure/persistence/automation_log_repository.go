package persistence

import (
	"context"

	"github.com/crm/backend/internal/domain/automation"
	"github.com/crm/backend/internal/domain/shared"
	"github.com/crm/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormAutomationLogRepository implements automation.LogRepository using GORM
type GormAutomationLogRepository struct {
	db *gorm.DB
}

// NewGormAutomationLogRepository creates a new GormAutomationLogRepository
func NewGormAutomationLogRepository(db *gorm.DB) *GormAutomationLogRepository {
	return &GormAutomationLogRepository{db: db}
}

// FindForAgency lists log rows for an agency with pagination
func (r *GormAutomationLogRepository) FindForAgency(ctx context.Context, agencyID uuid.UUID, filter shared.Filter) (shared.Paginated[automation.Log], error) {
	base := r.db.WithContext(ctx).Model(&models.AutomationLogModel{}).Where("agency_id = ?", agencyID)
	base = r.applyFilters(base, filter)

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return shared.Paginated[automation.Log]{}, err
	}

	var logModels []models.AutomationLogModel
	query := applyPagination(base, filter, AutomationLogSortFields, "created_at")
	if err := query.Find(&logModels).Error; err != nil {
		return shared.Paginated[automation.Log]{}, err
	}

	logs := make([]automation.Log, len(logModels))
	for i, model := range logModels {
		logs[i] = *model.ToDomain()
	}
	return shared.NewPaginated(logs, total, filter.Page, filter.PageSize), nil
}

// FindForLead lists log rows related to a lead, newest first
func (r *GormAutomationLogRepository) FindForLead(ctx context.Context, agencyID, leadID uuid.UUID) ([]automation.Log, error) {
	var logModels []models.AutomationLogModel
	if err := r.db.WithContext(ctx).
		Where("agency_id = ? AND related_lead_id = ?", agencyID, leadID).
		Order("created_at DESC").
		Find(&logModels).Error; err != nil {
		return nil, err
	}

	logs := make([]automation.Log, len(logModels))
	for i, model := range logModels {
		logs[i] = *model.ToDomain()
	}
	return logs, nil
}

// Save appends a log row
func (r *GormAutomationLogRepository) Save(ctx context.Context, log *automation.Log) error {
	model := models.AutomationLogModelFromDomain(log)
	return r.db.WithContext(ctx).Save(model).Error
}

func (r *GormAutomationLogRepository) applyFilters(query *gorm.DB, filter shared.Filter) *gorm.DB {
	for key, value := range filter.Filters {
		switch key {
		case "event_type":
			query = query.Where("event_type = ?", value)
		case "status":
			query = query.Where("status = ?", value)
		case "client_id":
			query = query.Where("related_client_id = ?", value)
		}
	}
	return query
}

// Ensure GormAutomationLogRepository implements automation.LogRepository
var _ automation.LogRepository = (*GormAutomationLogRepository)(nil)
