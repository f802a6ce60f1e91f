package persistence

import (
	"context"
	"errors"

	"github.com/crm/backend/internal/domain/crm"
	"github.com/crm/backend/internal/domain/shared"
	"github.com/crm/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormServiceRepository implements crm.ServiceRepository using GORM
type GormServiceRepository struct {
	db *gorm.DB
}

// NewGormServiceRepository creates a new GormServiceRepository
func NewGormServiceRepository(db *gorm.DB) *GormServiceRepository {
	return &GormServiceRepository{db: db}
}

// FindByIDForAgency finds a service by ID within an agency
func (r *GormServiceRepository) FindByIDForAgency(ctx context.Context, agencyID, id uuid.UUID) (*crm.Service, error) {
	var model models.ServiceModel
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

// FindForAgency lists services for an agency with pagination
func (r *GormServiceRepository) FindForAgency(ctx context.Context, agencyID uuid.UUID, filter shared.Filter) (shared.Paginated[crm.Service], error) {
	base := r.db.WithContext(ctx).Model(&models.ServiceModel{}).Where("agency_id = ?", agencyID)
	base = r.applyFilters(base, filter)

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return shared.Paginated[crm.Service]{}, err
	}

	var serviceModels []models.ServiceModel
	query := applyPagination(base, filter, ServiceSortFields, "created_at")
	if err := query.Find(&serviceModels).Error; err != nil {
		return shared.Paginated[crm.Service]{}, err
	}

	services := make([]crm.Service, len(serviceModels))
	for i, model := range serviceModels {
		services[i] = *model.ToDomain()
	}
	return shared.NewPaginated(services, total, filter.Page, filter.PageSize), nil
}

// FindForClient lists services for one client
func (r *GormServiceRepository) FindForClient(ctx context.Context, agencyID, clientID uuid.UUID) ([]crm.Service, error) {
	var serviceModels []models.ServiceModel
	if err := r.db.WithContext(ctx).
		Where("agency_id = ? AND client_id = ?", agencyID, clientID).
		Order("created_at DESC").
		Find(&serviceModels).Error; err != nil {
		return nil, err
	}

	services := make([]crm.Service, len(serviceModels))
	for i, model := range serviceModels {
		services[i] = *model.ToDomain()
	}
	return services, nil
}

// Save creates or updates a service
func (r *GormServiceRepository) Save(ctx context.Context, service *crm.Service) error {
	model := models.ServiceModelFromDomain(service)
	return r.db.WithContext(ctx).Save(model).Error
}

// DeleteForAgency deletes a service within an agency
func (r *GormServiceRepository) DeleteForAgency(ctx context.Context, agencyID, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.ServiceModel{}, "agency_id = ? AND id = ?", agencyID, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

func (r *GormServiceRepository) applyFilters(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		query = query.Where("name LIKE ?", "%"+filter.Search+"%")
	}
	for key, value := range filter.Filters {
		switch key {
		case "client_id":
			query = query.Where("client_id = ?", value)
		case "service_type":
			query = query.Where("service_type = ?", value)
		}
	}
	return query
}

// Ensure GormServiceRepository implements crm.ServiceRepository
var _ crm.ServiceRepository = (*GormServiceRepository)(nil)
