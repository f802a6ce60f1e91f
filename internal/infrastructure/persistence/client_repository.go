package persistence

import (
	"context"
	"errors"
	"strings"

	"github.com/crm/backend/internal/domain/crm"
	"github.com/crm/backend/internal/domain/shared"
	"github.com/crm/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormClientRepository implements crm.ClientRepository using GORM
type GormClientRepository struct {
	db *gorm.DB
}

// NewGormClientRepository creates a new GormClientRepository
func NewGormClientRepository(db *gorm.DB) *GormClientRepository {
	return &GormClientRepository{db: db}
}

// FindByIDForAgency finds a client by ID within an agency
func (r *GormClientRepository) FindByIDForAgency(ctx context.Context, agencyID, id uuid.UUID) (*crm.Client, error) {
	var model models.ClientModel
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

// FindByID finds a client by ID across agencies
func (r *GormClientRepository) FindByID(ctx context.Context, id uuid.UUID) (*crm.Client, error) {
	var model models.ClientModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByCode finds a client by its client code across agencies
func (r *GormClientRepository) FindByCode(ctx context.Context, code string) (*crm.Client, error) {
	var model models.ClientModel
	if err := r.db.WithContext(ctx).
		Where("client_code = ?", strings.ToUpper(code)).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindForAgency lists clients for an agency with pagination
func (r *GormClientRepository) FindForAgency(ctx context.Context, agencyID uuid.UUID, filter shared.Filter) (shared.Paginated[crm.Client], error) {
	base := r.db.WithContext(ctx).Model(&models.ClientModel{}).Where("agency_id = ?", agencyID)
	base = r.applySearch(base, filter)

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return shared.Paginated[crm.Client]{}, err
	}

	var clientModels []models.ClientModel
	query := applyPagination(base, filter, ClientSortFields, "created_at")
	if err := query.Find(&clientModels).Error; err != nil {
		return shared.Paginated[crm.Client]{}, err
	}

	clients := make([]crm.Client, len(clientModels))
	for i, model := range clientModels {
		clients[i] = *model.ToDomain()
	}
	return shared.NewPaginated(clients, total, filter.Page, filter.PageSize), nil
}

// CountActiveForAgency counts clients in ACTIVE status
func (r *GormClientRepository) CountActiveForAgency(ctx context.Context, agencyID uuid.UUID) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.ClientModel{}).
		Where("agency_id = ? AND status = ?", agencyID, crm.ClientStatusActive).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Save creates or updates a client
func (r *GormClientRepository) Save(ctx context.Context, client *crm.Client) error {
	model := models.ClientModelFromDomain(client)
	return r.db.WithContext(ctx).Save(model).Error
}

// DeleteForAgency deletes a client within an agency
func (r *GormClientRepository) DeleteForAgency(ctx context.Context, agencyID, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.ClientModel{}, "agency_id = ? AND id = ?", agencyID, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// applySearch applies free-text search over the client identity fields
func (r *GormClientRepository) applySearch(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		query = query.Where("business_name LIKE ? OR contact_person LIKE ? OR client_code LIKE ? OR whatsapp_number LIKE ?",
			pattern, pattern, pattern, pattern)
	}
	for key, value := range filter.Filters {
		switch key {
		case "status":
			query = query.Where("status = ?", value)
		case "package_type":
			query = query.Where("package_type = ?", value)
		}
	}
	return query
}

// applyPagination applies ordering and pagination common to all list queries
func applyPagination(query *gorm.DB, filter shared.Filter, sortFields map[string]bool, defaultField string) *gorm.DB {
	orderBy := ValidateSortField(filter.OrderBy, sortFields, defaultField)
	orderDir := ValidateSortOrder(filter.OrderDir)
	query = query.Order(orderBy + " " + orderDir)

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}
	return query
}

// Ensure GormClientRepository implements crm.ClientRepository
var _ crm.ClientRepository = (*GormClientRepository)(nil)
