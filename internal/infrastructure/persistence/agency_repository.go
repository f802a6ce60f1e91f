package persistence

import (
	"context"
	"errors"

	"github.com/crm/backend/internal/domain/identity"
	"github.com/crm/backend/internal/domain/shared"
	"github.com/crm/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormAgencyRepository implements identity.AgencyRepository using GORM
type GormAgencyRepository struct {
	db *gorm.DB
}

// NewGormAgencyRepository creates a new GormAgencyRepository
func NewGormAgencyRepository(db *gorm.DB) *GormAgencyRepository {
	return &GormAgencyRepository{db: db}
}

// FindByID finds an agency by its ID
func (r *GormAgencyRepository) FindByID(ctx context.Context, id uuid.UUID) (*identity.Agency, error) {
	var model models.AgencyModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// Save creates or updates an agency
func (r *GormAgencyRepository) Save(ctx context.Context, agency *identity.Agency) error {
	model := models.AgencyModelFromDomain(agency)
	return r.db.WithContext(ctx).Save(model).Error
}

// Ensure GormAgencyRepository implements identity.AgencyRepository
var _ identity.AgencyRepository = (*GormAgencyRepository)(nil)
