package persistence

import (
	"context"
	"errors"
	"strings"

	"github.com/crm/backend/internal/domain/identity"
	"github.com/crm/backend/internal/domain/shared"
	"github.com/crm/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormUserRepository implements identity.UserRepository using GORM
type GormUserRepository struct {
	db *gorm.DB
}

// NewGormUserRepository creates a new GormUserRepository
func NewGormUserRepository(db *gorm.DB) *GormUserRepository {
	return &GormUserRepository{db: db}
}

// FindByID finds a user by its ID
func (r *GormUserRepository) FindByID(ctx context.Context, id uuid.UUID) (*identity.User, error) {
	var model models.UserModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByIDForAgency finds a user by ID within an agency
func (r *GormUserRepository) FindByIDForAgency(ctx context.Context, agencyID, id uuid.UUID) (*identity.User, error) {
	var model models.UserModel
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

// FindByEmail finds a user by email
func (r *GormUserRepository) FindByEmail(ctx context.Context, email string) (*identity.User, error) {
	var model models.UserModel
	if err := r.db.WithContext(ctx).
		Where("email = ?", strings.ToLower(email)).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAllForAgency finds all users for an agency
func (r *GormUserRepository) FindAllForAgency(ctx context.Context, agencyID uuid.UUID) ([]identity.User, error) {
	var userModels []models.UserModel
	if err := r.db.WithContext(ctx).
		Where("agency_id = ?", agencyID).
		Order("created_at ASC").
		Find(&userModels).Error; err != nil {
		return nil, err
	}

	users := make([]identity.User, len(userModels))
	for i, model := range userModels {
		users[i] = *model.ToDomain()
	}
	return users, nil
}

// Save creates or updates a user
func (r *GormUserRepository) Save(ctx context.Context, user *identity.User) error {
	model := models.UserModelFromDomain(user)
	return r.db.WithContext(ctx).Save(model).Error
}

// DeleteForAgency deletes a user within an agency
func (r *GormUserRepository) DeleteForAgency(ctx context.Context, agencyID, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.UserModel{}, "agency_id = ? AND id = ?", agencyID, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Ensure GormUserRepository implements identity.UserRepository
var _ identity.UserRepository = (*GormUserRepository)(nil)
