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

// GormPaymentRepository implements crm.PaymentRepository using GORM
type GormPaymentRepository struct {
	db *gorm.DB
}

// NewGormPaymentRepository creates a new GormPaymentRepository
func NewGormPaymentRepository(db *gorm.DB) *GormPaymentRepository {
	return &GormPaymentRepository{db: db}
}

// FindByIDForAgency finds a payment by ID within an agency
func (r *GormPaymentRepository) FindByIDForAgency(ctx context.Context, agencyID, id uuid.UUID) (*crm.Payment, error) {
	var model models.PaymentModel
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

// FindForAgency lists payments for an agency with pagination
func (r *GormPaymentRepository) FindForAgency(ctx context.Context, agencyID uuid.UUID, filter shared.Filter) (shared.Paginated[crm.Payment], error) {
	base := r.db.WithContext(ctx).Model(&models.PaymentModel{}).Where("agency_id = ?", agencyID)
	base = r.applyFilters(base, filter)

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return shared.Paginated[crm.Payment]{}, err
	}

	var paymentModels []models.PaymentModel
	query := applyPagination(base, filter, PaymentSortFields, "due_date")
	if err := query.Find(&paymentModels).Error; err != nil {
		return shared.Paginated[crm.Payment]{}, err
	}

	payments := make([]crm.Payment, len(paymentModels))
	for i, model := range paymentModels {
		payments[i] = *model.ToDomain()
	}
	return shared.NewPaginated(payments, total, filter.Page, filter.PageSize), nil
}

// CountOutstandingForAgency counts payments in PENDING or OVERDUE status
func (r *GormPaymentRepository) CountOutstandingForAgency(ctx context.Context, agencyID uuid.UUID) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.PaymentModel{}).
		Where("agency_id = ? AND status IN ?", agencyID, []crm.PaymentStatus{crm.PaymentStatusPending, crm.PaymentStatusOverdue}).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Save creates or updates a payment
func (r *GormPaymentRepository) Save(ctx context.Context, payment *crm.Payment) error {
	model := models.PaymentModelFromDomain(payment)
	return r.db.WithContext(ctx).Save(model).Error
}

// DeleteForAgency deletes a payment within an agency
func (r *GormPaymentRepository) DeleteForAgency(ctx context.Context, agencyID, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.PaymentModel{}, "agency_id = ? AND id = ?", agencyID, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

func (r *GormPaymentRepository) applyFilters(query *gorm.DB, filter shared.Filter) *gorm.DB {
	for key, value := range filter.Filters {
		switch key {
		case "status":
			query = query.Where("status = ?", value)
		case "billing_cycle":
			query = query.Where("billing_cycle = ?", value)
		case "client_id":
			query = query.Where("client_id = ?", value)
		}
	}
	return query
}

// Ensure GormPaymentRepository implements crm.PaymentRepository
var _ crm.PaymentRepository = (*GormPaymentRepository)(nil)
