package repositories

import (
	"context"
	"time"

	"packbill-backoffice/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// paymentRepository implements PaymentRepository interface
type paymentRepository struct {
	db *gorm.DB
}

// NewPaymentRepository creates a new payment repository
func NewPaymentRepository(db *gorm.DB) PaymentRepository {
	return &paymentRepository{db: db}
}

// Create creates a new payment
func (r *paymentRepository) Create(ctx context.Context, payment *models.Payment) error {
	return r.db.WithContext(ctx).Create(payment).Error
}

// GetByID gets a payment by ID with its customer and creator
func (r *paymentRepository) GetByID(ctx context.Context, id uint) (*models.Payment, error) {
	var payment models.Payment
	err := r.db.WithContext(ctx).
		Preload("Customer").
		Preload("Customer.Creator").
		Preload("Creator").
		First(&payment, id).Error
	if err != nil {
		return nil, err
	}
	return &payment, nil
}

// Update updates a payment
func (r *paymentRepository) Update(ctx context.Context, payment *models.Payment) error {
	return r.db.WithContext(ctx).Save(payment).Error
}

// Delete hard-deletes a payment
func (r *paymentRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.Payment{}, id).Error
}

// List lists payments matching the filter with pagination, newest first
func (r *paymentRepository) List(ctx context.Context, filter PaymentFilter) ([]*models.Payment, int64, error) {
	var payments []*models.Payment
	var total int64

	query := r.db.WithContext(ctx).Model(&models.Payment{})

	if filter.Search != "" {
		like := "%" + filter.Search + "%"
		query = query.
			Joins("JOIN customers ON customers.id = payments.customer_id").
			Where("customers.name LIKE ? OR customers.email LIKE ? OR payments.description LIKE ?", like, like, like)
	}
	if filter.StartDate != nil {
		query = query.Where("payments.date >= ?", *filter.StartDate)
	}
	if filter.EndDate != nil {
		query = query.Where("payments.date <= ?", *filter.EndDate)
	}
	if filter.CreatedBy != nil {
		query = query.Where("payments.created_by = ?", *filter.CreatedBy)
	}
	if filter.OwnerID != nil {
		query = query.Where("payments.customer_id IN (?)",
			r.db.Model(&models.Customer{}).Select("id").Where("created_by = ?", *filter.OwnerID))
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.
		Preload("Customer").
		Preload("Customer.Creator").
		Preload("Creator").
		Order("payments.date DESC").
		Offset(filter.Offset).
		Limit(filter.Limit).
		Find(&payments).Error

	return payments, total, err
}

// ListWindow lists all payments dated within [from, to], optionally
// restricted to customers created by ownerID. Used by the stats
// aggregation, so no pagination.
func (r *paymentRepository) ListWindow(ctx context.Context, from, to time.Time, ownerID *uint) ([]*models.Payment, error) {
	var payments []*models.Payment

	query := r.db.WithContext(ctx).
		Where("date >= ? AND date <= ?", from, to)

	if ownerID != nil {
		query = query.Where("customer_id IN (?)",
			r.db.Model(&models.Customer{}).Select("id").Where("created_by = ?", *ownerID))
	}

	err := query.Order("date ASC").Find(&payments).Error
	return payments, err
}
