package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"packbill-backoffice/internal/adapters/persistence/models"
	"packbill-backoffice/internal/adapters/persistence/repositories"
	"packbill-backoffice/internal/pkg/timeseries"

	"gorm.io/gorm"
)

// Payment service errors
var (
	ErrPaymentNotFound    = errors.New("payment not found")
	ErrInvalidAmount      = errors.New("amount must be greater than zero")
	ErrInvalidGranularity = errors.New("invalid granularity")
)

// PaymentService handles payment business logic. Non-admin users only
// see payments of customers they created.
type PaymentService struct {
	paymentRepo  repositories.PaymentRepository
	customerRepo repositories.CustomerRepository
	logService   *LogService
}

// NewPaymentService creates a new payment service
func NewPaymentService(
	paymentRepo repositories.PaymentRepository,
	customerRepo repositories.CustomerRepository,
	logService *LogService,
) *PaymentService {
	return &PaymentService{
		paymentRepo:  paymentRepo,
		customerRepo: customerRepo,
		logService:   logService,
	}
}

// CreatePaymentInput represents payment creation input
type CreatePaymentInput struct {
	CustomerID  uint       `json:"customer_id"`
	Amount      float64    `json:"amount"`
	Description string     `json:"description"`
	Date        *time.Time `json:"date"`
}

// UpdatePaymentInput represents payment update input; nil fields are left as-is
type UpdatePaymentInput struct {
	CustomerID  *uint      `json:"customer_id"`
	Amount      *float64   `json:"amount"`
	Description *string    `json:"description"`
	Date        *time.Time `json:"date"`
}

// ListPaymentsInput represents payment list input
type ListPaymentsInput struct {
	Search    string
	StartDate *time.Time
	EndDate   *time.Time
	Offset    int
	Limit     int
}

// StatsResponse is the wire shape of the payment statistics endpoint
type StatsResponse struct {
	Labels []string  `json:"labels"`
	Totals []float64 `json:"totals"`
}

// ListPayments lists payments visible to the actor
func (s *PaymentService) ListPayments(ctx context.Context, actor Actor, input *ListPaymentsInput) ([]*models.PaymentResponse, int64, error) {
	filter := repositories.PaymentFilter{
		Search:    input.Search,
		StartDate: input.StartDate,
		EndDate:   input.EndDate,
		Offset:    input.Offset,
		Limit:     input.Limit,
	}

	// Employees only see payments of customers they created
	if !actor.IsAdmin {
		filter.OwnerID = &actor.ID
	}

	payments, total, err := s.paymentRepo.List(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]*models.PaymentResponse, len(payments))
	for i, payment := range payments {
		responses[i] = payment.ToResponse()
	}

	return responses, total, nil
}

// GetPayment gets a payment visible to the actor
func (s *PaymentService) GetPayment(ctx context.Context, actor Actor, id uint) (*models.Payment, error) {
	payment, err := s.paymentRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPaymentNotFound
		}
		return nil, err
	}

	if err := s.authorize(actor, payment); err != nil {
		return nil, err
	}

	return payment, nil
}

// CreatePayment creates a payment for a customer visible to the actor
func (s *PaymentService) CreatePayment(ctx context.Context, actor Actor, input *CreatePaymentInput) (*models.Payment, error) {
	// 1. Validate amount
	if input.Amount <= 0 {
		return nil, ErrInvalidAmount
	}

	// 2. The customer must exist and be visible to the actor
	customer, err := s.customerRepo.GetByID(ctx, input.CustomerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCustomerNotFound
		}
		return nil, err
	}
	if !actor.IsAdmin && (customer.CreatedBy == nil || *customer.CreatedBy != actor.ID) {
		return nil, ErrPermissionDenied
	}

	// 3. Create payment
	payment := &models.Payment{
		CustomerID:  input.CustomerID,
		Amount:      input.Amount,
		Description: input.Description,
		CreatedBy:   &actor.ID,
	}
	if input.Date != nil {
		payment.Date = *input.Date
	}

	if err := s.paymentRepo.Create(ctx, payment); err != nil {
		return nil, err
	}

	// 4. Audit trail
	s.logService.Record(ctx, &actor.ID, models.ActionPaymentCreated,
		fmt.Sprintf("Payment of %.2f for customer %q was created", payment.Amount, customer.Name))

	return s.paymentRepo.GetByID(ctx, payment.ID)
}

// UpdatePayment updates a payment visible to the actor
func (s *PaymentService) UpdatePayment(ctx context.Context, actor Actor, id uint, input *UpdatePaymentInput) (*models.Payment, error) {
	payment, err := s.GetPayment(ctx, actor, id)
	if err != nil {
		return nil, err
	}

	if input.CustomerID != nil && *input.CustomerID != payment.CustomerID {
		customer, err := s.customerRepo.GetByID(ctx, *input.CustomerID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrCustomerNotFound
			}
			return nil, err
		}
		if !actor.IsAdmin && (customer.CreatedBy == nil || *customer.CreatedBy != actor.ID) {
			return nil, ErrPermissionDenied
		}
		payment.CustomerID = *input.CustomerID
	}
	if input.Amount != nil {
		if *input.Amount <= 0 {
			return nil, ErrInvalidAmount
		}
		payment.Amount = *input.Amount
	}
	if input.Description != nil {
		payment.Description = *input.Description
	}
	if input.Date != nil {
		payment.Date = *input.Date
	}

	if err := s.paymentRepo.Update(ctx, payment); err != nil {
		return nil, err
	}

	s.logService.Record(ctx, &actor.ID, models.ActionPaymentUpdated,
		fmt.Sprintf("Payment #%d was updated", payment.ID))

	return s.paymentRepo.GetByID(ctx, payment.ID)
}

// DeletePayment hard-deletes a payment visible to the actor
func (s *PaymentService) DeletePayment(ctx context.Context, actor Actor, id uint) error {
	payment, err := s.GetPayment(ctx, actor, id)
	if err != nil {
		return err
	}

	if err := s.paymentRepo.Delete(ctx, payment.ID); err != nil {
		return err
	}

	s.logService.Record(ctx, &actor.ID, models.ActionPaymentDeleted,
		fmt.Sprintf("Payment #%d of %.2f was deleted", payment.ID, payment.Amount))

	return nil
}

// Stats aggregates payment amounts into a fixed-length chart series.
// The query window depends on granularity: daily covers the current ISO
// week up to now, weekly the current calendar month, monthly and yearly
// the current calendar year. The aggregator re-applies the same clipping
// so out-of-window rows can never leak into a bucket.
func (s *PaymentService) Stats(ctx context.Context, actor Actor, granularity timeseries.Granularity, now time.Time) (*StatsResponse, error) {
	if !granularity.Valid() {
		return nil, ErrInvalidGranularity
	}

	from, to := statsWindow(granularity, now)

	var ownerID *uint
	if !actor.IsAdmin {
		ownerID = &actor.ID
	}

	payments, err := s.paymentRepo.ListWindow(ctx, from, to, ownerID)
	if err != nil {
		return nil, err
	}

	records := make([]timeseries.Record, len(payments))
	for i, payment := range payments {
		records[i] = timeseries.Record{Date: payment.Date, Amount: payment.Amount}
	}

	series := timeseries.Aggregate(records, granularity, now)
	return &StatsResponse{Labels: series.Labels, Totals: series.Totals}, nil
}

// statsWindow returns the inclusive query window for a granularity
func statsWindow(granularity timeseries.Granularity, now time.Time) (time.Time, time.Time) {
	switch granularity {
	case timeseries.Daily:
		weekStart := now.AddDate(0, 0, -mondayOffset(now.Weekday()))
		weekStart = time.Date(weekStart.Year(), weekStart.Month(), weekStart.Day(), 0, 0, 0, 0, now.Location())
		return weekStart, now
	case timeseries.Weekly:
		monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
		monthEnd := monthStart.AddDate(0, 1, 0).Add(-time.Nanosecond)
		return monthStart, monthEnd
	default:
		yearStart := time.Date(now.Year(), 1, 1, 0, 0, 0, 0, now.Location())
		yearEnd := yearStart.AddDate(1, 0, 0).Add(-time.Nanosecond)
		return yearStart, yearEnd
	}
}

func mondayOffset(d time.Weekday) int {
	if d == time.Sunday {
		return 6
	}
	return int(d) - 1
}

// authorize checks the admin-or-owner rule for a single payment. The
// owner of a payment is the creator of its customer.
func (s *PaymentService) authorize(actor Actor, payment *models.Payment) error {
	if actor.IsAdmin {
		return nil
	}
	if payment.Customer != nil && payment.Customer.CreatedBy != nil && *payment.Customer.CreatedBy == actor.ID {
		return nil
	}
	return ErrPermissionDenied
}
