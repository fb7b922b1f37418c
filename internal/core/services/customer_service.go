package services

import (
	"context"
	"errors"
	"fmt"

	"packbill-backoffice/internal/adapters/persistence/models"
	"packbill-backoffice/internal/adapters/persistence/repositories"

	"gorm.io/gorm"
)

// Customer service errors
var (
	ErrCustomerNotFound   = errors.New("customer not found")
	ErrCustomerEmailTaken = errors.New("customer email already exists")
	ErrPermissionDenied   = errors.New("you do not have permission to perform this action")
)

// CustomerService handles customer business logic. Non-admin users only
// see and touch customers they created; admins see everything.
type CustomerService struct {
	customerRepo repositories.CustomerRepository
	logService   *LogService
}

// NewCustomerService creates a new customer service
func NewCustomerService(customerRepo repositories.CustomerRepository, logService *LogService) *CustomerService {
	return &CustomerService{
		customerRepo: customerRepo,
		logService:   logService,
	}
}

// CreateCustomerInput represents customer creation input
type CreateCustomerInput struct {
	Name       string  `json:"name"`
	Email      string  `json:"email"`
	Phone      *string `json:"phone"`
	Address    *string `json:"address"`
	PackageFee float64 `json:"package_fee"`
}

// UpdateCustomerInput represents customer update input; nil fields are left as-is
type UpdateCustomerInput struct {
	Name       *string  `json:"name"`
	Email      *string  `json:"email"`
	Phone      *string  `json:"phone"`
	Address    *string  `json:"address"`
	PackageFee *float64 `json:"package_fee"`
	IsActive   *bool    `json:"is_active"`
}

// ListCustomersInput represents customer list input
type ListCustomersInput struct {
	Search   string
	IsActive *bool
	Offset   int
	Limit    int
}

// ListCustomers lists customers visible to the actor
func (s *CustomerService) ListCustomers(ctx context.Context, actor Actor, input *ListCustomersInput) ([]*models.CustomerResponse, int64, error) {
	filter := repositories.CustomerFilter{
		Search:   input.Search,
		IsActive: input.IsActive,
		Offset:   input.Offset,
		Limit:    input.Limit,
	}

	// Employees only see their own customers
	if !actor.IsAdmin {
		filter.CreatedBy = &actor.ID
	}

	customers, total, err := s.customerRepo.List(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]*models.CustomerResponse, len(customers))
	for i, customer := range customers {
		responses[i] = customer.ToResponse()
	}

	return responses, total, nil
}

// GetCustomer gets a customer visible to the actor
func (s *CustomerService) GetCustomer(ctx context.Context, actor Actor, id uint) (*models.Customer, error) {
	customer, err := s.customerRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCustomerNotFound
		}
		return nil, err
	}

	if err := s.authorize(actor, customer); err != nil {
		return nil, err
	}

	return customer, nil
}

// CreateCustomer creates a new customer owned by the actor
func (s *CustomerService) CreateCustomer(ctx context.Context, actor Actor, input *CreateCustomerInput) (*models.Customer, error) {
	// 1. Reject duplicate emails
	exists, err := s.customerRepo.ExistsByEmail(ctx, input.Email, 0)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrCustomerEmailTaken
	}

	// 2. Create customer
	customer := &models.Customer{
		Name:       input.Name,
		Email:      input.Email,
		Phone:      input.Phone,
		Address:    input.Address,
		PackageFee: input.PackageFee,
		IsActive:   true,
		CreatedBy:  &actor.ID,
	}

	if err := s.customerRepo.Create(ctx, customer); err != nil {
		return nil, err
	}

	// 3. Audit trail
	s.logService.Record(ctx, &actor.ID, models.ActionCustomerCreated,
		fmt.Sprintf("Customer %q (%s) was created", customer.Name, customer.Email))

	return s.customerRepo.GetByID(ctx, customer.ID)
}

// UpdateCustomer updates a customer visible to the actor
func (s *CustomerService) UpdateCustomer(ctx context.Context, actor Actor, id uint, input *UpdateCustomerInput) (*models.Customer, error) {
	customer, err := s.GetCustomer(ctx, actor, id)
	if err != nil {
		return nil, err
	}

	if input.Email != nil && *input.Email != customer.Email {
		exists, err := s.customerRepo.ExistsByEmail(ctx, *input.Email, customer.ID)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, ErrCustomerEmailTaken
		}
		customer.Email = *input.Email
	}
	if input.Name != nil {
		customer.Name = *input.Name
	}
	if input.Phone != nil {
		customer.Phone = input.Phone
	}
	if input.Address != nil {
		customer.Address = input.Address
	}
	if input.PackageFee != nil {
		customer.PackageFee = *input.PackageFee
	}
	if input.IsActive != nil {
		customer.IsActive = *input.IsActive
	}

	if err := s.customerRepo.Update(ctx, customer); err != nil {
		return nil, err
	}

	s.logService.Record(ctx, &actor.ID, models.ActionCustomerUpdated,
		fmt.Sprintf("Customer %q (%s) was updated", customer.Name, customer.Email))

	return s.customerRepo.GetByID(ctx, customer.ID)
}

// DeactivateCustomer soft-deactivates a customer. Rows are never removed
// because payments keep pointing at them.
func (s *CustomerService) DeactivateCustomer(ctx context.Context, actor Actor, id uint) error {
	customer, err := s.GetCustomer(ctx, actor, id)
	if err != nil {
		return err
	}

	customer.IsActive = false
	if err := s.customerRepo.Update(ctx, customer); err != nil {
		return err
	}

	s.logService.Record(ctx, &actor.ID, models.ActionCustomerDeleted,
		fmt.Sprintf("Customer %q (%s) was deactivated", customer.Name, customer.Email))

	return nil
}

// ReactivateCustomer restores a soft-deactivated customer
func (s *CustomerService) ReactivateCustomer(ctx context.Context, actor Actor, id uint) (*models.Customer, error) {
	customer, err := s.GetCustomer(ctx, actor, id)
	if err != nil {
		return nil, err
	}

	customer.IsActive = true
	if err := s.customerRepo.Update(ctx, customer); err != nil {
		return nil, err
	}

	s.logService.Record(ctx, &actor.ID, models.ActionCustomerUpdated,
		fmt.Sprintf("Customer %q (%s) was reactivated", customer.Name, customer.Email))

	return customer, nil
}

// authorize checks the admin-or-owner rule for a single customer
func (s *CustomerService) authorize(actor Actor, customer *models.Customer) error {
	if actor.IsAdmin {
		return nil
	}
	if customer.CreatedBy != nil && *customer.CreatedBy == actor.ID {
		return nil
	}
	return ErrPermissionDenied
}
