package services

import (
	"context"
	"sort"
	"strings"
	"time"

	"packbill-backoffice/internal/adapters/persistence/models"
	"packbill-backoffice/internal/adapters/persistence/repositories"

	"gorm.io/gorm"
)

// ---------------------------------------------------------------------------
// In-memory stub repositories
// ---------------------------------------------------------------------------

type stubUserRepo struct {
	nextID uint
	users  map[uint]*models.User
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{nextID: 1, users: make(map[uint]*models.User)}
}

func (r *stubUserRepo) Create(_ context.Context, user *models.User) error {
	user.ID = r.nextID
	r.nextID++
	clone := *user
	r.users[user.ID] = &clone
	return nil
}

func (r *stubUserRepo) GetByID(_ context.Context, id uint) (*models.User, error) {
	user, ok := r.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	clone := *user
	return &clone, nil
}

func (r *stubUserRepo) GetByUsername(_ context.Context, username string) (*models.User, error) {
	for _, user := range r.users {
		if user.Username == username {
			clone := *user
			return &clone, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubUserRepo) Update(_ context.Context, user *models.User) error {
	if _, ok := r.users[user.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	clone := *user
	r.users[user.ID] = &clone
	return nil
}

func (r *stubUserRepo) List(_ context.Context) ([]*models.User, error) {
	users := make([]*models.User, 0, len(r.users))
	for _, user := range r.users {
		clone := *user
		users = append(users, &clone)
	}
	sort.Slice(users, func(i, j int) bool { return users[i].ID < users[j].ID })
	return users, nil
}

func (r *stubUserRepo) ExistsByUsername(_ context.Context, username string) (bool, error) {
	for _, user := range r.users {
		if user.Username == username {
			return true, nil
		}
	}
	return false, nil
}

type stubCustomerRepo struct {
	nextID    uint
	customers map[uint]*models.Customer
}

func newStubCustomerRepo() *stubCustomerRepo {
	return &stubCustomerRepo{nextID: 1, customers: make(map[uint]*models.Customer)}
}

func (r *stubCustomerRepo) Create(_ context.Context, customer *models.Customer) error {
	customer.ID = r.nextID
	r.nextID++
	clone := *customer
	r.customers[customer.ID] = &clone
	return nil
}

func (r *stubCustomerRepo) GetByID(_ context.Context, id uint) (*models.Customer, error) {
	customer, ok := r.customers[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	clone := *customer
	return &clone, nil
}

func (r *stubCustomerRepo) Update(_ context.Context, customer *models.Customer) error {
	if _, ok := r.customers[customer.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	clone := *customer
	r.customers[customer.ID] = &clone
	return nil
}

// List applies the same filters the gorm repository builds as SQL.
func (r *stubCustomerRepo) List(_ context.Context, filter repositories.CustomerFilter) ([]*models.Customer, int64, error) {
	var matched []*models.Customer
	for _, customer := range r.customers {
		if filter.IsActive != nil && customer.IsActive != *filter.IsActive {
			continue
		}
		if filter.CreatedBy != nil && (customer.CreatedBy == nil || *customer.CreatedBy != *filter.CreatedBy) {
			continue
		}
		if filter.Search != "" {
			needle := strings.ToLower(filter.Search)
			phone := ""
			if customer.Phone != nil {
				phone = *customer.Phone
			}
			if !strings.Contains(strings.ToLower(customer.Name), needle) &&
				!strings.Contains(strings.ToLower(customer.Email), needle) &&
				!strings.Contains(strings.ToLower(phone), needle) {
				continue
			}
		}
		clone := *customer
		matched = append(matched, &clone)
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].ID < matched[j].ID })

	total := int64(len(matched))
	if filter.Offset > len(matched) {
		return nil, total, nil
	}
	matched = matched[filter.Offset:]
	if filter.Limit > 0 && filter.Limit < len(matched) {
		matched = matched[:filter.Limit]
	}
	return matched, total, nil
}

func (r *stubCustomerRepo) ExistsByEmail(_ context.Context, email string, excludeID uint) (bool, error) {
	for _, customer := range r.customers {
		if customer.Email == email && customer.ID != excludeID {
			return true, nil
		}
	}
	return false, nil
}

type stubPaymentRepo struct {
	nextID    uint
	payments  map[uint]*models.Payment
	customers *stubCustomerRepo
}

func newStubPaymentRepo(customers *stubCustomerRepo) *stubPaymentRepo {
	return &stubPaymentRepo{nextID: 1, payments: make(map[uint]*models.Payment), customers: customers}
}

func (r *stubPaymentRepo) Create(_ context.Context, payment *models.Payment) error {
	payment.ID = r.nextID
	r.nextID++
	if payment.Date.IsZero() {
		payment.Date = time.Now()
	}
	clone := *payment
	r.payments[payment.ID] = &clone
	return nil
}

func (r *stubPaymentRepo) GetByID(_ context.Context, id uint) (*models.Payment, error) {
	payment, ok := r.payments[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	clone := *payment
	// Mirror the gorm repository's customer preload
	if customer, ok := r.customers.customers[clone.CustomerID]; ok {
		customerClone := *customer
		clone.Customer = &customerClone
	}
	return &clone, nil
}

func (r *stubPaymentRepo) Update(_ context.Context, payment *models.Payment) error {
	if _, ok := r.payments[payment.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	clone := *payment
	clone.Customer = nil
	r.payments[payment.ID] = &clone
	return nil
}

func (r *stubPaymentRepo) Delete(_ context.Context, id uint) error {
	delete(r.payments, id)
	return nil
}

func (r *stubPaymentRepo) ownedBy(payment *models.Payment, ownerID uint) bool {
	customer, ok := r.customers.customers[payment.CustomerID]
	return ok && customer.CreatedBy != nil && *customer.CreatedBy == ownerID
}

func (r *stubPaymentRepo) List(_ context.Context, filter repositories.PaymentFilter) ([]*models.Payment, int64, error) {
	var matched []*models.Payment
	for _, payment := range r.payments {
		if filter.OwnerID != nil && !r.ownedBy(payment, *filter.OwnerID) {
			continue
		}
		if filter.StartDate != nil && payment.Date.Before(*filter.StartDate) {
			continue
		}
		if filter.EndDate != nil && payment.Date.After(*filter.EndDate) {
			continue
		}
		clone := *payment
		if customer, ok := r.customers.customers[clone.CustomerID]; ok {
			customerClone := *customer
			clone.Customer = &customerClone
		}
		matched = append(matched, &clone)
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].ID < matched[j].ID })

	total := int64(len(matched))
	if filter.Offset > len(matched) {
		return nil, total, nil
	}
	matched = matched[filter.Offset:]
	if filter.Limit > 0 && filter.Limit < len(matched) {
		matched = matched[:filter.Limit]
	}
	return matched, total, nil
}

func (r *stubPaymentRepo) ListWindow(_ context.Context, from, to time.Time, ownerID *uint) ([]*models.Payment, error) {
	var matched []*models.Payment
	for _, payment := range r.payments {
		if payment.Date.Before(from) || payment.Date.After(to) {
			continue
		}
		if ownerID != nil && !r.ownedBy(payment, *ownerID) {
			continue
		}
		clone := *payment
		matched = append(matched, &clone)
	}
	return matched, nil
}

type stubLogRepo struct {
	entries []*models.Log
}

func (r *stubLogRepo) Create(_ context.Context, entry *models.Log) error {
	clone := *entry
	clone.ID = uint(len(r.entries) + 1)
	r.entries = append(r.entries, &clone)
	return nil
}

func (r *stubLogRepo) List(_ context.Context, filter repositories.LogFilter) ([]*models.Log, int64, error) {
	entries := make([]*models.Log, len(r.entries))
	copy(entries, r.entries)
	return entries, int64(len(entries)), nil
}

func (r *stubLogRepo) lastAction() string {
	if len(r.entries) == 0 {
		return ""
	}
	return r.entries[len(r.entries)-1].Action
}

// ---------------------------------------------------------------------------
// Shared fixture
// ---------------------------------------------------------------------------

type fixture struct {
	users     *stubUserRepo
	customers *stubCustomerRepo
	payments  *stubPaymentRepo
	logs      *stubLogRepo

	logService      *LogService
	userService     *UserService
	customerService *CustomerService
	paymentService  *PaymentService
}

func newFixture() *fixture {
	f := &fixture{
		users:     newStubUserRepo(),
		customers: newStubCustomerRepo(),
		logs:      &stubLogRepo{},
	}
	f.payments = newStubPaymentRepo(f.customers)

	f.logService = NewLogService(f.logs, f.users)
	f.userService = NewUserService(f.users, f.logService)
	f.customerService = NewCustomerService(f.customers, f.logService)
	f.paymentService = NewPaymentService(f.payments, f.customers, f.logService)

	return f
}

var (
	adminActor    = Actor{ID: 9001, Username: "admin", IsAdmin: true}
	employeeActor = Actor{ID: 2, Username: "bob", IsAdmin: false}
)
