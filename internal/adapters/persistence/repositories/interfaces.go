package repositories

import (
	"context"
	"time"

	"packbill-backoffice/internal/adapters/persistence/models"
)

// CustomerFilter narrows customer list queries
type CustomerFilter struct {
	Search    string // matches name, email or phone
	IsActive  *bool
	CreatedBy *uint
	Offset    int
	Limit     int
}

// PaymentFilter narrows payment list queries
type PaymentFilter struct {
	Search    string // matches customer name, customer email or description
	StartDate *time.Time
	EndDate   *time.Time
	CreatedBy *uint
	OwnerID   *uint // restrict to payments of customers created by this user
	Offset    int
	Limit     int
}

// LogFilter narrows audit log list queries
type LogFilter struct {
	Search    string // matches username, action or description
	StartDate *time.Time
	EndDate   *time.Time
	Offset    int
	Limit     int
}

// UserRepository defines user repository interface
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id uint) (*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	Update(ctx context.Context, user *models.User) error
	List(ctx context.Context) ([]*models.User, error)
	ExistsByUsername(ctx context.Context, username string) (bool, error)
}

// CustomerRepository defines customer repository interface
type CustomerRepository interface {
	Create(ctx context.Context, customer *models.Customer) error
	GetByID(ctx context.Context, id uint) (*models.Customer, error)
	Update(ctx context.Context, customer *models.Customer) error
	List(ctx context.Context, filter CustomerFilter) ([]*models.Customer, int64, error)
	ExistsByEmail(ctx context.Context, email string, excludeID uint) (bool, error)
}

// PaymentRepository defines payment repository interface
type PaymentRepository interface {
	Create(ctx context.Context, payment *models.Payment) error
	GetByID(ctx context.Context, id uint) (*models.Payment, error)
	Update(ctx context.Context, payment *models.Payment) error
	Delete(ctx context.Context, id uint) error
	List(ctx context.Context, filter PaymentFilter) ([]*models.Payment, int64, error)
	ListWindow(ctx context.Context, from, to time.Time, ownerID *uint) ([]*models.Payment, error)
}

// LogRepository defines audit log repository interface
type LogRepository interface {
	Create(ctx context.Context, entry *models.Log) error
	List(ctx context.Context, filter LogFilter) ([]*models.Log, int64, error)
}

// RefreshTokenRepository defines refresh token repository interface
type RefreshTokenRepository interface {
	Create(ctx context.Context, token *models.RefreshToken) error
	GetByTokenHash(ctx context.Context, tokenHash string) (*models.RefreshToken, error)
	Revoke(ctx context.Context, id uint) error
	RevokeAllByUserID(ctx context.Context, userID uint) error
	DeleteExpired(ctx context.Context) (int64, error)
}
