package models

import (
	"time"

	"gorm.io/gorm"
)

// User types
const (
	UserTypeAdmin    = "admin"
	UserTypeEmployee = "employee"
)

// User represents a staff account (users table)
type User struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Username    string    `gorm:"uniqueIndex;size:150;not null" json:"username"`
	Email       string    `gorm:"size:254" json:"email"`
	FirstName   string    `gorm:"size:150" json:"first_name"`
	LastName    string    `gorm:"size:150" json:"last_name"`
	Password    string    `gorm:"size:255;not null" json:"-"`
	UserType    string    `gorm:"size:10;default:'employee'" json:"user_type"`
	IsStaff     bool      `gorm:"default:false" json:"is_staff"`
	IsSuperuser bool      `gorm:"default:false" json:"is_superuser"`
	IsActive    bool      `gorm:"default:true" json:"is_active"`
	DateJoined  time.Time `gorm:"autoCreateTime" json:"date_joined"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime" json:"-"`
}

func (User) TableName() string {
	return "users"
}

// IsAdmin reports whether the account carries admin capability.
// Derived from is_staff OR is_superuser only, never from user_type.
func (u *User) IsAdmin() bool {
	return u.IsStaff || u.IsSuperuser
}

// ApplyUserType forces the staff/superuser flags to match the user type.
// Every write path must go through this so the mapping never drifts.
func (u *User) ApplyUserType(userType string) {
	u.UserType = userType
	if userType == UserTypeAdmin {
		u.IsStaff = true
		u.IsSuperuser = true
	} else {
		u.IsStaff = false
		u.IsSuperuser = false
	}
}

// UserResponse DTO
type UserResponse struct {
	ID          uint      `json:"id"`
	Username    string    `json:"username"`
	Email       string    `json:"email"`
	FirstName   string    `json:"first_name"`
	LastName    string    `json:"last_name"`
	UserType    string    `json:"user_type"`
	IsStaff     bool      `json:"is_staff"`
	IsSuperuser bool      `json:"is_superuser"`
	IsActive    bool      `json:"is_active"`
	DateJoined  time.Time `json:"date_joined"`
}

func (u *User) ToResponse() *UserResponse {
	return &UserResponse{
		ID:          u.ID,
		Username:    u.Username,
		Email:       u.Email,
		FirstName:   u.FirstName,
		LastName:    u.LastName,
		UserType:    u.UserType,
		IsStaff:     u.IsStaff,
		IsSuperuser: u.IsSuperuser,
		IsActive:    u.IsActive,
		DateJoined:  u.DateJoined,
	}
}

// Customer represents customers table.
// "Delete" is a soft deactivation (is_active=false) with an explicit
// reactivate operation; rows are never removed.
type Customer struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	Name       string    `gorm:"size:255;not null" json:"name"`
	Email      string    `gorm:"uniqueIndex;size:254;not null" json:"email"`
	Phone      *string   `gorm:"size:20" json:"phone"`
	Address    *string   `gorm:"type:text" json:"address"`
	PackageFee float64   `gorm:"type:decimal(10,2);default:0" json:"package_fee"`
	IsActive   bool      `gorm:"default:true" json:"is_active"`
	CreatedAt  time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt  time.Time `gorm:"autoUpdateTime" json:"updated_at"`
	CreatedBy  *uint     `gorm:"index" json:"-"`

	Creator *User `gorm:"foreignKey:CreatedBy" json:"-"`
}

func (Customer) TableName() string {
	return "customers"
}

// CustomerResponse DTO
type CustomerResponse struct {
	ID                uint      `json:"id"`
	Name              string    `json:"name"`
	Email             string    `json:"email"`
	Phone             *string   `json:"phone"`
	Address           *string   `json:"address"`
	PackageFee        float64   `json:"package_fee"`
	IsActive          bool      `json:"is_active"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
	CreatedByUsername string    `json:"created_by_username,omitempty"`
	CreatedByUserType string    `json:"created_by_user_type,omitempty"`
}

func (c *Customer) ToResponse() *CustomerResponse {
	resp := &CustomerResponse{
		ID:         c.ID,
		Name:       c.Name,
		Email:      c.Email,
		Phone:      c.Phone,
		Address:    c.Address,
		PackageFee: c.PackageFee,
		IsActive:   c.IsActive,
		CreatedAt:  c.CreatedAt,
		UpdatedAt:  c.UpdatedAt,
	}

	if c.Creator != nil {
		resp.CreatedByUsername = c.Creator.Username
		resp.CreatedByUserType = c.Creator.UserType
	}

	return resp
}

// Payment represents payments table. A payment always belongs to exactly
// one customer; deleting a payment is a hard delete.
type Payment struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	CustomerID  uint      `gorm:"not null;index" json:"customer_id"`
	Amount      float64   `gorm:"type:decimal(10,2);not null" json:"amount"`
	Description string    `gorm:"size:255" json:"description"`
	Date        time.Time `gorm:"autoCreateTime;index" json:"date"`
	CreatedBy   *uint     `gorm:"index" json:"-"`

	Customer *Customer `gorm:"foreignKey:CustomerID" json:"customer,omitempty"`
	Creator  *User     `gorm:"foreignKey:CreatedBy" json:"-"`
}

func (Payment) TableName() string {
	return "payments"
}

// PaymentResponse DTO
type PaymentResponse struct {
	ID                uint              `json:"id"`
	Customer          *CustomerResponse `json:"customer,omitempty"`
	CustomerID        uint              `json:"customer_id"`
	Amount            float64           `json:"amount"`
	Date              time.Time         `json:"date"`
	Description       string            `json:"description"`
	CreatedByUsername string            `json:"created_by_username,omitempty"`
	CreatedByUserType string            `json:"created_by_user_type,omitempty"`
}

func (p *Payment) ToResponse() *PaymentResponse {
	resp := &PaymentResponse{
		ID:          p.ID,
		CustomerID:  p.CustomerID,
		Amount:      p.Amount,
		Date:        p.Date,
		Description: p.Description,
	}

	if p.Customer != nil {
		resp.Customer = p.Customer.ToResponse()
	}
	if p.Creator != nil {
		resp.CreatedByUsername = p.Creator.Username
		resp.CreatedByUserType = p.Creator.UserType
	}

	return resp
}

// Audit actions
const (
	ActionUserCreated     = "user_created"
	ActionUserUpdated     = "user_updated"
	ActionUserDeleted     = "user_deleted"
	ActionUserLogin       = "user_login"
	ActionUserLogout      = "user_logout"
	ActionCustomerCreated = "customer_created"
	ActionCustomerUpdated = "customer_updated"
	ActionCustomerDeleted = "customer_deleted"
	ActionPaymentCreated  = "payment_created"
	ActionPaymentUpdated  = "payment_updated"
	ActionPaymentDeleted  = "payment_deleted"
)

// actionDisplays maps an action code to its human-readable form.
var actionDisplays = map[string]string{
	ActionUserCreated:     "User Created",
	ActionUserUpdated:     "User Updated",
	ActionUserDeleted:     "User Deleted",
	ActionUserLogin:       "User Login",
	ActionUserLogout:      "User Logout",
	ActionCustomerCreated: "Customer Created",
	ActionCustomerUpdated: "Customer Updated",
	ActionCustomerDeleted: "Customer Deleted",
	ActionPaymentCreated:  "Payment Created",
	ActionPaymentUpdated:  "Payment Updated",
	ActionPaymentDeleted:  "Payment Deleted",
}

// ActionDisplay returns the display name for an action code.
func ActionDisplay(action string) string {
	if display, ok := actionDisplays[action]; ok {
		return display
	}
	return action
}

// Log represents the logs table. Backend-authoritative audit trail;
// read-only through the API.
type Log struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	UserID      *uint     `gorm:"index" json:"user"`
	Action      string    `gorm:"size:20;not null;index" json:"action"`
	Description string    `gorm:"type:text" json:"description"`
	CreatedAt   time.Time `gorm:"autoCreateTime;index" json:"created_at"`

	User *User `gorm:"foreignKey:UserID" json:"-"`
}

func (Log) TableName() string {
	return "logs"
}

// LogResponse DTO
type LogResponse struct {
	ID            uint      `json:"id"`
	UserUsername  string    `json:"user_username,omitempty"`
	Action        string    `json:"action"`
	ActionDisplay string    `json:"action_display"`
	Description   string    `json:"description"`
	CreatedAt     time.Time `json:"created_at"`
}

func (l *Log) ToResponse() *LogResponse {
	resp := &LogResponse{
		ID:            l.ID,
		Action:        l.Action,
		ActionDisplay: ActionDisplay(l.Action),
		Description:   l.Description,
		CreatedAt:     l.CreatedAt,
	}

	if l.User != nil {
		resp.UserUsername = l.User.Username
	}

	return resp
}

// RefreshToken represents refresh_tokens table
type RefreshToken struct {
	ID        uint       `gorm:"primaryKey" json:"id"`
	UserID    uint       `gorm:"index;not null" json:"user_id"`
	TokenHash string     `gorm:"size:255;not null;index" json:"-"`
	ExpiresAt time.Time  `gorm:"not null" json:"expires_at"`
	CreatedAt time.Time  `gorm:"autoCreateTime" json:"created_at"`
	RevokedAt *time.Time `gorm:"index" json:"revoked_at"`
	User      User       `gorm:"foreignKey:UserID" json:"-"`
}

func (RefreshToken) TableName() string {
	return "refresh_tokens"
}

func (rt *RefreshToken) IsRevoked() bool {
	return rt.RevokedAt != nil
}

func (rt *RefreshToken) IsExpired() bool {
	return time.Now().After(rt.ExpiresAt)
}

// AutoMigrate creates tables that do not exist yet
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&User{},
		&RefreshToken{},
		&Customer{},
		&Payment{},
		&Log{},
	)
}
