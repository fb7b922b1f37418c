package client

import "time"

// Customer is the client's view of a customer record
type Customer struct {
	ID                uint    `json:"id"`
	Name              string  `json:"name"`
	Email             string  `json:"email"`
	Phone             *string `json:"phone"`
	Address           *string `json:"address"`
	PackageFee        float64 `json:"package_fee"`
	IsActive          bool    `json:"is_active"`
	CreatedByUsername string  `json:"created_by_username"`
}

// Payment is the client's view of a payment record
type Payment struct {
	ID                uint      `json:"id"`
	Customer          *Customer `json:"customer"`
	CustomerID        uint      `json:"customer_id"`
	Amount            float64   `json:"amount"`
	Date              time.Time `json:"date"`
	Description       string    `json:"description"`
	CreatedByUsername string    `json:"created_by_username"`
}

// LogEntry is the client's view of an audit log entry
type LogEntry struct {
	ID            uint      `json:"id"`
	UserUsername  string    `json:"user_username"`
	Action        string    `json:"action"`
	ActionDisplay string    `json:"action_display"`
	Description   string    `json:"description"`
	CreatedAt     time.Time `json:"created_at"`
}

// Stats is the payment statistics chart series
type Stats struct {
	Labels []string  `json:"labels"`
	Totals []float64 `json:"totals"`
}
