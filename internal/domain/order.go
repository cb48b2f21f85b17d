package domain

import "time"

type OrderStatus string

const (
	OrderStatusCreated   OrderStatus = "CREATED"
	OrderStatusConfirmed OrderStatus = "CONFIRMED"
	OrderStatusCancelled OrderStatus = "CANCELLED"
)

type PaymentStatus string

const (
	PaymentStatusPending   PaymentStatus = "PENDING"
	PaymentStatusCompleted PaymentStatus = "COMPLETED"
	PaymentStatusFailed    PaymentStatus = "FAILED"
)

type Order struct {
	TxnRef        string        `json:"txn_ref" validate:"required"`
	CustomerID    string        `json:"customer_id" validate:"required"`
	CustomerEmail string        `json:"customer_email" validate:"omitempty,email"`
	Items         []OrderItem   `json:"items" validate:"required,dive,required"` // Dive into the slice and validate each item
	TotalAmount   int64         `json:"total_amount" validate:"required,min=0"`
	Currency      string        `json:"currency" validate:"required,len=3"` // Assuming currency is a 3-letter code
	Status        OrderStatus   `json:"status"`
	PaymentStatus PaymentStatus `json:"payment_status"`
	// Gateway transaction number recorded when the payment notification lands.
	PaymentTransactionID string    `json:"payment_transaction_id,omitempty"`
	BankCode             string    `json:"bank_code,omitempty"`
	CreatedAt            time.Time `json:"created_at"`
	UpdatedAt            time.Time `json:"updated_at"`
}

type OrderItem struct {
	BookID   int    `json:"book_id" validate:"required"`
	Title    string `json:"title" validate:"required"`
	Author   string `json:"author"`
	ISBN     string `json:"isbn"`
	Price    int64  `json:"price" validate:"required,min=0"`
	Quantity int    `json:"quantity" validate:"required,min=1"`
}
