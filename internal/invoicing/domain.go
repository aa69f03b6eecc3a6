package invoicing

import (
	"time"

	"github.com/google/uuid"
)

// PaymentStatus enumerates invoice payment states as stored.
type PaymentStatus string

const (
	StatusUnpaid    PaymentStatus = "unpaid"
	StatusPartial   PaymentStatus = "partial"
	StatusPaid      PaymentStatus = "paid"
	StatusOverdue   PaymentStatus = "overdue"
	StatusCancelled PaymentStatus = "cancelled"
)

// Invoice model.
type Invoice struct {
	ID            int64         `json:"id"`
	PublicID      uuid.UUID     `json:"publicId"`
	Number        string        `json:"number"`
	CustomerName  string        `json:"customerName"`
	Total         float64       `json:"total"`
	Status        PaymentStatus `json:"status"`
	DueDate       time.Time     `json:"dueDate"`
	PaymentDate   *time.Time    `json:"paymentDate,omitempty"`
	PaymentAmount float64       `json:"paymentAmount"`
	CreatedAt     time.Time     `json:"createdAt"`
	UpdatedAt     time.Time     `json:"updatedAt"`
}

// Remaining returns the unpaid balance.
func (i Invoice) Remaining() float64 {
	return i.Total - i.PaymentAmount
}

// CreateInvoiceInput for creating invoices.
type CreateInvoiceInput struct {
	Number       string    `json:"number" validate:"required,max=64"`
	CustomerName string    `json:"customerName" validate:"required,max=200"`
	Total        float64   `json:"total" validate:"gt=0"`
	DueDate      time.Time `json:"dueDate" validate:"required"`
}

// RecordPaymentInput registers a received amount against an invoice.
type RecordPaymentInput struct {
	InvoiceID int64     `json:"-"`
	Amount    float64   `json:"amount" validate:"gt=0"`
	PaidAt    time.Time `json:"paidAt"`
}

// ListInvoicesRequest filters the invoice list.
type ListInvoicesRequest struct {
	Status PaymentStatus
	Limit  int
}
