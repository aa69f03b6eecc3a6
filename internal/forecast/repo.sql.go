package forecast

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

// Repository provides the PostgreSQL backed invoice source. It reads the
// invoicing tables directly; paid invoices carry no forward-looking cash
// and are filtered out at the query.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// ListOpenInvoices returns the snapshot of invoices still relevant to a
// forecast run, ordered by due date.
func (r *Repository) ListOpenInvoices(ctx context.Context) ([]Invoice, error) {
	rows, err := r.pool.Query(ctx, `SELECT total, status, due_date, payment_date, payment_amount
FROM invoices WHERE status <> 'paid' ORDER BY due_date, id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var invoices []Invoice
	for rows.Next() {
		var (
			total         float64
			status        string
			dueDate       time.Time
			paymentDate   *time.Time
			paymentAmount *float64
		)
		if err := rows.Scan(&total, &status, &dueDate, &paymentDate, &paymentAmount); err != nil {
			return nil, err
		}
		inv := Invoice{
			Total:       decimal.NewFromFloat(total),
			Status:      PaymentStatus(status),
			DueDate:     dueDate,
			PaymentDate: paymentDate,
		}
		if paymentAmount != nil {
			inv.PaymentAmount = decimal.NewFromFloat(*paymentAmount)
		}
		invoices = append(invoices, inv)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return invoices, nil
}
