package invoicing

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ErrDuplicateNumber indicates an invoice number collision.
var ErrDuplicateNumber = errors.New("invoicing: invoice number already exists")

const invoiceColumns = `id, public_id, number, customer_name, total, status, due_date, payment_date, payment_amount, created_at, updated_at`

// Repository provides PostgreSQL backed persistence.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// CreateInvoice inserts a new invoice.
func (r *Repository) CreateInvoice(ctx context.Context, inv Invoice) (*Invoice, error) {
	err := r.pool.QueryRow(ctx, `INSERT INTO invoices (public_id, number, customer_name, total, status, due_date, payment_amount, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, 0, $7, $8) RETURNING id`,
		inv.PublicID, inv.Number, inv.CustomerName, inv.Total, inv.Status, inv.DueDate, inv.CreatedAt, inv.UpdatedAt).Scan(&inv.ID)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, ErrDuplicateNumber
		}
		return nil, err
	}
	return &inv, nil
}

// GetInvoice fetches one invoice by ID. Returns nil when absent.
func (r *Repository) GetInvoice(ctx context.Context, id int64) (*Invoice, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+invoiceColumns+` FROM invoices WHERE id = $1`, id)
	inv, err := scanInvoice(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return inv, nil
}

// ListInvoices returns invoices matching the filter, newest first.
func (r *Repository) ListInvoices(ctx context.Context, req ListInvoicesRequest) ([]Invoice, error) {
	limit := req.Limit
	if limit <= 0 || limit > 1000 {
		limit = 100
	}
	query := `SELECT ` + invoiceColumns + ` FROM invoices`
	args := []interface{}{}
	if req.Status != "" {
		query += ` WHERE status = $1`
		args = append(args, req.Status)
	}
	query += ` ORDER BY id DESC LIMIT ` + strconv.Itoa(limit)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var invoices []Invoice
	for rows.Next() {
		inv, err := scanInvoice(rows)
		if err != nil {
			return nil, err
		}
		invoices = append(invoices, *inv)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return invoices, nil
}

// UpdatePayment stores the received amount and resulting status.
func (r *Repository) UpdatePayment(ctx context.Context, id int64, status PaymentStatus, paymentAmount float64, paymentDate *time.Time) error {
	tag, err := r.pool.Exec(ctx, `UPDATE invoices SET status = $2, payment_amount = $3, payment_date = $4, updated_at = now() WHERE id = $1`,
		id, status, paymentAmount, paymentDate)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrInvoiceNotFound
	}
	return nil
}

// UpdateStatus transitions the invoice status.
func (r *Repository) UpdateStatus(ctx context.Context, id int64, status PaymentStatus) error {
	tag, err := r.pool.Exec(ctx, `UPDATE invoices SET status = $2, updated_at = now() WHERE id = $1`, id, status)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrInvoiceNotFound
	}
	return nil
}

// MarkOverdue flips unpaid invoices past due to overdue.
func (r *Repository) MarkOverdue(ctx context.Context, asOf time.Time) (int64, error) {
	tag, err := r.pool.Exec(ctx, `UPDATE invoices SET status = 'overdue', updated_at = now() WHERE status = 'unpaid' AND due_date < $1`, asOf)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

func scanInvoice(row pgx.Row) (*Invoice, error) {
	var inv Invoice
	if err := row.Scan(&inv.ID, &inv.PublicID, &inv.Number, &inv.CustomerName, &inv.Total, &inv.Status,
		&inv.DueDate, &inv.PaymentDate, &inv.PaymentAmount, &inv.CreatedAt, &inv.UpdatedAt); err != nil {
		return nil, err
	}
	return &inv, nil
}
