package invoicing

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// Sentinel errors for the invoicing domain.
var (
	ErrInvoiceNotFound = errors.New("invoicing: invoice not found")
	ErrInvalidStatus   = errors.New("invoicing: operation not allowed in current status")
	ErrInvalidDueDate  = errors.New("invoicing: due date required")
	ErrOverpayment     = errors.New("invoicing: payment exceeds remaining balance")
)

// RepositoryPort defines data access methods for invoicing.
type RepositoryPort interface {
	CreateInvoice(ctx context.Context, inv Invoice) (*Invoice, error)
	GetInvoice(ctx context.Context, id int64) (*Invoice, error)
	ListInvoices(ctx context.Context, req ListInvoicesRequest) ([]Invoice, error)
	UpdatePayment(ctx context.Context, id int64, status PaymentStatus, paymentAmount float64, paymentDate *time.Time) error
	UpdateStatus(ctx context.Context, id int64, status PaymentStatus) error
	MarkOverdue(ctx context.Context, asOf time.Time) (int64, error)
}

// ForecastInvalidator lets the service drop cached forecasts after
// invoice mutations.
type ForecastInvalidator interface {
	Invalidate(ctx context.Context) error
}

// Service handles invoicing business logic.
type Service struct {
	repo     RepositoryPort
	forecast ForecastInvalidator
	logger   *slog.Logger
	validate *validator.Validate
}

// NewService builds a Service instance. forecast may be nil when no
// cache invalidation is needed (tests, CLI tooling).
func NewService(repo RepositoryPort, forecast ForecastInvalidator, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		repo:     repo,
		forecast: forecast,
		logger:   logger,
		validate: validator.New(),
	}
}

// CreateInvoice validates and persists a new unpaid invoice.
func (s *Service) CreateInvoice(ctx context.Context, input CreateInvoiceInput) (*Invoice, error) {
	if err := s.validate.Struct(input); err != nil {
		return nil, fmt.Errorf("invoicing: invalid invoice: %w", err)
	}
	if input.DueDate.IsZero() {
		return nil, ErrInvalidDueDate
	}
	now := time.Now().UTC()
	inv, err := s.repo.CreateInvoice(ctx, Invoice{
		PublicID:     uuid.New(),
		Number:       input.Number,
		CustomerName: input.CustomerName,
		Total:        input.Total,
		Status:       StatusUnpaid,
		DueDate:      input.DueDate,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		return nil, err
	}
	s.invalidateForecast(ctx)
	return inv, nil
}

// GetInvoice returns a single invoice.
func (s *Service) GetInvoice(ctx context.Context, id int64) (*Invoice, error) {
	inv, err := s.repo.GetInvoice(ctx, id)
	if err != nil {
		return nil, err
	}
	if inv == nil {
		return nil, ErrInvoiceNotFound
	}
	return inv, nil
}

// ListInvoices returns invoices matching the filter.
func (s *Service) ListInvoices(ctx context.Context, req ListInvoicesRequest) ([]Invoice, error) {
	return s.repo.ListInvoices(ctx, req)
}

// RecordPayment registers a received amount. Full settlement flips the
// invoice to paid; anything less leaves it partial.
func (s *Service) RecordPayment(ctx context.Context, input RecordPaymentInput) (*Invoice, error) {
	if err := s.validate.Struct(input); err != nil {
		return nil, fmt.Errorf("invoicing: invalid payment: %w", err)
	}
	inv, err := s.GetInvoice(ctx, input.InvoiceID)
	if err != nil {
		return nil, err
	}
	switch inv.Status {
	case StatusUnpaid, StatusPartial, StatusOverdue:
	default:
		return nil, ErrInvalidStatus
	}

	received := inv.PaymentAmount + input.Amount
	if received > inv.Total {
		return nil, ErrOverpayment
	}
	paidAt := input.PaidAt
	if paidAt.IsZero() {
		paidAt = time.Now().UTC()
	}

	status := StatusPartial
	var paymentDate *time.Time
	if received == inv.Total {
		status = StatusPaid
		paymentDate = &paidAt
	}
	if err := s.repo.UpdatePayment(ctx, inv.ID, status, received, paymentDate); err != nil {
		return nil, err
	}
	inv.Status = status
	inv.PaymentAmount = received
	inv.PaymentDate = paymentDate
	s.invalidateForecast(ctx)
	return inv, nil
}

// CancelInvoice marks an unpaid, partial, or overdue invoice cancelled.
func (s *Service) CancelInvoice(ctx context.Context, id int64) error {
	inv, err := s.GetInvoice(ctx, id)
	if err != nil {
		return err
	}
	switch inv.Status {
	case StatusUnpaid, StatusPartial, StatusOverdue:
	default:
		return ErrInvalidStatus
	}
	if err := s.repo.UpdateStatus(ctx, id, StatusCancelled); err != nil {
		return err
	}
	s.invalidateForecast(ctx)
	return nil
}

// MarkOverdue flips unpaid invoices past their due date to overdue and
// returns how many changed. Run nightly by the worker.
func (s *Service) MarkOverdue(ctx context.Context, asOf time.Time) (int64, error) {
	if asOf.IsZero() {
		asOf = time.Now().UTC()
	}
	changed, err := s.repo.MarkOverdue(ctx, asOf)
	if err != nil {
		return 0, err
	}
	if changed > 0 {
		s.invalidateForecast(ctx)
	}
	return changed, nil
}

func (s *Service) invalidateForecast(ctx context.Context) {
	if s.forecast == nil {
		return
	}
	if err := s.forecast.Invalidate(ctx); err != nil {
		s.logger.Warn("invalidate forecast cache", slog.Any("error", err))
	}
}
