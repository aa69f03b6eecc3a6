package invoicing

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

type memoryRepo struct {
	nextID   int64
	invoices map[int64]*Invoice
}

func newMemoryRepo() *memoryRepo {
	return &memoryRepo{nextID: 1, invoices: make(map[int64]*Invoice)}
}

func (r *memoryRepo) CreateInvoice(ctx context.Context, inv Invoice) (*Invoice, error) {
	inv.ID = r.nextID
	r.nextID++
	r.invoices[inv.ID] = &inv
	stored := inv
	return &stored, nil
}

func (r *memoryRepo) GetInvoice(ctx context.Context, id int64) (*Invoice, error) {
	inv, ok := r.invoices[id]
	if !ok {
		return nil, nil
	}
	out := *inv
	return &out, nil
}

func (r *memoryRepo) ListInvoices(ctx context.Context, req ListInvoicesRequest) ([]Invoice, error) {
	out := make([]Invoice, 0, len(r.invoices))
	for _, inv := range r.invoices {
		if req.Status != "" && inv.Status != req.Status {
			continue
		}
		out = append(out, *inv)
	}
	return out, nil
}

func (r *memoryRepo) UpdatePayment(ctx context.Context, id int64, status PaymentStatus, paymentAmount float64, paymentDate *time.Time) error {
	inv, ok := r.invoices[id]
	if !ok {
		return ErrInvoiceNotFound
	}
	inv.Status = status
	inv.PaymentAmount = paymentAmount
	inv.PaymentDate = paymentDate
	return nil
}

func (r *memoryRepo) UpdateStatus(ctx context.Context, id int64, status PaymentStatus) error {
	inv, ok := r.invoices[id]
	if !ok {
		return ErrInvoiceNotFound
	}
	inv.Status = status
	return nil
}

func (r *memoryRepo) MarkOverdue(ctx context.Context, asOf time.Time) (int64, error) {
	var changed int64
	for _, inv := range r.invoices {
		if inv.Status == StatusUnpaid && inv.DueDate.Before(asOf) {
			inv.Status = StatusOverdue
			changed++
		}
	}
	return changed, nil
}

type countingInvalidator struct {
	calls int
}

func (c *countingInvalidator) Invalidate(ctx context.Context) error {
	c.calls++
	return nil
}

func newTestService(t *testing.T) (*Service, *memoryRepo, *countingInvalidator) {
	t.Helper()
	repo := newMemoryRepo()
	inv := &countingInvalidator{}
	return NewService(repo, inv, nil), repo, inv
}

func validInput() CreateInvoiceInput {
	return CreateInvoiceInput{
		Number:       "INV-2026-001",
		CustomerName: "Brightside Media",
		Total:        1000,
		DueDate:      time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC),
	}
}

func TestCreateInvoice(t *testing.T) {
	svc, _, invalidator := newTestService(t)

	inv, err := svc.CreateInvoice(context.Background(), validInput())
	require.NoError(t, err)
	require.Equal(t, StatusUnpaid, inv.Status)
	require.NotZero(t, inv.ID)
	require.NotEqual(t, "00000000-0000-0000-0000-000000000000", inv.PublicID.String())
	require.Equal(t, 1, invalidator.calls, "new invoices must drop cached forecasts")
}

func TestCreateInvoiceValidation(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	for name, mutate := range map[string]func(*CreateInvoiceInput){
		"missing number":   func(in *CreateInvoiceInput) { in.Number = "" },
		"missing customer": func(in *CreateInvoiceInput) { in.CustomerName = "" },
		"zero total":       func(in *CreateInvoiceInput) { in.Total = 0 },
		"negative total":   func(in *CreateInvoiceInput) { in.Total = -5 },
	} {
		input := validInput()
		mutate(&input)
		_, err := svc.CreateInvoice(ctx, input)
		require.Error(t, err, name)
	}

	input := validInput()
	input.DueDate = time.Time{}
	_, err := svc.CreateInvoice(ctx, input)
	require.Error(t, err)
}

func TestRecordPartialThenFullPayment(t *testing.T) {
	svc, _, invalidator := newTestService(t)
	ctx := context.Background()
	inv, err := svc.CreateInvoice(ctx, validInput())
	require.NoError(t, err)

	paidAt := time.Date(2026, 3, 20, 0, 0, 0, 0, time.UTC)
	inv, err = svc.RecordPayment(ctx, RecordPaymentInput{InvoiceID: inv.ID, Amount: 400, PaidAt: paidAt})
	require.NoError(t, err)
	require.Equal(t, StatusPartial, inv.Status)
	require.Equal(t, float64(400), inv.PaymentAmount)
	require.Nil(t, inv.PaymentDate, "partial payments do not settle the invoice")

	inv, err = svc.RecordPayment(ctx, RecordPaymentInput{InvoiceID: inv.ID, Amount: 600, PaidAt: paidAt})
	require.NoError(t, err)
	require.Equal(t, StatusPaid, inv.Status)
	require.Equal(t, float64(1000), inv.PaymentAmount)
	require.NotNil(t, inv.PaymentDate)
	require.Equal(t, paidAt, *inv.PaymentDate)
	require.Equal(t, 3, invalidator.calls)
}

func TestRecordPaymentOverpayment(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()
	inv, err := svc.CreateInvoice(ctx, validInput())
	require.NoError(t, err)

	_, err = svc.RecordPayment(ctx, RecordPaymentInput{InvoiceID: inv.ID, Amount: 1001})
	require.ErrorIs(t, err, ErrOverpayment)

	_, err = svc.RecordPayment(ctx, RecordPaymentInput{InvoiceID: inv.ID, Amount: 600})
	require.NoError(t, err)
	_, err = svc.RecordPayment(ctx, RecordPaymentInput{InvoiceID: inv.ID, Amount: 500})
	require.ErrorIs(t, err, ErrOverpayment)
}

func TestRecordPaymentInvalidStates(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.RecordPayment(ctx, RecordPaymentInput{InvoiceID: 404, Amount: 100})
	require.ErrorIs(t, err, ErrInvoiceNotFound)

	inv, err := svc.CreateInvoice(ctx, validInput())
	require.NoError(t, err)
	_, err = svc.RecordPayment(ctx, RecordPaymentInput{InvoiceID: inv.ID, Amount: 1000})
	require.NoError(t, err)

	_, err = svc.RecordPayment(ctx, RecordPaymentInput{InvoiceID: inv.ID, Amount: 1})
	require.ErrorIs(t, err, ErrInvalidStatus)

	_, err = svc.RecordPayment(ctx, RecordPaymentInput{InvoiceID: inv.ID, Amount: -1})
	require.Error(t, err)
}

func TestCancelInvoice(t *testing.T) {
	svc, repo, _ := newTestService(t)
	ctx := context.Background()
	inv, err := svc.CreateInvoice(ctx, validInput())
	require.NoError(t, err)

	require.NoError(t, svc.CancelInvoice(ctx, inv.ID))
	stored, err := repo.GetInvoice(ctx, inv.ID)
	require.NoError(t, err)
	require.Equal(t, StatusCancelled, stored.Status)

	require.ErrorIs(t, svc.CancelInvoice(ctx, inv.ID), ErrInvalidStatus)
	require.ErrorIs(t, svc.CancelInvoice(ctx, 404), ErrInvoiceNotFound)
}

func TestMarkOverdue(t *testing.T) {
	svc, repo, invalidator := newTestService(t)
	ctx := context.Background()

	past := validInput()
	past.Number = "INV-2026-PAST"
	past.DueDate = time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)
	overdue, err := svc.CreateInvoice(ctx, past)
	require.NoError(t, err)

	future, err := svc.CreateInvoice(ctx, validInput())
	require.NoError(t, err)

	invalidator.calls = 0
	changed, err := svc.MarkOverdue(ctx, time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	require.Equal(t, int64(1), changed)
	require.Equal(t, 1, invalidator.calls)

	stored, err := repo.GetInvoice(ctx, overdue.ID)
	require.NoError(t, err)
	require.Equal(t, StatusOverdue, stored.Status)
	stored, err = repo.GetInvoice(ctx, future.ID)
	require.NoError(t, err)
	require.Equal(t, StatusUnpaid, stored.Status)

	changed, err = svc.MarkOverdue(ctx, time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	require.Zero(t, changed)
	require.Equal(t, 1, invalidator.calls, "no changes, no invalidation")
}
