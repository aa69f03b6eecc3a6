package jobs

import (
	"context"
	"testing"
	"time"

	"github.com/hibiken/asynq"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/quillbooks/quillbooks/internal/forecast"
	"github.com/quillbooks/quillbooks/internal/invoicing"
)

type fakeInvoiceSource struct {
	calls int
}

func (f *fakeInvoiceSource) ListOpenInvoices(ctx context.Context) ([]forecast.Invoice, error) {
	f.calls++
	return []forecast.Invoice{{
		Total:   decimal.NewFromInt(100),
		Status:  forecast.StatusUnpaid,
		DueDate: time.Now().UTC().AddDate(0, 0, 5),
	}}, nil
}

func TestForecastWarmupHandle(t *testing.T) {
	source := &fakeInvoiceSource{}
	job := NewForecastWarmupJob(forecast.NewService(source, nil), nil)

	task, err := NewForecastWarmupTask()
	require.NoError(t, err)
	require.NoError(t, job.Handle(context.Background(), task))
	require.Equal(t, 3, source.calls, "default warmup covers three horizons")
}

func TestForecastWarmupHandleExplicitHorizons(t *testing.T) {
	source := &fakeInvoiceSource{}
	job := NewForecastWarmupJob(forecast.NewService(source, nil), nil)

	task, err := NewForecastWarmupTask(45)
	require.NoError(t, err)
	require.NoError(t, job.Handle(context.Background(), task))
	require.Equal(t, 1, source.calls)
}

func TestForecastWarmupRejectsBadPayload(t *testing.T) {
	source := &fakeInvoiceSource{}
	job := NewForecastWarmupJob(forecast.NewService(source, nil), nil)

	err := job.Handle(context.Background(), asynq.NewTask(TaskForecastWarmup, []byte("{broken")))
	require.ErrorIs(t, err, asynq.SkipRetry)
	require.Zero(t, source.calls)
}

type fakeInvoiceRepo struct {
	overdueCount int64
}

func (f *fakeInvoiceRepo) CreateInvoice(ctx context.Context, inv invoicing.Invoice) (*invoicing.Invoice, error) {
	return &inv, nil
}

func (f *fakeInvoiceRepo) GetInvoice(ctx context.Context, id int64) (*invoicing.Invoice, error) {
	return nil, nil
}

func (f *fakeInvoiceRepo) ListInvoices(ctx context.Context, req invoicing.ListInvoicesRequest) ([]invoicing.Invoice, error) {
	return nil, nil
}

func (f *fakeInvoiceRepo) UpdatePayment(ctx context.Context, id int64, status invoicing.PaymentStatus, paymentAmount float64, paymentDate *time.Time) error {
	return nil
}

func (f *fakeInvoiceRepo) UpdateStatus(ctx context.Context, id int64, status invoicing.PaymentStatus) error {
	return nil
}

func (f *fakeInvoiceRepo) MarkOverdue(ctx context.Context, asOf time.Time) (int64, error) {
	return f.overdueCount, nil
}

func TestOverdueSweepHandle(t *testing.T) {
	repo := &fakeInvoiceRepo{overdueCount: 3}
	job := NewOverdueSweepJob(invoicing.NewService(repo, nil, nil), nil)

	task, err := NewOverdueSweepTask()
	require.NoError(t, err)
	require.NoError(t, job.Handle(context.Background(), task))
}

func TestOverdueSweepRejectsBadPayload(t *testing.T) {
	repo := &fakeInvoiceRepo{}
	job := NewOverdueSweepJob(invoicing.NewService(repo, nil, nil), nil)

	err := job.Handle(context.Background(), asynq.NewTask(TaskInvoiceOverdueSweep, []byte("{broken")))
	require.ErrorIs(t, err, asynq.SkipRetry)
}
