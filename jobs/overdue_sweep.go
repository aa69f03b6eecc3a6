package jobs

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/hibiken/asynq"

	"github.com/quillbooks/quillbooks/internal/invoicing"
)

// OverdueSweepJob transitions unpaid invoices past their due date to
// overdue, which moves them into the stricter probability buckets on the
// next forecast run.
type OverdueSweepJob struct {
	Invoicing *invoicing.Service
	Logger    *slog.Logger
	clock     func() time.Time
}

// NewOverdueSweepJob wires dependencies for the sweep handler.
func NewOverdueSweepJob(invoicingSvc *invoicing.Service, logger *slog.Logger) *OverdueSweepJob {
	return &OverdueSweepJob{
		Invoicing: invoicingSvc,
		Logger:    logger,
		clock: func() time.Time {
			return time.Now().UTC()
		},
	}
}

// Handle processes overdue sweep tasks.
func (j *OverdueSweepJob) Handle(ctx context.Context, t *asynq.Task) error {
	if j == nil || j.Invoicing == nil {
		return errors.New("overdue sweep: handler not configured")
	}
	var payload OverdueSweepPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return asynq.SkipRetry
	}

	logger := j.logger()
	changed, err := j.Invoicing.MarkOverdue(ctx, j.now())
	if err != nil {
		logger.Error("overdue sweep", slog.Any("error", err))
		return err
	}
	logger.Info("completed overdue sweep", slog.Int64("invoices", changed))
	return nil
}

func (j *OverdueSweepJob) logger() *slog.Logger {
	if j.Logger != nil {
		return j.Logger.With(slog.String("job", TaskInvoiceOverdueSweep))
	}
	return slog.Default().With(slog.String("job", TaskInvoiceOverdueSweep))
}

func (j *OverdueSweepJob) now() time.Time {
	if j.clock != nil {
		return j.clock()
	}
	return time.Now().UTC()
}
