package jobs

import (
	"encoding/json"

	"github.com/hibiken/asynq"
)

const (
	// QueueDefault is the default queue name for background jobs.
	QueueDefault = "default"
	// TaskForecastWarmup pre-populates forecast caches.
	TaskForecastWarmup = "forecast:warmup"
	// TaskInvoiceOverdueSweep flips unpaid invoices past due to overdue.
	TaskInvoiceOverdueSweep = "invoices:overdue_sweep"
)

// ForecastWarmupPayload selects the horizons to warm.
type ForecastWarmupPayload struct {
	Horizons []int `json:"horizons"`
}

// NewForecastWarmupTask constructs an Asynq task for cache warmup.
func NewForecastWarmupTask(horizons ...int) (*asynq.Task, error) {
	data, err := json.Marshal(ForecastWarmupPayload{Horizons: horizons})
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskForecastWarmup, data), nil
}

// OverdueSweepPayload is currently empty; the sweep always runs against
// the current day.
type OverdueSweepPayload struct{}

// NewOverdueSweepTask constructs an Asynq task for the overdue sweep.
func NewOverdueSweepTask() (*asynq.Task, error) {
	data, err := json.Marshal(OverdueSweepPayload{})
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskInvoiceOverdueSweep, data), nil
}
