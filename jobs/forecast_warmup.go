package jobs

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/hibiken/asynq"
	"golang.org/x/sync/errgroup"

	"github.com/quillbooks/quillbooks/internal/forecast"
)

var defaultWarmupHorizons = []int{30, 60, 90}

// ForecastWarmupJob pre-populates the forecast cache so the first
// dashboard hit of the day is served warm.
type ForecastWarmupJob struct {
	Forecast *forecast.Service
	Logger   *slog.Logger
	clock    func() time.Time
}

// NewForecastWarmupJob wires dependencies for the warmup handler.
func NewForecastWarmupJob(forecastSvc *forecast.Service, logger *slog.Logger) *ForecastWarmupJob {
	return &ForecastWarmupJob{
		Forecast: forecastSvc,
		Logger:   logger,
		clock: func() time.Time {
			return time.Now().UTC()
		},
	}
}

// Handle processes forecast warmup tasks.
func (j *ForecastWarmupJob) Handle(ctx context.Context, t *asynq.Task) error {
	if j == nil || j.Forecast == nil {
		return errors.New("forecast warmup: handler not configured")
	}
	var payload ForecastWarmupPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return asynq.SkipRetry
	}
	horizons := payload.Horizons
	if len(horizons) == 0 {
		horizons = defaultWarmupHorizons
	}

	logger := j.logger()
	now := j.now()
	logger.Info("starting forecast warmup", slog.Int("horizons", len(horizons)))

	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(3)
	for _, horizon := range horizons {
		group.Go(func() error {
			runCtx, cancel := context.WithTimeout(groupCtx, 20*time.Second)
			defer cancel()
			_, err := j.Forecast.GetPrediction(runCtx, forecast.Filter{HorizonDays: horizon, Today: now})
			return err
		})
	}
	if err := group.Wait(); err != nil {
		logger.Error("forecast warmup", slog.Any("error", err))
		return err
	}

	logger.Info("completed forecast warmup", slog.Duration("duration", time.Since(now)))
	return nil
}

func (j *ForecastWarmupJob) logger() *slog.Logger {
	if j.Logger != nil {
		return j.Logger.With(slog.String("job", TaskForecastWarmup))
	}
	return slog.Default().With(slog.String("job", TaskForecastWarmup))
}

func (j *ForecastWarmupJob) now() time.Time {
	if j.clock != nil {
		return j.clock()
	}
	return time.Now().UTC()
}
