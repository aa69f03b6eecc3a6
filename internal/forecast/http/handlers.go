package forecasthttp

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/quillbooks/quillbooks/internal/forecast"
	"github.com/quillbooks/quillbooks/internal/observability"
	"github.com/quillbooks/quillbooks/internal/platform/httpx"
)

const (
	maxHorizonDays = 365
	requestTimeout = 5 * time.Second
)

// Service exposes the forecasting operations required by the handler.
type Service interface {
	GetPrediction(ctx context.Context, filter forecast.Filter) (forecast.Prediction, error)
	GetSummary(ctx context.Context, filter forecast.Filter) (forecast.Summary, error)
}

// Handler serves the forecasting dashboard API.
type Handler struct {
	logger  *slog.Logger
	service Service
	metrics *observability.Metrics
}

// NewHandler builds a Handler instance. metrics may be nil.
func NewHandler(logger *slog.Logger, service Service, metrics *observability.Metrics) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{logger: logger, service: service, metrics: metrics}
}

func (h *Handler) handlePrediction(w http.ResponseWriter, r *http.Request) {
	filter, err := parseFilter(r)
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Invalid Filter", err.Error())
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	prediction, err := h.service.GetPrediction(ctx, filter)
	if err != nil {
		h.logger.Error("load forecast", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	h.metrics.CountForecastRun("api")
	httpx.JSON(w, http.StatusOK, prediction)
}

func (h *Handler) handleSummary(w http.ResponseWriter, r *http.Request) {
	filter, err := parseFilter(r)
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Invalid Filter", err.Error())
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	summary, err := h.service.GetSummary(ctx, filter)
	if err != nil {
		h.logger.Error("load forecast summary", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, summary)
}

// parseFilter reads the optional horizon and as_of query parameters.
// as_of pins the forecast start day, which keeps responses reproducible
// for dashboards that poll across midnight.
func parseFilter(r *http.Request) (forecast.Filter, error) {
	var filter forecast.Filter
	if raw := r.URL.Query().Get("horizon"); raw != "" {
		horizon, err := strconv.Atoi(raw)
		if err != nil {
			return forecast.Filter{}, fmt.Errorf("horizon must be an integer")
		}
		if horizon < 1 || horizon > maxHorizonDays {
			return forecast.Filter{}, fmt.Errorf("horizon must be between 1 and %d days", maxHorizonDays)
		}
		filter.HorizonDays = horizon
	}
	if raw := r.URL.Query().Get("as_of"); raw != "" {
		asOf, err := time.ParseInLocation("2006-01-02", raw, time.UTC)
		if err != nil {
			return forecast.Filter{}, fmt.Errorf("as_of must use YYYY-MM-DD")
		}
		filter.Today = asOf
	}
	return filter, nil
}
