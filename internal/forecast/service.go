package forecast

import (
	"context"
	"fmt"
	"time"
)

// InvoiceSource supplies the open-invoice snapshot for one forecast run.
type InvoiceSource interface {
	ListOpenInvoices(ctx context.Context) ([]Invoice, error)
}

// Filter narrows a forecast run. Zero values fall back to the default
// horizon and the current UTC day.
type Filter struct {
	HorizonDays int
	Today       time.Time
}

// Service coordinates invoice loading, the projection run, and the
// cache layer.
type Service struct {
	source InvoiceSource
	cache  *Cache
	clock  func() time.Time
}

// NewService wires an InvoiceSource with a Cache helper.
func NewService(source InvoiceSource, cache *Cache) *Service {
	return &Service{
		source: source,
		cache:  cache,
		clock: func() time.Time {
			return time.Now().UTC()
		},
	}
}

// GetPrediction returns the cash flow projection for the filter, serving
// from cache when a result for the same day, horizon, and cache version
// exists.
func (s *Service) GetPrediction(ctx context.Context, filter Filter) (Prediction, error) {
	if s.source == nil {
		return Prediction{}, fmt.Errorf("forecast: invoice source not configured")
	}
	horizon := filter.HorizonDays
	if horizon <= 0 {
		horizon = DefaultHorizonDays
	}
	today := filter.Today
	if today.IsZero() {
		today = s.clock()
	}
	today = dateOnly(today)

	loader := func(ctx context.Context) (interface{}, error) {
		invoices, err := s.source.ListOpenInvoices(ctx)
		if err != nil {
			return nil, err
		}
		return Forecast(invoices, today, horizon), nil
	}

	if s.cache == nil {
		value, err := loader(ctx)
		if err != nil {
			return Prediction{}, err
		}
		return value.(Prediction), nil
	}

	key, err := s.cache.BuildKey(ctx, keyPrediction(today, horizon))
	if err != nil {
		return Prediction{}, err
	}
	var prediction Prediction
	if err := s.cache.FetchJSON(ctx, key, &prediction, loader); err != nil {
		return Prediction{}, err
	}
	return prediction, nil
}

// GetSummary returns only the headline metrics for the filter.
func (s *Service) GetSummary(ctx context.Context, filter Filter) (Summary, error) {
	prediction, err := s.GetPrediction(ctx, filter)
	if err != nil {
		return Summary{}, err
	}
	return prediction.Summary, nil
}

// Invalidate bumps the cache version after invoice mutations.
func (s *Service) Invalidate(ctx context.Context) error {
	if s.cache == nil {
		return nil
	}
	return s.cache.Bump(ctx)
}
