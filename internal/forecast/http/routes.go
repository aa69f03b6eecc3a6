package forecasthttp

import "github.com/go-chi/chi/v5"

// MountRoutes registers the forecast endpoints.
func (h *Handler) MountRoutes(r chi.Router) {
	if h == nil {
		return
	}
	r.Get("/forecast", h.handlePrediction)
	r.Get("/forecast/summary", h.handleSummary)
}
