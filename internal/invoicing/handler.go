package invoicing

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/quillbooks/quillbooks/internal/platform/httpx"
)

// Handler manages invoicing endpoints.
type Handler struct {
	logger  *slog.Logger
	service *Service
}

// NewHandler builds a Handler instance.
func NewHandler(logger *slog.Logger, service *Service) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{logger: logger, service: service}
}

// MountRoutes registers invoicing routes.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/invoices", h.listInvoices)
	r.Post("/invoices", h.createInvoice)
	r.Get("/invoices/{id}", h.getInvoice)
	r.Post("/invoices/{id}/payments", h.recordPayment)
	r.Post("/invoices/{id}/cancel", h.cancelInvoice)
}

func (h *Handler) listInvoices(w http.ResponseWriter, r *http.Request) {
	req := ListInvoicesRequest{
		Status: PaymentStatus(r.URL.Query().Get("status")),
	}
	if raw := r.URL.Query().Get("limit"); raw != "" {
		req.Limit, _ = strconv.Atoi(raw)
	}
	invoices, err := h.service.ListInvoices(r.Context(), req)
	if err != nil {
		h.logger.Error("list invoices", slog.Any("error", err))
		h.respondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"invoices": invoices})
}

func (h *Handler) createInvoice(w http.ResponseWriter, r *http.Request) {
	var input CreateInvoiceInput
	if err := httpx.DecodeJSON(r, &input); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Invalid Body", "request body must be valid JSON")
		return
	}
	inv, err := h.service.CreateInvoice(r.Context(), input)
	if err != nil {
		h.logger.Error("create invoice", slog.Any("error", err))
		h.respondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, inv)
}

func (h *Handler) getInvoice(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Invalid ID", "invoice id must be an integer")
		return
	}
	inv, err := h.service.GetInvoice(r.Context(), id)
	if err != nil {
		h.respondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, inv)
}

func (h *Handler) recordPayment(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Invalid ID", "invoice id must be an integer")
		return
	}
	var input RecordPaymentInput
	if err := httpx.DecodeJSON(r, &input); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Invalid Body", "request body must be valid JSON")
		return
	}
	input.InvoiceID = id
	inv, err := h.service.RecordPayment(r.Context(), input)
	if err != nil {
		h.logger.Error("record payment", slog.Any("error", err), slog.Int64("invoice_id", id))
		h.respondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, inv)
}

func (h *Handler) cancelInvoice(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Invalid ID", "invoice id must be an integer")
		return
	}
	if err := h.service.CancelInvoice(r.Context(), id); err != nil {
		h.logger.Error("cancel invoice", slog.Any("error", err), slog.Int64("invoice_id", id))
		h.respondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]string{"status": string(StatusCancelled)})
}

// respondError maps domain sentinels onto problem responses.
func (h *Handler) respondError(w http.ResponseWriter, err error) {
	var verrs validator.ValidationErrors
	switch {
	case errors.As(err, &verrs):
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", err.Error())
	case errors.Is(err, ErrInvoiceNotFound):
		httpx.Problem(w, http.StatusNotFound, "Not Found", err.Error())
	case errors.Is(err, ErrDuplicateNumber):
		httpx.Problem(w, http.StatusConflict, "Duplicate", err.Error())
	case errors.Is(err, ErrInvalidStatus), errors.Is(err, ErrOverpayment), errors.Is(err, ErrInvalidDueDate):
		httpx.Problem(w, http.StatusUnprocessableEntity, "Invalid Operation", err.Error())
	default:
		httpx.RespondError(w, err)
	}
}

func parseID(r *http.Request) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
}
