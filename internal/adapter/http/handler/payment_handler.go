package handler

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/finlane/payledger/internal/adapter/http/dto"
	"github.com/finlane/payledger/internal/adapter/http/middleware"
	"github.com/finlane/payledger/internal/domain"
	"github.com/finlane/payledger/internal/usecase"
)

// PaymentService defines the ledger behavior needed by PaymentHandler.
type PaymentService interface {
	List(ctx context.Context, input usecase.ListPaymentsInput) (*usecase.PaymentPage, error)
	Get(ctx context.Context, id int64) (*domain.Payment, error)
	Create(ctx context.Context, input usecase.CreatePaymentInput) (*domain.Payment, error)
}

// StatsService defines the aggregate behavior needed by PaymentHandler.
type StatsService interface {
	Overview(ctx context.Context) (*usecase.StatsOverview, error)
}

// ExportService defines the export behavior needed by PaymentHandler.
type ExportService interface {
	ExportCSV(ctx context.Context, filter domain.PaymentFilter) ([]byte, error)
}

// PaymentHandler handles payment-related HTTP requests.
type PaymentHandler struct {
	paymentUC PaymentService
	statsUC   StatsService
	exportUC  ExportService
}

// NewPaymentHandler creates a new PaymentHandler.
func NewPaymentHandler(paymentUC PaymentService, statsUC StatsService, exportUC ExportService) *PaymentHandler {
	return &PaymentHandler{
		paymentUC: paymentUC,
		statsUC:   statsUC,
		exportUC:  exportUC,
	}
}

// List returns a filtered, paginated page of payments.
func (h *PaymentHandler) List(w http.ResponseWriter, r *http.Request) {
	filter, err := dto.PaymentFilterFromQuery(r.URL.Query())
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid filter", err.Error())
		return
	}

	page, err := h.paymentUC.List(r.Context(), usecase.ListPaymentsInput{
		Filter: filter,
		Page:   parseIntQuery(r, "page", 1),
		Limit:  parseIntQuery(r, "limit", 0),
	})
	if err != nil {
		writeError(w, mapDomainError(err), "failed to list payments", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.PageFromDomain(page))
}

// Stats returns the aggregate overview bundle.
func (h *PaymentHandler) Stats(w http.ResponseWriter, r *http.Request) {
	overview, err := h.statsUC.Overview(r.Context())
	if err != nil {
		writeError(w, mapDomainError(err), "failed to compute stats", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.StatsFromDomain(overview))
}

// Export streams the full matching set as a CSV attachment.
func (h *PaymentHandler) Export(w http.ResponseWriter, r *http.Request) {
	filter, err := dto.PaymentFilterFromQuery(r.URL.Query())
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid filter", err.Error())
		return
	}

	doc, err := h.exportUC.ExportCSV(r.Context(), filter)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to export payments", err.Error())
		return
	}

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", usecase.ExportFilename))
	w.WriteHeader(http.StatusOK)
	w.Write(doc)
}

// Get retrieves a single payment by id.
func (h *PaymentHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		// No payment can have a non-numeric id.
		writeError(w, http.StatusNotFound, "payment not found", "")
		return
	}

	payment, err := h.paymentUC.Get(r.Context(), id)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to get payment", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.PaymentFromDomain(payment))
}

// Create records a new payment owned by the authenticated caller.
func (h *PaymentHandler) Create(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUserFromContext(r.Context())
	if !ok {
		err := domain.ErrUnauthorized
		writeError(w, mapDomainError(err), err.Error(), "")
		return
	}

	var req dto.CreatePaymentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := validate.Struct(&req); err != nil {
		writeValidationError(w, err)
		return
	}

	payment, err := h.paymentUC.Create(r.Context(), req.ToUseCaseInput(user.ID))
	if err != nil {
		writeError(w, mapDomainError(err), "failed to create payment", err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, dto.PaymentFromDomain(payment))
}
