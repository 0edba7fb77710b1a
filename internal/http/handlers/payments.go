package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"printshop/internal/domain"
	"printshop/internal/pricing"
)

type paymentRequest struct {
	Amount int64  `json:"amount"`
	Method string `json:"method"`
	Note   string `json:"note"`
}

// PaymentsCreate records a payment against a job and returns the refreshed
// ledger summary.
func (a *App) PaymentsCreate(w http.ResponseWriter, r *http.Request) {
	var req paymentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid payload")
		return
	}
	if req.Amount <= 0 {
		a.error(w, http.StatusBadRequest, "bad_request", "amount must be positive")
		return
	}
	method, err := domain.ParsePaymentMethod(req.Method)
	if err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", err.Error())
		return
	}

	job, err := a.Jobs.GetByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		a.fail(w, r, err)
		return
	}

	payment := &domain.Payment{
		ID:     uuid.NewString(),
		JobID:  job.ID,
		Amount: domain.Money(req.Amount),
		Method: method,
		Note:   req.Note,
	}
	if err := a.Payments.Create(r.Context(), payment); err != nil {
		a.fail(w, r, err)
		return
	}

	summary, err := a.ledgerFor(r, job)
	if err != nil {
		a.fail(w, r, err)
		return
	}
	a.json(w, http.StatusCreated, map[string]any{"id": payment.ID, "ledger": summary})
}

// PaymentsList returns a job's payments with the ledger summary.
func (a *App) PaymentsList(w http.ResponseWriter, r *http.Request) {
	job, err := a.Jobs.GetByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		a.fail(w, r, err)
		return
	}
	payments, err := a.Payments.ListByJobID(r.Context(), job.ID)
	if err != nil {
		a.fail(w, r, err)
		return
	}
	catalog, err := a.Catalog.Snapshot(r.Context())
	if err != nil {
		a.fail(w, r, err)
		return
	}
	summary, err := pricing.Summarize(*job, catalog, payments)
	if err != nil {
		a.fail(w, r, err)
		return
	}
	a.json(w, http.StatusOK, map[string]any{"items": payments, "ledger": summary})
}

// PaymentsDelete removes a payment record whole.
func (a *App) PaymentsDelete(w http.ResponseWriter, r *http.Request) {
	if err := a.Payments.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		a.fail(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (a *App) ledgerFor(r *http.Request, job *domain.JobSpec) (pricing.LedgerSummary, error) {
	catalog, err := a.Catalog.Snapshot(r.Context())
	if err != nil {
		return pricing.LedgerSummary{}, err
	}
	payments, err := a.Payments.ListByJobID(r.Context(), job.ID)
	if err != nil {
		return pricing.LedgerSummary{}, err
	}
	return pricing.Summarize(*job, catalog, payments)
}
