package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"printshop/internal/domain"
	"printshop/internal/pricing"
	"printshop/internal/workflow"
)

type jobRequest struct {
	CustomerID        string   `json:"customer_id"`
	Name              string   `json:"name"`
	ProductKind       string   `json:"product_kind"`
	ReferenceID       string   `json:"reference_id"`
	CardGroup         string   `json:"card_group"`
	FlyerSize         string   `json:"flyer_size"`
	FlyerPrintMode    string   `json:"flyer_print_mode"`
	QuantityThousands int      `json:"quantity_thousands"`
	SlotOccupancy     int      `json:"slot_occupancy"`
	Halved            bool     `json:"halved"`
	Outsourced        bool     `json:"outsourced"`
	Finishes          []string `json:"finishes"`
	Discount          int64    `json:"discount"`
	Observations      string   `json:"observations"`
	ImageRef          string   `json:"image_ref"`
}

func (req jobRequest) toSpec() (domain.JobSpec, error) {
	kind, err := domain.ParseProductKind(req.ProductKind)
	if err != nil {
		return domain.JobSpec{}, err
	}

	product := domain.ProductSpec{Kind: kind}
	switch kind {
	case domain.ProductCard:
		group, err := domain.ParseCardGroup(req.CardGroup)
		if err != nil {
			return domain.JobSpec{}, err
		}
		product.ReferenceID = req.ReferenceID
		product.Group = group
	case domain.ProductFlyer:
		product.Size = req.FlyerSize
		product.PrintMode = req.FlyerPrintMode
	}

	finishes := make([]domain.FinishSelection, 0, len(req.Finishes))
	for _, id := range req.Finishes {
		finishes = append(finishes, domain.FinishSelection{FinishID: id})
	}

	return domain.JobSpec{
		CustomerID:        req.CustomerID,
		Name:              req.Name,
		Product:           product,
		QuantityThousands: req.QuantityThousands,
		SlotOccupancy:     req.SlotOccupancy,
		Halved:            req.Halved,
		Outsourced:        req.Outsourced,
		Finishes:          finishes,
		Discount:          domain.Money(req.Discount),
		Observations:      req.Observations,
		ImageRef:          req.ImageRef,
	}, nil
}

func quoteResponse(b pricing.Breakdown) map[string]any {
	return map[string]any{
		"base_cost":     b.BaseCost,
		"finishes_cost": b.FinishesCost,
		"discount":      b.Discount,
		"total":         b.Total,
	}
}

// JobsCreate validates and persists a new job. Creation enters the Received
// status, which is trigger-eligible, so the intake notification is rendered
// and recorded in the same request.
func (a *App) JobsCreate(w http.ResponseWriter, r *http.Request) {
	var req jobRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid payload")
		return
	}
	spec, err := req.toSpec()
	if err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", err.Error())
		return
	}
	if spec.CustomerID == "" {
		a.error(w, http.StatusBadRequest, "bad_request", "customer_id is required")
		return
	}

	catalog, err := a.Catalog.Snapshot(r.Context())
	if err != nil {
		a.fail(w, r, err)
		return
	}
	breakdown, err := pricing.ComputeBreakdown(spec, catalog)
	if err != nil {
		a.fail(w, r, err)
		return
	}

	spec.ID = uuid.NewString()
	spec.Status = domain.StatusReceived
	if err := a.Jobs.Create(r.Context(), &spec); err != nil {
		a.fail(w, r, err)
		return
	}

	event, err := a.notifyStatusEntry(r, &spec, catalog)
	if err != nil {
		// The job exists; a broken template must not roll intake back.
		a.Log.Warn().Err(err).Str("job_id", spec.ID).Msg("intake notification failed")
	}

	resp := map[string]any{
		"id":     spec.ID,
		"estado": spec.Status,
		"quote":  quoteResponse(breakdown),
	}
	if event != nil {
		resp["notification"] = event
	}
	a.json(w, http.StatusCreated, resp)
}

// JobsGet returns a job with its payment ledger summary.
func (a *App) JobsGet(w http.ResponseWriter, r *http.Request) {
	job, err := a.Jobs.GetByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		a.fail(w, r, err)
		return
	}
	catalog, err := a.Catalog.Snapshot(r.Context())
	if err != nil {
		a.fail(w, r, err)
		return
	}
	payments, err := a.Payments.ListByJobID(r.Context(), job.ID)
	if err != nil {
		a.fail(w, r, err)
		return
	}
	summary, err := pricing.Summarize(*job, catalog, payments)
	if err != nil {
		a.fail(w, r, err)
		return
	}
	a.json(w, http.StatusOK, map[string]any{"job": job, "ledger": summary})
}

// JobsList returns jobs, optionally filtered by estado.
func (a *App) JobsList(w http.ResponseWriter, r *http.Request) {
	var status domain.Status
	if v := r.URL.Query().Get("estado"); v != "" {
		parsed, err := domain.ParseStatus(v)
		if err != nil {
			a.error(w, http.StatusBadRequest, "bad_request", err.Error())
			return
		}
		status = parsed
	}

	limit, offset := pagination(r, 50)
	jobs, err := a.Jobs.List(r.Context(), status, limit, offset)
	if err != nil {
		a.fail(w, r, err)
		return
	}
	a.json(w, http.StatusOK, map[string]any{"items": jobs})
}

// JobsUpdate rewrites a job's specification. Edits are allowed at any
// status; totals are always recomputed from the current snapshot, even
// retroactively.
func (a *App) JobsUpdate(w http.ResponseWriter, r *http.Request) {
	var req jobRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid payload")
		return
	}
	spec, err := req.toSpec()
	if err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", err.Error())
		return
	}
	spec.ID = chi.URLParam(r, "id")

	catalog, err := a.Catalog.Snapshot(r.Context())
	if err != nil {
		a.fail(w, r, err)
		return
	}
	breakdown, err := pricing.ComputeBreakdown(spec, catalog)
	if err != nil {
		a.fail(w, r, err)
		return
	}
	if err := a.Jobs.Update(r.Context(), &spec); err != nil {
		a.fail(w, r, err)
		return
	}
	a.json(w, http.StatusOK, map[string]any{"id": spec.ID, "quote": quoteResponse(breakdown)})
}

// JobsQuote recomputes the costing breakdown for a stored job.
func (a *App) JobsQuote(w http.ResponseWriter, r *http.Request) {
	job, err := a.Jobs.GetByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		a.fail(w, r, err)
		return
	}
	catalog, err := a.Catalog.Snapshot(r.Context())
	if err != nil {
		a.fail(w, r, err)
		return
	}
	breakdown, err := pricing.ComputeBreakdown(*job, catalog)
	if err != nil {
		a.fail(w, r, err)
		return
	}
	a.json(w, http.StatusOK, quoteResponse(breakdown))
}

type statusRequest struct {
	Estado string `json:"estado"`
}

// JobsUpdateStatus validates and applies a production-status transition.
// When the target status is trigger-eligible, the customer notification is
// rendered and persisted before responding.
func (a *App) JobsUpdateStatus(w http.ResponseWriter, r *http.Request) {
	var req statusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid payload")
		return
	}
	next, err := domain.ParseStatus(req.Estado)
	if err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", err.Error())
		return
	}

	job, err := a.Jobs.GetByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		a.fail(w, r, err)
		return
	}
	if err := workflow.Validate(job.Status, next); err != nil {
		a.fail(w, r, err)
		return
	}
	if err := a.Jobs.UpdateStatus(r.Context(), job.ID, next); err != nil {
		a.fail(w, r, err)
		return
	}
	job.Status = next

	catalog, err := a.Catalog.Snapshot(r.Context())
	if err != nil {
		a.fail(w, r, err)
		return
	}
	event, err := a.notifyStatusEntry(r, job, catalog)
	if err != nil {
		a.fail(w, r, err)
		return
	}

	resp := map[string]any{"id": job.ID, "estado": job.Status}
	if event != nil {
		resp["notification"] = event
	}
	a.json(w, http.StatusOK, resp)
}

// notifyStatusEntry renders and persists the notification for the job's
// current status when that status is trigger-eligible. Returns nil when the
// status is silent.
func (a *App) notifyStatusEntry(r *http.Request, job *domain.JobSpec, catalog domain.Catalog) (*domain.NotificationEvent, error) {
	decision := workflow.NotifyOnEntry(job.Status, job.Outsourced)
	if !decision.ShouldNotify {
		return nil, nil
	}

	templates, err := a.Templates.Snapshot(r.Context())
	if err != nil {
		return nil, err
	}
	customer := domain.Customer{}
	if job.CustomerID != "" {
		if c, err := a.Customers.GetByID(r.Context(), job.CustomerID); err == nil {
			customer = *c
		}
	}
	payments, err := a.Payments.ListByJobID(r.Context(), job.ID)
	if err != nil {
		return nil, err
	}

	text, err := a.Composer.Render(decision.TemplateKey, templates, *job, customer, catalog, payments)
	if err != nil {
		return nil, err
	}

	event := &domain.NotificationEvent{
		ID:               uuid.NewString(),
		JobID:            job.ID,
		TriggeringStatus: job.Status,
		TemplateKey:      decision.TemplateKey,
		RenderedText:     text,
	}
	if err := a.Notifications.Create(r.Context(), event); err != nil {
		return nil, err
	}
	return event, nil
}

func pagination(r *http.Request, defaultLimit int) (limit, offset int) {
	limit = defaultLimit
	if v, err := strconv.Atoi(r.URL.Query().Get("limit")); err == nil && v > 0 && v <= 200 {
		limit = v
	}
	if v, err := strconv.Atoi(r.URL.Query().Get("offset")); err == nil && v > 0 {
		offset = v
	}
	return limit, offset
}
