package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"printshop/internal/batch"
	"printshop/internal/domain"
)

type cupoSelectionRequest struct {
	JobIDs []string `json:"job_ids"`
}

// summaries loads the slim batch view of each selected job.
func (a *App) summaries(r *http.Request, jobIDs []string) ([]domain.JobItemSummary, error) {
	items := make([]domain.JobItemSummary, 0, len(jobIDs))
	for _, id := range jobIDs {
		job, err := a.Jobs.GetByID(r.Context(), id)
		if err != nil {
			return nil, fmt.Errorf("job %s: %w", id, err)
		}
		items = append(items, domain.JobItemSummary{
			ID:                job.ID,
			Kind:              job.Product.Kind,
			Group:             job.Product.Group,
			SlotOccupancy:     job.SlotOccupancy,
			QuantityThousands: job.QuantityThousands,
		})
	}
	return items, nil
}

// CuposEvaluate answers whether the selected jobs may share one production
// run, and how much capacity they would occupy. Nothing is persisted.
func (a *App) CuposEvaluate(w http.ResponseWriter, r *http.Request) {
	var req cupoSelectionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid payload")
		return
	}
	items, err := a.summaries(r, req.JobIDs)
	if err != nil {
		a.fail(w, r, err)
		return
	}

	decision := batch.CanCombine(items)
	a.json(w, http.StatusOK, map[string]any{
		"compatible":        decision.Compatible,
		"reason":            decision.Reason,
		"occupied_capacity": batch.OccupiedCapacity(items),
	})
}

// CuposCreate persists a cupo for a compatible selection.
func (a *App) CuposCreate(w http.ResponseWriter, r *http.Request) {
	var req cupoSelectionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid payload")
		return
	}
	items, err := a.summaries(r, req.JobIDs)
	if err != nil {
		a.fail(w, r, err)
		return
	}

	decision := batch.CanCombine(items)
	if !decision.Compatible {
		a.fail(w, r, fmt.Errorf("%s: %w", decision.Reason, domain.ErrIncompatibleSelection))
		return
	}

	cupo := &domain.Cupo{
		ID:               uuid.NewString(),
		Kind:             items[0].Kind,
		OccupiedCapacity: batch.OccupiedCapacity(items),
		Status:           domain.CupoOpen,
		JobIDs:           req.JobIDs,
	}
	if err := a.Cupos.Create(r.Context(), cupo); err != nil {
		a.fail(w, r, err)
		return
	}
	a.json(w, http.StatusCreated, cupo)
}

// CuposList returns production batches.
func (a *App) CuposList(w http.ResponseWriter, r *http.Request) {
	limit, offset := pagination(r, 50)
	cupos, err := a.Cupos.List(r.Context(), limit, offset)
	if err != nil {
		a.fail(w, r, err)
		return
	}
	a.json(w, http.StatusOK, map[string]any{"items": cupos})
}

// CuposClose marks a cupo as closed.
func (a *App) CuposClose(w http.ResponseWriter, r *http.Request) {
	if err := a.Cupos.Close(r.Context(), chi.URLParam(r, "id")); err != nil {
		a.fail(w, r, err)
		return
	}
	a.json(w, http.StatusOK, map[string]any{"status": domain.CupoClosed})
}
