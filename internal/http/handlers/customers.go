package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"printshop/internal/domain"
)

type customerRequest struct {
	Honorific string `json:"honorific"`
	Name      string `json:"name"`
	Phone     string `json:"phone"`
}

// CustomersCreate registers a new client.
func (a *App) CustomersCreate(w http.ResponseWriter, r *http.Request) {
	var req customerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid payload")
		return
	}
	if strings.TrimSpace(req.Name) == "" {
		a.error(w, http.StatusBadRequest, "bad_request", "name is required")
		return
	}

	customer := &domain.Customer{
		ID:        uuid.NewString(),
		Honorific: strings.TrimSpace(req.Honorific),
		Name:      strings.TrimSpace(req.Name),
		Phone:     strings.TrimSpace(req.Phone),
	}
	if err := a.Customers.Create(r.Context(), customer); err != nil {
		a.fail(w, r, err)
		return
	}
	a.json(w, http.StatusCreated, customer)
}

// CustomersGet fetches one client.
func (a *App) CustomersGet(w http.ResponseWriter, r *http.Request) {
	customer, err := a.Customers.GetByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		a.fail(w, r, err)
		return
	}
	a.json(w, http.StatusOK, customer)
}

// CustomersList returns clients ordered by name.
func (a *App) CustomersList(w http.ResponseWriter, r *http.Request) {
	limit, offset := pagination(r, 50)
	customers, err := a.Customers.List(r.Context(), limit, offset)
	if err != nil {
		a.fail(w, r, err)
		return
	}
	a.json(w, http.StatusOK, map[string]any{"items": customers})
}
