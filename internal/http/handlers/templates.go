package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"printshop/internal/domain"
)

// TemplatesList returns the operator-editable message templates.
func (a *App) TemplatesList(w http.ResponseWriter, r *http.Request) {
	templates, err := a.Templates.Snapshot(r.Context())
	if err != nil {
		a.fail(w, r, err)
		return
	}
	a.json(w, http.StatusOK, map[string]any{"items": templates})
}

type templateRequest struct {
	Body string `json:"body"`
}

// TemplatesUpsert replaces a template body. Keys are the fixed trigger set;
// bodies are free text around the persisted placeholder tokens.
func (a *App) TemplatesUpsert(w http.ResponseWriter, r *http.Request) {
	key := domain.TemplateKey(chi.URLParam(r, "key"))
	switch key {
	case domain.TemplateReceived, domain.TemplateMounted, domain.TemplateMountedOutsourced,
		domain.TemplatePrinted, domain.TemplatePacked, domain.TemplateDelivered:
	default:
		a.error(w, http.StatusBadRequest, "bad_request", "unknown template key")
		return
	}

	var req templateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid payload")
		return
	}
	if strings.TrimSpace(req.Body) == "" {
		a.error(w, http.StatusBadRequest, "bad_request", "body is required")
		return
	}

	if err := a.Templates.Upsert(r.Context(), key, req.Body); err != nil {
		a.fail(w, r, err)
		return
	}
	a.json(w, http.StatusOK, map[string]any{"key": key})
}
