package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// NotificationsList returns the notifications generated for a job.
func (a *App) NotificationsList(w http.ResponseWriter, r *http.Request) {
	jobID := r.URL.Query().Get("job_id")
	if jobID == "" {
		a.error(w, http.StatusBadRequest, "bad_request", "job_id is required")
		return
	}
	events, err := a.Notifications.ListByJobID(r.Context(), jobID)
	if err != nil {
		a.fail(w, r, err)
		return
	}
	a.json(w, http.StatusOK, map[string]any{"items": events})
}

// NotificationsAck flips the copied/acknowledged flag.
func (a *App) NotificationsAck(w http.ResponseWriter, r *http.Request) {
	if err := a.Notifications.Acknowledge(r.Context(), chi.URLParam(r, "id")); err != nil {
		a.fail(w, r, err)
		return
	}
	a.json(w, http.StatusOK, map[string]any{"acknowledged": true})
}
