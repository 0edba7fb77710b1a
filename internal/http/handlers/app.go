package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"printshop/internal/adapter/repo"
	"printshop/internal/domain"
	"printshop/internal/notify"
)

// App wires repositories and the engines into the HTTP handlers.
type App struct {
	Log           zerolog.Logger
	Composer      *notify.Composer
	Customers     domain.CustomerRepository
	Jobs          domain.JobRepository
	Payments      domain.PaymentRepository
	Catalog       domain.CatalogRepository
	Templates     domain.TemplateRepository
	Notifications domain.NotificationRepository
	Cupos         domain.CupoRepository
}

// NewApp builds the handler container over a pgx pool.
func NewApp(pool *pgxpool.Pool, log zerolog.Logger, composer *notify.Composer) *App {
	return &App{
		Log:           log,
		Composer:      composer,
		Customers:     repo.NewCustomerRepository(pool),
		Jobs:          repo.NewJobRepository(pool),
		Payments:      repo.NewPaymentRepository(pool),
		Catalog:       repo.NewCatalogRepository(pool),
		Templates:     repo.NewTemplateRepository(pool),
		Notifications: repo.NewNotificationRepository(pool),
		Cupos:         repo.NewCupoRepository(pool),
	}
}

func (a *App) json(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func (a *App) error(w http.ResponseWriter, code int, slug, message string) {
	a.json(w, code, map[string]any{"error": slug, "message": message})
}

// fail maps engine and store errors onto HTTP responses. Validation failures
// are the client's problem; anything unrecognized is logged and reported as
// internal.
func (a *App) fail(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		a.error(w, http.StatusNotFound, "not_found", err.Error())
	case errors.Is(err, domain.ErrInvalidQuantity),
		errors.Is(err, domain.ErrIncompatibleSelection):
		a.error(w, http.StatusBadRequest, "bad_request", err.Error())
	case errors.Is(err, domain.ErrInvalidTransition),
		errors.Is(err, domain.ErrTerminalStateViolation):
		a.error(w, http.StatusConflict, "invalid_transition", err.Error())
	case errors.Is(err, domain.ErrUnresolvedCatalogEntry),
		errors.Is(err, domain.ErrUnresolvedReference),
		errors.Is(err, domain.ErrMissingTemplate):
		a.error(w, http.StatusUnprocessableEntity, "unresolved", err.Error())
	default:
		a.Log.Error().Err(err).Str("path", r.URL.Path).Msg("handler failure")
		a.error(w, http.StatusInternalServerError, "internal", "internal error")
	}
}
