package httpapi

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"printshop/internal/http/handlers"
	"printshop/internal/middleware"
)

// Options carries the router's middleware configuration.
type Options struct {
	Logger          zerolog.Logger
	CountryLookup   middleware.CountryLookup
	AllowedOrigins  []string
	RateLimitPerMin int
}

// NewRouter assembles the API routes and middleware chain.
func NewRouter(app *handlers.App, opts Options) http.Handler {
	r := chi.NewRouter()

	r.Use(
		chimw.RealIP,
		chimw.Recoverer,
		middleware.RequestID,
		middleware.Origin(opts.CountryLookup),
		middleware.Logger(opts.Logger),
	)
	if len(opts.AllowedOrigins) > 0 {
		r.Use(middleware.CORS(opts.AllowedOrigins))
	}
	if opts.RateLimitPerMin > 0 {
		r.Use(middleware.RateLimit(opts.RateLimitPerMin, time.Minute))
	}

	r.Get("/v1/healthz", app.Health)

	r.Route("/v1/customers", func(r chi.Router) {
		r.Post("/", app.CustomersCreate)
		r.Get("/", app.CustomersList)
		r.Get("/{id}", app.CustomersGet)
	})

	r.Route("/v1/jobs", func(r chi.Router) {
		r.Post("/", app.JobsCreate)
		r.Get("/", app.JobsList)
		r.Get("/{id}", app.JobsGet)
		r.Put("/{id}", app.JobsUpdate)
		r.Get("/{id}/quote", app.JobsQuote)
		r.Post("/{id}/status", app.JobsUpdateStatus)
		r.Post("/{id}/payments", app.PaymentsCreate)
		r.Get("/{id}/payments", app.PaymentsList)
	})
	r.Delete("/v1/payments/{id}", app.PaymentsDelete)

	r.Route("/v1/cupos", func(r chi.Router) {
		r.Post("/evaluate", app.CuposEvaluate)
		r.Post("/", app.CuposCreate)
		r.Get("/", app.CuposList)
		r.Post("/{id}/close", app.CuposClose)
	})

	r.Get("/v1/catalog", app.CatalogList)

	r.Route("/v1/templates", func(r chi.Router) {
		r.Get("/", app.TemplatesList)
		r.Put("/{key}", app.TemplatesUpsert)
	})

	r.Route("/v1/notifications", func(r chi.Router) {
		r.Get("/", app.NotificationsList)
		r.Post("/{id}/ack", app.NotificationsAck)
	})

	return r
}
