package domain

import "context"

// CustomerRepository defines access methods for customers.
type CustomerRepository interface {
	Create(ctx context.Context, customer *Customer) error
	GetByID(ctx context.Context, id string) (*Customer, error)
	List(ctx context.Context, limit, offset int) ([]Customer, error)
}

// JobRepository defines persistence for jobs.
type JobRepository interface {
	Create(ctx context.Context, job *JobSpec) error
	Update(ctx context.Context, job *JobSpec) error
	UpdateStatus(ctx context.Context, jobID string, status Status) error
	GetByID(ctx context.Context, jobID string) (*JobSpec, error)
	List(ctx context.Context, status Status, limit, offset int) ([]JobSpec, error)
}

// PaymentRepository appends and removes whole payment records. Amounts are
// never edited in place.
type PaymentRepository interface {
	Create(ctx context.Context, payment *Payment) error
	Delete(ctx context.Context, paymentID string) error
	ListByJobID(ctx context.Context, jobID string) ([]Payment, error)
}

// CatalogRepository loads the pricing reference data as one snapshot.
type CatalogRepository interface {
	Snapshot(ctx context.Context) (Catalog, error)
	Listing(ctx context.Context) ([]CardLine, []FlyerVariant, []SpecialFinish, error)
}

// TemplateRepository stores operator-editable message templates.
type TemplateRepository interface {
	Snapshot(ctx context.Context) (Templates, error)
	Upsert(ctx context.Context, key TemplateKey, body string) error
}

// NotificationRepository persists generated notification events.
type NotificationRepository interface {
	Create(ctx context.Context, event *NotificationEvent) error
	ListByJobID(ctx context.Context, jobID string) ([]NotificationEvent, error)
	Acknowledge(ctx context.Context, id string) error
}

// CupoRepository persists production batches.
type CupoRepository interface {
	Create(ctx context.Context, cupo *Cupo) error
	Close(ctx context.Context, id string) error
	List(ctx context.Context, limit, offset int) ([]Cupo, error)
}
