package handlers_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"printshop/internal/domain"
	"printshop/internal/http/handlers"
	"printshop/internal/http/httpapi"
	"printshop/internal/notify"
)

type fakeJobs struct {
	byID map[string]*domain.JobSpec
}

func (f *fakeJobs) Create(_ context.Context, job *domain.JobSpec) error {
	f.byID[job.ID] = job
	return nil
}

func (f *fakeJobs) Update(_ context.Context, job *domain.JobSpec) error {
	stored, ok := f.byID[job.ID]
	if !ok {
		return domain.ErrNotFound
	}
	job.CustomerID = stored.CustomerID
	job.Status = stored.Status
	f.byID[job.ID] = job
	return nil
}

func (f *fakeJobs) UpdateStatus(_ context.Context, jobID string, status domain.Status) error {
	job, ok := f.byID[jobID]
	if !ok {
		return domain.ErrNotFound
	}
	job.Status = status
	return nil
}

func (f *fakeJobs) GetByID(_ context.Context, jobID string) (*domain.JobSpec, error) {
	job, ok := f.byID[jobID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	copied := *job
	return &copied, nil
}

func (f *fakeJobs) List(_ context.Context, status domain.Status, _, _ int) ([]domain.JobSpec, error) {
	var jobs []domain.JobSpec
	for _, job := range f.byID {
		if status == "" || job.Status == status {
			jobs = append(jobs, *job)
		}
	}
	return jobs, nil
}

type fakeCustomers struct{ byID map[string]*domain.Customer }

func (f *fakeCustomers) Create(_ context.Context, c *domain.Customer) error {
	f.byID[c.ID] = c
	return nil
}

func (f *fakeCustomers) GetByID(_ context.Context, id string) (*domain.Customer, error) {
	c, ok := f.byID[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return c, nil
}

func (f *fakeCustomers) List(_ context.Context, _, _ int) ([]domain.Customer, error) {
	var out []domain.Customer
	for _, c := range f.byID {
		out = append(out, *c)
	}
	return out, nil
}

type fakePayments struct{ byJob map[string][]domain.Payment }

func (f *fakePayments) Create(_ context.Context, p *domain.Payment) error {
	f.byJob[p.JobID] = append(f.byJob[p.JobID], *p)
	return nil
}

func (f *fakePayments) Delete(_ context.Context, _ string) error { return domain.ErrNotFound }

func (f *fakePayments) ListByJobID(_ context.Context, jobID string) ([]domain.Payment, error) {
	return f.byJob[jobID], nil
}

type fakeCatalog struct{ catalog domain.Catalog }

func (f *fakeCatalog) Snapshot(_ context.Context) (domain.Catalog, error) { return f.catalog, nil }

func (f *fakeCatalog) Listing(_ context.Context) ([]domain.CardLine, []domain.FlyerVariant, []domain.SpecialFinish, error) {
	return nil, nil, nil, nil
}

type fakeTemplates struct{ templates domain.Templates }

func (f *fakeTemplates) Snapshot(_ context.Context) (domain.Templates, error) {
	return f.templates, nil
}

func (f *fakeTemplates) Upsert(_ context.Context, key domain.TemplateKey, body string) error {
	f.templates[key] = body
	return nil
}

type fakeNotifications struct{ events []domain.NotificationEvent }

func (f *fakeNotifications) Create(_ context.Context, e *domain.NotificationEvent) error {
	f.events = append(f.events, *e)
	return nil
}

func (f *fakeNotifications) ListByJobID(_ context.Context, jobID string) ([]domain.NotificationEvent, error) {
	var out []domain.NotificationEvent
	for _, e := range f.events {
		if e.JobID == jobID {
			out = append(out, e)
		}
	}
	return out, nil
}

func (f *fakeNotifications) Acknowledge(_ context.Context, _ string) error { return nil }

type fakeCupos struct{ cupos []domain.Cupo }

func (f *fakeCupos) Create(_ context.Context, c *domain.Cupo) error {
	f.cupos = append(f.cupos, *c)
	return nil
}

func (f *fakeCupos) Close(_ context.Context, _ string) error { return nil }

func (f *fakeCupos) List(_ context.Context, _, _ int) ([]domain.Cupo, error) {
	return f.cupos, nil
}

func testCatalog() domain.Catalog {
	return domain.NewCatalog(
		[]domain.CardLine{{
			ReferenceID: "linea-300",
			Name:        "Línea 300",
			PricesPerThousand: map[domain.CardGroup]domain.Money{
				domain.GroupGloss:        15000,
				domain.GroupMatteReserve: 18000,
			},
		}},
		[]domain.FlyerVariant{{Size: "10x15", PrintMode: "frente", PricePerThousand: 9000}},
		[]domain.SpecialFinish{{FinishID: "perforado", Name: "Perforado", PricePerThousand: 2000}},
	)
}

type fixture struct {
	app           *handlers.App
	jobs          *fakeJobs
	notifications *fakeNotifications
	payments      *fakePayments
}

func newFixture() *fixture {
	jobs := &fakeJobs{byID: make(map[string]*domain.JobSpec)}
	notifications := &fakeNotifications{}
	payments := &fakePayments{byJob: make(map[string][]domain.Payment)}
	customers := &fakeCustomers{byID: map[string]*domain.Customer{
		"c-1": {ID: "c-1", Honorific: "Dra.", Name: "Benítez"},
	}}
	templates := &fakeTemplates{templates: domain.Templates{
		domain.TemplateReceived:          "Recibimos {{nombre_trabajo}} ({{millares}})",
		domain.TemplateMounted:           "Montado: {{nombre_trabajo}}",
		domain.TemplateMountedOutsourced: "Derivado: {{nombre_trabajo}}",
		domain.TemplatePrinted:           "Impreso: {{nombre_trabajo}}",
		domain.TemplatePacked:            "Listo {{tratamiento}}. Saldo: {{saldo_pendiente}}",
		domain.TemplateDelivered:         "Entregado: {{nombre_trabajo}}",
	}}

	app := &handlers.App{
		Log:           zerolog.Nop(),
		Composer:      notify.NewComposer(zerolog.Nop()),
		Customers:     customers,
		Jobs:          jobs,
		Payments:      payments,
		Catalog:       &fakeCatalog{catalog: testCatalog()},
		Templates:     templates,
		Notifications: notifications,
		Cupos:         &fakeCupos{},
	}
	return &fixture{app: app, jobs: jobs, notifications: notifications, payments: payments}
}

func (f *fixture) seedJob(id string, status domain.Status) *domain.JobSpec {
	job := &domain.JobSpec{
		ID:         id,
		CustomerID: "c-1",
		Name:       "Tarjetas Benítez",
		Product: domain.ProductSpec{
			Kind:        domain.ProductCard,
			ReferenceID: "linea-300",
			Group:       domain.GroupGloss,
		},
		QuantityThousands: 4,
		SlotOccupancy:     1,
		Halved:            true,
		Finishes:          []domain.FinishSelection{{FinishID: "perforado"}},
		Status:            status,
	}
	f.jobs.byID[id] = job
	return job
}

func (f *fixture) do(t *testing.T, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	router := httpapi.NewRouter(f.app, httpapi.Options{Logger: zerolog.Nop()})
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestJobsCreate_ReturnsQuoteAndIntakeNotification(t *testing.T) {
	f := newFixture()

	rec := f.do(t, http.MethodPost, "/v1/jobs", `{
		"customer_id": "c-1",
		"name": "Tarjetas Benítez",
		"product_kind": "card",
		"reference_id": "linea-300",
		"card_group": "brillo",
		"quantity_thousands": 4,
		"slot_occupancy": 1,
		"halved": true,
		"finishes": ["perforado"]
	}`)

	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201: %s", rec.Code, rec.Body.String())
	}

	var resp struct {
		Estado string `json:"estado"`
		Quote  struct {
			Total int64 `json:"total"`
		} `json:"quote"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Estado != string(domain.StatusReceived) {
		t.Fatalf("estado = %q, want %q", resp.Estado, domain.StatusReceived)
	}
	if resp.Quote.Total != 38000 {
		t.Fatalf("quote total = %d, want 38000", resp.Quote.Total)
	}
	if len(f.notifications.events) != 1 {
		t.Fatalf("notifications = %d, want 1 intake event", len(f.notifications.events))
	}
	if f.notifications.events[0].TemplateKey != domain.TemplateReceived {
		t.Fatalf("template = %s, want %s", f.notifications.events[0].TemplateKey, domain.TemplateReceived)
	}
}

func TestJobsUpdateStatus_PackedRendersBalance(t *testing.T) {
	f := newFixture()
	f.seedJob("j-1", domain.StatusPrinted)
	f.payments.byJob["j-1"] = []domain.Payment{{JobID: "j-1", Amount: 10000}, {JobID: "j-1", Amount: 5000}}

	rec := f.do(t, http.MethodPost, "/v1/jobs/j-1/status", `{"estado":"empaquetado"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", rec.Code, rec.Body.String())
	}

	if len(f.notifications.events) != 1 {
		t.Fatalf("notifications = %d, want 1", len(f.notifications.events))
	}
	text := f.notifications.events[0].RenderedText
	if !strings.Contains(text, "Gs. 23.000") {
		t.Fatalf("rendered text missing balance: %q", text)
	}
	if !strings.Contains(text, "Dra. Benítez") {
		t.Fatalf("rendered text missing honorific: %q", text)
	}
}

func TestJobsUpdateStatus_SkipsStagesForward(t *testing.T) {
	f := newFixture()
	f.seedJob("j-1", domain.StatusReceived)

	rec := f.do(t, http.MethodPost, "/v1/jobs/j-1/status", `{"estado":"impreso"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", rec.Code, rec.Body.String())
	}
	if got := f.jobs.byID["j-1"].Status; got != domain.StatusPrinted {
		t.Fatalf("job status = %s, want %s", got, domain.StatusPrinted)
	}
}

func TestJobsUpdateStatus_RejectsBackward(t *testing.T) {
	f := newFixture()
	f.seedJob("j-1", domain.StatusPrinted)

	rec := f.do(t, http.MethodPost, "/v1/jobs/j-1/status", `{"estado":"montado"}`)
	if rec.Code != http.StatusConflict {
		t.Fatalf("status = %d, want 409: %s", rec.Code, rec.Body.String())
	}
	if got := f.jobs.byID["j-1"].Status; got != domain.StatusPrinted {
		t.Fatalf("job status changed to %s on rejected transition", got)
	}
}

func TestJobsUpdateStatus_TerminalStates(t *testing.T) {
	f := newFixture()
	f.seedJob("j-1", domain.StatusDelivered)

	rec := f.do(t, http.MethodPost, "/v1/jobs/j-1/status", `{"estado":"montado"}`)
	if rec.Code != http.StatusConflict {
		t.Fatalf("status = %d, want 409: %s", rec.Code, rec.Body.String())
	}

	f.seedJob("j-2", domain.StatusReceived)
	rec = f.do(t, http.MethodPost, "/v1/jobs/j-2/status", `{"estado":"cancelado"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("cancel status = %d, want 200: %s", rec.Code, rec.Body.String())
	}
	if len(f.notifications.events) != 0 {
		t.Fatalf("cancellation generated %d notifications, want 0", len(f.notifications.events))
	}
}

func TestCuposEvaluate(t *testing.T) {
	f := newFixture()
	f.seedJob("j-1", domain.StatusReceived)
	matte := f.seedJob("j-2", domain.StatusReceived)
	matte.Product.Group = domain.GroupMatteReserve
	flyerJob := f.seedJob("j-3", domain.StatusReceived)
	flyerJob.Product = domain.ProductSpec{Kind: domain.ProductFlyer, Size: "10x15", PrintMode: "frente"}

	rec := f.do(t, http.MethodPost, "/v1/cupos/evaluate", `{"job_ids":["j-1","j-2"]}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", rec.Code, rec.Body.String())
	}
	var resp struct {
		Compatible       bool   `json:"compatible"`
		Reason           string `json:"reason"`
		OccupiedCapacity int    `json:"occupied_capacity"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if !resp.Compatible {
		t.Fatalf("mixed gloss/matte-reserve reported incompatible: %s", resp.Reason)
	}
	if resp.OccupiedCapacity != 8 {
		t.Fatalf("occupied_capacity = %d, want 8", resp.OccupiedCapacity)
	}

	rec = f.do(t, http.MethodPost, "/v1/cupos/evaluate", `{"job_ids":["j-1","j-3"]}`)
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Compatible {
		t.Fatal("card/flyer mix reported compatible")
	}
	if resp.Reason != "type mismatch" {
		t.Fatalf("reason = %q, want %q", resp.Reason, "type mismatch")
	}

	rec = f.do(t, http.MethodPost, "/v1/cupos", `{"job_ids":["j-1","j-3"]}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("create incompatible cupo status = %d, want 400", rec.Code)
	}
}
