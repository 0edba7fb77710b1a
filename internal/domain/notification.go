package domain

import "time"

// TemplateKey identifies an operator-editable message template. Keys are a
// persisted contract with the template store.
type TemplateKey string

const (
	TemplateReceived          TemplateKey = "recibido"
	TemplateMounted           TemplateKey = "montado"
	TemplateMountedOutsourced TemplateKey = "montado_delegado"
	TemplatePrinted           TemplateKey = "impreso"
	TemplatePacked            TemplateKey = "empaquetado"
	TemplateDelivered         TemplateKey = "entregado"
)

// Templates is a resolved snapshot of template bodies keyed by TemplateKey.
// Like Catalog, it is handed to the composer already loaded; the engine does
// not cache or refresh it.
type Templates map[TemplateKey]string

// NotificationEvent is the customer-facing message generated when a job
// enters a trigger-eligible status. Immutable except for the acknowledged
// flag, which flips once an operator has copied the text out.
type NotificationEvent struct {
	ID               string
	JobID            string
	TriggeringStatus Status
	TemplateKey      TemplateKey
	RenderedText     string
	Acknowledged     bool
	GeneratedAt      time.Time
}
