package domain

import "time"

// ProductKind distinguishes the two product families the shop prints.
type ProductKind string

const (
	ProductCard  ProductKind = "card"
	ProductFlyer ProductKind = "flyer"
)

// CardGroup enumerates the card finish-group families. Gloss and
// matte-reserve are the only two, and they are allowed to share a
// production run.
type CardGroup string

const (
	GroupGloss        CardGroup = "brillo"
	GroupMatteReserve CardGroup = "mate_reserva"
)

// ProductSpec is the tagged product union. Kind selects which fields are
// meaningful: ReferenceID/Group for cards, Size/PrintMode for flyers.
// Callers switch on Kind so every consumer handles both variants.
type ProductSpec struct {
	Kind        ProductKind
	ReferenceID string
	Group       CardGroup
	Size        string
	PrintMode   string
}

// FinishSelection is one special finish applied to a card job.
type FinishSelection struct {
	FinishID string
}

// JobSpec carries everything the costing and notification engines need
// about a single print job. It is a snapshot: engines never mutate it and
// never hold onto it across calls.
type JobSpec struct {
	ID                string
	CustomerID        string
	Name              string
	Product           ProductSpec
	QuantityThousands int
	SlotOccupancy     int
	Halved            bool
	Outsourced        bool
	Finishes          []FinishSelection
	Discount          Money
	Observations      string
	ImageRef          string
	Status            Status
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// PaymentMethod enumerates how a customer paid.
type PaymentMethod string

const (
	PayCash     PaymentMethod = "efectivo"
	PayTransfer PaymentMethod = "transferencia"
	PayCheck    PaymentMethod = "cheque"
)

// Payment is an immutable recorded payment against a job. Amounts are never
// edited in place; a wrong payment is deleted whole and re-entered.
type Payment struct {
	ID        string
	JobID     string
	Amount    Money
	Method    PaymentMethod
	Note      string
	CreatedAt time.Time
}

// PaymentStatus is the derived settlement state of a job.
type PaymentStatus string

const (
	PaymentPending PaymentStatus = "pending"
	PaymentPartial PaymentStatus = "partial"
	PaymentPaid    PaymentStatus = "paid"
)

// Status is a job's production state. The declared order is the workflow
// order; Cancelled sits outside it as a terminal escape hatch.
type Status string

const (
	StatusReceived     Status = "recibido"
	StatusPrePress     Status = "preprensa"
	StatusPendingMount Status = "pendiente_montaje"
	StatusMounted      Status = "montado"
	StatusPrinted      Status = "impreso"
	StatusPacked       Status = "empaquetado"
	StatusDelivered    Status = "entregado"
	StatusCancelled    Status = "cancelado"
)
