package domain

import "time"

// JobItemSummary is the slim view of a pending job that batch-compatibility
// rules operate on. It is an ephemeral selection, never persisted by the
// engine.
type JobItemSummary struct {
	ID                string
	Kind              ProductKind
	Group             CardGroup
	SlotOccupancy     int
	QuantityThousands int
}

// CupoStatus tracks a production batch through its short life.
type CupoStatus string

const (
	CupoOpen   CupoStatus = "abierto"
	CupoClosed CupoStatus = "cerrado"
)

// Cupo is a production batch: a set of compatible job items grouped for a
// single run.
type Cupo struct {
	ID               string
	Kind             ProductKind
	OccupiedCapacity int
	Status           CupoStatus
	JobIDs           []string
	CreatedAt        time.Time
}
