// Package pricing computes job totals and settlement state. Everything in
// here is a pure function over snapshots: same inputs, same outputs, no I/O.
package pricing

import (
	"fmt"

	"printshop/internal/domain"
)

// Breakdown exposes the intermediate values of a costing run alongside the
// final total, for quote displays.
type Breakdown struct {
	BaseCost     domain.Money
	FinishesCost domain.Money
	Discount     domain.Money
	Total        domain.Money
}

// ComputeTotal computes the job total in minor units.
//
// The base cost honors the 1x2 promotion (halved billable quantity) and
// multiplies by slot occupancy. Special finishes deliberately do neither:
// they are priced per physical sheet run, so they always use the unhalved
// quantity and ignore occupancy. The discount can comp the job down to zero
// but never drives the total negative.
func ComputeTotal(spec domain.JobSpec, catalog domain.Catalog) (domain.Money, error) {
	b, err := ComputeBreakdown(spec, catalog)
	if err != nil {
		return 0, err
	}
	return b.Total, nil
}

// ComputeBreakdown is ComputeTotal with the intermediate terms exposed.
func ComputeBreakdown(spec domain.JobSpec, catalog domain.Catalog) (Breakdown, error) {
	if spec.QuantityThousands < 1 {
		return Breakdown{}, fmt.Errorf("quantity %d thousands: %w", spec.QuantityThousands, domain.ErrInvalidQuantity)
	}
	if spec.SlotOccupancy < 1 {
		return Breakdown{}, fmt.Errorf("slot occupancy %d: %w", spec.SlotOccupancy, domain.ErrInvalidQuantity)
	}

	basePrice, err := catalog.BasePricePerThousand(spec.Product)
	if err != nil {
		return Breakdown{}, err
	}

	base := basePrice * domain.Money(spec.QuantityThousands) * domain.Money(spec.SlotOccupancy)
	if spec.Halved {
		base = base.HalveRoundUp()
	}

	var finishes domain.Money
	for _, sel := range spec.Finishes {
		unit, err := catalog.FinishPricePerThousand(sel.FinishID)
		if err != nil {
			return Breakdown{}, err
		}
		finishes += unit * domain.Money(spec.QuantityThousands)
	}

	total := base + finishes - spec.Discount
	if total < 0 {
		total = 0
	}

	return Breakdown{
		BaseCost:     base,
		FinishesCost: finishes,
		Discount:     spec.Discount,
		Total:        total,
	}, nil
}
