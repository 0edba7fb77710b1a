// Package batch decides whether an operator-selected set of pending job
// items may share one production run (cupo). It answers yes/no with a
// human-readable reason; it never schedules or optimizes.
package batch

import "printshop/internal/domain"

// Decision is the compatibility verdict for a proposed selection.
type Decision struct {
	Compatible bool
	Reason     string
}

// CanCombine applies the compatibility rules in order: the selection must
// be non-empty, must not mix cards with flyers, and card selections must
// stay within one finish group — except gloss with matte-reserve, the one
// pair allowed to share a run. Flyers have no group subdivision.
// The verdict is independent of item order.
func CanCombine(items []domain.JobItemSummary) Decision {
	if len(items) == 0 {
		return Decision{Compatible: false, Reason: "empty selection"}
	}

	kind := items[0].Kind
	for _, it := range items[1:] {
		if it.Kind != kind {
			return Decision{Compatible: false, Reason: "type mismatch"}
		}
	}

	if kind == domain.ProductFlyer {
		return Decision{Compatible: true, Reason: "flyers share a single run"}
	}

	groups := make(map[domain.CardGroup]struct{}, 2)
	for _, it := range items {
		groups[it.Group] = struct{}{}
	}
	for g := range groups {
		if g != domain.GroupGloss && g != domain.GroupMatteReserve {
			return Decision{Compatible: false, Reason: "unrecognized finish group"}
		}
	}
	switch len(groups) {
	case 1:
		return Decision{Compatible: true, Reason: "single finish group"}
	case 2:
		return Decision{Compatible: true, Reason: "gloss and matte-reserve may share a run"}
	default:
		return Decision{Compatible: false, Reason: "incompatible finish groups"}
	}
}

// OccupiedCapacity is the capacity the selection consumes: the sum of
// slot occupancy times quantity in thousands over all items.
func OccupiedCapacity(items []domain.JobItemSummary) int {
	capacity := 0
	for _, it := range items {
		capacity += it.SlotOccupancy * it.QuantityThousands
	}
	return capacity
}
