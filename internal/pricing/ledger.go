package pricing

import "printshop/internal/domain"

// LedgerSummary is the derived settlement state of a job.
type LedgerSummary struct {
	Total            domain.Money
	TotalPaid        domain.Money
	RemainingBalance domain.Money
	Status           domain.PaymentStatus
}

// Summarize sums recorded payments against the job's computed total.
//
// RemainingBalance goes negative on overpayment; that is a visible condition
// for the operator, not an error, so it is surfaced rather than clamped. A
// zero total reports Pending by convention: nothing has been paid against a
// free job.
func Summarize(spec domain.JobSpec, catalog domain.Catalog, payments []domain.Payment) (LedgerSummary, error) {
	total, err := ComputeTotal(spec, catalog)
	if err != nil {
		return LedgerSummary{}, err
	}

	var paid domain.Money
	for _, p := range payments {
		paid += p.Amount
	}

	status := domain.PaymentPending
	switch {
	case total > 0 && paid >= total:
		status = domain.PaymentPaid
	case paid > 0 && paid < total:
		status = domain.PaymentPartial
	}

	return LedgerSummary{
		Total:            total,
		TotalPaid:        paid,
		RemainingBalance: total - paid,
		Status:           status,
	}, nil
}
