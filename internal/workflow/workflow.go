// Package workflow validates production-status transitions and decides when
// a status change must generate a customer notification.
package workflow

import (
	"fmt"

	"printshop/internal/domain"
)

// ordinals fixes the forward order of the production path. Cancelled is
// deliberately absent: it is terminal and sits outside the ordering.
var ordinals = map[domain.Status]int{
	domain.StatusReceived:     0,
	domain.StatusPrePress:     1,
	domain.StatusPendingMount: 2,
	domain.StatusMounted:      3,
	domain.StatusPrinted:      4,
	domain.StatusPacked:       5,
	domain.StatusDelivered:    6,
}

// IsTerminal reports whether no further transition may leave the status.
func IsTerminal(s domain.Status) bool {
	return s == domain.StatusDelivered || s == domain.StatusCancelled
}

// Validate checks a requested transition. Forward jumps are allowed:
// operators skip stages that do not apply to a job, so any target whose
// ordinal is at or past the current one is accepted, not just the next
// step. Cancelled is reachable from every non-terminal state. Regressions
// fail; corrections go through an explicit reopen outside this engine.
func Validate(current, next domain.Status) error {
	if IsTerminal(current) {
		return fmt.Errorf("%s -> %s: %w", current, next, domain.ErrTerminalStateViolation)
	}
	if next == domain.StatusCancelled {
		return nil
	}
	curOrd, ok := ordinals[current]
	if !ok {
		return fmt.Errorf("unknown status %q: %w", current, domain.ErrInvalidTransition)
	}
	nextOrd, ok := ordinals[next]
	if !ok {
		return fmt.Errorf("unknown status %q: %w", next, domain.ErrInvalidTransition)
	}
	if nextOrd < curOrd {
		return fmt.Errorf("%s -> %s: %w", current, next, domain.ErrInvalidTransition)
	}
	return nil
}

// Decision is the notification verdict for a status entry.
type Decision struct {
	ShouldNotify bool
	TemplateKey  domain.TemplateKey
}

// NotifyOnEntry returns whether entering the status generates a customer
// message and which template renders it. Mounted has a delegated variant
// for jobs sent to an outside press. PrePress, PendingMount and Cancelled
// never notify.
func NotifyOnEntry(status domain.Status, outsourced bool) Decision {
	switch status {
	case domain.StatusReceived:
		return Decision{true, domain.TemplateReceived}
	case domain.StatusMounted:
		if outsourced {
			return Decision{true, domain.TemplateMountedOutsourced}
		}
		return Decision{true, domain.TemplateMounted}
	case domain.StatusPrinted:
		return Decision{true, domain.TemplatePrinted}
	case domain.StatusPacked:
		return Decision{true, domain.TemplatePacked}
	case domain.StatusDelivered:
		return Decision{true, domain.TemplateDelivered}
	default:
		return Decision{}
	}
}
