package domain

import "errors"

var (
	ErrNotFound               = errors.New("not found")
	ErrInvalidQuantity        = errors.New("invalid quantity")
	ErrUnresolvedCatalogEntry = errors.New("unresolved catalog entry")
	ErrInvalidTransition      = errors.New("invalid transition")
	ErrTerminalStateViolation = errors.New("terminal state violation")
	ErrMissingTemplate        = errors.New("missing template")
	ErrUnresolvedReference    = errors.New("unresolved reference")
	ErrIncompatibleSelection  = errors.New("incompatible selection")
)
