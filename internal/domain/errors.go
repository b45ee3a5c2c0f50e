package domain

import "errors"

// Error message string constants - single source of truth for error messages
const (
	ErrMsgInconsistentCatalog = "inconsistent catalog"
	ErrMsgMissingSetRoot      = "item detail has no set root"
	ErrMsgInvalidSquadSize    = "invalid squad size"
)

// Common domain errors.
// Wrap these errors with fmt.Errorf("%w: %s", domain.ErrXxx, details) for additional context.
var (
	ErrInconsistentCatalog = errors.New(ErrMsgInconsistentCatalog)
	ErrMissingSetRoot      = errors.New(ErrMsgMissingSetRoot)
	ErrInvalidSquadSize    = errors.New(ErrMsgInvalidSquadSize)
)
