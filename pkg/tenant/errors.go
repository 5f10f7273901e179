package tenant

import "errors"

var (
	// ErrTenantNotFound is returned when a host carries no resolvable tenant label.
	ErrTenantNotFound = errors.New("tenant not found")

	// ErrInvalidIdentifier is returned when the tenant identifier format is invalid.
	ErrInvalidIdentifier = errors.New("invalid tenant identifier")

	// ErrNoTenantInContext is returned when no tenant is active in the context.
	ErrNoTenantInContext = errors.New("no tenant in context")
)
