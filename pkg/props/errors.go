package props

import "errors"

var (
	// ErrEmptyName is returned when a property name is empty.
	ErrEmptyName = errors.New("props: empty property name")

	// ErrMissingProperties is returned by Registry.Validate when a tenant
	// lacks properties that registered consumers declared.
	ErrMissingProperties = errors.New("props: missing required properties")
)
