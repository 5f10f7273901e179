package token

import "errors"

var (
	// ErrNoActiveTenant is returned when token issuance is attempted outside a
	// tenant scope. Tokens are never minted without a tenant binding.
	ErrNoActiveTenant = errors.New("token: no active tenant")

	// ErrExpired is returned when a token is past its exp claim.
	ErrExpired = errors.New("token: expired")

	// ErrTenantMismatch is returned when a token's issuer claim does not match
	// the tenant it is being validated against.
	ErrTenantMismatch = errors.New("token: tenant mismatch")

	// ErrInvalidSignature is returned when signature verification fails.
	ErrInvalidSignature = errors.New("token: invalid signature")

	// ErrInvalidToken is returned for malformed tokens and any validation
	// failure not covered by a more specific error.
	ErrInvalidToken = errors.New("token: invalid token")

	// ErrMissingSubject is returned when issuance is attempted without a subject.
	ErrMissingSubject = errors.New("token: missing subject")
)
