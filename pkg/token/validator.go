package token

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/dmitrymomot/tenantkit/pkg/keystore"
	"github.com/dmitrymomot/tenantkit/pkg/tenant"
)

// Validator verifies access tokens against the public half of the process
// keypair and enforces the tenant binding. Safe for unbounded concurrent use.
type Validator struct {
	km  *keystore.KeyMaterial
	now func() time.Time
}

// ValidatorOption configures a Validator.
type ValidatorOption func(*Validator)

// WithValidatorClock overrides the validator's time source. Intended for tests.
func WithValidatorClock(now func() time.Time) ValidatorOption {
	return func(v *Validator) {
		if now != nil {
			v.now = now
		}
	}
}

// NewValidator creates a validator verifying with the public half of km.
func NewValidator(km *keystore.KeyMaterial, opts ...ValidatorOption) *Validator {
	v := &Validator{
		km:  km,
		now: time.Now,
	}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// Validate verifies tokenString and checks its issuer claim against expected.
// All failures are terminal: ErrExpired for a token past exp, ErrTenantMismatch
// when the token was issued under a different tenant, ErrInvalidSignature for
// a bad signature, ErrInvalidToken for anything else. A token valid for one
// tenant must never authenticate a request resolved to another, so the tenant
// check runs even when everything else verifies.
func (v *Validator) Validate(tokenString string, expected tenant.ID) (*Claims, error) {
	claims := &Claims{}

	_, err := jwt.ParseWithClaims(tokenString, claims,
		func(t *jwt.Token) (any, error) {
			return v.km.PublicKey(), nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodRS256.Alg()}),
		jwt.WithTimeFunc(v.now),
		jwt.WithExpirationRequired(),
		jwt.WithIssuedAt(),
	)
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenExpired):
			return nil, ErrExpired
		case errors.Is(err, jwt.ErrTokenSignatureInvalid):
			return nil, ErrInvalidSignature
		default:
			return nil, errors.Join(ErrInvalidToken, err)
		}
	}

	if claims.TenantID() != expected {
		return nil, ErrTenantMismatch
	}

	return claims, nil
}
