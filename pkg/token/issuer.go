package token

import (
	"context"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/dmitrymomot/tenantkit/pkg/keystore"
	"github.com/dmitrymomot/tenantkit/pkg/scopes"
	"github.com/dmitrymomot/tenantkit/pkg/tenant"
)

// DefaultTTL bounds token lifetime when the caller passes a non-positive TTL.
const DefaultTTL = 15 * time.Minute

// Issuer mints signed access tokens bound to the active tenant.
type Issuer struct {
	km  *keystore.KeyMaterial
	now func() time.Time
}

// IssuerOption configures an Issuer.
type IssuerOption func(*Issuer)

// WithClock overrides the issuer's time source. Intended for tests.
func WithClock(now func() time.Time) IssuerOption {
	return func(i *Issuer) {
		if now != nil {
			i.now = now
		}
	}
}

// NewIssuer creates an issuer signing with the private half of km.
func NewIssuer(km *keystore.KeyMaterial, opts ...IssuerOption) *Issuer {
	i := &Issuer{
		km:  km,
		now: time.Now,
	}
	for _, opt := range opts {
		opt(i)
	}
	return i
}

// Issue mints a token for subject with the given scopes, valid for ttl
// (DefaultTTL when ttl is non-positive). The active tenant is read from ctx
// and embedded as the issuer claim; issuing outside a tenant scope fails
// with ErrNoActiveTenant. The signature covers the entire claim set, so any
// tampering invalidates the token.
func (i *Issuer) Issue(ctx context.Context, subject string, grantedScopes []string, ttl time.Duration) (string, error) {
	id, err := tenant.CurrentID(ctx)
	if err != nil {
		return "", ErrNoActiveTenant
	}

	if subject == "" {
		return "", ErrMissingSubject
	}
	if ttl <= 0 {
		ttl = DefaultTTL
	}

	now := i.now()
	claims := &Claims{
		Scope: scopes.Join(grantedScopes),
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   subject,
			Issuer:    id.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	tok := jwt.NewWithClaims(jwt.SigningMethodRS256, claims)
	tok.Header["kid"] = i.km.KeyID()

	signed, err := tok.SignedString(i.km.PrivateKey())
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}
