package token

import (
	"github.com/golang-jwt/jwt/v5"

	"github.com/dmitrymomot/tenantkit/pkg/scopes"
	"github.com/dmitrymomot/tenantkit/pkg/tenant"
)

// Claims is the access-token claim set. The registered claims carry the
// tenant binding (iss) and the temporal bounds; Scope carries the granted
// scopes as a space-separated string per RFC 8693 conventions.
type Claims struct {
	Scope string `json:"scope,omitempty"`
	jwt.RegisteredClaims
}

// TenantID returns the issuing tenant carried in the iss claim.
func (c *Claims) TenantID() tenant.ID {
	return tenant.ID(c.Issuer)
}

// Scopes returns the granted scopes as a slice.
func (c *Claims) Scopes() []string {
	return scopes.Parse(c.Scope)
}

// HasScopes reports whether the token grants all of the required scopes.
func (c *Claims) HasScopes(required ...string) bool {
	return scopes.HasAll(c.Scopes(), required)
}
