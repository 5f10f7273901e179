package token

import (
	"context"
	"net/http"
	"strings"

	"github.com/dmitrymomot/tenantkit/pkg/tenant"
)

// claimsContextKey is a private type to prevent collisions with other context keys.
type claimsContextKey struct{}

// ClaimsFromContext retrieves the validated claims installed by Middleware.
func ClaimsFromContext(ctx context.Context) (*Claims, bool) {
	claims, ok := ctx.Value(claimsContextKey{}).(*Claims)
	return claims, ok
}

// withClaims returns a context carrying validated claims.
func withClaims(ctx context.Context, claims *Claims) context.Context {
	return context.WithValue(ctx, claimsContextKey{}, claims)
}

// Middleware validates the request's bearer token against the tenant the
// request resolved to and injects the claims into the request context.
// Must be mounted behind tenant.Middleware: validation needs the active
// tenant to enforce the issuer binding, and a request outside a tenant scope
// is rejected outright.
func Middleware(validator *Validator) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id, err := tenant.CurrentID(r.Context())
			if err != nil {
				http.Error(w, "Forbidden", http.StatusForbidden)
				return
			}

			tokenString, err := bearerToken(r)
			if err != nil {
				http.Error(w, "Unauthorized", http.StatusUnauthorized)
				return
			}

			claims, err := validator.Validate(tokenString, id)
			if err != nil {
				http.Error(w, "Unauthorized", http.StatusUnauthorized)
				return
			}

			next.ServeHTTP(w, r.WithContext(withClaims(r.Context(), claims)))
		})
	}
}

// RequireScopes guards a route behind scope requirements. Must be mounted
// behind Middleware.
func RequireScopes(required ...string) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, ok := ClaimsFromContext(r.Context())
			if !ok {
				http.Error(w, "Unauthorized", http.StatusUnauthorized)
				return
			}
			if !claims.HasScopes(required...) {
				http.Error(w, "Insufficient scope", http.StatusForbidden)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// bearerToken extracts the token from an "Authorization: Bearer <token>"
// header per RFC 6750.
func bearerToken(r *http.Request) (string, error) {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return "", ErrInvalidToken
	}

	scheme, tok, found := strings.Cut(authHeader, " ")
	if !found || !strings.EqualFold(scheme, "Bearer") || tok == "" {
		return "", ErrInvalidToken
	}

	return tok, nil
}
