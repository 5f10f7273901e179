package token_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/tenantkit/pkg/tenant"
	"github.com/dmitrymomot/tenantkit/pkg/token"
)

func TestMiddleware(t *testing.T) {
	t.Parallel()

	km := keyMaterial(t)
	issuer := token.NewIssuer(km)
	validator := token.NewValidator(km)

	newHandler := func(captured **token.Claims) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if claims, ok := token.ClaimsFromContext(r.Context()); ok {
				*captured = claims
			}
			w.WriteHeader(http.StatusOK)
		})
	}

	newRequest := func(id tenant.ID, authorization string) *http.Request {
		req := httptest.NewRequest("GET", "/", nil)
		if !id.IsZero() {
			req = req.WithContext(tenant.WithTenant(req.Context(), id))
		}
		if authorization != "" {
			req.Header.Set("Authorization", authorization)
		}
		return req
	}

	t.Run("valid token for the active tenant passes", func(t *testing.T) {
		t.Parallel()

		tok, err := issuer.Issue(tenantCtx("acme"), "user-1", []string{"read"}, time.Hour)
		require.NoError(t, err)

		var captured *token.Claims
		handler := token.Middleware(validator)(newHandler(&captured))

		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, newRequest("acme", "Bearer "+tok))

		require.Equal(t, http.StatusOK, rec.Code)
		require.NotNil(t, captured)
		assert.Equal(t, "user-1", captured.Subject)
	})

	t.Run("token issued under another tenant is rejected", func(t *testing.T) {
		t.Parallel()

		tok, err := issuer.Issue(tenantCtx("acme"), "user-1", nil, time.Hour)
		require.NoError(t, err)

		var captured *token.Claims
		handler := token.Middleware(validator)(newHandler(&captured))

		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, newRequest("globex", "Bearer "+tok))

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Nil(t, captured)
	})

	t.Run("request outside a tenant scope is rejected", func(t *testing.T) {
		t.Parallel()

		tok, err := issuer.Issue(tenantCtx("acme"), "user-1", nil, time.Hour)
		require.NoError(t, err)

		var captured *token.Claims
		handler := token.Middleware(validator)(newHandler(&captured))

		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, newRequest("", "Bearer "+tok))

		assert.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("missing or malformed authorization header", func(t *testing.T) {
		t.Parallel()

		var captured *token.Claims
		handler := token.Middleware(validator)(newHandler(&captured))

		for _, auth := range []string{"", "Basic abc", "Bearer", "Bearer "} {
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, newRequest("acme", auth))
			assert.Equal(t, http.StatusUnauthorized, rec.Code, "authorization %q", auth)
		}
	})
}

func TestRequireScopes(t *testing.T) {
	t.Parallel()

	km := keyMaterial(t)
	issuer := token.NewIssuer(km)
	validator := token.NewValidator(km)

	newChain := func(required ...string) http.Handler {
		ok := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
		})
		return token.Middleware(validator)(token.RequireScopes(required...)(ok))
	}

	issueFor := func(t *testing.T, scopes []string) *http.Request {
		t.Helper()
		tok, err := issuer.Issue(tenantCtx("acme"), "user-1", scopes, time.Hour)
		require.NoError(t, err)
		req := httptest.NewRequest("GET", "/", nil)
		req = req.WithContext(tenant.WithTenant(req.Context(), "acme"))
		req.Header.Set("Authorization", "Bearer "+tok)
		return req
	}

	t.Run("sufficient scopes pass", func(t *testing.T) {
		t.Parallel()

		rec := httptest.NewRecorder()
		newChain("admin.users").ServeHTTP(rec, issueFor(t, []string{"admin.*"}))
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("insufficient scopes are forbidden", func(t *testing.T) {
		t.Parallel()

		rec := httptest.NewRecorder()
		newChain("write").ServeHTTP(rec, issueFor(t, []string{"read"}))
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("without claims context is unauthorized", func(t *testing.T) {
		t.Parallel()

		handler := token.RequireScopes("read")(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest("GET", "/", nil))
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}
