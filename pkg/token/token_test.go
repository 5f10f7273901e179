package token_test

import (
	"context"
	"crypto/rand"
	"crypto/rsa"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/tenantkit/pkg/keystore"
	"github.com/dmitrymomot/tenantkit/pkg/tenant"
	"github.com/dmitrymomot/tenantkit/pkg/token"
)

// testKeyMaterial is shared across tests to avoid regenerating RSA keys per
// subtest. Key material is read-only, so sharing is safe.
var (
	testKeyOnce sync.Once
	testKey     *keystore.KeyMaterial
)

func keyMaterial(t *testing.T) *keystore.KeyMaterial {
	t.Helper()
	testKeyOnce.Do(func() {
		key, err := rsa.GenerateKey(rand.Reader, 2048)
		if err != nil {
			panic(err)
		}
		testKey, err = keystore.New(key)
		if err != nil {
			panic(err)
		}
	})
	return testKey
}

func tenantCtx(id tenant.ID) context.Context {
	return tenant.WithTenant(context.Background(), id)
}

func TestIssue(t *testing.T) {
	t.Parallel()

	t.Run("round trip preserves subject and scopes", func(t *testing.T) {
		t.Parallel()

		km := keyMaterial(t)
		issuer := token.NewIssuer(km)
		validator := token.NewValidator(km)

		tok, err := issuer.Issue(tenantCtx("acme"), "user-1", []string{"read", "billing.*"}, time.Hour)
		require.NoError(t, err)

		claims, err := validator.Validate(tok, "acme")
		require.NoError(t, err)
		assert.Equal(t, "user-1", claims.Subject)
		assert.Equal(t, []string{"read", "billing.*"}, claims.Scopes())
		assert.Equal(t, tenant.ID("acme"), claims.TenantID())
	})

	t.Run("fails without active tenant", func(t *testing.T) {
		t.Parallel()

		issuer := token.NewIssuer(keyMaterial(t))

		_, err := issuer.Issue(context.Background(), "user-1", []string{"read"}, time.Hour)
		require.ErrorIs(t, err, token.ErrNoActiveTenant)
	})

	t.Run("fails without subject", func(t *testing.T) {
		t.Parallel()

		issuer := token.NewIssuer(keyMaterial(t))

		_, err := issuer.Issue(tenantCtx("acme"), "", nil, time.Hour)
		require.ErrorIs(t, err, token.ErrMissingSubject)
	})

	t.Run("non-positive ttl falls back to default", func(t *testing.T) {
		t.Parallel()

		km := keyMaterial(t)
		issued := time.Date(2026, 1, 15, 12, 0, 0, 0, time.UTC)
		issuer := token.NewIssuer(km, token.WithClock(func() time.Time { return issued }))
		validator := token.NewValidator(km, token.WithValidatorClock(func() time.Time { return issued }))

		tok, err := issuer.Issue(tenantCtx("acme"), "user-1", nil, 0)
		require.NoError(t, err)

		claims, err := validator.Validate(tok, "acme")
		require.NoError(t, err)
		assert.Equal(t, issued.Add(token.DefaultTTL).Unix(), claims.ExpiresAt.Unix())
	})

	t.Run("issuer claim equals active tenant", func(t *testing.T) {
		t.Parallel()

		km := keyMaterial(t)
		issuer := token.NewIssuer(km)
		validator := token.NewValidator(km)

		for _, id := range []tenant.ID{"acme", "globex", "system"} {
			tok, err := issuer.Issue(tenantCtx(id), "user-1", nil, time.Hour)
			require.NoError(t, err)

			claims, err := validator.Validate(tok, id)
			require.NoError(t, err)
			assert.Equal(t, id, claims.TenantID())
		}
	})
}

func TestValidate(t *testing.T) {
	t.Parallel()

	t.Run("cross-tenant validation fails with tenant mismatch", func(t *testing.T) {
		t.Parallel()

		km := keyMaterial(t)
		issuer := token.NewIssuer(km)
		validator := token.NewValidator(km)

		tok, err := issuer.Issue(tenantCtx("acme"), "user-1", []string{"read"}, time.Hour)
		require.NoError(t, err)

		_, err = validator.Validate(tok, "other")
		require.ErrorIs(t, err, token.ErrTenantMismatch)
	})

	t.Run("expired token fails with expired", func(t *testing.T) {
		t.Parallel()

		km := keyMaterial(t)
		past := time.Now().Add(-2 * time.Hour)
		issuer := token.NewIssuer(km, token.WithClock(func() time.Time { return past }))
		validator := token.NewValidator(km)

		tok, err := issuer.Issue(tenantCtx("acme"), "user-1", []string{"read"}, time.Hour)
		require.NoError(t, err)

		// Signature and issuer are valid; only exp is past.
		_, err = validator.Validate(tok, "acme")
		require.ErrorIs(t, err, token.ErrExpired)
	})

	t.Run("tampered payload fails signature verification", func(t *testing.T) {
		t.Parallel()

		km := keyMaterial(t)
		issuer := token.NewIssuer(km)
		validator := token.NewValidator(km)

		tok, err := issuer.Issue(tenantCtx("acme"), "user-1", []string{"read"}, time.Hour)
		require.NoError(t, err)

		parts := strings.Split(tok, ".")
		require.Len(t, parts, 3)
		// Flip a character in the payload; the signature no longer covers it.
		payload := []byte(parts[1])
		if payload[0] == 'A' {
			payload[0] = 'B'
		} else {
			payload[0] = 'A'
		}
		tampered := parts[0] + "." + string(payload) + "." + parts[2]

		_, err = validator.Validate(tampered, "acme")
		require.Error(t, err)
		assert.NotErrorIs(t, err, token.ErrTenantMismatch)
	})

	t.Run("token signed with a different key fails", func(t *testing.T) {
		t.Parallel()

		otherKey, err := rsa.GenerateKey(rand.Reader, 2048)
		require.NoError(t, err)
		otherKM, err := keystore.New(otherKey)
		require.NoError(t, err)

		tok, err := token.NewIssuer(otherKM).Issue(tenantCtx("acme"), "user-1", nil, time.Hour)
		require.NoError(t, err)

		_, err = token.NewValidator(keyMaterial(t)).Validate(tok, "acme")
		require.ErrorIs(t, err, token.ErrInvalidSignature)
	})

	t.Run("malformed token fails", func(t *testing.T) {
		t.Parallel()

		validator := token.NewValidator(keyMaterial(t))

		for _, tok := range []string{"", "not-a-token", "a.b", "a.b.c.d"} {
			_, err := validator.Validate(tok, "acme")
			assert.ErrorIs(t, err, token.ErrInvalidToken, "token %q", tok)
		}
	})

	t.Run("concurrent validation is safe", func(t *testing.T) {
		t.Parallel()

		km := keyMaterial(t)
		issuer := token.NewIssuer(km)
		validator := token.NewValidator(km)

		tok, err := issuer.Issue(tenantCtx("acme"), "user-1", []string{"read"}, time.Hour)
		require.NoError(t, err)

		var wg sync.WaitGroup
		errs := make([]error, 50)
		for i := range errs {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				_, errs[i] = validator.Validate(tok, "acme")
			}(i)
		}
		wg.Wait()

		for _, err := range errs {
			assert.NoError(t, err)
		}
	})
}

// TestTenantBindingScenario runs the full host-to-token flow: resolve a host,
// issue under the resolved tenant, validate against the right and the wrong
// tenant.
func TestTenantBindingScenario(t *testing.T) {
	t.Parallel()

	resolver := tenant.NewResolver(".example.com")
	id, err := resolver.Resolve("acme.example.com")
	require.NoError(t, err)
	require.Equal(t, tenant.ID("acme"), id)

	km := keyMaterial(t)
	issuer := token.NewIssuer(km)
	validator := token.NewValidator(km)

	tok, err := issuer.Issue(tenantCtx(id), "user-1", []string{"read"}, time.Hour)
	require.NoError(t, err)

	claims, err := validator.Validate(tok, "acme")
	require.NoError(t, err)
	assert.Equal(t, "acme", claims.Issuer)
	assert.Equal(t, "user-1", claims.Subject)
	assert.Equal(t, []string{"read"}, claims.Scopes())

	_, err = validator.Validate(tok, "other")
	require.ErrorIs(t, err, token.ErrTenantMismatch)
}
