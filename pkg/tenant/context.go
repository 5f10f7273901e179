package tenant

import (
	"context"
	"log/slog"
)

// contextKey is a private type to prevent collisions with other context keys.
type contextKey struct{}

// WithTenant returns a context carrying id as the active tenant.
// The parent context is never mutated, so activation is confined to the
// call chain holding the derived context.
func WithTenant(ctx context.Context, id ID) context.Context {
	return context.WithValue(ctx, contextKey{}, id)
}

// FromContext retrieves the active tenant from the context.
// Returns a zero ID and false if no tenant is active.
func FromContext(ctx context.Context) (ID, bool) {
	id, ok := ctx.Value(contextKey{}).(ID)
	if !ok || id.IsZero() {
		return "", false
	}
	return id, true
}

// CurrentID retrieves the active tenant, returning ErrNoTenantInContext when
// tenant-scoped work is attempted outside a request scope. Callers that treat
// a missing tenant as a programming error should prefer this over FromContext.
func CurrentID(ctx context.Context) (ID, error) {
	id, ok := FromContext(ctx)
	if !ok {
		return "", ErrNoTenantInContext
	}
	return id, nil
}

// MustFromContext retrieves the active tenant from the context.
// Panics if no tenant is active. Use this only in handlers that are always
// mounted behind RequireTenant.
func MustFromContext(ctx context.Context) ID {
	id, ok := FromContext(ctx)
	if !ok {
		panic("tenant: no tenant in context")
	}
	return id
}

// RunWithTenant activates id for the duration of fn and guarantees the
// activation never outlives it: the derived context is scoped to the call,
// so the tenant is gone on every exit path, panics included. Intended for
// non-HTTP entry points (queue consumers, schedulers) that need the same
// scoped-activation shape the middleware gives HTTP requests.
func RunWithTenant(ctx context.Context, id ID, fn func(ctx context.Context) error) error {
	return fn(WithTenant(ctx, id))
}

// LoggerExtractor returns a context extractor for the logger that adds the
// active tenant ID to every log record emitted within a tenant scope.
func LoggerExtractor() func(ctx context.Context) (slog.Attr, bool) {
	return func(ctx context.Context) (slog.Attr, bool) {
		if id, ok := FromContext(ctx); ok {
			return slog.String("tenant_id", id.String()), true
		}
		return slog.Attr{}, false
	}
}
