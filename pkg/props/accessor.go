package props

import (
	"context"

	"github.com/dmitrymomot/tenantkit/pkg/tenant"
)

// Accessor narrows a Store to the tenant active in the caller's context.
// Collaborators hold an Accessor instead of the Store, so they can only ever
// read and write the tenant their request resolved to.
type Accessor struct {
	store Store
}

// NewAccessor wraps store with ambient-tenant scoping.
func NewAccessor(store Store) *Accessor {
	return &Accessor{store: store}
}

// GetProperty reads a property of the active tenant. Fails with
// tenant.ErrNoTenantInContext outside a request scope.
func (a *Accessor) GetProperty(ctx context.Context, name string) (string, bool, error) {
	id, err := tenant.CurrentID(ctx)
	if err != nil {
		return "", false, err
	}
	return a.store.Get(ctx, id, name)
}

// SetProperty writes a property of the active tenant. Last write wins.
func (a *Accessor) SetProperty(ctx context.Context, name, value string) error {
	id, err := tenant.CurrentID(ctx)
	if err != nil {
		return err
	}
	return a.store.Set(ctx, id, name, value)
}

// DeleteProperty removes a property of the active tenant.
func (a *Accessor) DeleteProperty(ctx context.Context, name string) error {
	id, err := tenant.CurrentID(ctx)
	if err != nil {
		return err
	}
	return a.store.Delete(ctx, id, name)
}
