// Package props stores tenant-scoped configuration properties.
//
// A property is a {tenant, name, value} tuple with last-write-wins
// semantics, scoped strictly by tenant: no property set by one tenant is
// ever visible to another. Two backends are provided: an in-memory store
// and a Redis store keeping one hash per tenant.
//
// Downstream collaborators (payment credential storage, upload-signing
// credentials) never pass a tenant ID explicitly. They go through an
// Accessor, which reads the active tenant from pkg/tenant context, so an
// accidental cross-tenant read is structurally impossible rather than merely
// forbidden.
//
// Collaborators declare the property names they consume in a Registry; the
// registry can then validate configuration completeness for a tenant before
// it goes live.
//
// # Usage
//
//	store := props.NewMemory()          // or props.NewRedis(client)
//	access := props.NewAccessor(store)
//
//	// inside a request scope established by tenant.Middleware:
//	if err := access.SetProperty(ctx, "payment.api_key", key); err != nil { ... }
//	v, ok, err := access.GetProperty(ctx, "payment.api_key")
//
//	reg := props.NewRegistry()
//	reg.Register("payments", "payment.api_key", "payment.webhook_secret")
//	if err := reg.Validate(ctx, store, "acme"); err != nil {
//	    // errors.Is(err, props.ErrMissingProperties)
//	}
package props
