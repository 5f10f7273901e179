// Package provisioner creates, readies, and tears down isolated database
// instances for tenants on demand.
//
// A provisioning attempt walks a fixed state machine:
//
//	Requested -> Starting -> ReadinessPolling -> Ready
//	                     \-> Failed
//
// Starting launches the tenant's database and yields a connection descriptor
// (host, port, credentials). ReadinessPolling repeatedly probes the
// descriptor with bounded exponential backoff under a total timeout budget;
// exceeding the budget transitions to Failed and tears down whatever was
// started, so a failed attempt is always retriable from scratch.
//
// Destroy is idempotent: destroying an already-destroyed or never-provisioned
// tenant is a no-op, never an error, and always releases any resources that
// were allocated.
//
// The package ships two implementations. Postgres provisions a dedicated
// database and role per tenant on a shared PostgreSQL server through a
// control connection pool, optionally applying schema migrations before the
// instance is considered ready. Static hands out a fixed descriptor and is
// meant for development and tests.
//
// # Usage
//
//	control, err := pgxpool.New(ctx, cfg.ControlConnURL)
//	// ...
//	p := provisioner.NewPostgres(control, cfg)
//
//	desc, err := p.Provision(ctx, "acme")
//	if err != nil {
//	    // state machine is in Failed; a later call retries from Requested
//	}
//	// open the tenant's pool from desc.DSN()
//
//	_ = p.Destroy(ctx, "acme") // idempotent
package provisioner
