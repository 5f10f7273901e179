// Package router maps tenant identifiers to lazily provisioned per-tenant
// resource handles (database connection pools).
//
// The first Acquire for a tenant triggers provisioning through the
// configured provisioner; concurrent callers for the same not-yet-provisioned
// tenant collapse into a single provisioning attempt, so the underlying start
// operation runs at most once per tenant no matter how many requests race on
// first access. This is a correctness requirement, not an optimization:
// duplicate provisioning could create divergent per-tenant state. A
// successful attempt populates the routing table for every waiter; a failed
// attempt reports the error to every waiter and leaves no table entry, so a
// later request retries from scratch.
//
// Provisioning runs on a detached context bounded only by the router's
// ProvisionTimeout. A caller that cancels its wait stops waiting, but the
// in-flight attempt keeps going for the remaining waiters and, on success,
// still populates the table.
//
// Acquire returns a Lease rather than the raw handle. Leases are refcounted:
// eviction of a tenant with outstanding leases removes the table entry
// immediately (new acquires re-provision) but defers teardown until the
// leases are released or a bounded grace period expires, so in-flight
// requests are never handed a torn-down handle.
//
// Unrelated tenants never contend: the routing table uses a single short
// critical section for map access, and all blocking work (provisioning,
// draining) happens outside it, keyed per tenant.
//
// # Usage
//
//	r := router.New(p, router.DefaultPoolOpener, cfg)
//
//	lease, err := r.Acquire(ctx, tenantID)
//	if err != nil {
//	    // ErrProvisioningFailed after internal retries: service unavailable
//	}
//	defer lease.Release()
//
//	pool := lease.Resource().(*pgxpool.Pool)
//
// The idle-eviction policy is deliberately explicit configuration: set
// Config.IdleTTL and call EvictIdle from a scheduler owned by the caller.
// Zero disables idle eviction entirely.
package router
