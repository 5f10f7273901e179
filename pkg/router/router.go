package router

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/sync/singleflight"

	"github.com/dmitrymomot/tenantkit/pkg/provisioner"
	"github.com/dmitrymomot/tenantkit/pkg/tenant"
)

// Provisioner starts and tears down tenant database instances. Satisfied by
// provisioner.Postgres and provisioner.Static.
type Provisioner interface {
	Provision(ctx context.Context, id tenant.ID) (provisioner.Descriptor, error)
	Destroy(ctx context.Context, id tenant.ID) error
}

// Resource is a per-tenant handle owned by the router, closed exactly once
// when its tenant is evicted or the router shuts down.
type Resource interface {
	Close()
}

// Opener turns a connection descriptor into a live resource handle.
type Opener func(ctx context.Context, desc provisioner.Descriptor) (Resource, error)

// DefaultPoolOpener opens a pgx connection pool for the tenant database.
func DefaultPoolOpener(ctx context.Context, desc provisioner.Descriptor) (Resource, error) {
	pool, err := pgxpool.New(ctx, desc.DSN())
	if err != nil {
		return nil, fmt.Errorf("open tenant pool: %w", err)
	}
	return pool, nil
}

// Router owns the TenantID -> handle routing table.
type Router struct {
	prov   Provisioner
	open   Opener
	cfg    Config
	logger *slog.Logger

	group singleflight.Group

	mu      sync.RWMutex
	entries map[tenant.ID]*entry
	closed  bool
}

// Option configures a Router.
type Option func(*Router)

// WithLogger sets a custom logger.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Router) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// New creates a router over the given provisioner and opener.
func New(prov Provisioner, open Opener, cfg Config, opts ...Option) *Router {
	r := &Router{
		prov:    prov,
		open:    open,
		cfg:     cfg.withDefaults(),
		logger:  slog.Default(),
		entries: make(map[tenant.ID]*entry),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Acquire returns a lease on the tenant's resource handle, provisioning it
// on first access. Concurrent first-access calls for one tenant collapse
// into a single provisioning attempt; every caller gets the same handle.
// Cancelling ctx abandons the wait without aborting the attempt for other
// waiters.
func (r *Router) Acquire(ctx context.Context, id tenant.ID) (*Lease, error) {
	for {
		r.mu.RLock()
		if r.closed {
			r.mu.RUnlock()
			return nil, ErrClosed
		}
		e := r.entries[id]
		r.mu.RUnlock()

		if e != nil {
			if e.acquire() {
				return &Lease{entry: e}, nil
			}
			// Entry is mid-eviction: fall through and provision a fresh one.
		}

		if err := r.provision(ctx, id); err != nil {
			return nil, err
		}
		// Loop rather than lease the flight's entry directly: the entry could
		// have been evicted between the flight storing it and us leasing it.
	}
}

// provision runs (or joins) the single flight for id. On return either the
// routing table holds an entry for id, or err is non-nil and the table holds
// nothing for id.
func (r *Router) provision(ctx context.Context, id tenant.ID) error {
	ch := r.group.DoChan(id.String(), func() (any, error) {
		// Detached from every waiter: a cancelled caller must not kill the
		// attempt for the rest, and the handle outlives the triggering request.
		fctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), r.cfg.ProvisionTimeout)
		defer cancel()

		r.mu.RLock()
		e, closed := r.entries[id], r.closed
		r.mu.RUnlock()
		if closed {
			return nil, ErrClosed
		}
		if e != nil {
			return e, nil
		}

		desc, err := r.prov.Provision(fctx, id)
		if err != nil {
			return nil, err
		}

		resource, err := r.open(fctx, desc)
		if err != nil {
			// The instance started but the handle could not be opened; tear it
			// back down so the tenant retries from a clean slate.
			if derr := r.prov.Destroy(fctx, id); derr != nil {
				r.logger.ErrorContext(fctx, "failed to tear down tenant after open failure",
					slog.String("tenant_id", id.String()), slog.Any("error", derr))
			}
			return nil, err
		}

		e = newEntry(resource)
		r.mu.Lock()
		if r.closed {
			r.mu.Unlock()
			resource.Close()
			return nil, ErrClosed
		}
		r.entries[id] = e
		r.mu.Unlock()

		r.logger.InfoContext(fctx, "tenant handle provisioned", slog.String("tenant_id", id.String()))
		return e, nil
	})

	select {
	case res := <-ch:
		return res.Err
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Evict removes the tenant's handle from the routing table and tears it down
// via the provisioner. New acquires during eviction provision a fresh
// instance. Teardown waits for outstanding leases up to the eviction grace
// period; on expiry the handle is closed anyway and ErrEvictionTimedOut is
// returned alongside any teardown error.
func (r *Router) Evict(ctx context.Context, id tenant.ID) error {
	r.mu.Lock()
	e := r.entries[id]
	delete(r.entries, id)
	r.mu.Unlock()

	if e == nil {
		return nil
	}

	var errs []error
	select {
	case <-e.beginEvict():
	case <-time.After(r.cfg.EvictionGrace):
		errs = append(errs, ErrEvictionTimedOut)
	case <-ctx.Done():
		errs = append(errs, ctx.Err())
	}

	e.resource.Close()
	if err := r.prov.Destroy(context.WithoutCancel(ctx), id); err != nil {
		errs = append(errs, err)
	}

	r.logger.InfoContext(ctx, "tenant handle evicted", slog.String("tenant_id", id.String()))
	return errors.Join(errs...)
}

// EvictIdle evicts every tenant whose handle has been lease-free for longer
// than Config.IdleTTL. Returns the evicted tenant IDs. A zero IdleTTL
// disables the policy and makes this a no-op.
func (r *Router) EvictIdle(ctx context.Context) ([]tenant.ID, error) {
	if r.cfg.IdleTTL <= 0 {
		return nil, nil
	}

	cutoff := time.Now().Add(-r.cfg.IdleTTL)

	r.mu.RLock()
	candidates := make([]tenant.ID, 0, len(r.entries))
	for id, e := range r.entries {
		if e.idleSince(cutoff) {
			candidates = append(candidates, id)
		}
	}
	r.mu.RUnlock()

	var errs []error
	evicted := make([]tenant.ID, 0, len(candidates))
	for _, id := range candidates {
		if err := r.Evict(ctx, id); err != nil {
			errs = append(errs, fmt.Errorf("evict %s: %w", id, err))
			continue
		}
		evicted = append(evicted, id)
	}
	return evicted, errors.Join(errs...)
}

// Len reports the number of provisioned handles.
func (r *Router) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.entries)
}

// Close shuts the router down: no new acquires, outstanding leases drained
// up to the grace period, every handle closed. Unlike Evict, Close does not
// destroy tenant instances through the provisioner; the tenants' databases
// stay provisioned for the next process.
func (r *Router) Close(ctx context.Context) error {
	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()
		return nil
	}
	r.closed = true
	entries := make(map[tenant.ID]*entry, len(r.entries))
	for id, e := range r.entries {
		entries[id] = e
	}
	clear(r.entries)
	r.mu.Unlock()

	var errs []error
	for id, e := range entries {
		select {
		case <-e.beginEvict():
		case <-time.After(r.cfg.EvictionGrace):
			errs = append(errs, fmt.Errorf("%s: %w", id, ErrEvictionTimedOut))
		case <-ctx.Done():
			errs = append(errs, ctx.Err())
		}
		e.resource.Close()
	}
	return errors.Join(errs...)
}
