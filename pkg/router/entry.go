package router

import (
	"sync"
	"time"
)

// entry is one provisioned tenant handle with its lease bookkeeping.
// The entry mutex guards only the counters; the resource itself is owned by
// the router and closed exactly once during eviction or shutdown.
type entry struct {
	resource Resource

	mu       sync.Mutex
	refs     int
	evicting bool
	drained  chan struct{}
	lastUsed time.Time
}

func newEntry(resource Resource) *entry {
	return &entry{
		resource: resource,
		lastUsed: time.Now(),
	}
}

// acquire takes a lease. Returns false when the entry is being evicted, in
// which case the caller must go through provisioning again.
func (e *entry) acquire() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.evicting {
		return false
	}
	e.refs++
	e.lastUsed = time.Now()
	return true
}

// release drops a lease and signals the drain channel when the last one goes
// during an eviction.
func (e *entry) release() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.refs == 0 {
		return
	}
	e.refs--
	e.lastUsed = time.Now()
	if e.refs == 0 && e.evicting {
		close(e.drained)
	}
}

// beginEvict flips the entry into evicting mode and returns a channel closed
// once all outstanding leases are released. Safe to call more than once.
func (e *entry) beginEvict() <-chan struct{} {
	e.mu.Lock()
	defer e.mu.Unlock()
	if !e.evicting {
		e.evicting = true
		e.drained = make(chan struct{})
		if e.refs == 0 {
			close(e.drained)
		}
	}
	return e.drained
}

// idleSince reports whether the entry has been lease-free since before cutoff.
func (e *entry) idleSince(cutoff time.Time) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.refs == 0 && e.lastUsed.Before(cutoff)
}

// Lease is a caller's hold on a tenant's resource handle. Release must be
// called when the request is done with the handle; releasing more than once
// is safe.
type Lease struct {
	entry *entry
	once  sync.Once
}

// Resource returns the leased handle.
func (l *Lease) Resource() Resource {
	return l.entry.resource
}

// Release returns the lease. After the last lease of an evicting tenant is
// released, teardown proceeds.
func (l *Lease) Release() {
	l.once.Do(l.entry.release)
}
