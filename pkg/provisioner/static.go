package provisioner

import (
	"context"
	"errors"
	"sync"

	"github.com/dmitrymomot/tenantkit/pkg/tenant"
)

// Static walks the same state machine as Postgres but hands out a fixed
// descriptor instead of launching anything. Meant for development
// environments where every tenant shares one pre-created database server,
// and for tests that need provisioning semantics without infrastructure.
type Static struct {
	desc    Descriptor
	cfg     Config
	tracker *stateTracker
	probe   Probe

	mu        sync.Mutex
	allocated map[tenant.ID]struct{}
}

// StaticOption configures a Static provisioner.
type StaticOption func(*Static)

// WithStaticProbe sets the readiness probe. The default accepts immediately.
func WithStaticProbe(probe Probe) StaticOption {
	return func(s *Static) {
		if probe != nil {
			s.probe = probe
		}
	}
}

// WithStaticConfig overrides the readiness timing configuration.
func WithStaticConfig(cfg Config) StaticOption {
	return func(s *Static) {
		s.cfg = cfg.withDefaults()
	}
}

// NewStatic creates a provisioner that always yields desc.
func NewStatic(desc Descriptor, opts ...StaticOption) *Static {
	s := &Static{
		desc:      desc,
		cfg:       Config{}.withDefaults(),
		tracker:   newStateTracker(),
		probe:     func(context.Context, Descriptor) error { return nil },
		allocated: make(map[tenant.ID]struct{}),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// State reports the provisioning state for a tenant.
func (s *Static) State(id tenant.ID) State {
	return s.tracker.get(id)
}

// Allocated reports whether the tenant currently holds a provisioned instance.
func (s *Static) Allocated(id tenant.ID) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.allocated[id]
	return ok
}

// Provision walks Requested -> Starting -> ReadinessPolling -> Ready against
// the fixed descriptor. A probe that never succeeds exhausts the readiness
// budget and transitions to Failed, mirroring the real provisioner.
func (s *Static) Provision(ctx context.Context, id tenant.ID) (Descriptor, error) {
	s.tracker.set(id, StateRequested)
	s.tracker.set(id, StateStarting)

	s.mu.Lock()
	s.allocated[id] = struct{}{}
	s.mu.Unlock()

	s.tracker.set(id, StateReadinessPolling)
	if err := awaitReady(ctx, s.cfg, s.desc, s.probe); err != nil {
		s.release(id)
		s.tracker.set(id, StateFailed)
		return Descriptor{}, errors.Join(ErrProvisioningFailed, err)
	}

	s.tracker.set(id, StateReady)
	return s.desc, nil
}

// Destroy releases the tenant's allocation. Idempotent and never errors.
func (s *Static) Destroy(ctx context.Context, id tenant.ID) error {
	s.release(id)
	s.tracker.clear(id)
	return nil
}

func (s *Static) release(id tenant.ID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.allocated, id)
}
